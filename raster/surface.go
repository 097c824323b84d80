// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package raster is a small software renderer that draws scene meshes
// into an offscreen [image.NRGBA] with a depth buffer. It is used for
// rendering part thumbnails without a GPU.
package raster

import (
	"image"
	"image/color"
	"image/draw"

	"cogentcore.org/brickview/math32"
	xdraw "golang.org/x/image/draw"
)

// Surface is an offscreen render target: a color image and a depth buffer
// of the same size.
type Surface struct {

	// Image is the color buffer.
	Image *image.NRGBA

	// Background is the color the surface is cleared to.
	// It is fully transparent by default.
	Background color.NRGBA

	// depth holds the NDC depth of the nearest opaque fragment per pixel.
	depth []float32
}

// NewSurface returns a new cleared surface of the given size.
func NewSurface(width, height int) *Surface {
	sf := &Surface{}
	sf.Resize(width, height)
	return sf
}

// Resize sets the size of the surface and clears it.
// It only reallocates when the size changes.
func (sf *Surface) Resize(width, height int) {
	width, height = max(width, 1), max(height, 1)
	if sf.Image == nil || sf.Image.Bounds().Dx() != width || sf.Image.Bounds().Dy() != height {
		sf.Image = image.NewNRGBA(image.Rect(0, 0, width, height))
		sf.depth = make([]float32, width*height)
	}
	sf.Clear()
}

// Size returns the size of the surface.
func (sf *Surface) Size() image.Point {
	return sf.Image.Bounds().Size()
}

// Clear fills the color buffer with the background and resets the depth buffer.
func (sf *Surface) Clear() {
	draw.Draw(sf.Image, sf.Image.Bounds(), image.NewUniform(sf.Background), image.Point{}, draw.Src)
	for i := range sf.depth {
		sf.depth[i] = math32.Infinity
	}
}

// Snapshot returns a copy of the color buffer.
func (sf *Surface) Snapshot() *image.NRGBA {
	cp := image.NewNRGBA(sf.Image.Bounds())
	copy(cp.Pix, sf.Image.Pix)
	return cp
}

// Resample returns the given image scaled to the given size
// with a Catmull-Rom filter.
func Resample(src image.Image, width, height int) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}
