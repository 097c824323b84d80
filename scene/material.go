// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"fmt"
	"image/color"
)

// Material describes the surface properties of a mesh that the step engine
// works with: the main color, the opacity used for ghosting, and whether
// the surface is lit or drawn flat.
type Material struct {

	// Color is the main color of the surface. Its alpha component is ignored;
	// use Opacity instead.
	Color color.RGBA

	// Opacity is the overall opacity of the surface, from 0 to 1.
	Opacity float32

	// Transparent is whether the surface needs to be drawn with blending.
	Transparent bool

	// Code is the color code assigned by the model provider, if any.
	Code string

	// Unlit indicates a flat surface that ignores lighting,
	// as used for the instruction manual look.
	Unlit bool
}

// NewMaterial returns a new opaque lit material with the given color.
func NewMaterial(clr color.RGBA) *Material {
	mt := &Material{}
	mt.Defaults()
	mt.Color = clr
	return mt
}

// Defaults sets default surface parameters
func (mt *Material) Defaults() {
	mt.Color = color.RGBA{128, 128, 128, 255}
	mt.Opacity = 1
	mt.Transparent = false
}

// Clone returns a copy of the material that shares nothing with it.
func (mt *Material) Clone() *Material {
	cp := *mt
	return &cp
}

// SetCode sets the [Material.Code].
func (mt *Material) SetCode(code string) *Material {
	mt.Code = code
	return mt
}

// SetOpacity sets the [Material.Opacity] and updates [Material.Transparent].
func (mt *Material) SetOpacity(opacity float32) *Material {
	mt.Opacity = opacity
	mt.Transparent = opacity < 1
	return mt
}

// Hex returns the color as a lowercase "#rrggbb" string.
func (mt *Material) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", mt.Color.R, mt.Color.G, mt.Color.B)
}

// IsTransparent returns true if the material has to be blended.
func (mt *Material) IsTransparent() bool {
	return mt.Transparent || mt.Opacity < 1
}
