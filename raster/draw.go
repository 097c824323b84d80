// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package raster

import (
	"image/color"

	"cogentcore.org/brickview/math32"
	"cogentcore.org/brickview/scene"
	"cogentcore.org/brickview/tree"
)

// DefaultLight is the default direction toward the light for lit materials.
var DefaultLight = math32.Vec3(0.5, 1, 0.75).Normal()

// screenVertex is a vertex transformed to screen space.
type screenVertex struct {
	X, Y float32 // pixel coordinates
	Z    float32 // NDC depth
}

// edge returns the signed area of the parallelogram spanned by a->b and a->p.
func edge(a, b screenVertex, px, py float32) float32 {
	return (b.X-a.X)*(py-a.Y) - (b.Y-a.Y)*(px-a.X)
}

// DrawTriangle rasterizes a triangle given in world coordinates, projected
// with the given view-projection matrix. Both windings are drawn.
// Opaque colors are depth tested and write depth; translucent colors
// (alpha < 255) are depth tested and blended over without writing depth.
// Triangles with a vertex behind the camera are skipped.
func (sf *Surface) DrawTriangle(vp *math32.Matrix4, a, b, c math32.Vector3, clr color.NRGBA) {
	sz := sf.Size()
	w, h := float32(sz.X), float32(sz.Y)
	var sv [3]screenVertex
	for i, p := range [3]math32.Vector3{a, b, c} {
		cp := math32.Vector4FromVector3(p, 1).MulMatrix4(vp)
		if cp.W <= 0 {
			return
		}
		n := cp.PerspDiv()
		sv[i] = screenVertex{X: (n.X + 1) * 0.5 * w, Y: (1 - n.Y) * 0.5 * h, Z: n.Z}
	}
	area := edge(sv[0], sv[1], sv[2].X, sv[2].Y)
	if area == 0 {
		return
	}

	minX := max(0, int(math32.Floor(math32.Min3(sv[0].X, sv[1].X, sv[2].X))))
	maxX := min(sz.X-1, int(math32.Ceil(math32.Max3(sv[0].X, sv[1].X, sv[2].X))))
	minY := max(0, int(math32.Floor(math32.Min3(sv[0].Y, sv[1].Y, sv[2].Y))))
	maxY := min(sz.Y-1, int(math32.Ceil(math32.Max3(sv[0].Y, sv[1].Y, sv[2].Y))))

	opaque := clr.A == 255
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			px, py := float32(x)+0.5, float32(y)+0.5
			w0 := edge(sv[1], sv[2], px, py) / area
			w1 := edge(sv[2], sv[0], px, py) / area
			w2 := edge(sv[0], sv[1], px, py) / area
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}
			z := w0*sv[0].Z + w1*sv[1].Z + w2*sv[2].Z
			if z < -1 || z > 1 {
				continue
			}
			di := y*sz.X + x
			if z >= sf.depth[di] {
				continue
			}
			if opaque {
				sf.depth[di] = z
				sf.Image.SetNRGBA(x, y, clr)
				continue
			}
			sf.Image.SetNRGBA(x, y, over(clr, sf.Image.NRGBAAt(x, y)))
		}
	}
}

// over composites the source color over the destination color.
func over(src, dst color.NRGBA) color.NRGBA {
	sa := float32(src.A) / 255
	da := float32(dst.A) / 255
	oa := sa + da*(1-sa)
	if oa == 0 {
		return color.NRGBA{}
	}
	mix := func(s, d uint8) uint8 {
		return uint8(math32.Clamp((float32(s)*sa+float32(d)*da*(1-sa))/oa, 0, 255) + 0.5)
	}
	return color.NRGBA{mix(src.R, dst.R), mix(src.G, dst.G), mix(src.B, dst.B), uint8(oa*255 + 0.5)}
}

// shade returns the color of a triangle with the given world-space normal
// drawn with the given material.
func shade(mt *scene.Material, normal, light math32.Vector3) color.NRGBA {
	k := float32(1)
	if !mt.Unlit {
		k = 0.45 + 0.55*math32.Abs(normal.Dot(light))
	}
	alpha := uint8(255)
	if mt.IsTransparent() {
		alpha = uint8(math32.Clamp(mt.Opacity, 0, 1)*255 + 0.5)
	}
	return color.NRGBA{
		R: uint8(float32(mt.Color.R)*k + 0.5),
		G: uint8(float32(mt.Color.G)*k + 0.5),
		B: uint8(float32(mt.Color.B)*k + 0.5),
		A: alpha,
	}
}

var defaultMaterial = scene.NewMaterial(color.RGBA{128, 128, 128, 255})

// DrawMesh draws all of the triangles of the given mesh, transformed by
// its [scene.Pose.WorldMatrix], using its first material.
func (sf *Surface) DrawMesh(vp *math32.Matrix4, ms *scene.Mesh, light math32.Vector3) {
	gm := ms.Geometry
	if gm == nil {
		return
	}
	mt := ms.Material()
	if mt == nil {
		mt = defaultMaterial
	}
	world := &ms.Pose.WorldMatrix
	for i := range gm.NumTriangles() {
		a, b, c := gm.Triangle(i)
		a, b, c = a.MulMatrix4(world), b.MulMatrix4(world), c.MulMatrix4(world)
		sf.DrawTriangle(vp, a, b, c, shade(mt, math32.Normal(a, b, c), light))
	}
}

// Render draws all of the effectively visible meshes at or below the given
// root with the given view-projection matrix: first the opaque ones, then
// the translucent ones on top. It returns the number of meshes drawn.
func (sf *Surface) Render(root scene.Node, vp *math32.Matrix4, light math32.Vector3) int {
	scene.UpdateWorldMatrices(root)
	var opaque, translucent []*scene.Mesh
	root.AsTree().WalkDown(func(n tree.Node) bool {
		sn, nb := scene.AsNode(n)
		if nb == nil || !nb.Visible {
			return tree.Break
		}
		ms := sn.AsMesh()
		if ms == nil {
			return tree.Continue
		}
		if mt := ms.Material(); mt != nil && mt.IsTransparent() {
			translucent = append(translucent, ms)
		} else {
			opaque = append(opaque, ms)
		}
		return tree.Continue
	})
	for _, ms := range opaque {
		sf.DrawMesh(vp, ms, light)
	}
	for _, ms := range translucent {
		sf.DrawMesh(vp, ms, light)
	}
	return len(opaque) + len(translucent)
}
