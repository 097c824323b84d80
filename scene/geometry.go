// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"cogentcore.org/brickview/math32"
)

// Geometry is an indexed triangle list in local coordinates.
// It is shared between meshes and must not be modified after it is
// created.
type Geometry struct {

	// Positions are the vertex positions.
	Positions []math32.Vector3

	// Indices are the triangle vertex indices, three per triangle.
	// If empty, Positions are taken as consecutive triangles.
	Indices []uint32

	// bbox is the bounding box of Positions
	bbox math32.Box3
}

// NewGeometry returns a new geometry from the given positions and indices.
func NewGeometry(positions []math32.Vector3, indices []uint32) *Geometry {
	gm := &Geometry{Positions: positions, Indices: indices}
	gm.bbox.SetEmpty()
	for _, p := range positions {
		gm.bbox.ExpandByPoint(p)
	}
	return gm
}

// BBox returns the local bounding box. It is empty if there are no positions.
func (gm *Geometry) BBox() math32.Box3 {
	if gm == nil {
		return math32.B3Empty()
	}
	return gm.bbox
}

// NumTriangles returns the number of triangles.
func (gm *Geometry) NumTriangles() int {
	if gm == nil {
		return 0
	}
	if len(gm.Indices) > 0 {
		return len(gm.Indices) / 3
	}
	return len(gm.Positions) / 3
}

// Triangle returns the local positions of the i-th triangle.
func (gm *Geometry) Triangle(i int) (a, b, c math32.Vector3) {
	if len(gm.Indices) > 0 {
		return gm.Positions[gm.Indices[3*i]], gm.Positions[gm.Indices[3*i+1]], gm.Positions[gm.Indices[3*i+2]]
	}
	return gm.Positions[3*i], gm.Positions[3*i+1], gm.Positions[3*i+2]
}

// NewBox returns a box geometry with the given size, centered at the origin,
// with counter-clockwise outward facing triangles.
func NewBox(width, height, depth float32) *Geometry {
	hw, hh, hd := width/2, height/2, depth/2
	pos := []math32.Vector3{
		{X: -hw, Y: -hh, Z: -hd}, {X: hw, Y: -hh, Z: -hd}, {X: hw, Y: hh, Z: -hd}, {X: -hw, Y: hh, Z: -hd},
		{X: -hw, Y: -hh, Z: hd}, {X: hw, Y: -hh, Z: hd}, {X: hw, Y: hh, Z: hd}, {X: -hw, Y: hh, Z: hd},
	}
	idx := []uint32{
		4, 5, 6, 4, 6, 7, // +z
		1, 0, 3, 1, 3, 2, // -z
		5, 1, 2, 5, 2, 6, // +x
		0, 4, 7, 0, 7, 3, // -x
		7, 6, 2, 7, 2, 3, // +y
		0, 1, 5, 0, 5, 4, // -y
	}
	return NewGeometry(pos, idx)
}
