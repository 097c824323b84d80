// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"cogentcore.org/brickview/math32"
	"cogentcore.org/brickview/tree"
)

// BBox returns the world-space bounding box of all of the mesh geometry
// at or below the given node, regardless of visibility.
// It is empty if there is no geometry.
func BBox(root Node) math32.Box3 {
	return meshBBox(root, false)
}

// VisibleBBox returns the world-space bounding box of the mesh geometry
// at or below the given node that is effectively visible, meaning that the
// mesh and all of its ancestors up to the root are visible.
// It is empty if nothing is visible.
func VisibleBBox(root Node) math32.Box3 {
	return meshBBox(root, true)
}

func meshBBox(root Node, visibleOnly bool) math32.Box3 {
	bb := math32.B3Empty()
	UpdateWorldMatrices(root)
	root.AsTree().WalkDown(func(k tree.Node) bool {
		sn, nb := AsNode(k)
		if nb == nil {
			return tree.Break
		}
		if visibleOnly && !nb.Visible {
			return tree.Break
		}
		ms := sn.AsMesh()
		if ms == nil {
			return tree.Continue
		}
		lb := ms.Geometry.BBox()
		if lb.IsEmpty() {
			return tree.Continue
		}
		bb.ExpandByBox(lb.MulMatrix4(&nb.Pose.WorldMatrix))
		return tree.Continue
	})
	return bb
}

// CenterModel moves the given root node so that the center of its
// bounding box is at the origin of its parent space.
func CenterModel(root Node) {
	bb := BBox(root)
	if bb.IsEmpty() {
		return
	}
	root.AsNode().Pose.Pos.SetSub(bb.Center())
}

// Radius returns half of the diagonal of the bounding box of the
// given node, or 0 if there is no geometry.
func Radius(root Node) float32 {
	bb := BBox(root)
	if bb.IsEmpty() {
		return 0
	}
	return bb.Size().Length() / 2
}

// Meshes returns all of the meshes at or below the given node,
// in depth-first order.
func Meshes(root Node) []*Mesh {
	var res []*Mesh
	root.AsTree().WalkDown(func(k tree.Node) bool {
		sn, _ := AsNode(k)
		if sn == nil {
			return tree.Break
		}
		if ms := sn.AsMesh(); ms != nil {
			res = append(res, ms)
		}
		return tree.Continue
	})
	return res
}

// FlattenMaterials converts the lit materials of all of the meshes at or
// below the given node to flat unlit ones. Materials are cloned per mesh
// first, so materials shared with other models are never changed.
func FlattenMaterials(root Node) {
	for _, ms := range Meshes(root) {
		lit := false
		for _, mt := range ms.Materials {
			if mt != nil && !mt.Unlit {
				lit = true
				break
			}
		}
		if !lit {
			continue
		}
		ms.OwnMaterials()
		for _, mt := range ms.Materials {
			if mt != nil {
				mt.Unlit = true
			}
		}
	}
}
