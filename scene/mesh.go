// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"slices"

	"cogentcore.org/brickview/tree"
)

// Mesh is a leaf node that draws a shared [Geometry] with one or more
// materials. The materials start out shared with other meshes (as handed
// in by the model provider) and are cloned the first time they need to be
// modified, see [Mesh.OwnMaterials].
type Mesh struct {
	NodeBase

	// Geometry is the shared, immutable shape of the mesh.
	Geometry *Geometry `copier:"-"`

	// Materials are the materials of the mesh, usually just one.
	Materials []*Material `copier:"-"`

	// MaterialsOwned is set once the materials have been cloned
	// for this mesh alone. It is never reset.
	MaterialsOwned bool `copier:"-"`

	// originalOpacity is the opacity of each material at the time
	// they were cloned.
	originalOpacity []float32
}

func (ms *Mesh) AsMesh() *Mesh {
	return ms
}

// SetGeometry sets the [Mesh.Geometry].
func (ms *Mesh) SetGeometry(gm *Geometry) *Mesh {
	ms.Geometry = gm
	return ms
}

// SetMaterials sets the [Mesh.Materials]. The materials are assumed to be
// shared, so any previous ownership is discarded.
func (ms *Mesh) SetMaterials(mats ...*Material) *Mesh {
	ms.Materials = mats
	ms.MaterialsOwned = false
	ms.originalOpacity = nil
	return ms
}

// Material returns the first material, or nil if there is none.
func (ms *Mesh) Material() *Material {
	if len(ms.Materials) == 0 {
		return nil
	}
	return ms.Materials[0]
}

// OwnMaterials clones the materials of the mesh so that they are no longer
// shared, and snapshots their current opacity. It only does so the first
// time it is called, and returns whether it cloned.
func (ms *Mesh) OwnMaterials() bool {
	if ms.MaterialsOwned {
		return false
	}
	ms.originalOpacity = make([]float32, len(ms.Materials))
	for i, mt := range ms.Materials {
		if mt == nil {
			ms.originalOpacity[i] = 1
			continue
		}
		ms.originalOpacity[i] = mt.Opacity
		ms.Materials[i] = mt.Clone()
	}
	ms.MaterialsOwned = true
	return true
}

// OriginalOpacity returns the opacity that the i-th material had when the
// materials were cloned, or 1 if it is not known.
func (ms *Mesh) OriginalOpacity(i int) float32 {
	if i < 0 || i >= len(ms.originalOpacity) {
		return 1
	}
	return ms.originalOpacity[i]
}

// CopyFieldsFrom shares the geometry of the source mesh and deep copies its
// materials, so that changes to the copy never affect the source.
func (ms *Mesh) CopyFieldsFrom(from tree.Node) {
	ms.NodeBase.CopyFieldsFrom(from)
	fm, ok := from.(*Mesh)
	if !ok {
		return
	}
	ms.Geometry = fm.Geometry
	ms.Materials = make([]*Material, len(fm.Materials))
	for i, mt := range fm.Materials {
		if mt != nil {
			ms.Materials[i] = mt.Clone()
		}
	}
	ms.MaterialsOwned = fm.MaterialsOwned
	ms.originalOpacity = slices.Clone(fm.originalOpacity)
}
