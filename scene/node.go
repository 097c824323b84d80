// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scene provides the annotated 3D scene graph that the
// step engine works on: groups, meshes with shared geometry and
// per-mesh materials, and bounding volume helpers.
package scene

import (
	"cogentcore.org/brickview/math32"
	"cogentcore.org/brickview/tree"
)

// Node is the common interface for all scene nodes.
type Node interface {
	tree.Node

	// AsNode returns the [NodeBase] of this node.
	AsNode() *NodeBase

	// AsMesh returns the node as a [Mesh], or nil if it is not one.
	AsMesh() *Mesh
}

// NodeBase is the basic scene node type, which has a [Pose],
// a visibility flag, the identity of the file it was loaded from,
// and an optional build step. All scene node types embed it.
type NodeBase struct {
	tree.NodeBase

	// Pose is the complete specification of position and orientation.
	Pose Pose `set:"-"`

	// Visible is whether the node and its children are drawn.
	Visible bool

	// FileName is the identity of the file that defined this node,
	// for example a part file like "3001.dat" or a sub-model "wing.ldr".
	FileName string

	// buildStep is the 1-based step at which this node is introduced.
	buildStep int

	// hasBuildStep is whether buildStep has been set.
	hasBuildStep bool
}

func (nb *NodeBase) AsNode() *NodeBase {
	return nb
}

func (nb *NodeBase) AsMesh() *Mesh {
	return nil
}

func (nb *NodeBase) Init() {
	nb.Defaults()
}

// Defaults sets default initial settings for node params.
// This is called automatically in Init.
func (nb *NodeBase) Defaults() {
	nb.Visible = true
	nb.Pose.Defaults()
}

// SetBuildStep sets the build step of the node. It should only be set
// by the code that constructs the graph.
func (nb *NodeBase) SetBuildStep(step int) *NodeBase {
	nb.buildStep = step
	nb.hasBuildStep = true
	return nb
}

// BuildStep returns the build step of the node and whether it has one.
func (nb *NodeBase) BuildStep() (int, bool) {
	return nb.buildStep, nb.hasBuildStep
}

// SetPos sets the [Pose.Pos] position of the node.
func (nb *NodeBase) SetPos(x, y, z float32) *NodeBase {
	nb.Pose.Pos.Set(x, y, z)
	return nb
}

// SetScale sets the [Pose.Scale] scale of the node.
func (nb *NodeBase) SetScale(x, y, z float32) *NodeBase {
	nb.Pose.Scale.Set(x, y, z)
	return nb
}

// SetAxisRotation sets the [Pose.Quat] rotation of the node,
// from local axis and angle in degrees.
func (nb *NodeBase) SetAxisRotation(x, y, z, angle float32) *NodeBase {
	nb.Pose.SetAxisRotation(x, y, z, angle)
	return nb
}

// CopyFieldsFrom copies the exported fields through [tree.NodeBase.CopyFieldsFrom]
// and then the build step, which is not exported.
func (nb *NodeBase) CopyFieldsFrom(from tree.Node) {
	nb.NodeBase.CopyFieldsFrom(from)
	_, fb := AsNode(from)
	if fb == nil {
		return
	}
	nb.buildStep = fb.buildStep
	nb.hasBuildStep = fb.hasBuildStep
}

// AsNode converts the given tree node to a [Node] and [NodeBase],
// returning nil if that is not possible.
func AsNode(n tree.Node) (Node, *NodeBase) {
	if n == nil {
		return nil, nil
	}
	sn, ok := n.(Node)
	if !ok {
		return nil, nil
	}
	return sn, sn.AsNode()
}

// WorldMatrix returns the accumulated transform of the given node,
// computed from its own pose and the poses of all of its ancestors.
func WorldMatrix(n Node) math32.Matrix4 {
	var chain []*NodeBase
	n.AsTree().WalkUp(func(k tree.Node) bool {
		_, kb := AsNode(k)
		if kb == nil {
			return tree.Break
		}
		chain = append(chain, kb)
		return tree.Continue
	})
	world := math32.Identity4()
	for i := len(chain) - 1; i >= 0; i-- {
		chain[i].Pose.UpdateMatrix()
		world = world.Mul(&chain[i].Pose.Matrix)
	}
	return *world
}

// UpdateWorldMatrices updates [Pose.Matrix] and [Pose.WorldMatrix] for
// the given node and all of its descendants. The root is treated
// as having an identity parent unless it has a scene parent of its own.
func UpdateWorldMatrices(root Node) {
	var parWorld *math32.Matrix4
	if _, pb := AsNode(root.AsTree().Parent); pb != nil {
		pw := WorldMatrix(pb.This.(Node))
		parWorld = &pw
	}
	rb := root.AsNode()
	rb.Pose.UpdateMatrix()
	rb.Pose.UpdateWorldMatrix(parWorld)
	root.AsTree().WalkDown(func(k tree.Node) bool {
		if k == root.AsTree().This {
			return tree.Continue
		}
		_, kb := AsNode(k)
		if kb == nil {
			return tree.Break
		}
		_, pb := AsNode(kb.Parent)
		kb.Pose.UpdateMatrix()
		kb.Pose.UpdateWorldMatrix(&pb.Pose.WorldMatrix)
		return tree.Continue
	})
}
