// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package steps computes which parts of a model are shown at a given
// building step, ghosts the parts of earlier steps, and lists the
// parts that are introduced at a step.
package steps

import (
	"cogentcore.org/brickview/scene"
	"cogentcore.org/brickview/tree"
)

// GhostOpacity is the opacity of parts from earlier steps when ghosting is on.
const GhostOpacity float32 = 0.3

// SetVisibility sets every node that has a build step to be visible
// if and only if its step is at or before the given current step.
// Nodes without a build step are left as they are.
func SetVisibility(root scene.Node, currentStep int) {
	root.AsTree().WalkDown(func(n tree.Node) bool {
		_, nb := scene.AsNode(n)
		if nb == nil {
			return tree.Break
		}
		if st, ok := nb.BuildStep(); ok {
			nb.Visible = st <= currentStep
		}
		return tree.Continue
	})
}

// EffectiveStep returns the build step of the given node or of its nearest
// ancestor that has one, and false if none of them do.
func EffectiveStep(n scene.Node) (int, bool) {
	step, found := 0, false
	n.AsTree().WalkUp(func(k tree.Node) bool {
		_, kb := scene.AsNode(k)
		if kb == nil {
			return tree.Break
		}
		if st, ok := kb.BuildStep(); ok {
			step, found = st, true
			return tree.Break
		}
		return tree.Continue
	})
	return step, found
}

// ApplyGhosting updates visibility as in [SetVisibility] and then sets the
// opacity of every mesh that belongs to the current or an earlier step:
// with ghost on, meshes from earlier steps are drawn at [GhostOpacity],
// and all others are restored to their original opacity.
// Meshes of the current step are never ghosted. Materials are cloned the
// first time a mesh is touched, so materials shared between meshes are
// never modified. Calling it again with the same arguments has no effect.
func ApplyGhosting(root scene.Node, currentStep int, ghost bool) {
	ApplyGhostingOpacity(root, currentStep, ghost, GhostOpacity)
}

// ApplyGhostingOpacity is [ApplyGhosting] with the given ghost opacity.
func ApplyGhostingOpacity(root scene.Node, currentStep int, ghost bool, opacity float32) {
	ApplyGhostingSince(root, currentStep, currentStep, ghost, opacity)
}

// ApplyGhostingSince is like [ApplyGhostingOpacity], except that the meshes
// of all of the steps from firstNew through the current step are shown at
// full opacity, and only those before firstNew are ghosted. This highlights
// everything that was added when jumping ahead several steps at once.
// A firstNew after the current step is treated as the current step.
func ApplyGhostingSince(root scene.Node, firstNew, currentStep int, ghost bool, opacity float32) {
	firstNew = min(firstNew, currentStep)
	SetVisibility(root, currentStep)
	for _, ms := range scene.Meshes(root) {
		step, ok := EffectiveStep(ms)
		if !ok || step > currentStep {
			continue
		}
		ms.OwnMaterials()
		ghosted := ghost && step < firstNew
		for i, mt := range ms.Materials {
			if mt == nil {
				continue
			}
			if ghosted {
				mt.Opacity = opacity
				mt.Transparent = true
				continue
			}
			mt.Opacity = ms.OriginalOpacity(i)
			mt.Transparent = mt.Opacity < 1
		}
	}
}

// NumSteps returns the largest build step found at or below the given
// node, or 0 if there are none.
func NumSteps(root scene.Node) int {
	mx := 0
	root.AsTree().WalkDown(func(n tree.Node) bool {
		_, nb := scene.AsNode(n)
		if nb == nil {
			return tree.Break
		}
		if st, ok := nb.BuildStep(); ok && st > mx {
			mx = st
		}
		return tree.Continue
	})
	return mx
}
