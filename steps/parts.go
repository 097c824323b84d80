// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package steps

import (
	"cmp"
	"path"
	"slices"
	"strings"

	"cogentcore.org/brickview/scene"
	"cogentcore.org/brickview/tree"
)

const (
	// FallbackColorHex is the color of parts that have no material.
	FallbackColorHex = "#808080"

	// FallbackColorCode is the color code of parts that have no material.
	FallbackColorCode = "808080"
)

// Part is a distinct part introduced at a building step, in one color.
type Part struct {

	// PartID is the file name of the part without directories and extension.
	PartID string

	// ColorCode identifies the color; it is the provider's color code if
	// there is one, and otherwise the six hex digits of the color.
	ColorCode string

	// ColorHex is the color as "#rrggbb".
	ColorHex string

	// Quantity is the number of instances of the part in this color.
	Quantity int

	// Node is the first instance of the part that was found.
	Node scene.Node
}

// Key returns the "partId:colorCode" key that identifies the part
// and its color, as used for thumbnails.
func (p *Part) Key() string {
	return p.PartID + ":" + p.ColorCode
}

// IsPartFile returns whether the given file identity denotes a part
// definition (a ".dat" file) as opposed to a sub-model (".ldr", ".mpd")
// or nothing at all.
func IsPartFile(fileName string) bool {
	return strings.EqualFold(path.Ext(normalizePath(fileName)), ".dat")
}

// PartID returns the given file identity without its directories and extension.
func PartID(fileName string) string {
	base := path.Base(normalizePath(fileName))
	if base == "." || base == "/" {
		return ""
	}
	return strings.TrimSuffix(base, path.Ext(base))
}

func normalizePath(fileName string) string {
	return strings.ReplaceAll(fileName, `\`, "/")
}

// Parts returns the distinct parts that are introduced at the given step,
// counted by part and color. Only top-level parts are counted: a part node
// whose parent is also a part is sub-geometry of that part. The result is
// sorted by quantity (descending), then part ID, then color code.
func Parts(root scene.Node, step int) []Part {
	var parts []Part
	index := map[string]int{}
	root.AsTree().WalkDown(func(n tree.Node) bool {
		sn, nb := scene.AsNode(n)
		if nb == nil {
			return tree.Break
		}
		st, ok := nb.BuildStep()
		if !ok || st != step || !IsPartFile(nb.FileName) {
			return tree.Continue
		}
		if _, pb := scene.AsNode(nb.Parent); pb != nil && IsPartFile(pb.FileName) {
			return tree.Continue
		}
		p := Part{PartID: PartID(nb.FileName), Quantity: 1, Node: sn}
		p.ColorHex, p.ColorCode = partColor(sn)
		key := p.Key()
		if i, has := index[key]; has {
			parts[i].Quantity++
			return tree.Continue
		}
		index[key] = len(parts)
		parts = append(parts, p)
		return tree.Continue
	})
	slices.SortStableFunc(parts, func(a, b Part) int {
		return cmp.Or(
			cmp.Compare(b.Quantity, a.Quantity),
			cmp.Compare(a.PartID, b.PartID),
			cmp.Compare(a.ColorCode, b.ColorCode),
		)
	})
	return parts
}

// partColor returns the color of the first mesh material at or below the
// given node, as a hex string and a color code.
func partColor(n scene.Node) (hex, code string) {
	for _, ms := range scene.Meshes(n) {
		mt := ms.Material()
		if mt == nil {
			continue
		}
		hex = mt.Hex()
		code = mt.Code
		if code == "" {
			code = hex[1:]
		}
		return
	}
	return FallbackColorHex, FallbackColorCode
}
