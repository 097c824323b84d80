// Copyright (c) 2018, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tree

import (
	"reflect"
	"strconv"
	"strings"
	"unicode"
)

// admin.go has infrastructure code outside of the Node interface.

// New returns a new node of the given type with the given optional parent.
// If the name is unspecified, it defaults to the ID (kebab-case) name of
// the type, plus the number of children ever added to the parent.
func New[T NodeValue](parent ...Node) *T {
	n := new(T)
	ni := any(n).(Node)
	InitNode(ni)
	if len(parent) == 0 || parent[0] == nil {
		return n
	}
	p := parent[0].AsTree()
	p.Children = append(p.Children, ni)
	SetParent(ni, p.This)
	return n
}

// InitNode initializes the node by setting [NodeBase.This]
// and calling [Node.Init]. It only does so once per node.
func InitNode(n Node) {
	nb := n.AsTree()
	if nb.This != n {
		nb.This = n
		nb.This.Init()
	}
}

// SetParent sets the parent of the given node to the given parent node.
// This is only for nodes with no existing parent; see [MoveToParent] to
// move nodes that already have a parent. It does not add the node to the
// parent's list of children; see [NodeBase.AddChild] for a version that does.
func SetParent(child Node, parent Node) {
	nb := child.AsTree()
	nb.Parent = parent
	if parent != nil {
		pn := parent.AsTree()
		pn.numLifetimeChildren++
		if nb.Name == "" {
			nb.Name = typeIDName(child) + "-" + strconv.FormatUint(pn.numLifetimeChildren-1, 10)
		}
	}
	child.OnAdd()
}

// MoveToParent removes the given node from its current parent
// and adds it as a child of the given new parent.
// The old and new parents can be in different trees (or not).
func MoveToParent(child Node, parent Node) {
	oldParent := child.AsTree().Parent
	if oldParent != nil {
		op := oldParent.AsTree()
		if idx := IndexOf(op.Children, child); idx >= 0 {
			op.Children = append(op.Children[:idx], op.Children[idx+1:]...)
		}
		child.AsTree().Parent = nil
	}
	parent.AsTree().AddChild(child)
}

// IsRoot tests whether the given node is the root node in its tree.
func IsRoot(n Node) bool {
	return n.AsTree().This == nil || n.AsTree().Parent == nil || n.AsTree().Parent.AsTree().This == nil
}

// Root returns the root node of the given node's tree.
func Root(n Node) Node {
	if IsRoot(n) {
		return n.AsTree().This
	}
	return Root(n.AsTree().Parent)
}

// IsNil returns whether the given node is nil, including
// a nil pointer of a concrete node type.
func IsNil(n Node) bool {
	if n == nil {
		return true
	}
	v := reflect.ValueOf(n)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

// IndexOf returns the index of the given node in the given slice,
// or -1 if it is not found.
func IndexOf(slice []Node, child Node) int {
	for i, k := range slice {
		if k == child {
			return i
		}
	}
	return -1
}

// IndexByName returns the index of the first element in the given slice that
// has the given name, or -1 if none is found.
func IndexByName(slice []Node, name string) int {
	for i, k := range slice {
		if k.AsTree().Name == name {
			return i
		}
	}
	return -1
}

// typeIDName returns the kebab-case name of the
// underlying struct type of the given node.
func typeIDName(n Node) string {
	name := reflect.TypeOf(n).Elem().Name()
	var b strings.Builder
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('-')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}
