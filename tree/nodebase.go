// Copyright (c) 2018, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tree

import (
	"log/slog"
	"reflect"
	"slices"
	"strings"

	"github.com/jinzhu/copier"
)

// NodeBase implements the [Node] interface and provides the core functionality
// for the tree system. You must use NodeBase as an embedded struct
// in all higher-level tree types.
//
// All nodes must be properly initialized by using one of [New],
// [NodeBase.AddChild], [NodeBase.InsertChild] or [NodeBase.Clone].
// This ensures that the [NodeBase.This] field is set correctly and the [Node.Init]
// method is called.
type NodeBase struct {

	// Name is the name of this node, which is typically unique relative to other children of
	// the same parent. It can be used for finding nodes. If not otherwise set,
	// it defaults to the ID (kebab-case) name of the node type combined with the total number
	// of children that have ever been added to the node's parent.
	Name string `copier:"-"`

	// This is the value of this Node as its true underlying type. This allows methods
	// defined on base types to call methods defined on higher-level types.
	// It is set to nil when the node is destroyed.
	This Node `copier:"-" json:"-" xml:"-"`

	// Parent is the parent of this node, which is set automatically when this node is
	// added as a child of a parent. To change the parent of a node, use [MoveToParent];
	// you should typically not set this field directly.
	Parent Node `copier:"-" json:"-" xml:"-"`

	// Children is the list of children of this node. All of them are set to have this node
	// as their parent.
	Children []Node `copier:"-" json:",omitempty"`

	// numLifetimeChildren is the number of children that have ever been added to this
	// node, which is used for automatic unique naming.
	numLifetimeChildren uint64
}

// String implements the [fmt.Stringer] interface by returning the path of the node.
func (n *NodeBase) String() string {
	if n == nil || n.This == nil {
		return "nil"
	}
	return n.Path()
}

// AsTree returns the [NodeBase] for this Node.
func (n *NodeBase) AsTree() *NodeBase {
	return n
}

// SetName sets the name of this node.
func (n *NodeBase) SetName(name string) *NodeBase {
	n.Name = name
	return n
}

// NewInstance returns a new instance of this node type.
func (n *NodeBase) NewInstance() Node {
	return reflect.New(reflect.TypeOf(n.This).Elem()).Interface().(Node)
}

// Parents:

// IndexInParent returns our index within our parent node.
// It returns -1 if we don't have a parent.
func (n *NodeBase) IndexInParent() int {
	if n.Parent == nil {
		return -1
	}
	return IndexOf(n.Parent.AsTree().Children, n.This)
}

// Children:

// HasChildren returns whether this node has any children.
func (n *NodeBase) HasChildren() bool {
	return len(n.Children) > 0
}

// NumChildren returns the number of children this node has.
func (n *NodeBase) NumChildren() int {
	return len(n.Children)
}

// Child returns the child of this node at the given index and returns nil if
// the index is out of range.
func (n *NodeBase) Child(i int) Node {
	if i >= len(n.Children) || i < 0 {
		return nil
	}
	return n.Children[i]
}

// ChildByName returns the first child that has the given name,
// and nil if no such element is found.
func (n *NodeBase) ChildByName(name string) Node {
	idx := IndexByName(n.Children, name)
	if idx >= 0 {
		return n.Children[idx]
	}
	return nil
}

// Paths:

// Path returns the path to this node from the tree root,
// using [Node.Name]s separated by / delimeters.
func (n *NodeBase) Path() string {
	if n.Parent != nil {
		return n.Parent.AsTree().Path() + "/" + escapePathName(n.Name)
	}
	return "/" + escapePathName(n.Name)
}

func escapePathName(name string) string {
	return strings.ReplaceAll(name, "/", `\\`)
}

// Adding and Inserting Children:

// AddChild adds given child at end of children list.
// The kid node is assumed to not be on another tree (see [MoveToParent])
// and the existing name should be unique among children.
func (n *NodeBase) AddChild(kid Node) {
	InitNode(kid)
	n.Children = append(n.Children, kid)
	SetParent(kid, n.This)
}

// InsertChild adds given child at position in children list.
// The kid node is assumed to not be on another tree (see [MoveToParent])
// and the existing name should be unique among children.
func (n *NodeBase) InsertChild(kid Node, index int) {
	InitNode(kid)
	n.Children = slices.Insert(n.Children, index, kid)
	SetParent(kid, n.This)
}

// Deleting Children:

// DeleteChildAt deletes child at the given index. It returns false
// if there is no child at the given index.
func (n *NodeBase) DeleteChildAt(index int) bool {
	child := n.Child(index)
	if child == nil {
		return false
	}
	n.Children = slices.Delete(n.Children, index, index+1)
	child.Destroy()
	return true
}

// DeleteChild deletes the given child node, returning false if
// it can not find it.
func (n *NodeBase) DeleteChild(child Node) bool {
	if child == nil {
		return false
	}
	idx := IndexOf(n.Children, child)
	if idx < 0 {
		return false
	}
	return n.DeleteChildAt(idx)
}

// DeleteChildren deletes all children nodes.
func (n *NodeBase) DeleteChildren() {
	kids := n.Children
	n.Children = nil
	for _, kid := range kids {
		if kid == nil {
			continue
		}
		kid.Destroy()
	}
}

// Destroy recursively deletes and destroys the node, all of its children,
// and all of its children's children, etc.
func (n *NodeBase) Destroy() {
	if n.This == nil { // already destroyed
		return
	}
	n.DeleteChildren()
	n.This = nil
}

// Tree Walking:

const (
	// Continue = true can be returned from tree iteration functions to continue
	// processing down the tree, as compared to Break = false which stops this branch.
	Continue = true

	// Break = false can be returned from tree iteration functions to stop processing
	// this branch of the tree.
	Break = false
)

// WalkUp calls the given function on the node and all of its parents,
// sequentially in the current goroutine. It stops walking if the function
// returns [Break] and keeps walking if it returns [Continue]. It returns
// whether walking was finished (false if it was aborted with [Break]).
func (n *NodeBase) WalkUp(fun func(n Node) bool) bool {
	cur := n.This
	for {
		if !fun(cur) { // false return means stop
			return false
		}
		parent := cur.AsTree().Parent
		if parent == nil || parent == cur { // prevent loops
			return true
		}
		cur = parent
	}
}

// WalkUpParent calls the given function on all of the node's parents (but not
// the node itself). It stops walking if the function returns [Break] and keeps
// walking if it returns [Continue]. It returns whether walking was finished
// (false if it was aborted with [Break]).
func (n *NodeBase) WalkUpParent(fun func(n Node) bool) bool {
	if IsRoot(n) {
		return true
	}
	return n.Parent.AsTree().WalkUp(fun)
}

// WalkDown calls the given function on the node and all of its children
// in a depth-first manner over all of the children, sequentially in the
// current goroutine. Children are visited in order. The node traversal
// is non-recursive and uses an explicit stack, so it is safe for very deep
// trees. The function should return [Break] to stop descending into the
// children of the current node, and [Continue] to keep walking.
func (n *NodeBase) WalkDown(fun func(n Node) bool) {
	if n.This == nil {
		return
	}
	stack := []Node{n.This}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		cb := cur.AsTree()
		if cb.This == nil { // destroyed during the walk
			continue
		}
		if !fun(cur) {
			continue
		}
		for i := len(cb.Children) - 1; i >= 0; i-- {
			kid := cb.Children[i]
			if kid == nil || kid.AsTree().This == nil {
				continue
			}
			stack = append(stack, kid)
		}
	}
}

// WalkDownPost iterates in a depth-first manner over the children, calling
// shouldContinue on each node to test if processing should proceed (if it returns
// [Break] then that branch of the tree is not further processed),
// and then calls the given function after all of a node's children
// have been iterated over. In effect, this means that the given function is called
// for deeper nodes first.
func (n *NodeBase) WalkDownPost(shouldContinue func(n Node) bool, fun func(n Node) bool) {
	if n.This == nil || !shouldContinue(n.This) {
		return
	}
	for _, kid := range slices.Clone(n.Children) {
		if kid == nil || kid.AsTree().This == nil {
			continue
		}
		kid.AsTree().WalkDownPost(shouldContinue, fun)
	}
	fun(n.This)
}

// Deep Copy:

// CopyFrom copies the data and children of the given node to this node.
// Existing children of this node are destroyed and replaced by new
// instances of the source children. Only copying to the same type is supported.
// The struct field tag copier:"-" can be added for any fields that
// should not be copied. Also, unexported fields are not copied.
// See [Node.CopyFieldsFrom] for more information on field copying.
func (n *NodeBase) CopyFrom(from Node) {
	if from == nil {
		slog.Error("tree.NodeBase.CopyFrom: nil source", "destinationNode", n)
		return
	}
	copyFrom(n.This, from)
}

// copyFrom is the implementation of [NodeBase.CopyFrom].
func copyFrom(to, from Node) {
	tot := to.AsTree()
	fromt := from.AsTree()
	tot.DeleteChildren()
	for _, fk := range fromt.Children {
		kid := fk.AsTree().NewInstance()
		kid.AsTree().SetName(fk.AsTree().Name)
		tot.AddChild(kid)
	}
	tot.This.CopyFieldsFrom(from)
	for i, kid := range tot.Children {
		copyFrom(kid, fromt.Child(i))
	}
}

// Clone creates and returns a deep copy of the tree from this node down.
// The clone is a new root; it has no parent.
func (n *NodeBase) Clone() Node {
	nc := n.NewInstance()
	InitNode(nc)
	nc.AsTree().SetName(n.Name)
	nc.AsTree().CopyFrom(n.This)
	return nc
}

// CopyFieldsFrom copies the fields of the node from the given node.
// By default, it is [NodeBase.CopyFieldsFrom], which automatically does
// a deep copy of all of the fields of the node that do not a have a
// `copier:"-"` struct tag.
func (n *NodeBase) CopyFieldsFrom(from Node) {
	err := copier.CopyWithOption(n.This, from.AsTree().This, copier.Option{CaseSensitive: true, DeepCopy: true})
	if err != nil {
		slog.Error("tree.NodeBase.CopyFieldsFrom", "err", err)
	}
}

// Event methods:

// Init is a placeholder implementation of
// [Node.Init] that does nothing.
func (n *NodeBase) Init() {}

// OnAdd is a placeholder implementation of
// [Node.OnAdd] that does nothing.
func (n *NodeBase) OnAdd() {}
