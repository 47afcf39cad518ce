// Package scenegraph provides a transform hierarchy of meshes and a renderer
// that draws it through a gpu.Device.
package scenegraph

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/launchpad/pkg/math"
)

// Node is a transform in the hierarchy, optionally carrying a mesh.
// Rotation is in radians, applied X then Y then Z.
type Node struct {
	Name     string
	Position math.Vec3
	Rotation math.Vec3
	Scale    math.Vec3
	Visible  bool
	Mesh     *Mesh

	parent   *Node
	children []*Node
	disposed bool
}

// NewNode creates a visible node with unit scale.
func NewNode(name string) *Node {
	return &Node{
		Name:    name,
		Scale:   math.One,
		Visible: true,
	}
}

// NewMeshNode creates a node that draws mesh.
func NewMeshNode(name string, mesh *Mesh) *Node {
	n := NewNode(name)
	n.Mesh = mesh
	return n
}

// Add attaches children, detaching them from any previous parent.
func (n *Node) Add(children ...*Node) {
	for _, c := range children {
		if c == nil || c == n {
			continue
		}
		if c.parent != nil {
			c.parent.Remove(c)
		}
		c.parent = n
		n.children = append(n.children, c)
	}
}

// Remove detaches child. Returns false if it was not a direct child.
func (n *Node) Remove(child *Node) bool {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			c.parent = nil
			return true
		}
	}
	return false
}

// Parent returns the parent node, nil for a root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the direct children. The slice must not be modified.
func (n *Node) Children() []*Node {
	return n.children
}

// Traverse visits n and its descendants depth-first. Returning false from
// fn skips that node's children.
func (n *Node) Traverse(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.children {
		c.Traverse(fn)
	}
}

// Find returns the first node in the subtree with the given name.
func (n *Node) Find(name string) *Node {
	var found *Node
	n.Traverse(func(c *Node) bool {
		if found != nil {
			return false
		}
		if c.Name == name {
			found = c
			return false
		}
		return true
	})
	return found
}

// LocalMatrix returns T * Rx * Ry * Rz * S.
func (n *Node) LocalMatrix() mgl32.Mat4 {
	return mgl32.Translate3D(n.Position.X, n.Position.Y, n.Position.Z).
		Mul4(mgl32.HomogRotate3DX(n.Rotation.X)).
		Mul4(mgl32.HomogRotate3DY(n.Rotation.Y)).
		Mul4(mgl32.HomogRotate3DZ(n.Rotation.Z)).
		Mul4(mgl32.Scale3D(n.Scale.X, n.Scale.Y, n.Scale.Z))
}

// WorldMatrix returns the product of all local matrices from the root down.
func (n *Node) WorldMatrix() mgl32.Mat4 {
	m := n.LocalMatrix()
	for p := n.parent; p != nil; p = p.parent {
		m = p.LocalMatrix().Mul4(m)
	}
	return m
}

// Disposed reports whether Dispose ran.
func (n *Node) Disposed() bool {
	return n.disposed
}

// Dispose walks the subtree and disposes every mesh once. Safe to call more
// than once, and on subtrees that share meshes.
func (n *Node) Dispose() {
	n.Traverse(func(c *Node) bool {
		if c.disposed {
			return false
		}
		c.disposed = true
		if c.Mesh != nil {
			c.Mesh.Dispose()
		}
		return true
	})
}
