package treemap

import "github.com/graph-guard/ggmap/pkg/arena"

const (
	// none marks an absent link.
	none uint32 = 0

	// anchor is the index of the sentinel node.
	// anchor.left is the root of the tree, or anchor itself if empty.
	// anchor.right and anchor.parent are always none.
	// The anchor is the end position of the in-order sequence.
	anchor uint32 = 1
)

type node[K, V any] struct {
	key                 K
	value               V
	parent, left, right uint32
}

type nodes[K, V any] struct {
	*arena.Arena[node[K, V]]
}

func newNodes[K, V any]() nodes[K, V] {
	t := nodes[K, V]{arena.New[node[K, V]]()}
	t.init()
	return t
}

func (t nodes[K, V]) init() {
	_ = t.Alloc() // none
	_ = t.Alloc() // anchor
	t.At(anchor).left = anchor
}

// root returns the root node or none if the tree is empty.
func (t nodes[K, V]) root() uint32 {
	if r := t.At(anchor).left; r != anchor {
		return r
	}
	return none
}

func (t nodes[K, V]) leftmost(i uint32) uint32 {
	for l := t.At(i).left; l != none; l = t.At(i).left {
		i = l
	}
	return i
}

func (t nodes[K, V]) rightmost(i uint32) uint32 {
	for r := t.At(i).right; r != none; r = t.At(i).right {
		i = r
	}
	return i
}

// successor returns the in-order successor of i,
// or anchor if i is the greatest node.
func (t nodes[K, V]) successor(i uint32) uint32 {
	if r := t.At(i).right; r != none {
		return t.leftmost(r)
	}
	p := t.At(i).parent
	for p != none && t.At(p).right == i {
		i, p = p, t.At(p).parent
	}
	return p
}

// predecessor returns the in-order predecessor of i.
// The predecessor of anchor is the greatest node.
// Returns false if i is the least node or the tree is empty.
func (t nodes[K, V]) predecessor(i uint32) (uint32, bool) {
	if i == anchor {
		if r := t.root(); r != none {
			return t.rightmost(r), true
		}
		return none, false
	}
	if l := t.At(i).left; l != none {
		return t.rightmost(l), true
	}
	p := t.At(i).parent
	for p != anchor && t.At(p).left == i {
		i, p = p, t.At(p).parent
	}
	if p == anchor {
		return none, false
	}
	return p, true
}

// transplant replaces the subtree rooted at u with the subtree rooted at v
// in the parent of u. v may be none. The links of u are left untouched.
func (t nodes[K, V]) transplant(u, v uint32) {
	p := t.At(u).parent
	if pn := t.At(p); pn.left == u {
		pn.left = v
	} else {
		pn.right = v
	}
	if v != none {
		t.At(v).parent = p
	}
}

// detach unlinks z from the tree preserving the order of all other nodes.
// A node with two children is substituted by its in-order successor.
// The links of z are left untouched.
func (t nodes[K, V]) detach(z uint32) {
	n := t.At(z)
	switch {
	case n.left == none:
		t.transplant(z, n.right)
	case n.right == none:
		t.transplant(z, n.left)
	default:
		s := t.leftmost(n.right)
		if t.At(s).parent != z {
			t.transplant(s, t.At(s).right)
			t.At(s).right = n.right
			t.At(n.right).parent = s
		}
		t.transplant(z, s)
		t.At(s).left = n.left
		t.At(n.left).parent = s
	}
}

// height returns the number of nodes on the longest root-to-leaf path.
// The tree is walked along parent links without auxiliary storage.
func (t nodes[K, V]) height() (h int) {
	i, from, d := t.root(), anchor, 1
	for i != none && i != anchor {
		n := t.At(i)
		switch from {
		case n.parent:
			if d > h {
				h = d
			}
			if n.left != none {
				from, i, d = i, n.left, d+1
				continue
			}
			if n.right != none {
				from, i, d = i, n.right, d+1
				continue
			}
		case n.left:
			if n.right != none {
				from, i, d = i, n.right, d+1
				continue
			}
		}
		from, i, d = i, n.parent, d-1
	}
	return h
}
