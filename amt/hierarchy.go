package amt

type (
	BinaryNode[T any] struct {
		Data T

		parent *BinaryNode[T]
		left   *BinaryNode[T]
		right  *BinaryNode[T]
	}

	// BinaryHierarchy is an explicit binary tree with parent links.
	// It only keeps the links consistent, ordering is up to the user.
	BinaryHierarchy[T any] struct {
		root *BinaryNode[T]
	}

	// InOrderIterator walks the hierarchy left, node, right
	// following parent links, so it needs no stack
	InOrderIterator[T any] struct {
		h       *BinaryHierarchy[T]
		current *BinaryNode[T]
		started bool
	}
)

func (n *BinaryNode[T]) Parent() *BinaryNode[T]   { return n.parent }
func (n *BinaryNode[T]) LeftSon() *BinaryNode[T]  { return n.left }
func (n *BinaryNode[T]) RightSon() *BinaryNode[T] { return n.right }
func (n *BinaryNode[T]) HasLeftSon() bool         { return n.left != nil }
func (n *BinaryNode[T]) HasRightSon() bool        { return n.right != nil }
func (n *BinaryNode[T]) IsLeaf() bool             { return n.left == nil && n.right == nil }
func (n *BinaryNode[T]) IsRoot() bool             { return n.parent == nil }

func (n *BinaryNode[T]) IsLeftSon() bool {
	return n.parent != nil && n.parent.left == n
}

func (n *BinaryNode[T]) IsRightSon() bool {
	return n.parent != nil && n.parent.right == n
}

func (n *BinaryNode[T]) Degree() int {
	d := 0
	if n.left != nil {
		d++
	}

	if n.right != nil {
		d++
	}

	return d
}

func NewBinaryHierarchy[T any]() *BinaryHierarchy[T] {
	return &BinaryHierarchy[T]{}
}

func (h *BinaryHierarchy[T]) Root() *BinaryNode[T] { return h.root }

func (h *BinaryHierarchy[T]) IsEmpty() bool { return h.root == nil }

// EmplaceRoot replaces the whole hierarchy with a single node
func (h *BinaryHierarchy[T]) EmplaceRoot() *BinaryNode[T] {
	h.root = &BinaryNode[T]{}
	return h.root
}

func (h *BinaryHierarchy[T]) InsertLeftSon(parent *BinaryNode[T]) *BinaryNode[T] {
	if parent.left != nil {
		panic("amt: left son already present")
	}

	n := &BinaryNode[T]{parent: parent}
	parent.left = n

	return n
}

func (h *BinaryHierarchy[T]) InsertRightSon(parent *BinaryNode[T]) *BinaryNode[T] {
	if parent.right != nil {
		panic("amt: right son already present")
	}

	n := &BinaryNode[T]{parent: parent}
	parent.right = n

	return n
}

// ChangeLeftSon links son as the left son of parent and returns
// the detached previous son. The caller unlinks son from its old place.
func (h *BinaryHierarchy[T]) ChangeLeftSon(parent, son *BinaryNode[T]) *BinaryNode[T] {
	old := parent.left
	if old != nil {
		old.parent = nil
	}

	parent.left = son
	if son != nil {
		son.parent = parent
	}

	return old
}

func (h *BinaryHierarchy[T]) ChangeRightSon(parent, son *BinaryNode[T]) *BinaryNode[T] {
	old := parent.right
	if old != nil {
		old.parent = nil
	}

	parent.right = son
	if son != nil {
		son.parent = parent
	}

	return old
}

func (h *BinaryHierarchy[T]) ChangeRoot(n *BinaryNode[T]) {
	h.root = n
	if n != nil {
		n.parent = nil
	}
}

func (h *BinaryHierarchy[T]) Clear() { h.root = nil }

func (h *BinaryHierarchy[T]) First() *BinaryNode[T] {
	if h.root == nil {
		return nil
	}

	return leftmost(h.root)
}

// Next returns the in-order successor of n
func (h *BinaryHierarchy[T]) Next(n *BinaryNode[T]) *BinaryNode[T] {
	if n.right != nil {
		return leftmost(n.right)
	}

	for n.parent != nil && n.parent.right == n {
		n = n.parent
	}

	return n.parent
}

func leftmost[T any](n *BinaryNode[T]) *BinaryNode[T] {
	for n.left != nil {
		n = n.left
	}

	return n
}

// Clone copies the shape and the data of the hierarchy.
// Data is copied with copyFn, or by assignment when copyFn is nil.
func (h *BinaryHierarchy[T]) Clone(copyFn func(T) T) *BinaryHierarchy[T] {
	c := NewBinaryHierarchy[T]()
	if h.root == nil {
		return c
	}

	if copyFn == nil {
		copyFn = func(t T) T { return t }
	}

	type pair struct{ src, dst *BinaryNode[T] }

	c.root = &BinaryNode[T]{Data: copyFn(h.root.Data)}
	stack := []pair{{h.root, c.root}}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if p.src.left != nil {
			p.dst.left = &BinaryNode[T]{Data: copyFn(p.src.left.Data), parent: p.dst}
			stack = append(stack, pair{p.src.left, p.dst.left})
		}

		if p.src.right != nil {
			p.dst.right = &BinaryNode[T]{Data: copyFn(p.src.right.Data), parent: p.dst}
			stack = append(stack, pair{p.src.right, p.dst.right})
		}
	}

	return c
}

// Walk visits every node in pre-order, stopping
// as soon as fn returns false
func (h *BinaryHierarchy[T]) Walk(fn func(*BinaryNode[T]) bool) {
	if h.root == nil {
		return
	}

	stack := []*BinaryNode[T]{h.root}

	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !fn(n) {
			return
		}

		if n.right != nil {
			stack = append(stack, n.right)
		}

		if n.left != nil {
			stack = append(stack, n.left)
		}
	}
}

func (h *BinaryHierarchy[T]) Iterator() *InOrderIterator[T] {
	return &InOrderIterator[T]{h: h}
}

func (i *InOrderIterator[T]) Next() bool {
	if !i.started {
		i.started = true
		i.current = i.h.First()
	} else if i.current != nil {
		i.current = i.h.Next(i.current)
	}

	return i.current != nil
}

func (i *InOrderIterator[T]) Node() *BinaryNode[T] { return i.current }
