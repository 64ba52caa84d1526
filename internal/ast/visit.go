package ast

// Visitor is called for every node in depth-first pre-order. Returning false
// skips the node's children.
type Visitor func(n *Node) bool

// Walk traverses the tree rooted at n.
func Walk(n *Node, v Visitor) {
	if n == nil || !v(n) {
		return
	}
	for _, c := range n.Children {
		Walk(c, v)
	}
}

// Collect returns every node of the given kind in document order.
func Collect(root *Node, kind Kind) []*Node {
	var out []*Node
	Walk(root, func(n *Node) bool {
		if n.Kind == kind {
			out = append(out, n)
		}
		return true
	})
	return out
}
