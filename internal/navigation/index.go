package navigation

type lookupKey struct {
	typ NodeType
	key string
}

// Index is a (type, key) lookup over a snapshot of a tree. Direct children of
// a node take precedence over deeper matches, and earlier siblings' subtrees
// over later ones, so the first node a recursive search would reach wins.
//
// The index does not follow later mutations of the tree.
type Index struct {
	nodes map[lookupKey]*Node
}

func NewIndex(root *Node) *Index {
	ix := &Index{nodes: make(map[lookupKey]*Node)}
	if root != nil {
		ix.add(root)
	}
	return ix
}

func (ix *Index) add(n *Node) {
	for _, c := range n.children {
		k := lookupKey{typ: c.Type, key: c.Key}
		if _, ok := ix.nodes[k]; !ok {
			ix.nodes[k] = c
		}
	}
	for _, c := range n.children {
		ix.add(c)
	}
}

func (ix *Index) Find(key string, typ NodeType) *Node {
	return ix.nodes[lookupKey{typ: typ, key: key}]
}
