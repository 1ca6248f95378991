package huffman

import "container/heap"

// Node is a vertex of a Huffman tree. A leaf has no children and carries
// Symbol; an internal node always has both Left and Right.
type Node struct {
	Symbol byte
	Weight uint64
	Left   *Node
	Right  *Node

	// order breaks weight ties. Leaves use their symbol value, internal
	// nodes use 256 plus their creation index, so the order is fixed by
	// the frequency table alone.
	order int
}

// IsLeaf reports whether n has no children.
func (n *Node) IsLeaf() bool {
	return n.Left == nil && n.Right == nil
}

type nodeHeap []*Node

func (h nodeHeap) Len() int { return len(h) }
func (h nodeHeap) Less(i, j int) bool {
	if h[i].Weight != h[j].Weight {
		return h[i].Weight < h[j].Weight
	}
	return h[i].order < h[j].order
}
func (h nodeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *nodeHeap) Push(x interface{}) {
	*h = append(*h, x.(*Node))
}
func (h *nodeHeap) Pop() interface{} {
	old := *h
	n := len(old)
	node := old[n-1]
	old[n-1] = nil
	*h = old[0 : n-1]
	return node
}

// BuildTree builds the Huffman tree for freqs and returns its root, or nil
// for an empty table.
//
// Candidates are extracted in ascending (weight, order) order, where a
// leaf's order is its symbol and an internal node's order is 256 plus the
// number of internal nodes created before it. The first node extracted
// becomes the left child. Building twice from equal tables, however they
// were populated, yields identical trees.
func BuildTree(freqs FrequencyTable) *Node {
	if len(freqs) == 0 {
		return nil
	}

	h := make(nodeHeap, 0, len(freqs))
	for _, sym := range freqs.Symbols() {
		h = append(h, &Node{Symbol: sym, Weight: freqs[sym], order: int(sym)})
	}
	heap.Init(&h)

	next := 256
	for h.Len() > 1 {
		left := heap.Pop(&h).(*Node)
		right := heap.Pop(&h).(*Node)
		parent := &Node{
			Weight: left.Weight + right.Weight,
			Left:   left,
			Right:  right,
			order:  next,
		}
		next++
		heap.Push(&h, parent)
	}

	return heap.Pop(&h).(*Node)
}
