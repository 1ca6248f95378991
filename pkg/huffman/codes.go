package huffman

import (
	"fmt"
	"strings"
)

// Code is the root-to-leaf path of a symbol; false is a left edge (bit 0),
// true a right edge (bit 1).
type Code []bool

// Len returns the code length in bits.
func (c Code) Len() int { return len(c) }

func (c Code) String() string {
	var sb strings.Builder
	sb.Grow(len(c))
	for _, bit := range c {
		if bit {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// hasPrefix reports whether p is a prefix of c.
func (c Code) hasPrefix(p Code) bool {
	if len(p) > len(c) {
		return false
	}
	for i := range p {
		if c[i] != p[i] {
			return false
		}
	}
	return true
}

// CodeTable maps each symbol of a tree to its code.
type CodeTable map[byte]Code

// GenerateCodes walks the tree rooted at root and returns the code of
// every leaf. A tree made of a single leaf gets the one-bit code "0".
// A nil root yields an empty table.
func GenerateCodes(root *Node) CodeTable {
	codes := make(CodeTable)
	if root == nil {
		return codes
	}
	if root.IsLeaf() {
		codes[root.Symbol] = Code{false}
		return codes
	}

	// Trees can be as deep as the alphabet is large, so walk with an
	// explicit stack instead of recursing.
	type frame struct {
		node *Node
		path Code
	}
	stack := []frame{{node: root}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.node.IsLeaf() {
			codes[f.node.Symbol] = f.path
			continue
		}

		right := make(Code, len(f.path)+1)
		copy(right, f.path)
		right[len(f.path)] = true
		left := make(Code, len(f.path)+1)
		copy(left, f.path)

		stack = append(stack, frame{f.node.Right, right}, frame{f.node.Left, left})
	}
	return codes
}

// CodeLengths returns the depth of every leaf in the tree rooted at root,
// with the same single-leaf convention as GenerateCodes.
func CodeLengths(root *Node) map[byte]int {
	lengths := make(map[byte]int)
	for sym, code := range GenerateCodes(root) {
		lengths[sym] = code.Len()
	}
	return lengths
}

// Validate checks that no code is empty and that no code is a prefix of
// another.
func (t CodeTable) Validate() error {
	syms := make([]byte, 0, len(t))
	for sym := range t {
		syms = append(syms, sym)
	}
	for i, a := range syms {
		if len(t[a]) == 0 {
			return fmt.Errorf("huffman: symbol 0x%02x has an empty code", a)
		}
		for _, b := range syms[i+1:] {
			if t[a].hasPrefix(t[b]) || t[b].hasPrefix(t[a]) {
				return fmt.Errorf("huffman: codes of 0x%02x (%s) and 0x%02x (%s) are not prefix-free", a, t[a], b, t[b])
			}
		}
	}
	return nil
}

// EncodedBits returns the number of bits needed to encode a stream with
// frequencies freqs using this table.
func (t CodeTable) EncodedBits(freqs FrequencyTable) uint64 {
	var bits uint64
	for sym, n := range freqs {
		bits += n * uint64(len(t[sym]))
	}
	return bits
}
