package huffman

import (
	"bytes"
	"fmt"

	"github.com/icza/bitio"
)

// Bits are packed most-significant-bit first: bit i of the stream is bit
// 7-(i%8) of byte i/8. The final byte is zero-padded.

// Encode appends the code of every byte of data, in order, and packs the
// result. It returns the packed payload and the exact number of
// meaningful bits in it.
func Encode(data []byte, codes CodeTable) ([]byte, uint64, error) {
	var size uint64
	for i, b := range data {
		c, ok := codes[b]
		if !ok || len(c) == 0 {
			return nil, 0, fmt.Errorf("encode byte %d (0x%02x): %w", i, b, ErrUnknownSymbol)
		}
		size += uint64(len(c))
	}

	var buf bytes.Buffer
	buf.Grow(int((size + 7) / 8))
	w := bitio.NewWriter(&buf)
	var nbits uint64
	for _, b := range data {
		for _, bit := range codes[b] {
			if err := w.WriteBool(bit); err != nil {
				return nil, 0, err
			}
			nbits++
		}
	}
	// Close pads the last byte with zeros.
	if err := w.Close(); err != nil {
		return nil, 0, err
	}
	return buf.Bytes(), nbits, nil
}

// Decode reads exactly bitLength bits from payload and walks the tree
// rooted at root, emitting a symbol at every leaf. Padding after
// bitLength is ignored. On error no output is returned.
func Decode(payload []byte, bitLength uint64, root *Node) ([]byte, error) {
	available := uint64(len(payload)) * 8
	if bitLength > available {
		return nil, &TruncatedDataError{BitLength: bitLength, Available: available}
	}
	if root == nil {
		if bitLength > 0 {
			return nil, &ValidationError{Reason: fmt.Sprintf("empty tree with %d encoded bits", bitLength)}
		}
		return []byte{}, nil
	}

	// Every symbol costs at least one bit.
	hint := root.Weight
	if bitLength < hint {
		hint = bitLength
	}
	out := make([]byte, 0, hint)

	r := bitio.NewReader(bytes.NewReader(payload))
	if root.IsLeaf() {
		for i := uint64(0); i < bitLength; i++ {
			if _, err := r.ReadBool(); err != nil {
				return nil, err
			}
			out = append(out, root.Symbol)
		}
		return out, nil
	}

	node := root
	for i := uint64(0); i < bitLength; i++ {
		bit, err := r.ReadBool()
		if err != nil {
			return nil, err
		}
		if bit {
			node = node.Right
		} else {
			node = node.Left
		}
		if node.IsLeaf() {
			out = append(out, node.Symbol)
			node = root
		}
	}
	if node != root {
		return nil, &CorruptDataError{BitOffset: bitLength, Reason: "bit stream ends inside a code"}
	}
	return out, nil
}
