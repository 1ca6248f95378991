package huffman

import (
	"fmt"
	"math"
	"sort"
)

// FrequencyTable maps every distinct symbol of an input to its count.
// All counts are positive.
type FrequencyTable map[byte]uint64

// CountFrequencies tallies each byte of data. The result never aliases data.
func CountFrequencies(data []byte) FrequencyTable {
	var counts [256]uint64
	for _, b := range data {
		counts[b]++
	}

	freqs := make(FrequencyTable)
	for sym, n := range counts {
		if n > 0 {
			freqs[byte(sym)] = n
		}
	}
	return freqs
}

// Symbols returns the table's symbols in ascending order.
func (f FrequencyTable) Symbols() []byte {
	syms := make([]byte, 0, len(f))
	for sym := range f {
		syms = append(syms, sym)
	}
	sort.Slice(syms, func(i, j int) bool { return syms[i] < syms[j] })
	return syms
}

// Total returns the sum of all counts, which is the length of the input
// the table was counted from.
func (f FrequencyTable) Total() uint64 {
	var total uint64
	for _, n := range f {
		total += n
	}
	return total
}

// Validate checks that every count is positive and that the counts sum
// without overflowing.
func (f FrequencyTable) Validate() error {
	var total uint64
	for _, sym := range f.Symbols() {
		n := f[sym]
		if n == 0 {
			return &ValidationError{Reason: fmt.Sprintf("symbol 0x%02x has count 0", sym)}
		}
		if total > math.MaxUint64-n {
			return &ValidationError{Reason: "frequency total overflows"}
		}
		total += n
	}
	return nil
}
