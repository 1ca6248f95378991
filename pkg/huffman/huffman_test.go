package huffman

import (
	"bytes"
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func randomBytes(n int, seed int64) []byte {
	r := rand.New(rand.NewSource(seed))
	b := make([]byte, n)
	r.Read(b)
	return b
}

// fibonacciInput returns n symbols whose counts follow the Fibonacci
// sequence, which produces a tree n-1 levels deep.
func fibonacciInput(n int) []byte {
	var buf bytes.Buffer
	a, b := 1, 1
	for i := 0; i < n; i++ {
		buf.Write(bytes.Repeat([]byte{byte('A' + i)}, a))
		a, b = b, a+b
	}
	return buf.Bytes()
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", []byte{}},
		{"single byte", []byte("x")},
		{"repeated", []byte("aaaa")},
		{"aaabbc", []byte("aaabbc")},
		{"text", []byte(strings.Repeat("When in the Course of human events, it becomes necessary. ", 40))},
		{"all bytes", func() []byte {
			b := make([]byte, 256)
			for i := range b {
				b[i] = byte(i)
			}
			return b
		}()},
		{"random", randomBytes(64<<10, 1)},
		{"skewed", fibonacciInput(20)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header, payload, err := Compress(tt.data)
			require.NoError(t, err)

			got, err := Decompress(header, payload)
			require.NoError(t, err)
			require.Equal(t, tt.data, got)

			joined, err := CompressBytes(tt.data)
			require.NoError(t, err)
			require.Equal(t, append(append([]byte{}, header...), payload...), joined)

			got, err = DecompressBytes(joined)
			require.NoError(t, err)
			require.Equal(t, tt.data, got)

			r, err := CompressReader(bytes.NewReader(tt.data))
			require.NoError(t, err)
			got, err = DecompressReader(r)
			require.NoError(t, err)
			require.Equal(t, tt.data, got)
		})
	}
}

func TestCompressEmpty(t *testing.T) {
	header, payload, err := Compress(nil)
	require.NoError(t, err)
	require.Empty(t, payload)

	h, n, err := ParseHeader(header)
	require.NoError(t, err)
	require.Equal(t, len(header), n)
	require.Empty(t, h.Frequencies)
	require.Zero(t, h.BitLength)

	got, err := Decompress(header, payload)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestCompressSingleSymbol(t *testing.T) {
	header, payload, err := Compress([]byte("aaaa"))
	require.NoError(t, err)

	h, _, err := ParseHeader(header)
	require.NoError(t, err)
	require.Equal(t, FrequencyTable{'a': 4}, h.Frequencies)
	require.Equal(t, uint64(4), h.BitLength)
	require.Equal(t, []byte{0x00}, payload)

	root := BuildTree(h.Frequencies)
	require.True(t, root.IsLeaf())
	require.Equal(t, "0", GenerateCodes(root)['a'].String())

	got, err := Decompress(header, payload)
	require.NoError(t, err)
	require.Equal(t, "aaaa", string(got))
}

func TestCompressAaabbc(t *testing.T) {
	header, payload, err := Compress([]byte("aaabbc"))
	require.NoError(t, err)

	h, _, err := ParseHeader(header)
	require.NoError(t, err)
	require.Equal(t, FrequencyTable{'a': 3, 'b': 2, 'c': 1}, h.Frequencies)

	codes := GenerateCodes(BuildTree(h.Frequencies))
	require.NoError(t, codes.Validate())
	require.Less(t, codes['a'].Len(), codes['b'].Len())
	require.Less(t, codes['a'].Len(), codes['c'].Len())
	require.Equal(t, codes.EncodedBits(h.Frequencies), h.BitLength)

	got, err := Decompress(header, payload)
	require.NoError(t, err)
	require.Equal(t, "aaabbc", string(got))
}

func TestTruncatedPayload(t *testing.T) {
	inputs := [][]byte{
		[]byte("aaaa"),
		[]byte("aaabbc"),
		[]byte("hello world, hello huffman"),
		randomBytes(4096, 7),
	}
	for _, in := range inputs {
		header, payload, err := Compress(in)
		require.NoError(t, err)
		require.NotEmpty(t, payload)

		got, err := Decompress(header, payload[:len(payload)-1])
		require.Error(t, err)
		require.Nil(t, got)
		require.True(t, errors.Is(err, ErrTruncatedData) || errors.Is(err, ErrCorruptData), "unexpected error %v", err)
	}
}

func TestBitLengthMismatch(t *testing.T) {
	// Dropping the last bit of "aaabbc" leaves the cursor inside c's code
	// or yields the wrong symbol counts; either way it must not decode.
	header, payload, err := Compress([]byte("aaabbc"))
	require.NoError(t, err)

	h, _, err := ParseHeader(header)
	require.NoError(t, err)
	h.BitLength--

	_, err = h.Decode(payload)
	require.ErrorIs(t, err, ErrCorruptData)

	var cerr *CorruptDataError
	require.ErrorAs(t, err, &cerr)
}

func TestDecompressHeaderErrors(t *testing.T) {
	_, err := Decompress([]byte("nope"), nil)
	require.ErrorIs(t, err, ErrHeaderParse)

	_, err = DecompressBytes(nil)
	require.ErrorIs(t, err, ErrHeaderParse)

	_, err = Decompress([]byte{'H', 'F', 0, 0, 3}, []byte{0xff})
	require.ErrorIs(t, err, ErrValidation)
}

func TestDeterminism(t *testing.T) {
	data := []byte(strings.Repeat("abracadabra, alakazam! ", 10))

	fresh := CountFrequencies(data)
	header, _, err := Compress(data)
	require.NoError(t, err)
	parsed, _, err := ParseHeader(header)
	require.NoError(t, err)

	// Same counts inserted in reverse symbol order.
	reversed := make(FrequencyTable)
	syms := fresh.Symbols()
	for i := len(syms) - 1; i >= 0; i-- {
		reversed[syms[i]] = fresh[syms[i]]
	}

	want := GenerateCodes(BuildTree(fresh))
	for i := 0; i < 5; i++ {
		require.Equal(t, want, GenerateCodes(BuildTree(fresh)))
	}
	require.Equal(t, want, GenerateCodes(BuildTree(parsed.Frequencies)))
	require.Equal(t, want, GenerateCodes(BuildTree(reversed)))
}
