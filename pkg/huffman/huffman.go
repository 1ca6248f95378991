// Package huffman implements static Huffman coding of byte streams.
//
// Compress counts byte frequencies, builds a prefix tree from them and
// packs the codes of the input most-significant-bit first. The header it
// returns holds the frequency table and the exact number of encoded bits,
// which is all Decompress needs to rebuild the same tree in another
// process. Tree construction breaks weight ties by symbol value, so the
// result depends only on the table.
package huffman

import (
	"bytes"
	"fmt"
	"io"
)

// Compress encodes data and returns the serialized header and the packed
// payload. Writing the header immediately followed by the payload gives
// the stream read by DecompressBytes.
func Compress(data []byte) (header, payload []byte, err error) {
	freqs := CountFrequencies(data)
	root := BuildTree(freqs)
	codes := GenerateCodes(root)

	payload, bitLength, err := Encode(data, codes)
	if err != nil {
		return nil, nil, err
	}

	header, err = Header{Frequencies: freqs, BitLength: bitLength}.MarshalBinary()
	if err != nil {
		return nil, nil, err
	}
	if payload == nil {
		payload = []byte{}
	}
	return header, payload, nil
}

// Decompress decodes a payload produced by Compress. header must hold
// exactly one serialized header.
func Decompress(header, payload []byte) ([]byte, error) {
	var h Header
	if err := h.UnmarshalBinary(header); err != nil {
		return nil, err
	}
	return h.Decode(payload)
}

// Decode rebuilds the tree from h and decodes payload with it. Besides
// the checks done by Decode, the output must reproduce the frequency
// table exactly.
func (h Header) Decode(payload []byte) ([]byte, error) {
	if err := h.Validate(); err != nil {
		return nil, err
	}
	root := BuildTree(h.Frequencies)
	out, err := Decode(payload, h.BitLength, root)
	if err != nil {
		return nil, err
	}

	if total := h.Frequencies.Total(); uint64(len(out)) != total {
		return nil, &CorruptDataError{
			BitOffset: h.BitLength,
			Reason:    fmt.Sprintf("decoded %d symbols, header declares %d", len(out), total),
		}
	}
	got := CountFrequencies(out)
	for sym, n := range h.Frequencies {
		if got[sym] != n {
			return nil, &CorruptDataError{
				BitOffset: h.BitLength,
				Reason:    fmt.Sprintf("symbol 0x%02x decoded %d times, header declares %d", sym, got[sym], n),
			}
		}
	}
	return out, nil
}

// CompressBytes returns the header and payload of data as one buffer.
func CompressBytes(data []byte) ([]byte, error) {
	header, payload, err := Compress(data)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(header)+len(payload))
	out = append(out, header...)
	return append(out, payload...), nil
}

// DecompressBytes decodes a buffer produced by CompressBytes. The payload
// is everything after the header.
func DecompressBytes(data []byte) ([]byte, error) {
	h, n, err := ParseHeader(data)
	if err != nil {
		return nil, err
	}
	return h.Decode(data[n:])
}

// CompressReader reads src to the end and returns a reader over its
// compressed form.
func CompressReader(src io.Reader) (io.Reader, error) {
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}
	out, err := CompressBytes(data)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(out), nil
}

// DecompressReader reads one header from src, then the rest of src as
// payload.
func DecompressReader(src io.Reader) ([]byte, error) {
	var h Header
	if _, err := h.ReadFrom(src); err != nil {
		return nil, err
	}
	payload, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}
	return h.Decode(payload)
}
