package huffman

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Header layout, little-endian:
//
//	magic    [2]byte   'H' 'F'
//	count    uint16    number of table entries, at most 256
//	entries  count × { symbol byte, frequency uvarint }, symbols strictly ascending
//	bitLen   uvarint   meaningful bits in the payload that follows
//
// The header is self-delimiting: its end is known without looking at the
// payload.

var headerMagic = [2]byte{'H', 'F'}

const maxSymbols = 256

// Header is the state needed to rebuild the tree and locate the end of the
// encoded bits.
type Header struct {
	Frequencies FrequencyTable
	BitLength   uint64
}

// Validate checks the frequency counts and that an empty table declares no
// encoded bits.
func (h Header) Validate() error {
	if err := h.Frequencies.Validate(); err != nil {
		return err
	}
	if len(h.Frequencies) == 0 && h.BitLength != 0 {
		return &ValidationError{Reason: fmt.Sprintf("empty frequency table with bit length %d", h.BitLength)}
	}
	return nil
}

// MarshalBinary encodes h. It fails with a ValidationError if h is not valid.
func (h Header) MarshalBinary() ([]byte, error) {
	if err := h.Validate(); err != nil {
		return nil, err
	}

	var out bytes.Buffer
	out.Write(headerMagic[:])
	binary.Write(&out, binary.LittleEndian, uint16(len(h.Frequencies)))

	var tmp [binary.MaxVarintLen64]byte
	for _, sym := range h.Frequencies.Symbols() {
		out.WriteByte(sym)
		n := binary.PutUvarint(tmp[:], h.Frequencies[sym])
		out.Write(tmp[:n])
	}
	n := binary.PutUvarint(tmp[:], h.BitLength)
	out.Write(tmp[:n])

	return out.Bytes(), nil
}

// UnmarshalBinary decodes a header that occupies all of data.
func (h *Header) UnmarshalBinary(data []byte) error {
	parsed, n, err := ParseHeader(data)
	if err != nil {
		return err
	}
	if n != len(data) {
		return &HeaderParseError{Offset: n, Reason: fmt.Sprintf("%d trailing bytes", len(data)-n)}
	}
	*h = parsed
	return nil
}

// ParseHeader decodes the header at the start of data and returns it with
// the number of bytes it occupies. The payload begins at data[n:].
func ParseHeader(data []byte) (Header, int, error) {
	cr := &countingReader{r: bytes.NewReader(data)}
	h, err := readHeader(cr)
	if err != nil {
		return Header{}, 0, err
	}
	return h, int(cr.n), nil
}

// WriteTo writes the encoded header to w.
func (h Header) WriteTo(w io.Writer) (int64, error) {
	b, err := h.MarshalBinary()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(b)
	return int64(n), err
}

// ReadFrom reads exactly one header from r and does not read past its end.
func (h *Header) ReadFrom(r io.Reader) (int64, error) {
	cr := &countingReader{r: r}
	parsed, err := readHeader(cr)
	if err != nil {
		return cr.n, err
	}
	*h = parsed
	return cr.n, nil
}

// countingReader reads single bytes so header parsing never consumes
// payload bytes from an unbuffered stream. Read failures other than EOF are
// kept in ioErr so they are not reported as malformed input.
type countingReader struct {
	r     io.Reader
	n     int64
	buf   [1]byte
	ioErr error
}

func (c *countingReader) ReadByte() (byte, error) {
	var (
		b   byte
		err error
	)
	if br, ok := c.r.(io.ByteReader); ok {
		b, err = br.ReadByte()
	} else if _, err = io.ReadFull(c.r, c.buf[:]); err == nil {
		b = c.buf[0]
	}
	if err != nil {
		if !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
			c.ioErr = err
		}
		return 0, err
	}
	c.n++
	return b, nil
}

func (c *countingReader) parseErr(reason string, err error) error {
	if c.ioErr != nil {
		return fmt.Errorf("read header: %w", c.ioErr)
	}
	if errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}
	return &HeaderParseError{Offset: int(c.n), Reason: reason, Err: err}
}

func readHeader(cr *countingReader) (Header, error) {
	var magic [2]byte
	for i := range magic {
		b, err := cr.ReadByte()
		if err != nil {
			return Header{}, cr.parseErr("reading magic", err)
		}
		magic[i] = b
	}
	if magic != headerMagic {
		return Header{}, &HeaderParseError{Offset: 0, Reason: fmt.Sprintf("bad magic %q", magic[:])}
	}

	var count uint16
	for i := 0; i < 2; i++ {
		b, err := cr.ReadByte()
		if err != nil {
			return Header{}, cr.parseErr("reading symbol count", err)
		}
		count |= uint16(b) << (8 * i)
	}
	if count > maxSymbols {
		return Header{}, &HeaderParseError{Offset: 2, Reason: fmt.Sprintf("symbol count %d exceeds %d", count, maxSymbols)}
	}

	freqs := make(FrequencyTable, count)
	prev := -1
	for i := 0; i < int(count); i++ {
		sym, err := cr.ReadByte()
		if err != nil {
			return Header{}, cr.parseErr(fmt.Sprintf("reading symbol %d", i), err)
		}
		if int(sym) <= prev {
			if _, dup := freqs[sym]; dup {
				return Header{}, &HeaderParseError{Offset: int(cr.n) - 1, Reason: fmt.Sprintf("duplicate symbol 0x%02x", sym)}
			}
			return Header{}, &HeaderParseError{Offset: int(cr.n) - 1, Reason: fmt.Sprintf("symbol 0x%02x out of order", sym)}
		}
		prev = int(sym)

		freq, err := binary.ReadUvarint(cr)
		if err != nil {
			return Header{}, cr.parseErr(fmt.Sprintf("reading frequency of 0x%02x", sym), err)
		}
		freqs[sym] = freq
	}

	bitLen, err := binary.ReadUvarint(cr)
	if err != nil {
		return Header{}, cr.parseErr("reading bit length", err)
	}

	h := Header{Frequencies: freqs, BitLength: bitLen}
	if err := h.Validate(); err != nil {
		return Header{}, err
	}
	return h, nil
}
