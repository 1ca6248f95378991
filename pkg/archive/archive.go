// Package archive stores a Huffman-compressed stream in a file with a
// fixed header carrying the original size and an xxhash64 checksum.
package archive

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"

	"huf/pkg/huffman"
)

var (
	Magic          = [4]byte{'H', 'U', 'F', 0}
	Version uint16 = 1
)

const (
	FlagChecksum = 1 << 0
)

// Extension is appended to compressed file names.
const Extension = ".huf"

var (
	ErrNotArchive         = errors.New("file is not a valid HUF archive")
	ErrUnsupportedVersion = errors.New("unsupported HUF archive version")
	ErrChecksumMismatch   = errors.New("checksum mismatch")
	ErrSizeMismatch       = errors.New("decoded size does not match archive header")
)

// FileHeader precedes the Huffman header and payload.
type FileHeader struct {
	Magic    [4]byte
	Version  uint16
	Flags    uint16
	RawSize  uint64
	Checksum uint64
}

type Options struct {
	// NoChecksum skips hashing the input; the checksum is then not verified
	// on decompression.
	NoChecksum bool
}

// Info describes an archive without decoding its payload.
type Info struct {
	FileHeader
	Header      huffman.Header
	HeaderSize  int
	PayloadSize int64
	Codes       huffman.CodeTable
}

// CompressedSize is the total archive size in bytes.
func (i Info) CompressedSize() int64 {
	return int64(binary.Size(i.FileHeader)) + int64(i.HeaderSize) + i.PayloadSize
}

// Ratio returns compressed size over raw size, or 0 for an empty input.
func (i Info) Ratio() float64 {
	if i.RawSize == 0 {
		return 0
	}
	return float64(i.CompressedSize()) / float64(i.RawSize)
}

// Write compresses data and writes a complete archive to w.
func Write(w io.Writer, data []byte, opts Options) error {
	header, payload, err := huffman.Compress(data)
	if err != nil {
		return err
	}

	fh := FileHeader{
		Magic:   Magic,
		Version: Version,
		RawSize: uint64(len(data)),
	}
	if !opts.NoChecksum {
		fh.Flags |= FlagChecksum
		fh.Checksum = xxhash.Sum64(data)
	}

	if err := binary.Write(w, binary.LittleEndian, &fh); err != nil {
		return err
	}
	if _, err := w.Write(header); err != nil {
		return err
	}
	_, err = w.Write(payload)
	return err
}

func readFileHeader(r io.Reader) (FileHeader, error) {
	var fh FileHeader
	if err := binary.Read(r, binary.LittleEndian, &fh); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return fh, ErrNotArchive
		}
		return fh, err
	}
	if fh.Magic != Magic {
		return fh, ErrNotArchive
	}
	if fh.Version != Version {
		return fh, fmt.Errorf("%w: %d", ErrUnsupportedVersion, fh.Version)
	}
	return fh, nil
}

// Read decodes an archive from r and verifies its size and checksum.
func Read(r io.Reader) ([]byte, error) {
	fh, err := readFileHeader(r)
	if err != nil {
		return nil, err
	}

	out, err := huffman.DecompressReader(r)
	if err != nil {
		return nil, err
	}

	if uint64(len(out)) != fh.RawSize {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrSizeMismatch, len(out), fh.RawSize)
	}
	if fh.Flags&FlagChecksum != 0 {
		if sum := xxhash.Sum64(out); sum != fh.Checksum {
			return nil, fmt.Errorf("%w: got %016x, want %016x", ErrChecksumMismatch, sum, fh.Checksum)
		}
	}
	return out, nil
}

// Stat reads the file header and the Huffman header from r and derives the
// code table. The payload is counted, not decoded.
func Stat(r io.Reader) (Info, error) {
	fh, err := readFileHeader(r)
	if err != nil {
		return Info{}, err
	}

	var h huffman.Header
	n, err := h.ReadFrom(r)
	if err != nil {
		return Info{}, err
	}

	payload, err := io.Copy(io.Discard, r)
	if err != nil {
		return Info{}, err
	}

	return Info{
		FileHeader:  fh,
		Header:      h,
		HeaderSize:  int(n),
		PayloadSize: payload,
		Codes:       huffman.GenerateCodes(huffman.BuildTree(h.Frequencies)),
	}, nil
}

// CompressFile compresses the file at src into dst.
func CompressFile(src, dst string, opts Options) error {
	raw, err := os.ReadFile(src)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := Write(&buf, raw, opts); err != nil {
		return err
	}
	return writeFile(dst, buf.Bytes())
}

// DecompressFile decompresses the archive at src into dst. Nothing is
// written when decoding fails.
func DecompressFile(src, dst string) error {
	f, err := os.Open(src)
	if err != nil {
		return err
	}
	defer f.Close()

	out, err := Read(f)
	if err != nil {
		return err
	}
	return writeFile(dst, out)
}

// InspectFile returns the Info of the archive at path.
func InspectFile(path string) (Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return Info{}, err
	}
	defer f.Close()

	return Stat(f)
}

func writeFile(dst string, data []byte) error {
	if dir := filepath.Dir(dst); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(dst, data, 0644)
}

// DefaultCompressedName returns the output name used when none is given.
func DefaultCompressedName(src string) string {
	return src + Extension
}

// DefaultDecompressedName strips the archive extension, or appends ".out"
// when there is none.
func DefaultDecompressedName(src string) string {
	if filepath.Ext(src) == Extension && len(src) > len(Extension) {
		return src[:len(src)-len(Extension)]
	}
	return src + ".out"
}
