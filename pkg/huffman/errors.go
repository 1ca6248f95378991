package huffman

import (
	"errors"
	"fmt"
)

// Sentinels for errors.Is. Every error returned by Decompress, Decode and
// the header codec matches exactly one of them.
var (
	ErrHeaderParse   = errors.New("huffman: malformed header")
	ErrTruncatedData = errors.New("huffman: truncated payload")
	ErrCorruptData   = errors.New("huffman: corrupt payload")
	ErrValidation    = errors.New("huffman: invalid header")
	ErrUnknownSymbol = errors.New("huffman: symbol has no code")
)

// HeaderParseError reports header bytes that are not validly structured.
type HeaderParseError struct {
	Offset int // byte offset into the header where parsing failed
	Reason string
	Err    error
}

func (e *HeaderParseError) Error() string {
	msg := fmt.Sprintf("%v at offset %d: %s", ErrHeaderParse, e.Offset, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *HeaderParseError) Is(target error) bool { return target == ErrHeaderParse }
func (e *HeaderParseError) Unwrap() error        { return e.Err }

// TruncatedDataError reports a declared bit length the payload cannot hold.
type TruncatedDataError struct {
	BitLength uint64
	Available uint64
}

func (e *TruncatedDataError) Error() string {
	return fmt.Sprintf("%v: header declares %d bits, payload holds %d", ErrTruncatedData, e.BitLength, e.Available)
}

func (e *TruncatedDataError) Is(target error) bool { return target == ErrTruncatedData }

// CorruptDataError reports a payload that does not match the declared tree.
type CorruptDataError struct {
	BitOffset uint64
	Reason    string
}

func (e *CorruptDataError) Error() string {
	return fmt.Sprintf("%v at bit %d: %s", ErrCorruptData, e.BitOffset, e.Reason)
}

func (e *CorruptDataError) Is(target error) bool { return target == ErrCorruptData }

// ValidationError reports a header that parses but cannot describe a valid stream.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v: %s", ErrValidation, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }
