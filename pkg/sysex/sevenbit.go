package sysex

import (
	"errors"
	"fmt"
)

// ErrCodec is returned by Decode when the input cannot be 7-bit encoded data.
var ErrCodec = errors.New("sysex: invalid 7-bit encoding")

const (
	rawGroup     = 7
	encodedGroup = rawGroup + 1
)

// EncodedLen returns the length of Encode's output for n raw bytes.
func EncodedLen(n int) int {
	return n + (n+rawGroup-1)/rawGroup
}

// DecodedLen returns the length of Decode's output for n encoded bytes.
// It is only meaningful when n%8 != 1.
func DecodedLen(n int) int {
	return n - (n+encodedGroup-1)/encodedGroup
}

// Encode packs 8-bit data into 7-bit clean bytes. Every group of up to 7
// input bytes becomes a mask byte carrying their high bits, followed by the
// bytes themselves with the high bit cleared.
func Encode(raw []byte) []byte {
	out := make([]byte, 0, EncodedLen(len(raw)))

	for start := 0; start < len(raw); start += rawGroup {
		end := start + rawGroup
		if end > len(raw) {
			end = len(raw)
		}
		group := raw[start:end]

		maskAt := len(out)
		out = append(out, 0)
		for i, b := range group {
			out[maskAt] |= (b >> 7) << (6 - i)
			out = append(out, b&0x7F)
		}
	}

	return out
}

// Decode unpacks data produced by Encode.
func Decode(encoded []byte) ([]byte, error) {
	if len(encoded)%encodedGroup == 1 {
		return nil, fmt.Errorf("%w - %d bytes leave a mask byte without data", ErrCodec, len(encoded))
	}

	out := make([]byte, 0, DecodedLen(len(encoded)))

	for start := 0; start < len(encoded); start += encodedGroup {
		end := start + encodedGroup
		if end > len(encoded) {
			end = len(encoded)
		}
		group := encoded[start:end]

		mask := group[0]
		for i := 1; i < len(group); i++ {
			msb := (mask >> (7 - i)) & 1
			out = append(out, group[i]&0x7F|msb<<7)
		}
	}

	return out, nil
}
