package elektron

import (
	"bytes"
	"fmt"

	"github.com/Garik-/digitools/pkg/sysex"
)

var (
	manufacturerID = []byte{0x00, 0x20, 0x3C}
	dumpPrefix     = []byte{0x00, 0x53, 0x01, 0x01}
)

// Offsets within a sound dump message, start marker included.
const (
	manufacturerOffset = 1
	deviceOffset       = 4
	programOffset      = 9
	payloadOffset      = 10

	// checksum, length and end marker
	trailerLen = 5
	minMessage = payloadOffset + trailerLen
)

// Validate checks that msg is an intact sound dump from a known device.
// The checks run in order and stop at the first failure: manufacturer id,
// device id, payload checksum, trailer length.
func Validate(msg []byte) error {
	if len(msg) < deviceOffset+1 {
		return fmt.Errorf("%w - message of %d bytes", ErrLengthMismatch, len(msg))
	}

	if !bytes.Equal(msg[manufacturerOffset:deviceOffset], manufacturerID) {
		return fmt.Errorf("%w - % X", ErrManufacturerMismatch, msg[manufacturerOffset:deviceOffset])
	}

	if d := Device(msg[deviceOffset]); !d.Known() {
		return fmt.Errorf("%w - %#02x", ErrDeviceUnrecognized, uint8(d))
	}

	if len(msg) < minMessage {
		return fmt.Errorf("%w - message of %d bytes", ErrLengthMismatch, len(msg))
	}

	trailer := msg[len(msg)-trailerLen:]

	sum := sysex.Checksum(msg[payloadOffset : len(msg)-trailerLen])
	if !bytes.Equal(sum[:], trailer[0:2]) {
		return fmt.Errorf("%w - expected % X, got % X", ErrChecksumMismatch, trailer[0:2], sum[:])
	}

	length := sysex.Encode14(len(msg) - payloadOffset)
	if !bytes.Equal(length[:], trailer[2:4]) {
		return fmt.Errorf("%w - trailer says %d, message has %d", ErrLengthMismatch,
			sysex.Decode14([2]byte{trailer[2], trailer[3]}), len(msg)-payloadOffset)
	}

	return nil
}
