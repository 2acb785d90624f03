package elektron

import (
	"errors"
	"fmt"
)

var (
	// ErrManufacturerMismatch is reported for messages that do not carry the Elektron manufacturer id.
	ErrManufacturerMismatch = errors.New("manufacturer id is not recognized")
	// ErrDeviceUnrecognized is reported for a model id without a tag table.
	ErrDeviceUnrecognized = errors.New("device id is not recognized")
	// ErrChecksumMismatch means the payload does not add up to the trailer checksum.
	ErrChecksumMismatch = errors.New("checksum validation failed")
	// ErrLengthMismatch means the trailer length disagrees with the message length.
	ErrLengthMismatch = errors.New("length validation failed")

	ErrNameTooLong     = fmt.Errorf("sound name exceeds %d characters", NameMaxLen)
	ErrNameEncode      = errors.New("sound name is not representable in latin-1")
	ErrNameDecode      = errors.New("sound name cannot be decoded")
	ErrProgramRange    = errors.New("program number out of range")
	ErrTagRange        = errors.New("tag index out of range")
	ErrPayloadTooLarge = errors.New("encoded payload does not fit the length field")
)

// Failure describes a message that was skipped while loading a bank.
type Failure struct {
	// Position is the 1-based index of the message in the file.
	Position int
	// Offset is the byte offset of the message start marker.
	Offset int
	Err    error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("sound at position %03d (offset %d): %v", f.Position, f.Offset, f.Err)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// SaveError identifies the first sound that could not be serialized.
type SaveError struct {
	Position int
	Program  uint8
	Err      error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("saving sound %03d (program %d) failed: %v", e.Position, e.Program, e.Err)
}

func (e *SaveError) Unwrap() error {
	return e.Err
}
