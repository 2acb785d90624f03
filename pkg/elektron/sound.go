package elektron

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Garik-/digitools/pkg/sysex"
	"golang.org/x/text/encoding/charmap"
)

// NameMaxLen is the number of characters a sound name can hold.
const NameMaxLen = 15

// MaxProgram is the highest program number in a bank.
const MaxProgram = 127

// Offsets within a decoded sound payload.
const (
	tagsOffset = 8
	nameOffset = 12
	nameEnd    = nameOffset + NameMaxLen + 1

	// MinPayloadLen is the size of the header, tag and name regions.
	MinPayloadLen = nameEnd
)

// Sound is an editable view of one decoded sound payload. Only the name
// and tag fields can be changed; the rest of the payload is kept as read.
type Sound struct {
	program uint8
	device  Device
	data    []byte

	name string
	tags TagSet
}

// NewSound copies payload and reads the name and tags from it.
func NewSound(program uint8, device Device, payload []byte) (*Sound, error) {
	if program > MaxProgram {
		return nil, fmt.Errorf("%w - %d", ErrProgramRange, program)
	}
	if !device.Known() {
		return nil, fmt.Errorf("%w - %v", ErrDeviceUnrecognized, device)
	}
	if len(payload) < MinPayloadLen {
		return nil, fmt.Errorf("%w - payload of %d bytes has no name region", ErrNameDecode, len(payload))
	}

	s := &Sound{
		program: program,
		device:  device,
		data:    append([]byte(nil), payload...),
	}

	name, err := readName(s.data)
	if err != nil {
		return nil, err
	}
	s.name = name
	s.tags = readTags(s.data)

	return s, nil
}

func readName(data []byte) (string, error) {
	region := data[nameOffset:nameEnd]
	n := bytes.IndexByte(region, 0x00)
	if n < 0 {
		return "", fmt.Errorf("%w - no terminator in % X", ErrNameDecode, region)
	}

	name, err := charmap.ISO8859_1.NewDecoder().Bytes(region[:n])
	if err != nil {
		return "", fmt.Errorf("%w - %v", ErrNameDecode, err)
	}
	return string(name), nil
}

func readTags(data []byte) TagSet {
	return TagSet(binary.BigEndian.Uint32(data[tagsOffset:nameOffset]))
}

func (s *Sound) Program() uint8 {
	return s.program
}

func (s *Sound) Device() Device {
	return s.device
}

// Data returns a copy of the decoded payload.
func (s *Sound) Data() []byte {
	return append([]byte(nil), s.data...)
}

func (s *Sound) Name() string {
	return s.name
}

// SetName writes name followed by a nul. Bytes after the terminator are left
// as they were. On error the sound is not modified.
func (s *Sound) SetName(name string) error {
	if n := utf8.RuneCountInString(name); n > NameMaxLen {
		return fmt.Errorf("%w - %q has %d", ErrNameTooLong, name, n)
	}
	if strings.IndexByte(name, 0x00) >= 0 {
		return fmt.Errorf("%w - %q contains a nul", ErrNameEncode, name)
	}

	raw, err := charmap.ISO8859_1.NewEncoder().String(name)
	if err != nil {
		return fmt.Errorf("%w - %q", ErrNameEncode, name)
	}

	copy(s.data[nameOffset:], raw)
	s.data[nameOffset+len(raw)] = 0x00
	s.name = name

	return nil
}

func (s *Sound) Tags() TagSet {
	return s.tags
}

func (s *Sound) SetTags(tags TagSet) {
	binary.BigEndian.PutUint32(s.data[tagsOffset:nameOffset], uint32(tags))
	s.tags = tags
}

// TagLabels returns the device labels of the set tags, in tag order.
func (s *Sound) TagLabels() []string {
	table := tagLabels[s.device]

	labels := make([]string, 0, s.tags.Len())
	for _, t := range s.tags.Slice() {
		labels = append(labels, table[t])
	}
	return labels
}

// MarshalSysEx encodes the sound as a complete dump message.
func (s *Sound) MarshalSysEx() ([]byte, error) {
	if s.program > MaxProgram {
		return nil, fmt.Errorf("%w - %d", ErrProgramRange, s.program)
	}

	encoded := sysex.Encode(s.data)
	if len(encoded)+trailerLen > sysex.MaxNumber {
		return nil, fmt.Errorf("%w - %d bytes", ErrPayloadTooLarge, len(encoded))
	}

	checksum := sysex.Checksum(encoded)
	length := sysex.Encode14(len(encoded) + trailerLen)

	body := make([]byte, 0, minMessage-2+len(encoded))
	body = append(body, manufacturerID...)
	body = append(body, byte(s.device))
	body = append(body, dumpPrefix...)
	body = append(body, s.program)
	body = append(body, encoded...)
	body = append(body, checksum[:]...)
	body = append(body, length[:]...)

	return sysex.Wrap(body), nil
}

func (s *Sound) String() string {
	return fmt.Sprintf("%-*s [%s]", NameMaxLen, s.name, strings.Join(s.TagLabels(), ", "))
}
