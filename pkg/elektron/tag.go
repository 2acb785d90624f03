package elektron

import (
	"fmt"
	"math/bits"
	"strings"
)

// TagCount is the width of the tag bitfield.
const TagCount = 32

// Tag is a bit index into the tag bitfield. Its meaning depends on the
// device, see Labels.
type Tag uint8

// TagSet is the tag bitfield: bit i is set when tag i is present.
type TagSet uint32

// NewTagSet builds a set from tag indices.
func NewTagSet(tags ...Tag) (TagSet, error) {
	var s TagSet
	for _, t := range tags {
		if t >= TagCount {
			return 0, fmt.Errorf("%w - %d", ErrTagRange, t)
		}
		s = s.With(t)
	}
	return s, nil
}

func (s TagSet) Has(t Tag) bool {
	return t < TagCount && s&(1<<t) != 0
}

func (s TagSet) With(t Tag) TagSet {
	if t >= TagCount {
		return s
	}
	return s | 1<<t
}

func (s TagSet) Without(t Tag) TagSet {
	if t >= TagCount {
		return s
	}
	return s &^ (1 << t)
}

func (s TagSet) Len() int {
	return bits.OnesCount32(uint32(s))
}

// Slice returns the tags in ascending order.
func (s TagSet) Slice() []Tag {
	tags := make([]Tag, 0, s.Len())
	for t := Tag(0); t < TagCount; t++ {
		if s.Has(t) {
			tags = append(tags, t)
		}
	}
	return tags
}

var tagLabels = map[Device][TagCount]string{
	AnalogFour: {
		"BASS", "LEAD", "PAD", "TEXTURE", "CHORD", "KEYS", "BRASS", "STRINGS",
		"TRANSIENT", "SOUND FX", "KICK", "SNARE", "HIHAT", "PERCUSSIO", "ATMOSPHER", "EVOLVING",
		"NOISY", "GLITCH", "HARD", "SOFT", "EXPRESSIV", "DEEP", "DARK", "BRIGHT",
		"VINTAGE", "ACID", "EPIC", "FAIL", "TEMPO SYN", "INPUT", "MINE", "FAVOURITE",
	},
	Digitone: {
		"KICK", "SNAR", "DEEP", "BRAS", "STRI", "PERC", "HHAT", "CYMB",
		"EVOL", "EXPR", "BASS", "LEAD", "PAD", "TXTR", "CRD", "SFX",
		"ARP", "METL", "ACOU", "ATMO", "NOIS", "GLCH", "HARD", "SOFT",
		"DARK", "BRGT", "VNTG", "EPIC", "FAIL", "LOOP", "MINE", "FAV",
	},
}

// Labels returns the 32 tag labels of a device, ordered by tag index.
func Labels(d Device) ([]string, error) {
	table, ok := tagLabels[d]
	if !ok {
		return nil, fmt.Errorf("%w - %v", ErrDeviceUnrecognized, d)
	}
	labels := make([]string, TagCount)
	copy(labels, table[:])
	return labels, nil
}

func Label(d Device, t Tag) (string, error) {
	if t >= TagCount {
		return "", fmt.Errorf("%w - %d", ErrTagRange, t)
	}
	table, ok := tagLabels[d]
	if !ok {
		return "", fmt.Errorf("%w - %v", ErrDeviceUnrecognized, d)
	}
	return table[t], nil
}

// LookupTag finds the tag with the given label, ignoring case.
func LookupTag(d Device, label string) (Tag, bool) {
	table, ok := tagLabels[d]
	if !ok {
		return 0, false
	}
	label = strings.TrimSpace(label)
	for i, l := range table {
		if strings.EqualFold(l, label) {
			return Tag(i), true
		}
	}
	return 0, false
}
