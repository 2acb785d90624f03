// Package table exports sound names and tags to CSV and applies edited CSV
// files back to loaded sounds.
package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Garik-/digitools/pkg/elektron"
)

const (
	PositionColumn = "#"
	NameColumn     = "Sound Name"

	// DefaultMark is written in the cells of tags that are set.
	DefaultMark = "●"
)

var (
	// ErrHeader is returned when the CSV header lacks a required column.
	ErrHeader = errors.New("table: unexpected header")
	// ErrPosition is returned for a row whose position is not a loaded sound.
	ErrPosition = errors.New("table: invalid sound position")
	ErrEmpty    = errors.New("table: no sounds")
)

type Options struct {
	Mark string
}

// Export writes one row per sound. The tag columns are named with the
// labels of the first sound's device.
func Export(w io.Writer, sounds []*elektron.Sound, opts Options) error {
	if len(sounds) == 0 {
		return ErrEmpty
	}
	if opts.Mark == "" {
		opts.Mark = DefaultMark
	}

	labels, err := elektron.Labels(sounds[0].Device())
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(append([]string{PositionColumn, NameColumn}, labels...)); err != nil {
		return err
	}

	row := make([]string, 2+elektron.TagCount)
	for i, sound := range sounds {
		row[0] = fmt.Sprintf("%03d", i+1)
		row[1] = sound.Name()

		tags := sound.Tags()
		for t := elektron.Tag(0); t < elektron.TagCount; t++ {
			row[2+int(t)] = ""
			if tags.Has(t) {
				row[2+int(t)] = opts.Mark
			}
		}

		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

type columns struct {
	position int
	name     int
	tags     [elektron.TagCount]int
}

func parseHeader(header []string, device elektron.Device) (*columns, error) {
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}

	c := &columns{}
	var ok bool
	if c.position, ok = index[PositionColumn]; !ok {
		return nil, fmt.Errorf("%w - missing %q", ErrHeader, PositionColumn)
	}
	if c.name, ok = index[NameColumn]; !ok {
		return nil, fmt.Errorf("%w - missing %q", ErrHeader, NameColumn)
	}

	labels, err := elektron.Labels(device)
	if err != nil {
		return nil, err
	}
	for t, label := range labels {
		if c.tags[t], ok = index[label]; !ok {
			return nil, fmt.Errorf("%w - missing %v tag %q", ErrHeader, device, label)
		}
	}

	return c, nil
}

// Update reads rows keyed by position and applies their name and tags to the
// sound at that position. The updated sounds are returned in row order.
// A non-empty tag cell marks the tag as set.
func Update(r io.Reader, sounds []*elektron.Sound) ([]*elektron.Sound, error) {
	if len(sounds) == 0 {
		return nil, ErrEmpty
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("%w - %v", ErrHeader, err)
	}

	cols, err := parseHeader(header, sounds[0].Device())
	if err != nil {
		return nil, err
	}

	var out []*elektron.Sound
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		sound, err := applyRow(record, cols, sounds)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, sound)
	}

	return out, nil
}

func applyRow(record []string, cols *columns, sounds []*elektron.Sound) (*elektron.Sound, error) {
	cell := func(i int) string {
		if i < len(record) {
			return record[i]
		}
		return ""
	}

	position, err := strconv.Atoi(strings.TrimSpace(cell(cols.position)))
	if err != nil {
		return nil, fmt.Errorf("%w - %q", ErrPosition, cell(cols.position))
	}
	if position < 1 || position > len(sounds) {
		return nil, fmt.Errorf("%w - %d of %d", ErrPosition, position, len(sounds))
	}

	var tags elektron.TagSet
	for t, i := range cols.tags {
		if strings.TrimSpace(cell(i)) != "" {
			tags = tags.With(elektron.Tag(t))
		}
	}

	sound := sounds[position-1]
	if err := sound.SetName(cell(cols.name)); err != nil {
		return nil, err
	}
	sound.SetTags(tags)

	return sound, nil
}
