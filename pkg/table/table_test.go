package table

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Garik-/digitools/pkg/elektron"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSound(t *testing.T, device elektron.Device, program uint8, name string, tags ...elektron.Tag) *elektron.Sound {
	t.Helper()

	payload := make([]byte, 40)
	copy(payload[12:], name)

	s, err := elektron.NewSound(program, device, payload)
	require.NoError(t, err)

	set, err := elektron.NewTagSet(tags...)
	require.NoError(t, err)
	s.SetTags(set)

	return s
}

func header(t *testing.T, device elektron.Device) string {
	t.Helper()
	labels, err := elektron.Labels(device)
	require.NoError(t, err)
	return "#,Sound Name," + strings.Join(labels, ",")
}

func TestExport(t *testing.T) {
	sounds := []*elektron.Sound{
		newSound(t, elektron.Digitone, 0, "Kick1", 0, 31),
		newSound(t, elektron.Digitone, 1, "Bass, deep", 2),
	}

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, sounds, Options{}))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, header(t, elektron.Digitone), lines[0])
	assert.Equal(t, "001,Kick1,●"+strings.Repeat(",", 31)+"●", lines[1])
	assert.Equal(t, `002,"Bass, deep",,,x`+strings.Repeat(",", 29), strings.Replace(lines[2], "●", "x", 1))
}

func TestExportEmpty(t *testing.T) {
	assert.ErrorIs(t, Export(&bytes.Buffer{}, nil, Options{}), ErrEmpty)
}

func TestExportUpdateRoundTrip(t *testing.T) {
	sounds := []*elektron.Sound{
		newSound(t, elektron.AnalogFour, 0, "Bass", 0),
		newSound(t, elektron.AnalogFour, 1, "Lead", 1, 5),
	}

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, sounds, Options{Mark: "x"}))

	edited := strings.Replace(buf.String(), "002,Lead,", "002,Acid Lead,", 1)

	out, err := Update(strings.NewReader(edited), sounds)
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.Equal(t, "Bass", out[0].Name())
	assert.Equal(t, "Acid Lead", out[1].Name())
	assert.Equal(t, []elektron.Tag{1, 5}, out[1].Tags().Slice())
}

func TestUpdate(t *testing.T) {
	sounds := []*elektron.Sound{
		newSound(t, elektron.Digitone, 0, "One", 3),
		newSound(t, elektron.Digitone, 1, "Two"),
		newSound(t, elektron.Digitone, 2, "Three"),
	}

	row := func(pos, name string, set ...int) string {
		cells := make([]string, elektron.TagCount)
		for _, i := range set {
			cells[i] = "yes"
		}
		return pos + "," + name + "," + strings.Join(cells, ",")
	}

	in := strings.Join([]string{
		header(t, elektron.Digitone),
		row("003", "Drei", 4, 30),
		row("1", "Eins"),
	}, "\n")

	out, err := Update(strings.NewReader(in), sounds)
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.Same(t, sounds[2], out[0])
	assert.Equal(t, "Drei", out[0].Name())
	assert.Equal(t, []elektron.Tag{4, 30}, out[0].Tags().Slice())

	assert.Same(t, sounds[0], out[1])
	assert.Equal(t, "Eins", out[1].Name())
	assert.Zero(t, out[1].Tags())

	assert.Equal(t, "Two", sounds[1].Name())
}

func TestUpdateErrors(t *testing.T) {
	sounds := []*elektron.Sound{newSound(t, elektron.Digitone, 0, "One")}
	filler := strings.Repeat(",", elektron.TagCount)

	_, err := Update(strings.NewReader("#,Name\n"), sounds)
	assert.ErrorIs(t, err, ErrHeader)

	_, err = Update(strings.NewReader(header(t, elektron.AnalogFour)+"\n"), sounds)
	assert.ErrorIs(t, err, ErrHeader)

	_, err = Update(strings.NewReader(header(t, elektron.Digitone)+"\n002,Two"+filler+"\n"), sounds)
	assert.ErrorIs(t, err, ErrPosition)

	_, err = Update(strings.NewReader(header(t, elektron.Digitone)+"\nabc,Two"+filler+"\n"), sounds)
	assert.ErrorIs(t, err, ErrPosition)

	_, err = Update(strings.NewReader(header(t, elektron.Digitone)+"\n001,a name too long to fit"+filler+"\n"), sounds)
	assert.ErrorIs(t, err, elektron.ErrNameTooLong)
	assert.Contains(t, err.Error(), "line 2")
	assert.Equal(t, "One", sounds[0].Name())

	_, err = Update(strings.NewReader(""), sounds)
	assert.ErrorIs(t, err, ErrHeader)

	_, err = Update(strings.NewReader(header(t, elektron.Digitone)), nil)
	assert.ErrorIs(t, err, ErrEmpty)
}
