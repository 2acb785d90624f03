package elektron

import (
	"errors"
	"testing"

	"github.com/Garik-/digitools/pkg/sysex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func testSounds(t *testing.T) []*Sound {
	t.Helper()

	kick := newTestSound(t, 0, "Kick1")
	kick.SetTags(TagSet(1 << 0))

	bass := newTestSound(t, 1, "Sub Bass")
	bassTags, err := NewTagSet(2, 10, 30)
	require.NoError(t, err)
	bass.SetTags(bassTags)

	pad, err := NewSound(127, AnalogFour, newPayload("Wide Pad", [4]byte{0x00, 0x00, 0x10, 0x04}))
	require.NoError(t, err)

	return []*Sound{kick, bass, pad}
}

func assertSameSound(t *testing.T, want, got *Sound) {
	t.Helper()
	assert.Equal(t, want.Program(), got.Program())
	assert.Equal(t, want.Device(), got.Device())
	assert.Equal(t, want.Name(), got.Name())
	assert.Equal(t, want.Tags(), got.Tags())
	assert.Equal(t, want.Data(), got.Data())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	sounds := testSounds(t)

	buf, err := Save(sounds)
	require.NoError(t, err)

	bank, err := Load(buf)
	require.NoError(t, err)
	assert.Empty(t, bank.Failures)
	require.Len(t, bank.Sounds, len(sounds))

	for i := range sounds {
		assertSameSound(t, sounds[i], bank.Sounds[i])
	}

	again, err := bank.Bytes()
	require.NoError(t, err)
	assert.Equal(t, buf, again)
}

func TestLoadSkipsBadMessages(t *testing.T) {
	sounds := testSounds(t)

	msgs := make([][]byte, 0, len(sounds))
	for _, s := range sounds {
		msg, err := s.MarshalSysEx()
		require.NoError(t, err)
		msgs = append(msgs, msg)
	}
	msgs[1][payloadOffset+3] ^= 0x01

	foreign := []byte{0xF0, 0x43, 0x10, 0x4C, 0x00, 0x00, 0x7E, 0x00, 0xF7}

	buf := sysex.Join(msgs[0], foreign, msgs[1], msgs[2])

	core, logs := observer.New(zapcore.WarnLevel)
	EnableDebugLogging(zap.New(core))
	defer EnableDebugLogging(zap.NewNop())

	bank, err := Load(buf)
	require.NoError(t, err)

	require.Len(t, bank.Sounds, 2)
	assertSameSound(t, sounds[0], bank.Sounds[0])
	assertSameSound(t, sounds[2], bank.Sounds[1])

	require.Len(t, bank.Failures, 2)
	assert.Equal(t, 2, bank.Failures[0].Position)
	assert.Equal(t, len(msgs[0]), bank.Failures[0].Offset)
	assert.ErrorIs(t, bank.Failures[0], ErrManufacturerMismatch)
	assert.Equal(t, 3, bank.Failures[1].Position)
	assert.ErrorIs(t, bank.Failures[1], ErrChecksumMismatch)

	assert.Equal(t, 2, logs.FilterMessage("skip message").Len())
}

func TestLoadCodecFailure(t *testing.T) {
	s := newTestSound(t, 9, "Odd")
	msg, err := s.MarshalSysEx()
	require.NoError(t, err)

	// drop the payload down to a lone mask byte and fix up the trailer
	body := append([]byte(nil), msg[1:payloadOffset]...)
	body = append(body, 0x00)
	sum := sysex.Checksum([]byte{0x00})
	length := sysex.Encode14(1 + trailerLen)
	body = append(body, sum[:]...)
	body = append(body, length[:]...)

	bank, err := Load(sysex.Wrap(body))
	require.NoError(t, err)
	assert.Empty(t, bank.Sounds)
	require.Len(t, bank.Failures, 1)
	assert.ErrorIs(t, bank.Failures[0], sysex.ErrCodec)
}

func TestLoadTrailingGarbage(t *testing.T) {
	sounds := testSounds(t)[:2]

	buf, err := Save(sounds)
	require.NoError(t, err)
	buf = append(buf, 0x01, 0x02, 0x03)

	bank, err := Load(buf)
	assert.ErrorIs(t, err, sysex.ErrFraming)
	require.NotNil(t, bank)
	require.Len(t, bank.Sounds, 2)
	assertSameSound(t, sounds[0], bank.Sounds[0])
	assertSameSound(t, sounds[1], bank.Sounds[1])
}

func TestLoadTruncated(t *testing.T) {
	buf, err := Save(testSounds(t))
	require.NoError(t, err)

	bank, err := Load(buf[:len(buf)-1])
	assert.ErrorIs(t, err, sysex.ErrTruncated)
	assert.Len(t, bank.Sounds, 2)
}

func TestSaveAllOrNothing(t *testing.T) {
	all := testSounds(t)
	big, err := NewSound(40, Digitone, make([]byte, 16000))
	require.NoError(t, err)
	sounds := []*Sound{all[0], big, all[1]}

	buf, err := Save(sounds)
	assert.Nil(t, buf)

	var saveErr *SaveError
	require.True(t, errors.As(err, &saveErr))
	assert.Equal(t, 2, saveErr.Position)
	assert.Equal(t, uint8(40), saveErr.Program)
	assert.ErrorIs(t, err, ErrPayloadTooLarge)
}

func TestBankDevice(t *testing.T) {
	_, ok := (&Bank{}).Device()
	assert.False(t, ok)

	d, ok := (&Bank{Sounds: testSounds(t)}).Device()
	assert.True(t, ok)
	assert.Equal(t, Digitone, d)
}

func TestDumpData(t *testing.T) {
	sounds := testSounds(t)
	data := DumpData(sounds)

	require.Len(t, data, 3*64)
	assert.Equal(t, sounds[1].Data(), data[64:128])
}
