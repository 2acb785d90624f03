package elektron

import (
	"github.com/Garik-/digitools/pkg/sysex"
	"gitlab.com/gomidi/midi/v2"
	"go.uber.org/zap"
)

// Bank is the result of loading a sound dump file.
type Bank struct {
	Sounds []*Sound
	// Failures lists the messages that were skipped, in file order.
	Failures []*Failure
}

// Device returns the device of the first sound, or false for an empty bank.
func (b *Bank) Device() (Device, bool) {
	if len(b.Sounds) == 0 {
		return 0, false
	}
	return b.Sounds[0].Device(), true
}

func (b *Bank) Bytes() ([]byte, error) {
	return Save(b.Sounds)
}

// Load decodes every sound dump in buf. A message that fails validation or
// decoding is recorded in Bank.Failures and skipped. A framing error ends
// the scan and is returned together with the sounds decoded before it.
func Load(buf []byte) (*Bank, error) {
	log := bankLog.Named("load")
	bank := &Bank{}

	s := sysex.NewScanner(buf)
	for position := 1; s.Scan(); position++ {
		sound, err := soundFromMessage(s.Message())
		if err != nil {
			log.Warn("skip message", zap.Int("position", position), zap.Int("offset", s.Offset()), zap.Error(err))
			bank.Failures = append(bank.Failures, &Failure{Position: position, Offset: s.Offset(), Err: err})
			continue
		}

		log.Debug("sound", zap.Int("position", position), zap.Uint8("program", sound.Program()),
			zap.String("name", sound.Name()), zap.Stringer("device", sound.Device()))
		bank.Sounds = append(bank.Sounds, sound)
	}

	if err := s.Err(); err != nil {
		log.Error("framing", zap.Int("sounds", len(bank.Sounds)), zap.Error(err))
		return bank, err
	}

	return bank, nil
}

func soundFromMessage(msg []byte) (*Sound, error) {
	if err := Validate(msg); err != nil {
		return nil, err
	}

	body, ok := sysex.Body(msg)
	if !ok {
		return nil, sysex.ErrFraming
	}

	// body starts one byte after the start marker and stops before the end marker
	program := body[programOffset-1]
	payload, err := sysex.Decode(body[payloadOffset-1 : len(body)-trailerLen+1])
	if err != nil {
		return nil, err
	}

	return NewSound(program, Device(msg[deviceOffset]), payload)
}

// Save serializes the sounds into one buffer. Nothing is returned unless
// every sound could be encoded.
func Save(sounds []*Sound) ([]byte, error) {
	log := bankLog.Named("save")
	msgs := make([]midi.Message, 0, len(sounds))

	for i, sound := range sounds {
		msg, err := sound.MarshalSysEx()
		if err != nil {
			log.Error("marshal", zap.Int("position", i+1), zap.Error(err))
			return nil, &SaveError{Position: i + 1, Program: sound.Program(), Err: err}
		}
		msgs = append(msgs, msg)
	}

	out := sysex.Join(msgs...)

	log.Debug("saved", zap.Int("sounds", len(sounds)), zap.Int("bytes", len(out)))
	return out, nil
}

// DumpData concatenates the decoded payloads of the sounds.
func DumpData(sounds []*Sound) []byte {
	var out []byte
	for _, sound := range sounds {
		out = append(out, sound.data...)
	}
	return out
}
