package sysex

import (
	"bytes"
	"errors"
	"fmt"

	"gitlab.com/gomidi/midi/v2"
)

const (
	Start = 0xF0
	End   = 0xF7
)

var (
	// ErrFraming is reported when a byte other than the start marker is found
	// where the next message should begin.
	ErrFraming = errors.New("sysex: invalid message framing")
	// ErrTruncated is reported when a message has no end marker. It wraps ErrFraming.
	ErrTruncated = fmt.Errorf("%w: missing end marker", ErrFraming)
)

// Scanner splits a buffer into SysEx messages, one per call to Scan.
// Scanning stops at the first framing error: past that point message
// boundaries cannot be trusted.
type Scanner struct {
	buf    []byte
	pos    int
	offset int
	msg    midi.Message
	err    error
}

func NewScanner(buf []byte) *Scanner {
	return &Scanner{buf: buf}
}

// Scan advances to the next message. It returns false at the end of the
// buffer or on error; Err tells the two apart.
func (s *Scanner) Scan() bool {
	s.msg = nil
	if s.err != nil || s.pos >= len(s.buf) {
		return false
	}

	if s.buf[s.pos] != Start {
		s.err = fmt.Errorf("%w - expected %#x at offset %d, got %#x", ErrFraming, Start, s.pos, s.buf[s.pos])
		return false
	}

	n := bytes.IndexByte(s.buf[s.pos+1:], End)
	if n < 0 {
		s.err = fmt.Errorf("%w - message at offset %d", ErrTruncated, s.pos)
		return false
	}

	end := s.pos + 1 + n + 1
	s.offset = s.pos
	s.msg = midi.Message(s.buf[s.pos:end])
	s.pos = end

	return true
}

// Message returns the message found by the last Scan, markers included.
// It aliases the scanned buffer.
func (s *Scanner) Message() midi.Message {
	return s.msg
}

// Offset returns the position of the current message in the buffer.
func (s *Scanner) Offset() int {
	return s.offset
}

func (s *Scanner) Err() error {
	return s.err
}

// Split returns every message framed in buf. On a framing error the
// messages found before it are returned along with the error.
func Split(buf []byte) ([]midi.Message, error) {
	var msgs []midi.Message

	s := NewScanner(buf)
	for s.Scan() {
		msgs = append(msgs, s.Message())
	}

	return msgs, s.Err()
}

// Join concatenates messages back into one buffer. The markers already
// delimit each message, so no separator is needed.
func Join(msgs ...midi.Message) []byte {
	var size int
	for _, m := range msgs {
		size += len(m)
	}

	out := make([]byte, 0, size)
	for _, m := range msgs {
		out = append(out, m...)
	}

	return out
}

// Wrap frames body with the start and end markers.
func Wrap(body []byte) midi.Message {
	return midi.SysEx(body)
}

// Body returns the bytes between the markers, or false if msg is not a
// SysEx message.
func Body(msg midi.Message) ([]byte, bool) {
	var body []byte
	if !msg.GetSysEx(&body) {
		return nil, false
	}
	return body, true
}
