package keys

import (
	"time"

	"github.com/juju/errors"
	"github.com/temoto/atomic_clock"
	"github.com/temoto/inputevent-go"
	"github.com/webosce/nyx-modules-qemux86/log2"
)

type batchSource interface {
	PollRead([]inputevent.InputEvent) (int, error)
	Fd() int
	Close() error
}

// Session owns one event source and the iteration state over the current
// raw batch. Not safe for concurrent use, the host drives it from a single
// event loop.
//
// Iteration states: Idle (cursor==0, next GetEvent refills the batch),
// Draining (0<cursor<count), Exhausted (cursor>=count, collapses back to
// Idle at the end of the same call).
type Session struct {
	Log    *log2.Log
	source batchSource

	batch  [BatchCapacity]inputevent.InputEvent
	count  int
	cursor int

	// scratch holds the event being filled while scanning a batch;
	// outstanding is the one handed to the caller and not yet released.
	scratch     *KeyEvent
	outstanding *KeyEvent

	lastRead  atomic_clock.Clock
	lastEvent atomic_clock.Clock
}

// Open allocates a session and tries to open the input device. A missing
// or unconfigured device is logged and tolerated: the session opens fine
// and just never yields events, matching deployments without the hardware.
func Open(device string, log *log2.Log) (*Session, error) {
	src := NewEventSource(device, log)
	if err := src.Open(); err != nil {
		log.Errorf("keys: no event source err=%v", err)
	}
	return &Session{Log: log, source: src}, nil
}

// EventSourceFd returns the descriptor the host should poll for readiness
// before calling GetEvent. InvalidFd when no device is present.
func (s *Session) EventSourceFd() (int, error) {
	if s == nil {
		return InvalidFd, errors.NotValidf("keys: nil session")
	}
	return s.source.Fd(), nil
}

// GetEvent returns the next translated key event from the current batch,
// refilling the batch from the device when the previous one is drained.
// (nil, nil) means no event was available this call, a normal outcome.
// A read error leaves the session usable, the next call retries.
func (s *Session) GetEvent() (*KeyEvent, error) {
	if s == nil {
		return nil, errors.NotValidf("keys: nil session")
	}
	if s.outstanding != nil {
		return nil, errors.NotValidf("keys: previous event not released")
	}

	if s.cursor == 0 {
		n, err := s.source.PollRead(s.batch[:])
		if err != nil {
			s.count = 0
			return nil, errors.Trace(err)
		}
		s.count = n
		s.scratch = nil
		if n > 0 {
			s.lastRead.SetNow()
		}
	}

	if s.scratch == nil {
		s.scratch = new(KeyEvent)
	}

	var out *KeyEvent
	for s.cursor < s.count {
		record := &s.batch[s.cursor]
		s.cursor++
		if record.Type != EvKey {
			continue
		}
		s.scratch.Key, s.scratch.Type = Lookup(record.Code)
		s.scratch.Press = record.Value != int32(inputevent.KeyStateUp)
		s.scratch.AutoRepeat = record.Value > int32(inputevent.KeyStateDown)
		out = s.scratch
		s.scratch = nil
		s.lastEvent.SetNow()
		break
	}

	if s.cursor >= s.count {
		s.cursor = 0
	}
	if out != nil {
		s.outstanding = out
		s.Log.Debugf("keys: event %s", out.String())
	}
	return out, nil
}

// ReleaseEvent returns ownership of an event obtained from GetEvent.
func (s *Session) ReleaseEvent(e *KeyEvent) error {
	if s == nil {
		return errors.NotValidf("keys: nil session")
	}
	if e == nil {
		return errors.NotValidf("keys: nil event")
	}
	if e == s.outstanding {
		s.outstanding = nil
	}
	return nil
}

// Close releases the held event and the device descriptor. Safe to call
// on a nil session and in any iteration state.
func (s *Session) Close() error {
	if s == nil {
		return nil
	}
	s.outstanding = nil
	s.scratch = nil
	s.count = 0
	s.cursor = 0
	return s.source.Close()
}

// SinceLastEvent reports how long ago the session last produced a key
// event, for host status reporting. Zero-clock means never.
func (s *Session) SinceLastEvent() time.Duration {
	if s.lastEvent.IsZero() {
		return -1
	}
	return atomic_clock.Since(&s.lastEvent)
}

// SinceLastRead is like SinceLastEvent but for raw batch reads.
func (s *Session) SinceLastRead() time.Duration {
	if s.lastRead.IsZero() {
		return -1
	}
	return atomic_clock.Since(&s.lastRead)
}
