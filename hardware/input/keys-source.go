package input

import (
	"time"

	"github.com/juju/errors"
	"github.com/webosce/nyx-modules-qemux86/hardware/keys"
	"github.com/webosce/nyx-modules-qemux86/helpers"
	"golang.org/x/sys/unix"
)

const KeysSourceTag = "keys-session"

const DefaultWaitTimeout = 1 * time.Second

// KeysSource drives a keys.Session from a blocking Read loop: it polls the
// session's exposed descriptor for readiness, then drains translated events
// one at a time, releasing each before handing a copy to the dispatcher.
type KeysSource struct {
	session *keys.Session
	timeout time.Duration
	retry   helpers.Backoff
}

// compile-time interface compliance test
var _ Source = new(KeysSource)

func NewKeysSource(session *keys.Session) *KeysSource {
	return &KeysSource{
		session: session,
		timeout: DefaultWaitTimeout,
		retry:   helpers.Backoff{Min: 100 * time.Millisecond, Max: 5 * time.Second, K: 2},
	}
}

func (ks *KeysSource) String() string { return KeysSourceTag }

func (ks *KeysSource) Read() (keys.KeyEvent, error) {
	for {
		e, err := ks.session.GetEvent()
		if errors.IsNotValid(err) {
			return keys.KeyEvent{}, errors.Trace(err)
		}
		if err != nil {
			// recoverable read failure, the session stays usable
			time.Sleep(ks.retry.DelayAfter(false))
			continue
		}
		if e != nil {
			ks.retry.Reset()
			event := *e
			if err := ks.session.ReleaseEvent(e); err != nil {
				return keys.KeyEvent{}, errors.Trace(err)
			}
			return event, nil
		}
		ks.wait()
	}
}

// wait blocks until the descriptor is readable or the timeout passes.
// Without hardware there is nothing to poll, sleep keeps Read from spinning.
func (ks *KeysSource) wait() {
	fd, err := ks.session.EventSourceFd()
	if err != nil || fd == keys.InvalidFd {
		time.Sleep(ks.timeout)
		return
	}
	pfd := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
	_, _ = unix.Poll(pfd, int(ks.timeout/time.Millisecond))
}
