package keys

import (
	"unsafe"

	"github.com/juju/errors"
	"github.com/temoto/inputevent-go"
	"github.com/webosce/nyx-modules-qemux86/log2"
	"golang.org/x/sys/unix"
)

// BatchCapacity is how many raw records one read may return.
const BatchCapacity = 64

// InvalidFd marks a source that was never opened, "no hardware present".
const InvalidFd = -1

// EventSource owns the input device descriptor and performs non-blocking
// batched reads of raw kernel input records.
type EventSource struct {
	Log    *log2.Log
	device string
	fd     int
}

func NewEventSource(device string, log *log2.Log) *EventSource {
	return &EventSource{
		Log:    log,
		device: device,
		fd:     InvalidFd,
	}
}

func (es *EventSource) String() string { return "keys source=" + es.device }

// Open opens the configured device. Missing configuration or device is
// reported as not-found; the source stays usable in the never-ready state.
func (es *EventSource) Open() error {
	if es.device == "" {
		return errors.NotFoundf("keys: input device path not configured")
	}
	fd, err := unix.Open(es.device, unix.O_RDWR|unix.O_NONBLOCK, 0)
	if err != nil {
		return errors.NotFoundf("keys: open device=%s err=%v", es.device, err)
	}
	es.fd = fd
	return nil
}

// Fd exposes the raw descriptor so the host can multiplex this source in
// its own readiness polling loop. InvalidFd if the device was never opened.
func (es *EventSource) Fd() int { return es.fd }

func (es *EventSource) Close() error {
	if es.fd == InvalidFd {
		return nil
	}
	err := unix.Close(es.fd)
	es.fd = InvalidFd
	if err != nil {
		return errors.Annotatef(err, "keys: close device=%s", es.device)
	}
	return nil
}

// PollRead checks descriptor readiness with zero timeout and, if ready,
// reads up to len(batch) whole records. Returns 0 immediately when no data
// is pending. Interrupted reads are retried, a trailing partial record is
// discarded.
func (es *EventSource) PollRead(batch []inputevent.InputEvent) (int, error) {
	if es.fd == InvalidFd || len(batch) == 0 {
		return 0, nil
	}

	pfd := []unix.PollFd{{Fd: int32(es.fd), Events: unix.POLLIN}}
	n, err := unix.Poll(pfd, 0)
	if err != nil || n <= 0 {
		return 0, nil
	}
	if pfd[0].Revents&unix.POLLIN == 0 {
		return 0, nil
	}

	buf := batchBytes(batch)
	for {
		rd, err := unix.Read(es.fd, buf)
		switch {
		case rd > 0:
			return rd / inputevent.EventSizeof, nil
		case err == unix.EINTR:
			continue
		case err == unix.EAGAIN:
			// raced with another consumer, data is gone
			return 0, nil
		case err != nil:
			es.Log.Errorf("keys: read device=%s err=%v", es.device, err)
			return 0, errors.Annotatef(err, "keys: read device=%s", es.device)
		default:
			return 0, nil
		}
	}
}

// batchBytes views the record slice as the byte buffer read(2) fills,
// reusing the kernel struct layout the way inputevent-go parses it.
func batchBytes(batch []inputevent.InputEvent) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(&batch[0])), len(batch)*inputevent.EventSizeof)
}
