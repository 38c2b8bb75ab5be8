package keys

import (
	"testing"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/temoto/inputevent-go"
	"github.com/webosce/nyx-modules-qemux86/log2"
	"golang.org/x/sys/unix"
)

// pipeSource returns an EventSource reading from a pipe and the write end.
func pipeSource(t testing.TB) (*EventSource, int) {
	fds := make([]int, 2)
	require.NoError(t, unix.Pipe(fds))
	t.Cleanup(func() {
		unix.Close(fds[0])
		unix.Close(fds[1])
	})
	es := NewEventSource("test-pipe", log2.NewTest(t, log2.LDebug))
	es.fd = fds[0]
	return es, fds[1]
}

func writeRecords(t testing.TB, fd int, records []inputevent.InputEvent, extraBytes int) {
	bs := batchBytes(records)
	if extraBytes > 0 {
		bs = append(bs, make([]byte, extraBytes)...)
	}
	n, err := unix.Write(fd, bs)
	require.NoError(t, err)
	require.Equal(t, len(bs), n)
}

func TestPollReadNotReady(t *testing.T) {
	t.Parallel()

	es, _ := pipeSource(t)
	batch := make([]inputevent.InputEvent, BatchCapacity)
	n, err := es.PollRead(batch)
	assert.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestPollReadBatch(t *testing.T) {
	t.Parallel()

	es, wfd := pipeSource(t)
	writeRecords(t, wfd, []inputevent.InputEvent{
		{Type: EvKey, Code: codeVolumeUp, Value: 1},
		{Type: EvSyn},
		{Type: EvKey, Code: codeVolumeUp, Value: 0},
	}, 0)

	batch := make([]inputevent.InputEvent, BatchCapacity)
	n, err := es.PollRead(batch)
	require.NoError(t, err)
	require.Equal(t, 3, n)
	assert.Equal(t, EvKey, batch[0].Type)
	assert.Equal(t, codeVolumeUp, batch[0].Code)
	assert.Equal(t, int32(1), batch[0].Value)
	assert.Equal(t, int32(0), batch[2].Value)
}

func TestPollReadPartialRecordTruncated(t *testing.T) {
	t.Parallel()

	es, wfd := pipeSource(t)
	writeRecords(t, wfd, []inputevent.InputEvent{
		{Type: EvKey, Code: codeMute, Value: 1},
		{Type: EvKey, Code: codeMute, Value: 0},
	}, inputevent.EventSizeof/2)

	batch := make([]inputevent.InputEvent, BatchCapacity)
	n, err := es.PollRead(batch)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestPollReadNeverOpened(t *testing.T) {
	t.Parallel()

	es := NewEventSource("", log2.NewTest(t, log2.LDebug))
	batch := make([]inputevent.InputEvent, BatchCapacity)
	n, err := es.PollRead(batch)
	assert.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, InvalidFd, es.Fd())
}

func TestOpenNotConfigured(t *testing.T) {
	t.Parallel()

	es := NewEventSource("", log2.NewTest(t, log2.LDebug))
	err := es.Open()
	assert.True(t, errors.IsNotFound(err))
}

func TestOpenMissingDevice(t *testing.T) {
	t.Parallel()

	es := NewEventSource("/nonexistent/keypad0", log2.NewTest(t, log2.LDebug))
	err := es.Open()
	assert.True(t, errors.IsNotFound(err))
	assert.Equal(t, InvalidFd, es.Fd())
}

func TestCloseIdempotent(t *testing.T) {
	t.Parallel()

	es, _ := pipeSource(t)
	assert.NoError(t, es.Close())
	assert.Equal(t, InvalidFd, es.Fd())
	assert.NoError(t, es.Close())
}
