package device

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"sync"
	"sync/atomic"

	"usbled/host/serial"
)

// fakePort records writes and plays back a canned reply
type fakePort struct {
	mu         sync.Mutex
	reply      []byte
	written    bytes.Buffer
	writeErr   error
	shortWrite bool
	closed     bool
	flushes    int
}

func (p *fakePort) Read(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return 0, fs.ErrClosed
	}
	if len(p.reply) == 0 {
		return 0, io.EOF
	}
	n := copy(b, p.reply)
	p.reply = p.reply[n:]
	return n, nil
}

func (p *fakePort) Write(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return 0, fs.ErrClosed
	}
	if p.writeErr != nil {
		return 0, p.writeErr
	}
	if p.shortWrite && len(b) > 1 {
		p.written.Write(b[:1])
		return 1, nil
	}
	return p.written.Write(b)
}

func (p *fakePort) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

func (p *fakePort) Flush() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.flushes++
	return nil
}

func (p *fakePort) Written() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.written.String()
}

func (p *fakePort) Closed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

func (p *fakePort) failWrites(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.writeErr = err
}

// fakeOpener hands out ports by descriptor name
type fakeOpener struct {
	ports   map[string]*fakePort
	openErr map[string]error
	opened  []string
}

func newFakeOpener() *fakeOpener {
	return &fakeOpener{
		ports:   make(map[string]*fakePort),
		openErr: make(map[string]error),
	}
}

func (o *fakeOpener) add(name string, reply string) *fakePort {
	p := &fakePort{reply: []byte(reply)}
	o.ports[name] = p
	return p
}

func (o *fakeOpener) Open(d PortDescriptor) (serial.Port, error) {
	o.opened = append(o.opened, d.Name)
	if err, ok := o.openErr[d.Name]; ok {
		return nil, err
	}
	p, ok := o.ports[d.Name]
	if !ok {
		return nil, errors.New("no such device")
	}
	return p, nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// blockingPort never answers. Read holds the lock for the whole call and
// Close needs the same lock, the way libusb-backed handles behave.
type blockingPort struct {
	mu      sync.Mutex
	release chan struct{}
	once    sync.Once
	closed  atomic.Bool
}

func newBlockingPort() *blockingPort {
	return &blockingPort{release: make(chan struct{})}
}

func (p *blockingPort) Read(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	<-p.release
	return 0, fs.ErrClosed
}

func (p *blockingPort) Write(b []byte) (int, error) {
	return len(b), nil
}

func (p *blockingPort) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed.Store(true)
	return nil
}

func (p *blockingPort) Flush() error {
	return nil
}

// unblock lets a pending Read return
func (p *blockingPort) unblock() {
	p.once.Do(func() { close(p.release) })
}
