// Package device owns the connection to the LED board.
//
// A Session holds at most one open handle. UI code (CLI subcommands, the
// interactive shell) calls Connect, ToggleLed and Disconnect from a single
// goroutine; Session is not safe for concurrent use.
package device

import (
	"errors"
	"fmt"
	"io"
	"time"

	"usbled/host/logging"
	"usbled/host/serial"
	"usbled/protocol"
)

// DefaultProbeTimeout bounds the wait for a probe echo
const DefaultProbeTimeout = protocol.EchoTimeoutMs * time.Millisecond

// LedState is the LED state as last commanded by the session
type LedState bool

const (
	LedOff LedState = false
	LedOn  LedState = true
)

func (l LedState) String() string {
	if l {
		return "on"
	}
	return "off"
}

// Session represents a connection to the LED board
type Session struct {
	opener       Opener
	logger       logging.Logger
	probe        bool
	probeTimeout time.Duration
	encoding     protocol.Encoding
	attempts     int
	retryDelay   time.Duration
	sleep        func(time.Duration)

	// Connection state
	handle    serial.Port
	current   PortDescriptor
	connected bool
	ledOn     bool
}

// Option configures a Session
type Option func(*Session)

// WithOpener sets how descriptors are opened
func WithOpener(o Opener) Option {
	return func(s *Session) { s.opener = o }
}

// WithProbe enables or disables the connect handshake
func WithProbe(enabled bool) Option {
	return func(s *Session) { s.probe = enabled }
}

// WithProbeTimeout sets the probe echo timeout
func WithProbeTimeout(d time.Duration) Option {
	return func(s *Session) {
		if d > 0 {
			s.probeTimeout = d
		}
	}
}

// WithEncoding selects byte ('N'/'F') or text ("ON"/"OFF") LED commands
func WithEncoding(enc protocol.Encoding) Option {
	return func(s *Session) { s.encoding = enc }
}

// WithRetry makes Connect rescan the candidate list up to attempts times,
// sleeping delay between scans.
func WithRetry(attempts int, delay time.Duration) Option {
	return func(s *Session) {
		if attempts > 0 {
			s.attempts = attempts
		}
		s.retryDelay = delay
	}
}

// WithLogger sets the session logger
func WithLogger(l logging.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewSession creates a new Session (not yet connected)
func NewSession(opts ...Option) *Session {
	s := &Session{
		opener:       DefaultOpener{},
		logger:       logging.GetLogger("device"),
		probeTimeout: DefaultProbeTimeout,
		attempts:     1,
		sleep:        time.Sleep,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Connect tries candidates in order and keeps the first one that opens and,
// when probing is enabled, echoes the probe byte. An existing connection is
// released first.
func (s *Session) Connect(candidates []PortDescriptor) error {
	if s.connected {
		s.Disconnect()
	}

	if len(candidates) == 0 {
		s.logger.Warn("No candidate ports to try")
		return noDeviceFound(nil, 0)
	}

	var lastErr error
	for attempt := 1; attempt <= s.attempts; attempt++ {
		if attempt > 1 {
			s.logger.Debug("Retrying connect", "attempt", attempt, "delay", s.retryDelay)
			s.sleep(s.retryDelay)
		}

		for _, c := range candidates {
			port, err := s.tryCandidate(c)
			if err != nil {
				s.logger.Debug("Candidate rejected", "port", c.String(), "error", err)
				lastErr = err
				continue
			}

			s.handle = port
			s.current = c
			s.connected = true
			s.logger.Info("Connected", "port", c.String(), "probe", s.probe)
			return nil
		}
	}

	s.logger.Warn("No device found", "candidates", len(candidates), "attempts", s.attempts)
	return noDeviceFound(lastErr, len(candidates))
}

// tryCandidate opens c and runs the handshake; the handle is closed on failure
func (s *Session) tryCandidate(c PortDescriptor) (serial.Port, error) {
	port, err := s.opener.Open(c)
	if err != nil {
		return nil, err
	}
	if !s.probe {
		return port, nil
	}

	if err := s.handshake(port); err != nil {
		if errors.Is(err, errProbeTimeout) {
			// The reader may still hold the handle (raw USB reads have no
			// timeout and Close waits for them), so release it in the background.
			go s.release(port, c)
		} else {
			s.release(port, c)
		}
		return nil, probeMismatch(err, c)
	}
	return port, nil
}

// release closes a rejected candidate
func (s *Session) release(port serial.Port, c PortDescriptor) {
	if err := port.Close(); err != nil {
		s.logger.Debug("Close failed", "port", c.String(), "error", err)
	}
}

// handshake sends the probe byte and waits for the echo
func (s *Session) handshake(port serial.Port) error {
	if err := port.Flush(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	if err := writeAll(port, protocol.EncodeProbe()); err != nil {
		return fmt.Errorf("write probe: %w", err)
	}

	b, err := readByte(port, s.probeTimeout)
	if err != nil {
		return err
	}
	if b != protocol.ProbeEcho {
		return fmt.Errorf("got 0x%02x, want 0x%02x", b, protocol.ProbeEcho)
	}
	return nil
}

// Disconnect releases the handle. It is safe to call at any time.
func (s *Session) Disconnect() {
	if s.handle != nil {
		if err := s.handle.Close(); err != nil {
			s.logger.Debug("Close failed", "port", s.current.String(), "error", err)
		}
		s.logger.Info("Disconnected", "port", s.current.String())
	}
	s.handle = nil
	s.current = PortDescriptor{}
	s.connected = false
}

// ToggleLed flips the LED and returns the new state
func (s *Session) ToggleLed() (LedState, error) {
	return s.SetLed(!s.ledOn)
}

// SetLed drives the LED to the given state.
// On a failed write the previous state is kept and the session disconnects.
func (s *Session) SetLed(on bool) (LedState, error) {
	if !s.connected {
		return LedState(s.ledOn), notConnected()
	}

	prev := s.ledOn
	s.ledOn = on

	if err := writeAll(s.handle, protocol.EncodeLed(on, s.encoding)); err != nil {
		s.ledOn = prev
		port := s.current
		s.logger.Warn("Write failed, disconnecting", "port", port.String(), "error", err)
		s.Disconnect()
		return LedState(prev), writeFailed(err, port)
	}

	s.logger.Debug("LED set", "state", LedState(on).String(), "port", s.current.String())
	return LedState(on), nil
}

// Connected reports whether a handle is open
func (s *Session) Connected() bool {
	return s.connected
}

// LedOn reports the last successfully commanded LED state
func (s *Session) LedOn() bool {
	return s.ledOn
}

// Port returns the connected descriptor (zero value when disconnected)
func (s *Session) Port() PortDescriptor {
	return s.current
}

func writeAll(w io.Writer, p []byte) error {
	n, err := w.Write(p)
	if err != nil {
		return err
	}
	if n != len(p) {
		return fmt.Errorf("incomplete write: %d/%d bytes: %w", n, len(p), io.ErrShortWrite)
	}
	return nil
}

// readByte waits up to timeout for one byte. Reads that time out at the port
// level (0 bytes or io.EOF) are retried until the deadline. On timeout the
// reading goroutine is left behind until the handle is closed.
func readByte(r io.Reader, timeout time.Duration) (byte, error) {
	type result struct {
		b   byte
		err error
	}

	done := make(chan result, 1)
	deadline := time.Now().Add(timeout)

	go func() {
		buf := make([]byte, 1)
		for {
			n, err := r.Read(buf)
			if n > 0 {
				done <- result{b: buf[0]}
				return
			}
			if err != nil && err != io.EOF {
				done <- result{err: err}
				return
			}
			if time.Now().After(deadline) {
				done <- result{err: errProbeTimeout}
				return
			}
			time.Sleep(time.Millisecond)
		}
	}()

	select {
	case res := <-done:
		return res.b, res.err
	case <-time.After(timeout):
		return 0, fmt.Errorf("%w after %v", errProbeTimeout, timeout)
	}
}
