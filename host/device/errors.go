package device

import (
	"errors"
	"fmt"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"
)

// Error kinds returned by Session. Match them with errors.Is.
var (
	ErrNoDeviceFound = errors.New("no device found")
	ErrNotConnected  = errors.New("not connected")
	ErrWriteFailed   = errors.New("write failed")
	ErrProbeMismatch = errors.New("probe mismatch")
)

var errProbeTimeout = errors.New("probe timed out")

func noDeviceFound(cause error, tried int) error {
	var err error = ErrNoDeviceFound
	if cause != nil {
		err = fmt.Errorf("%w: %w", ErrNoDeviceFound, cause)
	}
	desc := "No device answered. Check the cable and the port list."
	if tried == 0 {
		desc = "No ports to try. Plug in the board or pass --port."
	}
	return fault.Wrap(err,
		ftag.With(ftag.NotFound),
		fmsg.WithDesc("connect", desc),
	)
}

func notConnected() error {
	return fault.Wrap(ErrNotConnected,
		ftag.With(ftag.InvalidArgument),
		fmsg.WithDesc("send command", "You must connect to a port first."),
	)
}

func writeFailed(cause error, port PortDescriptor) error {
	return fault.Wrap(fmt.Errorf("%w: %w", ErrWriteFailed, cause),
		ftag.With(ftag.Internal),
		fmsg.WithDesc("write to "+port.String(), "The device stopped responding and was disconnected."),
	)
}

func probeMismatch(cause error, port PortDescriptor) error {
	return fault.Wrap(fmt.Errorf("%w: %w", ErrProbeMismatch, cause),
		ftag.With(ftag.NotFound),
		fmsg.With("probe "+port.String()),
	)
}

// Message returns the user-facing text for err, falling back to err.Error()
func Message(err error) string {
	if err == nil {
		return ""
	}
	if issue := fmsg.GetIssue(err); issue != "" {
		return issue
	}
	return err.Error()
}
