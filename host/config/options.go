package config

import (
	"fmt"
	"strconv"
	"time"

	"usbled/host/device"
	"usbled/host/logging"
	"usbled/protocol"
)

// Options for the CLI - flat structure with toml mapping.
type Options struct {
	Config string `help:"Path to configuration file" short:"c" default:"usbled.toml"`

	// Device settings
	Transport       string   `help:"Transport: serial or usb" short:"t" default:"serial" toml:"device.transport" env:"TRANSPORT"`
	Ports           []string `help:"Serial ports to try in order (default: enumerate)" short:"p" toml:"device.ports" env:"PORTS"`
	VendorID        string   `help:"USB vendor ID" default:"0x04d8" toml:"device.vendor_id" env:"VENDOR_ID"`
	ProductID       string   `help:"USB product ID" default:"0x003f" toml:"device.product_id" env:"PRODUCT_ID"`
	Baud            int      `help:"Serial baud rate (ignored by USB CDC)" default:"9600" toml:"device.baud" env:"BAUD"`
	Encoding        string   `help:"LED command encoding: byte (N/F) or text (ON/OFF)" default:"byte" toml:"device.encoding" env:"ENCODING"`
	Probe           bool     `help:"Require the board to echo a probe byte on connect" toml:"device.probe" env:"PROBE"`
	ProbeTimeout    string   `help:"How long to wait for the probe echo" default:"2s" toml:"device.probe_timeout" env:"PROBE_TIMEOUT"`
	ConnectAttempts int      `help:"Times to scan the candidate list before giving up" default:"1" toml:"device.connect_attempts" env:"CONNECT_ATTEMPTS"`
	RetryDelay      string   `help:"Delay between connect scans" default:"1s" toml:"device.retry_delay" env:"RETRY_DELAY"`

	// Logging settings
	LoggingLevel  string `help:"Logging level (debug, info, warn, error)" default:"warn" toml:"logging.level" env:"LOGGING_LEVEL"`
	LoggingFormat string `help:"Logging format (text, json)" default:"text" toml:"logging.format" env:"LOGGING_FORMAT"`
	LoggingDevice string `help:"Device logging level" toml:"logging.device" env:"LOGGING_DEVICE"`
}

// Settings is Options parsed into the types the session needs
type Settings struct {
	Discovery device.Discovery
	Session   []device.Option
	Logging   logging.Config
}

// Resolve validates opts and converts them to Settings
func (o *Options) Resolve() (*Settings, error) {
	kind, err := device.ParseKind(o.Transport)
	if err != nil {
		return nil, err
	}
	vid, err := parseID(o.VendorID)
	if err != nil {
		return nil, fmt.Errorf("vendor-id: %w", err)
	}
	pid, err := parseID(o.ProductID)
	if err != nil {
		return nil, fmt.Errorf("product-id: %w", err)
	}
	enc, err := protocol.ParseEncoding(o.Encoding)
	if err != nil {
		return nil, err
	}
	probeTimeout, err := parseDuration(o.ProbeTimeout, device.DefaultProbeTimeout)
	if err != nil {
		return nil, fmt.Errorf("probe-timeout: %w", err)
	}
	retryDelay, err := parseDuration(o.RetryDelay, time.Second)
	if err != nil {
		return nil, fmt.Errorf("retry-delay: %w", err)
	}
	if o.ConnectAttempts < 1 {
		return nil, fmt.Errorf("connect-attempts must be at least 1, got %d", o.ConnectAttempts)
	}

	modules := map[string]string{}
	if o.LoggingDevice != "" {
		modules["device"] = o.LoggingDevice
	}

	return &Settings{
		Discovery: device.Discovery{
			Transport: kind,
			Ports:     o.Ports,
			VendorID:  vid,
			ProductID: pid,
		},
		Session: []device.Option{
			device.WithOpener(device.DefaultOpener{Baud: o.Baud}),
			device.WithEncoding(enc),
			device.WithProbe(o.Probe),
			device.WithProbeTimeout(probeTimeout),
			device.WithRetry(o.ConnectAttempts, retryDelay),
		},
		Logging: logging.Config{
			Level:   o.LoggingLevel,
			Format:  o.LoggingFormat,
			Modules: modules,
		},
	}, nil
}

// parseID accepts 0x-prefixed hex or decimal IDs
func parseID(s string) (uint16, error) {
	v, err := strconv.ParseUint(s, 0, 16)
	if err != nil {
		return 0, fmt.Errorf("bad USB ID %q: %w", s, err)
	}
	return uint16(v), nil
}

func parseDuration(s string, def time.Duration) (time.Duration, error) {
	if s == "" {
		return def, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("must be positive, got %s", s)
	}
	return d, nil
}
