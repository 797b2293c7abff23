package protocol

import (
	"bytes"
	"testing"
)

func TestEncodeLed(t *testing.T) {
	testCases := []struct {
		on   bool
		enc  Encoding
		want []byte
	}{
		{true, EncodingByte, []byte{'N'}},
		{false, EncodingByte, []byte{'F'}},
		{true, EncodingText, []byte("ON")},
		{false, EncodingText, []byte("OFF")},
	}

	for _, tc := range testCases {
		got := EncodeLed(tc.on, tc.enc)
		if !bytes.Equal(got, tc.want) {
			t.Errorf("EncodeLed(%v, %v) = %q, want %q", tc.on, tc.enc, got, tc.want)
		}
	}
}

func TestEncodeRoundTripsThroughDecoder(t *testing.T) {
	for _, enc := range []Encoding{EncodingByte, EncodingText} {
		var stream []byte
		stream = append(stream, EncodeProbe()...)
		stream = append(stream, EncodeLed(true, enc)...)
		stream = append(stream, EncodeLed(false, enc)...)

		got := NewDecoder().Decode(stream)
		want := []Command{CmdProbe, CmdLedOn, CmdLedOff}
		if len(got) != len(want) {
			t.Fatalf("%v: decoded %v, want %v", enc, got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("%v: command %d = %v, want %v", enc, i, got[i], want[i])
			}
		}
	}
}

func TestParseEncoding(t *testing.T) {
	testCases := []struct {
		in      string
		want    Encoding
		wantErr bool
	}{
		{"", EncodingByte, false},
		{"byte", EncodingByte, false},
		{" TEXT ", EncodingText, false},
		{"hex", EncodingByte, true},
	}

	for _, tc := range testCases {
		got, err := ParseEncoding(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseEncoding(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseEncoding(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestCommandString(t *testing.T) {
	if CmdProbe.String() != "probe" {
		t.Errorf("Expected probe, got %s", CmdProbe.String())
	}
	if Command('Z').String() != "unknown(0x5a)" {
		t.Errorf("Unexpected unknown name: %s", Command('Z').String())
	}
}
