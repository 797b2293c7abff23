package protocol

// Decoder extracts commands from a byte stream.
//
// Single-byte commands are matched exactly ('N', 'F', 'P'). Text commands
// ("ON", "OFF") are matched case-insensitively. Whitespace, NUL and unknown
// bytes are skipped.
type Decoder struct {
	// Skipped counts bytes dropped as unknown
	Skipped uint32
}

// NewDecoder creates a new Decoder
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Next decodes one command from input and pops the bytes it consumed.
// It returns false when input is exhausted or holds only the prefix of a
// text command; the prefix stays in input until more data arrives.
func (d *Decoder) Next(input InputBuffer) (Command, bool) {
	for {
		data := input.Data()
		if len(data) == 0 {
			return CmdNone, false
		}

		b := data[0]
		switch {
		case isSeparator(b):
			input.Pop(1)
			continue

		case b == byte(CmdLedOn), b == byte(CmdLedOff), b == byte(CmdProbe):
			input.Pop(1)
			return Command(b), true

		case upper(b) == 'O':
			if len(data) < 2 {
				return CmdNone, false
			}
			switch upper(data[1]) {
			case 'N':
				input.Pop(2)
				return CmdLedOn, true
			case 'F':
				if len(data) < MaxTextCommand {
					return CmdNone, false
				}
				if upper(data[2]) == 'F' {
					input.Pop(MaxTextCommand)
					return CmdLedOff, true
				}
			}
			// Not a text command, drop the 'O' and rescan
			d.Skipped++
			input.Pop(1)
			continue

		default:
			d.Skipped++
			input.Pop(1)
		}
	}
}

// Decode decodes every complete command in data
func (d *Decoder) Decode(data []byte) []Command {
	input := NewSliceInputBuffer(data)
	var cmds []Command
	for {
		cmd, ok := d.Next(input)
		if !ok {
			return cmds
		}
		cmds = append(cmds, cmd)
	}
}

func isSeparator(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n' || b == 0
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - ('a' - 'A')
	}
	return b
}
