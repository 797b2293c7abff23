package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"usbled/host/device"
)

// shell is the interactive front end. Each command is an event handler
// driving the one Session, the way the buttons of a window would.
type shell struct {
	session    *device.Session
	candidates func() ([]device.PortDescriptor, error)
	out        io.Writer
	errOut     io.Writer
}

func newShell(session *device.Session, candidates func() ([]device.PortDescriptor, error), out, errOut io.Writer) *shell {
	return &shell{
		session:    session,
		candidates: candidates,
		out:        out,
		errOut:     errOut,
	}
}

// run reads commands until quit or EOF
func (sh *shell) run(in io.Reader) error {
	fmt.Fprintln(sh.out, "usbled shell (type 'help' for commands, 'quit' to exit)")
	scanner := bufio.NewScanner(in)

	for {
		fmt.Fprint(sh.out, "> ")
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if quit := sh.handle(line); quit {
			return nil
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading input: %w", err)
	}
	return nil
}

// handle executes one command line; it returns true when the shell should exit
func (sh *shell) handle(line string) bool {
	cmd := strings.ToLower(strings.Fields(line)[0])

	switch cmd {
	case "quit", "exit", "q":
		fmt.Fprintln(sh.out, "Goodbye!")
		return true

	case "help", "?":
		sh.printHelp()

	case "connect", "c":
		sh.onConnect()

	case "disconnect", "d":
		sh.session.Disconnect()
		sh.printStatus()

	case "toggle", "t":
		sh.onLed(sh.session.ToggleLed)

	case "on":
		sh.onLed(func() (device.LedState, error) { return sh.session.SetLed(true) })

	case "off":
		sh.onLed(func() (device.LedState, error) { return sh.session.SetLed(false) })

	case "status", "s":
		sh.printStatus()

	default:
		fmt.Fprintf(sh.out, "Unknown command: %s (type 'help' for available commands)\n", cmd)
	}
	return false
}

func (sh *shell) onConnect() {
	candidates, err := sh.candidates()
	if err != nil {
		sh.printError(err)
		return
	}
	if err := sh.session.Connect(candidates); err != nil {
		sh.printError(err)
		return
	}
	sh.printStatus()
}

func (sh *shell) onLed(action func() (device.LedState, error)) {
	state, err := action()
	if err != nil {
		sh.printError(err)
		if !sh.session.Connected() {
			sh.printStatus()
		}
		return
	}
	fmt.Fprintf(sh.out, "LED %s\n", strings.ToUpper(state.String()))
}

func (sh *shell) printStatus() {
	if sh.session.Connected() {
		fmt.Fprintf(sh.out, "Connection status: connected (%s), LED %s\n",
			sh.session.Port(), device.LedState(sh.session.LedOn()))
	} else {
		fmt.Fprintln(sh.out, "Connection status: disconnected")
	}
}

func (sh *shell) printError(err error) {
	fmt.Fprintf(sh.errOut, "Error: %s\n", device.Message(err))
}

func (sh *shell) printHelp() {
	fmt.Fprintln(sh.out, "\nAvailable commands:")
	fmt.Fprintln(sh.out, "  connect (c)     - Find the board and connect")
	fmt.Fprintln(sh.out, "  disconnect (d)  - Release the port")
	fmt.Fprintln(sh.out, "  toggle (t)      - Toggle the LED")
	fmt.Fprintln(sh.out, "  on / off        - Switch the LED on or off")
	fmt.Fprintln(sh.out, "  status (s)      - Show connection and LED state")
	fmt.Fprintln(sh.out, "  quit/exit/q     - Exit the program")
	fmt.Fprintln(sh.out)
}
