package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"usbled/host/config"
	"usbled/host/device"
	"usbled/host/logging"
	"usbled/protocol"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// app carries the resolved configuration into subcommands
type app struct {
	opts     config.Options
	settings *config.Settings
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "usbled",
		Short:         "Toggle the LED on a USB-attached microcontroller",
		Long:          `usbled connects to the LED board over a serial port (USB CDC) or raw USB and switches its LED with single-byte commands.`,
		Version:       protocol.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	if err := config.BindFlags(root.PersistentFlags(), &a.opts); err != nil {
		panic(err)
	}

	root.AddCommand(
		a.portsCmd(),
		a.ledCmd("on", "Switch the LED on", true),
		a.ledCmd("off", "Switch the LED off", false),
		a.toggleCmd(),
		a.probeCmd(),
		a.shellCmd(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	if err := config.LoadConfig(&a.opts, cmd); err != nil {
		return report(cmd, err)
	}
	settings, err := a.opts.Resolve()
	if err != nil {
		return report(cmd, err)
	}
	logging.Initialize(settings.Logging)
	a.settings = settings
	return nil
}

func (a *app) newSession(extra ...device.Option) *device.Session {
	opts := append([]device.Option{}, a.settings.Session...)
	return device.NewSession(append(opts, extra...)...)
}

// connect builds the candidate list and opens the first responsive device
func (a *app) connect(cmd *cobra.Command, session *device.Session) error {
	candidates, err := a.settings.Discovery.Candidates()
	if err != nil {
		return report(cmd, err)
	}
	if err := session.Connect(candidates); err != nil {
		return report(cmd, err)
	}
	return nil
}

func (a *app) portsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ports",
		Short: "List candidate ports in the order connect tries them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			candidates, err := a.settings.Discovery.Candidates()
			if err != nil {
				return report(cmd, err)
			}
			if len(candidates) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No candidate ports found")
				return nil
			}
			for _, c := range candidates {
				fmt.Fprintln(cmd.OutOrStdout(), c.String())
			}
			return nil
		},
	}
}

func (a *app) ledCmd(use, short string, on bool) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			session := a.newSession()
			if err := a.connect(cmd, session); err != nil {
				return err
			}
			defer session.Disconnect()

			state, err := session.SetLed(on)
			if err != nil {
				return report(cmd, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "LED %s (%s)\n", state, session.Port())
			return nil
		},
	}
}

func (a *app) toggleCmd() *cobra.Command {
	var (
		times    int
		interval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "toggle",
		Short: "Toggle the LED, starting from off (use --times to blink)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if times < 1 {
				return report(cmd, fmt.Errorf("--times must be at least 1"))
			}

			session := a.newSession()
			if err := a.connect(cmd, session); err != nil {
				return err
			}
			defer session.Disconnect()

			for i := 0; i < times; i++ {
				if i > 0 {
					time.Sleep(interval)
				}
				state, err := session.ToggleLed()
				if err != nil {
					return report(cmd, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "LED %s\n", state)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&times, "times", "n", 1, "Number of toggles")
	cmd.Flags().DurationVar(&interval, "interval", 500*time.Millisecond, "Delay between toggles")
	return cmd
}

func (a *app) probeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "probe",
		Short: "Find the board by sending a probe byte to each candidate",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			session := a.newSession(device.WithProbe(true))
			if err := a.connect(cmd, session); err != nil {
				return err
			}
			defer session.Disconnect()

			fmt.Fprintf(cmd.OutOrStdout(), "Board answered on %s\n", session.Port())
			return nil
		},
	}
}

func (a *app) shellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive connect/toggle loop",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sh := newShell(a.newSession(), a.settings.Discovery.Candidates, cmd.OutOrStdout(), cmd.ErrOrStderr())
			defer sh.session.Disconnect()
			return sh.run(cmd.InOrStdin())
		},
	}
}

// report prints the user-facing message for err and returns it for the exit code
func report(cmd *cobra.Command, err error) error {
	fmt.Fprintf(cmd.ErrOrStderr(), "Error: %s\n", device.Message(err))
	return err
}
