package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"holdboard/host/board"
	"holdboard/host/output"
	"holdboard/host/stub"
	"holdboard/protocol"
)

var lightCmd = &cobra.Command{
	Use:   "light <frames>",
	Short: "Send a frames description to the board",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		l, placements, err := resolve(args[0])
		if err != nil {
			return err
		}
		units, err := protocol.Units(placements)
		if err != nil {
			return fmt.Errorf("failed to encode: %w", err)
		}

		b := board.New(newConnector())
		defer b.Close()

		if err := b.Send(cmd.Context(), units); err != nil {
			return fmt.Errorf("failed to light holds: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Lit %d holds on %s (%d units) via %s.\n", len(placements), l.Name, len(units), linkName())
		return nil
	},
}

var simulateCmd = &cobra.Command{
	Use:   "simulate <frames>",
	Short: "Run a frames description through a simulated board",
	Long: `Simulate sends the units to an in-memory board that reassembles
them exactly as the hardware would, then prints what it reconstructed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, placements, err := resolve(args[0])
		if err != nil {
			return err
		}

		sim := stub.New()
		b := board.New(sim)
		defer b.Close()

		if err := b.Illuminate(cmd.Context(), placements); err != nil {
			return fmt.Errorf("simulation failed: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), formatter.Format(output.NewDecodeReport(sim.Last().Decoded())))
		return nil
	},
}

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Light frames descriptions interactively over one board link",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		l, err := loadLayout()
		if err != nil {
			return err
		}

		b := board.New(newConnector())
		defer b.Close()

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Holdboard console on %s (layout %s)\n", linkName(), l.Name)
		fmt.Fprintln(out, "Enter a frames description per line (type 'help' for commands, 'quit' to exit):")

		scanner := bufio.NewScanner(cmd.InOrStdin())
		for {
			fmt.Fprint(out, "> ")
			if !scanner.Scan() {
				break
			}

			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}

			switch line {
			case "quit", "exit", "q":
				fmt.Fprintln(out, "Goodbye!")
				return nil

			case "help", "?":
				printConsoleHelp(out)

			case "clear":
				if err := b.Illuminate(cmd.Context(), nil); err != nil {
					fmt.Fprintf(out, "Error: %v\n", err)
					continue
				}
				fmt.Fprintln(out, "Board cleared.")

			case "status":
				fmt.Fprintf(out, "Connected: %v\n", b.IsConnected())

			default:
				placements, err := l.Placements(line)
				if err != nil {
					fmt.Fprintf(out, "Error: %v\n", err)
					continue
				}
				if err := b.Illuminate(cmd.Context(), placements); err != nil {
					fmt.Fprintf(out, "Error: %v\n", err)
					continue
				}
				fmt.Fprintf(out, "Lit %d holds.\n", len(placements))
			}
		}

		fmt.Fprintln(out)
		return scanner.Err()
	},
}

func printConsoleHelp(out io.Writer) {
	fmt.Fprintln(out, "Commands:")
	fmt.Fprintln(out, "  p<hold>r<role>...  - Light the listed holds")
	fmt.Fprintln(out, "  clear              - Send an empty request")
	fmt.Fprintln(out, "  status             - Show whether the board link is open")
	fmt.Fprintln(out, "  help, ?            - Show this help")
	fmt.Fprintln(out, "  quit, exit, q      - Exit")
}

func init() {
	rootCmd.AddCommand(lightCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(consoleCmd)
}
