package cli

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"holdboard/host/output"
	"holdboard/protocol"
)

var encodeCmd = &cobra.Command{
	Use:   "encode <frames>",
	Short: "Show the packets and units for a frames description",
	Long: `Encode resolves a frames description such as "p1073r12p1100r13"
against the layout and prints the placements, the logical packets and
the 20-byte transport units that would be sent to the board.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		l, placements, err := resolve(args[0])
		if err != nil {
			return err
		}
		report, err := output.NewEncodeReport(args[0], l.Name, placements)
		if err != nil {
			return fmt.Errorf("failed to encode: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), formatter.Format(report))
		return nil
	},
}

var decodeCmd = &cobra.Command{
	Use:   "decode <hex>",
	Short: "Reassemble a captured byte stream into placements",
	Long: `Decode reads a hex stream (spaces and colons are ignored, "-" reads
stdin) and rebuilds frames the way the board does, then joins the
packets back into requests.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text := args[0]
		if text == "-" {
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("failed to read stdin: %w", err)
			}
			text = string(data)
		}

		stream, err := parseHex(text)
		if err != nil {
			return err
		}
		decoded, err := protocol.Decode(stream)
		if err != nil {
			return fmt.Errorf("failed to decode: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), formatter.Format(output.NewDecodeReport(decoded)))
		return nil
	},
}

// parseHex decodes hex digits, ignoring whitespace and colon separators
func parseHex(text string) ([]byte, error) {
	clean := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r', ':':
			return -1
		}
		return r
	}, text)
	stream, err := hex.DecodeString(clean)
	if err != nil {
		return nil, fmt.Errorf("invalid hex stream: %w", err)
	}
	return stream, nil
}

func init() {
	rootCmd.AddCommand(encodeCmd)
	rootCmd.AddCommand(decodeCmd)
}
