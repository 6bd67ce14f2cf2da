// Package cli implements the holdboard command tree
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"holdboard/host/board"
	"holdboard/host/config"
	"holdboard/host/layout"
	"holdboard/host/logging"
	"holdboard/host/output"
	"holdboard/host/serial"
	"holdboard/host/wsbridge"
	"holdboard/protocol"
)

var (
	// Global flags
	cfgFile      string
	envFile      string
	layoutPath   string
	outputFormat string
	device       string
	bridgeURL    string
	link         string
	quiet        bool

	// Shared state set during PersistentPreRun
	cfg       *config.Config
	logger    *slog.Logger
	formatter output.Formatter

	// connector overrides the configured link when set
	connector board.Connector
)

// rootCmd is the base command for holdboard.
var rootCmd = &cobra.Command{
	Use:   "holdboard",
	Short: "Light holds on an LED climbing board",
	Long: `Holdboard encodes hold placements into the board's framed packet format
and sends them in 20-byte units over a BLE-UART serial bridge or a
WebSocket BLE gateway. It can also decode captured streams and simulate
the board side of the link.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path := cfgFile
		if path == "" {
			path = config.DefaultPath()
		}
		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if err := config.LoadEnv(envFile); err != nil {
			return err
		}
		cfg.ApplyEnv()

		// Override config with flags
		if layoutPath != "" {
			cfg.LayoutPath = layoutPath
		}
		if outputFormat != "" {
			cfg.OutputFormat = outputFormat
		}
		if device != "" {
			cfg.Serial.Device = device
		}
		if bridgeURL != "" {
			cfg.BridgeURL = bridgeURL
		}
		if link != "" {
			cfg.Link = link
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		logger = logging.New(cmd.ErrOrStderr(), quiet)
		cmd.SetContext(logging.WithLogger(cmd.Context(), logger))

		formatter = output.NewFormatter(cfg.OutputFormat)
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// SetConnector allows tests to replace the configured board link.
// Passing nil restores the configured link.
func SetConnector(c board.Connector) {
	connector = c
}

// RootCmd returns the root cobra.Command for testing purposes.
func RootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.holdboard/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file with HOLDBOARD_* overrides")
	rootCmd.PersistentFlags().StringVar(&layoutPath, "layout", "", "board layout file")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "", "output format: text, json, yaml (default \"text\")")
	rootCmd.PersistentFlags().StringVar(&device, "device", "", "serial bridge device")
	rootCmd.PersistentFlags().StringVar(&bridgeURL, "bridge-url", "", "WebSocket gateway URL")
	rootCmd.PersistentFlags().StringVar(&link, "link", "", "board link: serial or websocket")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "discard log output")
}

// loadLayout reads the configured layout file
func loadLayout() (*layout.Layout, error) {
	if cfg.LayoutPath == "" {
		return nil, fmt.Errorf("no layout configured (use --layout or %s)", config.EnvLayout)
	}
	return layout.Load(cfg.LayoutPath)
}

// resolve loads the layout and turns a frames description into placements
func resolve(frames string) (*layout.Layout, []protocol.Placement, error) {
	l, err := loadLayout()
	if err != nil {
		return nil, nil, err
	}
	placements, err := l.Placements(frames)
	if err != nil {
		return nil, nil, err
	}
	return l, placements, nil
}

// newConnector builds the connector for the configured link
func newConnector() board.Connector {
	if connector != nil {
		return connector
	}
	if cfg.Link == config.LinkWebSocket {
		c := wsbridge.NewConnector(cfg.BridgeURL)
		c.WriteTimeout = cfg.WriteTimeout
		return c
	}
	return serial.NewConnector(&cfg.Serial)
}

// linkName describes where units are going for log and status lines
func linkName() string {
	switch {
	case connector != nil:
		return "injected"
	case cfg.Link == config.LinkWebSocket:
		return cfg.BridgeURL
	default:
		return cfg.Serial.Device
	}
}
