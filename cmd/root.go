package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"irship/config"
	"irship/logging"
)

// Version is set at build time via ldflags
var Version = "dev"

var (
	cfg *config.Config

	flagEcho     bool
	flagNoRecord bool
	flagLogLevel logLevelValue
)

var rootCmd = &cobra.Command{
	Use:   "irship",
	Short: "Two-board Battleship over a one-byte link",
	Long: `irship plays Battleship between two boards that can only exchange
single bytes. Each board is drawn as a 5x7 LED matrix in the terminal.

Start one side as the host
	irship host --listen :9191

and point the other side at it
	irship join --peer ws://192.168.1.20:9191/link

Run without a command to pick a side from a form.
`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.InitConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("echo") {
			cfg.Link.Echo = flagEcho
		}
		if flagNoRecord {
			cfg.Records.Enabled = false
		}
		if flagLogLevel != "" {
			cfg.Log.Level = string(flagLogLevel)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSetup(cmd.Context())
	},
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// openLog opens the debug log configured in cfg.
func openLog() (*logrus.Logger, io.Closer, error) {
	path, err := cfg.LogPath()
	if err != nil {
		return nil, nil, fmt.Errorf("locating log file: %w", err)
	}
	return logging.Open(path, cfg.Log.Level)
}

type logLevelValue string

func (v *logLevelValue) String() string {
	return string(*v)
}

func (v *logLevelValue) Set(value string) error {
	if _, err := logrus.ParseLevel(value); err != nil {
		return fmt.Errorf("invalid log level %q", value)
	}
	*v = logLevelValue(value)
	return nil
}

func (v *logLevelValue) Type() string {
	return "level"
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagEcho, "echo", false, "Reflect sent bytes back to this board, like an IR receiver seeing its own LED")
	rootCmd.PersistentFlags().BoolVar(&flagNoRecord, "no-record", false, "Do not write a match record")
	rootCmd.PersistentFlags().Var(&flagLogLevel, "log-level", "Debug log level (trace, debug, info, warn, error)")

	rootCmd.AddCommand(hostCmd, joinCmd, recordsCmd, layoutsCmd, versionCmd)
}
