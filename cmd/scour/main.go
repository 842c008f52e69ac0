package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"

	"github.com/stefanos/scour/internal/batch"
	"github.com/stefanos/scour/internal/config"
	"github.com/stefanos/scour/internal/preflight"
	"github.com/stefanos/scour/internal/sanitize"
	"github.com/stefanos/scour/internal/version"
	"github.com/stefanos/scour/internal/walk"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		chunkSize int
		batchMode bool
	)

	cmd := &cobra.Command{
		Use:   "scour [flags] PATH...",
		Short: "Securely erase files and directory trees",
		Long: `scour overwrites every byte of the given files with zeros in a single
pass, verifies the overwrite by reading the content back, and only then
deletes the files and their emptied directories. A file whose wipe cannot
be verified is retained and reported, never silently deleted.`,
		Version:      version.String(),
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			defer pause(batchMode)

			if len(args) == 0 {
				fmt.Println("no path specified")
				return nil
			}

			logger, err := newLogger()
			if err != nil {
				return errors.Wrap(err, "failed to build logger")
			}
			defer func() { _ = logger.Sync() }()

			cfg, err := config.Resolve()
			if err != nil {
				return err
			}
			if chunkSize == 0 {
				chunkSize = cfg.ChunkSize
			}
			if chunkSize <= 0 {
				return errors.Newf("invalid chunk size %d: must be > 0", chunkSize)
			}

			// Refuse to wipe on storage that discards freed blocks itself:
			// the overwrite would be redundant and possibly ineffective.
			discard, err := preflight.DiscardActive(args[0])
			if err != nil {
				return errors.Wrap(err, "failed to query block-discard state")
			}
			if discard {
				logger.Info("storage discards freed blocks on deletion; secure overwrite is unnecessary, nothing done")
				return nil
			}

			bufs := sanitize.NewBuffers(chunkSize)
			san := sanitize.New(bufs, logger)
			walker := walk.New(san, logger)
			driver := batch.New(walker, logger)

			_, err = driver.Run(args)
			return err
		},
	}

	cmd.Flags().IntVar(&chunkSize, "chunk-size", 0,
		"I/O chunk size in bytes (0 means the configured default)")
	cmd.Flags().BoolVar(&batchMode, "batch", false,
		"exit immediately instead of waiting for a keypress")
	cmd.AddCommand(newVersionCmd())
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build metadata",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version.Detailed())
		},
	}
}

// pause waits for Enter when running interactively, so a double-clicked
// terminal window does not vanish with the summary.
func pause(batchMode bool) {
	if batchMode || !term.IsTerminal(int(os.Stdin.Fd())) {
		return
	}
	fmt.Print("press enter to exit")
	_, _ = bufio.NewReader(os.Stdin).ReadString('\n')
}

func newLogger() (*zap.Logger, error) {
	cfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(parseLogLevel(os.Getenv("LOG_LEVEL"))),
		Encoding:         "console",
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
	}
	return cfg.Build()
}

func parseLogLevel(level string) zapcore.Level {
	switch level {
	case "TRACE", "DEBUG":
		return zapcore.DebugLevel
	case "WARN":
		return zapcore.WarnLevel
	case "ERROR":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
