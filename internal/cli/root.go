package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"filetug/internal/config"
	"filetug/internal/container"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const version = "0.1.0"

// Exit codes
const (
	ExitSuccess      = 0
	ExitUsageError   = 2
	ExitRuntimeError = 4
)

// Run executes the root command and returns an exit code.
func Run() int {
	return ExitCode(NewRootCmd(os.Stdout, os.Stderr).Execute())
}

// ExitCode maps an error returned by the root command to a process exit code.
// Bad arguments, unknown flags and unknown commands give ExitUsageError.
func ExitCode(err error) int {
	var usage usageError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &usage):
		return ExitUsageError
	default:
		return ExitRuntimeError
	}
}

// usageError marks a failure caused by how filetugctl was invoked
type usageError struct {
	err error
}

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return usageError{err}
		}
		return nil
	}
}

// NewRootCmd builds the command tree. Every invocation gets its own viper
// instance so commands can be executed repeatedly in tests.
func NewRootCmd(stdout, stderr io.Writer) *cobra.Command {
	v := config.NewViper()
	var verbose bool

	rootCmd := &cobra.Command{
		Use:          "filetugctl",
		Short:        "Inspect Filetug settings, bookmarks and thumbnail caches",
		Version:      version,
		Args:         usageArgs(cobra.NoArgs),
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				v.Set(config.KeyLogLevel, "debug")
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError{err}
	})

	rootCmd.PersistentFlags().String("data-dir", "", "settings directory (default is the platform data directory)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().Bool("check-mtime", false, "regenerate thumbnails older than their source")
	_ = v.BindPFlag(config.KeyDataDir, rootCmd.PersistentFlags().Lookup("data-dir"))
	_ = v.BindPFlag(config.KeyCheckModTime, rootCmd.PersistentFlags().Lookup("check-mtime"))

	env := &environment{viper: v}
	rootCmd.AddCommand(newSettingsCmd(env))
	rootCmd.AddCommand(newBookmarksCmd(env))
	rootCmd.AddCommand(newThumbsCmd(env))

	return rootCmd
}

// environment opens the container lazily, once flags have been parsed
type environment struct {
	viper *viper.Viper
}

func (e *environment) run(fn func(c *container.Container) error) error {
	cfg, err := config.New(e.viper)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	c, err := container.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := c.Close(); err != nil {
			cfg.Logger.Warn("Failed to close database", "error", err)
		}
	}()
	return fn(c)
}
