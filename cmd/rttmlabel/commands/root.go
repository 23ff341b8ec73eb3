package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime/pprof"

	"github.com/spf13/cobra"

	"github.com/macropower/rttmlabel/pkg/config"
	"github.com/macropower/rttmlabel/pkg/log"
)

var (
	ErrLogHandlerFailed = errors.New("log handler failed")
	ErrConfigFailed     = errors.New("config failed")
	ErrInvalidArgument  = errors.New("invalid argument")
)

func NewRootCmd(name, shortDesc, longDesc string) *cobra.Command {
	args := NewRootArgs()

	cmd := &cobra.Command{
		Use:           name,
		Short:         shortDesc,
		Long:          longDesc,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       GetVersionString(),
	}

	cmd.PersistentFlags().StringVar(args.logLevel, "log_level", "", "Set the log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(args.logFormat, "log_format", "", "Set the log format (text, logfmt, json)")
	cmd.PersistentFlags().StringVarP(args.configPath, "config", "c", "", "Path to a YAML config file (default: closest "+config.FileName+")")
	cmd.PersistentFlags().StringVar(args.server, "server", "", "Base URL of the labeling backend")
	cmd.PersistentFlags().StringVar(args.os, "os", "", "Path style of folder arguments (windows, posix)")
	cmd.PersistentFlags().DurationVar(args.timeout, "timeout", 0, "Timeout for each backend request")
	cmd.PersistentFlags().StringVarP(args.output, "output", "o", string(outputText), "Output format (text, yaml, json)")
	cmd.PersistentFlags().StringVar(args.cpuProfile, "cpuprofile", "", "Write a CPU profile to this file")

	must(cmd.MarkPersistentFlagFilename("config", "yaml", "yml"))
	must(cmd.MarkPersistentFlagFilename("cpuprofile"))

	cmd.PersistentPreRunE = func(cc *cobra.Command, _ []string) error {
		if args.GetCPUProfile() != "" {
			f, err := os.Create(args.GetCPUProfile())
			if err != nil {
				return fmt.Errorf("failed to create CPU profile: %w", err)
			}

			err = pprof.StartCPUProfile(f)
			if err != nil {
				must(f.Close())

				return fmt.Errorf("failed to start CPU profile: %w", err)
			}
		}

		cfgPath := args.GetConfigPath()
		if cfgPath == "" {
			cfgPath = findConfig()
		}

		cfg, err := config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrConfigFailed, err)
		}

		flags := cc.Flags()
		if flags.Changed("log_level") {
			cfg.LogLevel = args.GetLogLevel()
		}

		if flags.Changed("log_format") {
			cfg.LogFormat = args.GetLogFormat()
		}

		h, err := log.CreateHandlerWithStrings(
			cc.ErrOrStderr(),
			cfg.LogLevel,
			cfg.LogFormat,
		)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrLogHandlerFailed, err)
		}

		slog.SetDefault(slog.New(h))

		if flags.Changed("server") {
			cfg.Server = args.GetServer()
		}

		if flags.Changed("os") {
			cfg.OS = args.GetOS()
		}

		if flags.Changed("timeout") {
			cfg.Timeout = config.Duration(args.GetTimeout())
		}

		err = cfg.Validate()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrConfigFailed, err)
		}

		_, err = getOutputFormat(args.GetOutput())
		if err != nil {
			return err
		}

		args.cfg = cfg

		slog.Debug("ready to go", slog.String("server", cfg.Server))

		return nil
	}

	cmd.PersistentPostRunE = func(_ *cobra.Command, _ []string) error {
		slog.Debug("shutting down")

		if args.GetCPUProfile() != "" {
			pprof.StopCPUProfile()
		}

		return nil
	}

	cmd.AddCommand(NewVersionCmd())
	cmd.AddCommand(NewConfigCmd(args))
	cmd.AddCommand(NewPathCmd(args))
	cmd.AddCommand(NewDirsCmd(args))
	cmd.AddCommand(NewFilesCmd(args))
	cmd.AddCommand(NewFoldersCmd(args))
	cmd.AddCommand(NewSegmentCmd(args))
	cmd.AddCommand(NewTUICmd(args))

	return cmd
}

// findConfig returns the closest config file above the working directory,
// or an empty string.
func findConfig() string {
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}

	path, err := config.Find(wd)
	if err != nil {
		return ""
	}

	slog.Debug("using config file", slog.String("path", path))

	return path
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
