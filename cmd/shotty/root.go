package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/codes"

	"github.com/yairfalse/shotty/internal/cloud"
	"github.com/yairfalse/shotty/internal/command"
	"github.com/yairfalse/shotty/internal/config"
	"github.com/yairfalse/shotty/internal/telemetry"
)

var version = "0.1.0"

// cloudFactory builds the EC2 session once per invocation.
type cloudFactory func(ctx context.Context, cfg cloud.Config) (command.Cloud, error)

func newEC2Cloud(ctx context.Context, cfg cloud.Config) (command.Cloud, error) {
	return cloud.New(ctx, cfg)
}

// app carries everything built in PersistentPreRunE down to the actions.
type app struct {
	configPath string
	overrides  config.Overrides

	newCloud  cloudFactory
	stdout    io.Writer
	stderr    io.Writer
	cfg       *config.Config
	telemetry *telemetry.Provider
	runner    *command.Runner
}

// run executes one command line and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer, newCloud cloudFactory) int {
	a := &app{newCloud: newCloud, stdout: stdout, stderr: stderr}
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	a.close()

	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "shotty",
		Short: "Shotty manages snapshots",
		Long: `Shotty - EC2 snapshot manager

Shotty lists EC2 instances, their volumes and their snapshots, and can
stop, start and snapshot instances in bulk. Every command can be scoped
to the instances tagged Project=<name>.`,
		Version:           version,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}
	rootCmd.SetVersionTemplate(`Shotty {{.Version}} - EC2 snapshot manager
`)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "Path to a YAML config file")
	flags.StringVar(&a.overrides.Profile, "profile", "", "AWS shared config profile (default \"shotty\")")
	flags.StringVar(&a.overrides.Region, "region", "", "AWS region (default from profile)")
	flags.BoolVar(&a.overrides.Debug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(newInstancesCmd(a), newVolumesCmd(a), newSnapshotsCmd(a))
	return rootCmd
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg := config.Default()
	if a.configPath != "" {
		loaded, err := config.Load(a.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	cfg.ApplyOverrides(a.overrides)
	a.cfg = cfg

	log.Logger = telemetry.NewLogger(a.stderr, cfg.Log.Level)

	tp, err := telemetry.NewProvider(ctx, cfg.OTEL)
	if err != nil {
		return fmt.Errorf("init telemetry: %w", err)
	}
	a.telemetry = tp

	c, err := a.newCloud(ctx, cloud.Config{
		Profile:     cfg.AWS.Profile,
		Region:      cfg.AWS.Region,
		WaitTimeout: cfg.Snapshot.WaitTimeout,
	})
	if err != nil {
		return err
	}

	a.runner = command.NewRunner(c, a.stdout, command.Options{
		SnapshotDescription: cfg.Snapshot.Description,
		Recorder:            tp,
		Logger:              log.Logger,
	})
	return nil
}

// action wraps a runner call in a span and records its duration.
func (a *app) action(name string, fn func(ctx context.Context, r *command.Runner) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		ctx, span := a.telemetry.StartSpan(cmd.Context(), "shotty."+name)
		defer span.End()

		start := time.Now()
		log.Debug().Ctx(ctx).Str("command", name).Msg("command started")

		err := fn(ctx, a.runner)

		a.telemetry.RecordCommand(ctx, name, time.Since(start), err)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			log.Debug().Ctx(ctx).Err(err).Str("command", name).Msg("command failed")
			return err
		}
		log.Debug().Ctx(ctx).Str("command", name).Dur("took", time.Since(start)).Msg("command finished")
		return nil
	}
}

func (a *app) close() {
	if a.telemetry == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.telemetry.Shutdown(ctx); err != nil {
		log.Warn().Err(err).Msg("telemetry shutdown failed")
	}
}

func addProjectFlag(cmd *cobra.Command, project *string, help string) {
	cmd.Flags().StringVar(project, "project", "", help)
}
