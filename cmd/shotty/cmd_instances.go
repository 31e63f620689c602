package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/yairfalse/shotty/internal/command"
)

const instancesProjectHelp = "Only instances for project (tag Project:<name>)"

func newInstancesCmd(a *app) *cobra.Command {
	instancesCmd := &cobra.Command{
		Use:   "instances",
		Short: "Commands for instances",
	}

	var (
		listProject     string
		stopProject     string
		startProject    string
		snapshotProject string
	)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List EC2 instances",
		Args:  cobra.NoArgs,
		RunE: a.action("instances.list", func(ctx context.Context, r *command.Runner) error {
			return r.ListInstances(ctx, listProject)
		}),
	}
	addProjectFlag(listCmd, &listProject, instancesProjectHelp)

	stopCmd := &cobra.Command{
		Use:   "stop",
		Short: "Stop EC2 instances",
		Args:  cobra.NoArgs,
		RunE: a.action("instances.stop", func(ctx context.Context, r *command.Runner) error {
			return r.StopInstances(ctx, stopProject)
		}),
	}
	addProjectFlag(stopCmd, &stopProject, instancesProjectHelp)

	startCmd := &cobra.Command{
		Use:   "start",
		Short: "Start EC2 instances",
		Args:  cobra.NoArgs,
		RunE: a.action("instances.start", func(ctx context.Context, r *command.Runner) error {
			return r.StartInstances(ctx, startProject)
		}),
	}
	addProjectFlag(startCmd, &startProject, instancesProjectHelp)

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Create snapshots of all volumes",
		Long: `Stop each instance, wait until it is stopped, snapshot every attached
volume, then start it again and wait until it is running.

The first failure aborts the command. An instance that was already
stopped by then is left stopped.`,
		Example: `  shotty instances snapshot                # every instance in the account
  shotty instances snapshot --project web  # only instances tagged Project=web`,
		Args: cobra.NoArgs,
		RunE: a.action("instances.snapshot", func(ctx context.Context, r *command.Runner) error {
			return r.SnapshotInstances(ctx, snapshotProject)
		}),
	}
	addProjectFlag(snapshotCmd, &snapshotProject, instancesProjectHelp)

	instancesCmd.AddCommand(listCmd, stopCmd, startCmd, snapshotCmd)
	return instancesCmd
}
