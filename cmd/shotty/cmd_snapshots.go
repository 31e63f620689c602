package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/yairfalse/shotty/internal/command"
)

func newSnapshotsCmd(a *app) *cobra.Command {
	snapshotsCmd := &cobra.Command{
		Use:   "snapshots",
		Short: "Commands for snapshots",
	}

	var (
		project string
		listAll bool
	)
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List EC2 snapshots",
		Long: `List the snapshots of every volume attached to an instance in scope,
newest first. By default each volume stops at its most recent completed
snapshot; --all prints every snapshot.`,
		Example: `  shotty snapshots list
  shotty snapshots list --project web --all`,
		Args: cobra.NoArgs,
		RunE: a.action("snapshots.list", func(ctx context.Context, r *command.Runner) error {
			return r.ListSnapshots(ctx, project, listAll)
		}),
	}
	addProjectFlag(listCmd, &project, "Only snapshots from instances for project (tag Project:<name>)")
	listCmd.Flags().BoolVar(&listAll, "all", false, "List all snapshots for each volume, not just the most recent")

	snapshotsCmd.AddCommand(listCmd)
	return snapshotsCmd
}
