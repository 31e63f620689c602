package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/yairfalse/shotty/internal/command"
)

func newVolumesCmd(a *app) *cobra.Command {
	volumesCmd := &cobra.Command{
		Use:   "volumes",
		Short: "Commands for volumes",
	}

	var project string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List EC2 volumes",
		Args:  cobra.NoArgs,
		RunE: a.action("volumes.list", func(ctx context.Context, r *command.Runner) error {
			return r.ListVolumes(ctx, project)
		}),
	}
	addProjectFlag(listCmd, &project, "Only volumes from instances for project (tag Project:<name>)")

	volumesCmd.AddCommand(listCmd)
	return volumesCmd
}
