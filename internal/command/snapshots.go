package command

import (
	"context"

	"github.com/yairfalse/shotty/internal/cloud"
	"github.com/yairfalse/shotty/internal/inventory"
)

// ListSnapshots prints the snapshots of every volume in scope, newest
// first. Unless all is set, each volume stops at its first completed
// snapshot.
func (r *Runner) ListSnapshots(ctx context.Context, project string, all bool) error {
	return r.walker.Walk(ctx, project, inventory.Snapshots, func(_ context.Context, p inventory.Path) error {
		r.println(formatSnapshot(p.Snapshot, p.Volume, p.Instance))

		if !all && p.Snapshot.State == cloud.SnapshotCompleted {
			return inventory.SkipVolume
		}
		return nil
	})
}
