package command

import (
	"context"

	"github.com/yairfalse/shotty/internal/inventory"
)

// ListVolumes prints every volume attached to an instance in scope.
func (r *Runner) ListVolumes(ctx context.Context, project string) error {
	return r.walker.Walk(ctx, project, inventory.Volumes, func(_ context.Context, p inventory.Path) error {
		r.println(formatVolume(p.Volume))
		return nil
	})
}
