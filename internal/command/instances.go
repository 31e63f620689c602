package command

import (
	"context"

	"github.com/yairfalse/shotty/internal/cloud"
	"github.com/yairfalse/shotty/internal/inventory"
	"github.com/yairfalse/shotty/internal/telemetry"
)

// ListInstances prints id, type, zone, state, public DNS and project for
// every instance in scope.
func (r *Runner) ListInstances(ctx context.Context, project string) error {
	return r.walker.Walk(ctx, project, inventory.Instances, func(_ context.Context, p inventory.Path) error {
		r.println(formatInstance(p.Instance))
		return nil
	})
}

// StopInstances requests a stop for every instance in scope. Service
// errors are reported per instance and do not stop the loop.
func (r *Runner) StopInstances(ctx context.Context, project string) error {
	return r.walker.Walk(ctx, project, inventory.Instances, func(ctx context.Context, p inventory.Path) error {
		id := p.Instance.ID
		r.printf("Stopping %s...\n", id)
		return r.isolate(ctx, "stop", id, r.cloud.StopInstance(ctx, id))
	})
}

// StartInstances requests a start for every instance in scope. Service
// errors are reported per instance and do not stop the loop.
func (r *Runner) StartInstances(ctx context.Context, project string) error {
	return r.walker.Walk(ctx, project, inventory.Instances, func(ctx context.Context, p inventory.Path) error {
		id := p.Instance.ID
		r.printf("Starting %s...\n", id)
		return r.isolate(ctx, "start", id, r.cloud.StartInstance(ctx, id))
	})
}

// isolate swallows service errors after reporting them. Anything else,
// such as a transport or credential failure, is returned.
func (r *Runner) isolate(ctx context.Context, operation, id string, err error) error {
	if err == nil {
		r.recorder.RecordOperation(ctx, operation, telemetry.OutcomeOK)
		return nil
	}

	r.recorder.RecordOperation(ctx, operation, telemetry.OutcomeFailed)

	apiErr, ok := cloud.AsAPIError(err)
	if !ok {
		return err
	}

	r.log.Warn().
		Ctx(ctx).
		Str("instance", id).
		Str("operation", operation).
		Str("code", apiErr.ErrorCode()).
		Msg("instance operation rejected")
	r.printf(" Could not %s %s. %s\n", operation, id, apiErr.Error())
	return nil
}

// SnapshotInstances stops each instance in scope, waits for it to stop,
// snapshots every attached volume, then starts it and waits for it to run.
// The first error aborts the command; the instance is left in whatever
// state it reached.
func (r *Runner) SnapshotInstances(ctx context.Context, project string) error {
	err := r.walker.Walk(ctx, project, inventory.Instances, func(ctx context.Context, p inventory.Path) error {
		if err := r.snapshotInstance(ctx, p.Instance); err != nil {
			r.recorder.RecordOperation(ctx, "snapshot", telemetry.OutcomeFailed)
			return err
		}
		r.recorder.RecordOperation(ctx, "snapshot", telemetry.OutcomeOK)
		return nil
	})
	if err != nil {
		return err
	}

	r.println("Job's done!")
	return nil
}

func (r *Runner) snapshotInstance(ctx context.Context, instance cloud.Instance) error {
	r.printf("Stopping %s...\n", instance.ID)
	if err := r.cloud.StopInstance(ctx, instance.ID); err != nil {
		return err
	}
	if err := r.cloud.WaitUntilStopped(ctx, instance.ID); err != nil {
		return err
	}

	volumes, err := r.cloud.Volumes(ctx, instance)
	if err != nil {
		return err
	}
	for _, v := range volumes {
		r.printf("  Creating snapshot of %s\n", v.ID)
		if _, err := r.cloud.CreateSnapshot(ctx, v.ID, r.desc); err != nil {
			return err
		}
	}

	r.printf("Starting %s...\n", instance.ID)
	if err := r.cloud.StartInstance(ctx, instance.ID); err != nil {
		return err
	}
	return r.cloud.WaitUntilRunning(ctx, instance.ID)
}
