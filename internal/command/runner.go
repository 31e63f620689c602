// Package command implements the instances, volumes and snapshots actions.
// Every action resolves its scope through inventory.Walker and writes one
// row per resource.
package command

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/yairfalse/shotty/internal/cloud"
	"github.com/yairfalse/shotty/internal/inventory"
)

// Cloud is the EC2 surface the actions need.
type Cloud interface {
	inventory.Source
	StopInstance(ctx context.Context, id string) error
	StartInstance(ctx context.Context, id string) error
	WaitUntilStopped(ctx context.Context, id string) error
	WaitUntilRunning(ctx context.Context, id string) error
	CreateSnapshot(ctx context.Context, volumeID, description string) (cloud.Snapshot, error)
}

var _ Cloud = (*cloud.Client)(nil)

// Recorder receives one call per instance operation attempt.
type Recorder interface {
	RecordOperation(ctx context.Context, operation, outcome string)
}

type nopRecorder struct{}

func (nopRecorder) RecordOperation(context.Context, string, string) {}

// Options configure a Runner.
type Options struct {
	// SnapshotDescription is attached to every snapshot created.
	SnapshotDescription string
	Recorder            Recorder
	Logger              zerolog.Logger
}

// Runner executes actions against one EC2 session.
type Runner struct {
	cloud    Cloud
	walker   *inventory.Walker
	out      io.Writer
	log      zerolog.Logger
	recorder Recorder
	desc     string
}

// NewRunner creates a runner that prints rows to out.
func NewRunner(c Cloud, out io.Writer, opts Options) *Runner {
	rec := opts.Recorder
	if rec == nil {
		rec = nopRecorder{}
	}
	return &Runner{
		cloud:    c,
		walker:   inventory.NewWalker(c),
		out:      out,
		log:      opts.Logger,
		recorder: rec,
		desc:     opts.SnapshotDescription,
	}
}

func (r *Runner) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.out, format, args...)
}

func (r *Runner) println(line string) {
	_, _ = fmt.Fprintln(r.out, line)
}
