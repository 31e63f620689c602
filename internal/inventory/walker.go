// Package inventory walks the resources in scope: instances, then each
// instance's volumes, then each volume's snapshots.
package inventory

import (
	"context"
	"errors"

	"github.com/yairfalse/shotty/internal/cloud"
)

// SkipVolume may be returned by a snapshot-level VisitFunc to skip the
// remaining snapshots of the current volume. The walk continues with the
// next volume.
var SkipVolume = errors.New("skip remaining snapshots of this volume")

// Depth selects which level of the tree is visited.
type Depth int

const (
	Instances Depth = iota
	Volumes
	Snapshots
)

func (d Depth) String() string {
	switch d {
	case Instances:
		return "instances"
	case Volumes:
		return "volumes"
	case Snapshots:
		return "snapshots"
	default:
		return "unknown"
	}
}

// Source is the read side of the EC2 API the walker needs.
type Source interface {
	Instances(ctx context.Context, project string) ([]cloud.Instance, error)
	Volumes(ctx context.Context, instance cloud.Instance) ([]cloud.Volume, error)
	Snapshots(ctx context.Context, volume cloud.Volume) ([]cloud.Snapshot, error)
}

// Path is one visited node together with its owners. Fields below the
// walk depth are zero.
type Path struct {
	Instance cloud.Instance
	Volume   cloud.Volume
	Snapshot cloud.Snapshot
}

// VisitFunc is called once per node at the walk depth.
type VisitFunc func(ctx context.Context, p Path) error

// Walker resolves the scope and descends to the requested depth.
type Walker struct {
	source Source
}

// NewWalker creates a walker over the given source.
func NewWalker(source Source) *Walker {
	return &Walker{source: source}
}

// Walk visits every node at depth within the project scope, in the order
// the source returns them. A non-nil error from fn, other than SkipVolume
// at snapshot depth, stops the walk and is returned.
func (w *Walker) Walk(ctx context.Context, project string, depth Depth, fn VisitFunc) error {
	instances, err := w.source.Instances(ctx, project)
	if err != nil {
		return err
	}

	for _, instance := range instances {
		if depth == Instances {
			if err := fn(ctx, Path{Instance: instance}); err != nil {
				return err
			}
			continue
		}

		if err := w.walkVolumes(ctx, instance, depth, fn); err != nil {
			return err
		}
	}

	return nil
}

func (w *Walker) walkVolumes(ctx context.Context, instance cloud.Instance, depth Depth, fn VisitFunc) error {
	volumes, err := w.source.Volumes(ctx, instance)
	if err != nil {
		return err
	}

	for _, volume := range volumes {
		if depth == Volumes {
			if err := fn(ctx, Path{Instance: instance, Volume: volume}); err != nil {
				return err
			}
			continue
		}

		if err := w.walkSnapshots(ctx, instance, volume, fn); err != nil {
			return err
		}
	}

	return nil
}

func (w *Walker) walkSnapshots(ctx context.Context, instance cloud.Instance, volume cloud.Volume, fn VisitFunc) error {
	snapshots, err := w.source.Snapshots(ctx, volume)
	if err != nil {
		return err
	}

	for _, snapshot := range snapshots {
		err := fn(ctx, Path{Instance: instance, Volume: volume, Snapshot: snapshot})
		if errors.Is(err, SkipVolume) {
			return nil
		}
		if err != nil {
			return err
		}
	}

	return nil
}
