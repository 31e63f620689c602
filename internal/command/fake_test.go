package command

import (
	"bytes"
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/yairfalse/shotty/internal/cloud"
)

// fakeCloud is an in-memory Cloud. Errors are keyed by resource id.
type fakeCloud struct {
	instances []cloud.Instance
	volumes   map[string][]cloud.Volume
	snapshots map[string][]cloud.Snapshot

	instancesErr error
	stopErr      map[string]error
	startErr     map[string]error
	waitErr      map[string]error
	snapshotErr  map[string]error

	gotProject string
	calls      []string
}

func (f *fakeCloud) Instances(_ context.Context, project string) ([]cloud.Instance, error) {
	f.gotProject = project
	if f.instancesErr != nil {
		return nil, f.instancesErr
	}
	var out []cloud.Instance
	for _, i := range f.instances {
		if project == "" || i.Tags[cloud.ProjectTag] == project {
			out = append(out, i)
		}
	}
	return out, nil
}

func (f *fakeCloud) Volumes(_ context.Context, instance cloud.Instance) ([]cloud.Volume, error) {
	return f.volumes[instance.ID], nil
}

func (f *fakeCloud) Snapshots(_ context.Context, volume cloud.Volume) ([]cloud.Snapshot, error) {
	return f.snapshots[volume.ID], nil
}

func (f *fakeCloud) StopInstance(_ context.Context, id string) error {
	f.calls = append(f.calls, "stop "+id)
	return f.stopErr[id]
}

func (f *fakeCloud) StartInstance(_ context.Context, id string) error {
	f.calls = append(f.calls, "start "+id)
	return f.startErr[id]
}

func (f *fakeCloud) WaitUntilStopped(_ context.Context, id string) error {
	f.calls = append(f.calls, "wait-stopped "+id)
	return f.waitErr[id]
}

func (f *fakeCloud) WaitUntilRunning(_ context.Context, id string) error {
	f.calls = append(f.calls, "wait-running "+id)
	return f.waitErr[id]
}

func (f *fakeCloud) CreateSnapshot(_ context.Context, volumeID, description string) (cloud.Snapshot, error) {
	f.calls = append(f.calls, fmt.Sprintf("snapshot %s %q", volumeID, description))
	if err := f.snapshotErr[volumeID]; err != nil {
		return cloud.Snapshot{}, err
	}
	return cloud.Snapshot{ID: "snap-new", VolumeID: volumeID, State: "pending"}, nil
}

type recordedOp struct {
	operation string
	outcome   string
}

type fakeRecorder struct {
	ops []recordedOp
}

func (r *fakeRecorder) RecordOperation(_ context.Context, operation, outcome string) {
	r.ops = append(r.ops, recordedOp{operation, outcome})
}

func newTestRunner(c Cloud) (*Runner, *bytes.Buffer, *fakeRecorder) {
	var out bytes.Buffer
	rec := &fakeRecorder{}
	r := NewRunner(c, &out, Options{
		SnapshotDescription: "Created by Snapshotalyzer 30000",
		Recorder:            rec,
		Logger:              zerolog.Nop(),
	})
	return r, &out, rec
}
