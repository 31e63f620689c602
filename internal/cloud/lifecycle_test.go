package cloud

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStopInstance(t *testing.T) {
	var got []string
	mock := &mockEC2Client{
		stopInstancesFunc: func(_ context.Context, params *ec2.StopInstancesInput, _ ...func(*ec2.Options)) (*ec2.StopInstancesOutput, error) {
			got = params.InstanceIds
			return &ec2.StopInstancesOutput{}, nil
		},
	}

	c := NewWithAPI(mock, time.Minute)
	require.NoError(t, c.StopInstance(context.Background(), "i-001"))
	assert.Equal(t, []string{"i-001"}, got)
}

func TestStopInstance_APIError(t *testing.T) {
	mock := &mockEC2Client{
		stopInstancesFunc: func(_ context.Context, _ *ec2.StopInstancesInput, _ ...func(*ec2.Options)) (*ec2.StopInstancesOutput, error) {
			return nil, &smithy.GenericAPIError{Code: "IncorrectInstanceState", Message: "instance is not in a state from which it can be stopped"}
		},
	}

	c := NewWithAPI(mock, time.Minute)
	err := c.StopInstance(context.Background(), "i-001")

	require.Error(t, err)
	assert.True(t, IsAPIError(err), "wrapping keeps the API error reachable")
	assert.Equal(t, "IncorrectInstanceState", APIErrorCode(err))
	assert.Contains(t, err.Error(), "stop instance i-001")
}

func TestStartInstance(t *testing.T) {
	var got []string
	mock := &mockEC2Client{
		startInstancesFunc: func(_ context.Context, params *ec2.StartInstancesInput, _ ...func(*ec2.Options)) (*ec2.StartInstancesOutput, error) {
			got = params.InstanceIds
			return &ec2.StartInstancesOutput{}, nil
		},
	}

	c := NewWithAPI(mock, time.Minute)
	require.NoError(t, c.StartInstance(context.Background(), "i-002"))
	assert.Equal(t, []string{"i-002"}, got)
}

func TestStartInstance_TransportError(t *testing.T) {
	mock := &mockEC2Client{
		startInstancesFunc: func(_ context.Context, _ *ec2.StartInstancesInput, _ ...func(*ec2.Options)) (*ec2.StartInstancesOutput, error) {
			return nil, errors.New("dial tcp: i/o timeout")
		},
	}

	c := NewWithAPI(mock, time.Minute)
	err := c.StartInstance(context.Background(), "i-002")

	require.Error(t, err)
	assert.False(t, IsAPIError(err))
	assert.Empty(t, APIErrorCode(err))
}

func TestWaitUntilStopped(t *testing.T) {
	mock := &mockEC2Client{describeInstancesFunc: instancesInState(types.InstanceStateNameStopped)}

	c := NewWithAPI(mock, time.Minute)
	require.NoError(t, c.WaitUntilStopped(context.Background(), "i-001"))
}

func TestWaitUntilStopped_Timeout(t *testing.T) {
	// Below the waiter's minimum delay, so it gives up after one poll.
	mock := &mockEC2Client{describeInstancesFunc: instancesInState(types.InstanceStateNameStopping)}

	c := NewWithAPI(mock, time.Second)
	err := c.WaitUntilStopped(context.Background(), "i-001")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "waiting for i-001 to stop")
	assert.Contains(t, err.Error(), "exceeded max wait time")
}

func TestWaitUntilRunning(t *testing.T) {
	mock := &mockEC2Client{describeInstancesFunc: instancesInState(types.InstanceStateNameRunning)}

	c := NewWithAPI(mock, time.Minute)
	require.NoError(t, c.WaitUntilRunning(context.Background(), "i-001"))
}

func TestWaitUntilRunning_Terminated(t *testing.T) {
	mock := &mockEC2Client{describeInstancesFunc: instancesInState(types.InstanceStateNameTerminated)}

	c := NewWithAPI(mock, time.Minute)
	err := c.WaitUntilRunning(context.Background(), "i-001")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "waiting for i-001 to run")
}

func TestCreateSnapshot(t *testing.T) {
	started := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	var got *ec2.CreateSnapshotInput
	mock := &mockEC2Client{
		createSnapshotFunc: func(_ context.Context, params *ec2.CreateSnapshotInput, _ ...func(*ec2.Options)) (*ec2.CreateSnapshotOutput, error) {
			got = params
			return &ec2.CreateSnapshotOutput{
				SnapshotId: aws.String("snap-01"),
				VolumeId:   params.VolumeId,
				State:      types.SnapshotStatePending,
				Progress:   aws.String("0%"),
				StartTime:  aws.Time(started),
			}, nil
		},
	}

	c := NewWithAPI(mock, time.Minute)
	snapshot, err := c.CreateSnapshot(context.Background(), "vol-01", "Created by Snapshotalyzer 30000")

	require.NoError(t, err)
	assert.Equal(t, "vol-01", aws.ToString(got.VolumeId))
	assert.Equal(t, "Created by Snapshotalyzer 30000", aws.ToString(got.Description))
	assert.Equal(t, Snapshot{ID: "snap-01", VolumeID: "vol-01", State: "pending", Progress: "0%", StartTime: started}, snapshot)
}

func TestCreateSnapshot_Error(t *testing.T) {
	mock := &mockEC2Client{
		createSnapshotFunc: func(_ context.Context, _ *ec2.CreateSnapshotInput, _ ...func(*ec2.Options)) (*ec2.CreateSnapshotOutput, error) {
			return nil, &smithy.GenericAPIError{Code: "SnapshotLimitExceeded", Message: "limit"}
		},
	}

	c := NewWithAPI(mock, time.Minute)
	_, err := c.CreateSnapshot(context.Background(), "vol-01", "d")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "create snapshot of vol-01")
	assert.Equal(t, "SnapshotLimitExceeded", APIErrorCode(err))
}
