package cloud

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/rs/zerolog/log"
)

// StopInstance requests a stop and returns without waiting.
func (c *Client) StopInstance(ctx context.Context, id string) error {
	_, err := c.ec2Client.StopInstances(ctx, &ec2.StopInstancesInput{
		InstanceIds: []string{id},
	})
	if err != nil {
		return fmt.Errorf("stop instance %s: %w", id, err)
	}
	return nil
}

// StartInstance requests a start and returns without waiting.
func (c *Client) StartInstance(ctx context.Context, id string) error {
	_, err := c.ec2Client.StartInstances(ctx, &ec2.StartInstancesInput{
		InstanceIds: []string{id},
	})
	if err != nil {
		return fmt.Errorf("start instance %s: %w", id, err)
	}
	return nil
}

// WaitUntilStopped blocks until the instance reports "stopped" or the wait
// timeout elapses.
func (c *Client) WaitUntilStopped(ctx context.Context, id string) error {
	log.Debug().Str("instance", id).Dur("timeout", c.waitTimeout).Msg("waiting for stopped state")

	waiter := ec2.NewInstanceStoppedWaiter(c.ec2Client)
	if err := waiter.Wait(ctx, &ec2.DescribeInstancesInput{
		InstanceIds: []string{id},
	}, c.waitTimeout); err != nil {
		return fmt.Errorf("waiting for %s to stop: %w", id, err)
	}

	log.Debug().Str("instance", id).Msg("instance stopped")
	return nil
}

// WaitUntilRunning blocks until the instance reports "running" or the wait
// timeout elapses.
func (c *Client) WaitUntilRunning(ctx context.Context, id string) error {
	log.Debug().Str("instance", id).Dur("timeout", c.waitTimeout).Msg("waiting for running state")

	waiter := ec2.NewInstanceRunningWaiter(c.ec2Client)
	if err := waiter.Wait(ctx, &ec2.DescribeInstancesInput{
		InstanceIds: []string{id},
	}, c.waitTimeout); err != nil {
		return fmt.Errorf("waiting for %s to run: %w", id, err)
	}

	log.Debug().Str("instance", id).Msg("instance running")
	return nil
}

// CreateSnapshot starts a snapshot of the volume. It does not wait for the
// snapshot to complete.
func (c *Client) CreateSnapshot(ctx context.Context, volumeID, description string) (Snapshot, error) {
	output, err := c.ec2Client.CreateSnapshot(ctx, &ec2.CreateSnapshotInput{
		VolumeId:    aws.String(volumeID),
		Description: aws.String(description),
	})
	if err != nil {
		return Snapshot{}, fmt.Errorf("create snapshot of %s: %w", volumeID, err)
	}

	snapshot := Snapshot{
		ID:        aws.ToString(output.SnapshotId),
		VolumeID:  aws.ToString(output.VolumeId),
		State:     string(output.State),
		Progress:  aws.ToString(output.Progress),
		StartTime: aws.ToTime(output.StartTime),
	}
	log.Info().Str("volume", volumeID).Str("snapshot", snapshot.ID).Msg("snapshot requested")
	return snapshot, nil
}
