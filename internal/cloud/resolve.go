package cloud

import (
	"context"
	"fmt"
	"slices"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/rs/zerolog/log"
)

// Instances returns the instances in scope. An empty project selects every
// instance in the account.
func (c *Client) Instances(ctx context.Context, project string) ([]Instance, error) {
	input := &ec2.DescribeInstancesInput{}
	if project != "" {
		input.Filters = []ec2types.Filter{{
			Name:   aws.String("tag:" + ProjectTag),
			Values: []string{project},
		}}
	}

	var instances []Instance
	paginator := ec2.NewDescribeInstancesPaginator(c.ec2Client, input)
	for paginator.HasMorePages() {
		output, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("describe instances: %w", err)
		}

		for _, reservation := range output.Reservations {
			for _, instance := range reservation.Instances {
				instances = append(instances, convertInstance(instance))
			}
		}
	}

	log.Debug().Str("project", project).Int("count", len(instances)).Msg("resolved instances")
	return instances, nil
}

// Volumes returns the volumes attached to the instance.
func (c *Client) Volumes(ctx context.Context, instance Instance) ([]Volume, error) {
	input := &ec2.DescribeVolumesInput{
		Filters: []ec2types.Filter{{
			Name:   aws.String("attachment.instance-id"),
			Values: []string{instance.ID},
		}},
	}

	var volumes []Volume
	paginator := ec2.NewDescribeVolumesPaginator(c.ec2Client, input)
	for paginator.HasMorePages() {
		output, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("describe volumes of %s: %w", instance.ID, err)
		}

		for _, volume := range output.Volumes {
			volumes = append(volumes, convertVolume(volume, instance.ID))
		}
	}

	return volumes, nil
}

// Snapshots returns the account's snapshots of the volume, newest first.
func (c *Client) Snapshots(ctx context.Context, volume Volume) ([]Snapshot, error) {
	input := &ec2.DescribeSnapshotsInput{
		OwnerIds: []string{"self"},
		Filters: []ec2types.Filter{{
			Name:   aws.String("volume-id"),
			Values: []string{volume.ID},
		}},
	}

	var snapshots []Snapshot
	paginator := ec2.NewDescribeSnapshotsPaginator(c.ec2Client, input)
	for paginator.HasMorePages() {
		output, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("describe snapshots of %s: %w", volume.ID, err)
		}

		for _, snapshot := range output.Snapshots {
			snapshots = append(snapshots, convertSnapshot(snapshot))
		}
	}

	slices.SortStableFunc(snapshots, func(a, b Snapshot) int {
		return b.StartTime.Compare(a.StartTime)
	})

	return snapshots, nil
}
