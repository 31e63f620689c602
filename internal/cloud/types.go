package cloud

import (
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

// ProjectTag is the tag key used to scope instances.
const ProjectTag = "Project"

// Instance is an EC2 instance as seen by one invocation.
type Instance struct {
	ID               string
	Type             string
	AvailabilityZone string
	State            string
	PublicDNSName    string
	Tags             map[string]string
}

// Project returns the Project tag value, if any.
func (i Instance) Project() (string, bool) {
	v, ok := i.Tags[ProjectTag]
	return v, ok
}

// Volume is an EBS volume reached through its owning instance.
type Volume struct {
	ID         string
	InstanceID string
	State      string
	SizeGiB    int32
	Encrypted  bool
}

// Snapshot is a point-in-time copy of a volume.
type Snapshot struct {
	ID        string
	VolumeID  string
	State     string
	Progress  string
	StartTime time.Time
}

// SnapshotCompleted is the state of a finished snapshot.
const SnapshotCompleted = string(ec2types.SnapshotStateCompleted)

func convertInstance(instance ec2types.Instance) Instance {
	i := Instance{
		ID:            aws.ToString(instance.InstanceId),
		Type:          string(instance.InstanceType),
		PublicDNSName: aws.ToString(instance.PublicDnsName),
		Tags:          convertTags(instance.Tags),
	}
	if instance.Placement != nil {
		i.AvailabilityZone = aws.ToString(instance.Placement.AvailabilityZone)
	}
	if instance.State != nil {
		i.State = string(instance.State.Name)
	}
	return i
}

func convertVolume(volume ec2types.Volume, instanceID string) Volume {
	return Volume{
		ID:         aws.ToString(volume.VolumeId),
		InstanceID: instanceID,
		State:      string(volume.State),
		SizeGiB:    aws.ToInt32(volume.Size),
		Encrypted:  aws.ToBool(volume.Encrypted),
	}
}

func convertSnapshot(snapshot ec2types.Snapshot) Snapshot {
	return Snapshot{
		ID:        aws.ToString(snapshot.SnapshotId),
		VolumeID:  aws.ToString(snapshot.VolumeId),
		State:     string(snapshot.State),
		Progress:  aws.ToString(snapshot.Progress),
		StartTime: aws.ToTime(snapshot.StartTime),
	}
}

// convertTags builds a fresh map; later duplicates win.
func convertTags(tags []ec2types.Tag) map[string]string {
	result := make(map[string]string, len(tags))
	for _, tag := range tags {
		result[aws.ToString(tag.Key)] = aws.ToString(tag.Value)
	}
	return result
}
