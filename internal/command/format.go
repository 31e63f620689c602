package command

import (
	"strconv"
	"strings"
	"time"

	"github.com/yairfalse/shotty/internal/cloud"
)

const (
	fieldSep  = ", "
	noProject = "<no project>"

	// Matches the C locale %c form, e.g. "Mon Jan  2 15:04:05 2006".
	timeLayout = time.ANSIC
)

func joinFields(fields ...string) string {
	return strings.Join(fields, fieldSep)
}

func formatInstance(i cloud.Instance) string {
	project, ok := i.Project()
	if !ok {
		project = noProject
	}
	return joinFields(
		i.ID,
		i.Type,
		i.AvailabilityZone,
		i.State,
		i.PublicDNSName,
		project,
	)
}

func formatVolume(v cloud.Volume) string {
	encrypted := "Not Encrypted"
	if v.Encrypted {
		encrypted = "Encrypted"
	}
	return joinFields(
		v.ID,
		v.InstanceID,
		v.State,
		strconv.Itoa(int(v.SizeGiB))+"GiB",
		encrypted,
	)
}

func formatSnapshot(s cloud.Snapshot, v cloud.Volume, i cloud.Instance) string {
	return joinFields(
		s.ID,
		v.ID,
		i.ID,
		v.State,
		s.Progress,
		s.StartTime.UTC().Format(timeLayout),
	)
}
