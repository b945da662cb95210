package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/speps/go-hashids/v2"

	"github.com/ianzx15/cloud-deployer-openstack/pkg/apis/spi"
)

const taskIDAlphabet = "abcdefghijklmnopqrstuvwxyz1234567890"

// AppDeploymentID derives the deployment id of an app: "<group>-<name>" when
// the request carries a group, "<name>" otherwise.
func AppDeploymentID(request spi.AppDeploymentRequest) string {
	id := request.Name
	if group, ok := request.Group(); ok {
		id = fmt.Sprintf("%s-%s", group, request.Name)
	}
	return Normalize(id)
}

// TaskDeploymentID derives a fresh id for one launch of the task name. The
// suffix is a hashid of the launch time in milliseconds salted with the task
// name, so two launches within the same millisecond collide.
func TaskDeploymentID(name string, now time.Time) string {
	return Normalize(name + "-" + encodeMillis(name, now.UnixMilli()))
}

// Normalize makes id acceptable as a server name: OpenStack rejects
// uppercase letters and periods in the names the deployer looks up.
func Normalize(id string) string {
	return strings.ToLower(strings.ReplaceAll(id, ".", "-"))
}

func encodeMillis(salt string, millis int64) string {
	data := hashids.NewData()
	data.Salt = salt
	data.Alphabet = taskIDAlphabet
	h, err := hashids.NewWithData(data)
	if err == nil {
		var encoded string
		if encoded, err = h.EncodeInt64([]int64{millis}); err == nil {
			return encoded
		}
	}
	// Only reachable with a pre-epoch clock.
	return strconv.FormatInt(millis, 36)
}
