package instance

import "time"

// Nova server statuses the deployer reacts to. Everything else (SHUTOFF,
// SUSPENDED, REBOOT, ...) falls through to the default branch of the
// translators.
const (
	StatusBuild   = "BUILD"
	StatusActive  = "ACTIVE"
	StatusError   = "ERROR"
	StatusUnknown = "UNKNOWN"
)

// Instance is the deployer's view of a compute server. It is read from the
// cloud on every query and never cached.
type Instance struct {
	InstanceID string
	Name       string
	Status     string
	LaunchedAt time.Time
	AccessIPv4 string
	Metadata   map[string]string
}
