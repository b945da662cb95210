package openstack

import (
	"os"
	"strings"

	"github.com/samber/lo"
)

// Config holds the defaults for every server the deployer boots. Deployment
// properties can override each of them per request.
type Config struct {
	Region           string
	Flavor           string
	Image            string
	Networks         []string
	SecurityGroups   []string
	KeyPair          string
	AvailabilityZone string
}

// ConfigFromEnv reads Config from OS_REGION_NAME and the OS_DEPLOYER_*
// variables. Credentials are read separately by gophercloud.
func ConfigFromEnv() Config {
	return Config{
		Region:           os.Getenv("OS_REGION_NAME"),
		Flavor:           os.Getenv("OS_DEPLOYER_FLAVOR"),
		Image:            os.Getenv("OS_DEPLOYER_IMAGE"),
		Networks:         SplitList(os.Getenv("OS_DEPLOYER_NETWORKS")),
		SecurityGroups:   SplitList(os.Getenv("OS_DEPLOYER_SECURITY_GROUPS")),
		KeyPair:          os.Getenv("OS_DEPLOYER_KEY_PAIR"),
		AvailabilityZone: os.Getenv("OS_DEPLOYER_AVAILABILITY_ZONE"),
	}
}

// SplitList splits a comma separated value, dropping blanks.
func SplitList(v string) []string {
	return lo.Compact(lo.Map(strings.Split(v, ","), func(s string, _ int) string {
		return strings.TrimSpace(s)
	}))
}
