// Package deployer implements the app and task lifecycle operations on top
// of an OpenStack compute client. Nothing is kept between calls: every
// status is read back from the cloud.
package deployer

import (
	"strings"

	"github.com/ianzx15/cloud-deployer-openstack/pkg/apis/spi"
	"github.com/ianzx15/cloud-deployer-openstack/pkg/openstack"
)

const (
	ImplementationName = "openstack-deployer"

	EndpointInfoKey          = "endpoint"
	SupportedServicesInfoKey = "supported-services"
)

// Version is the implementation version, set at link time.
var Version = "dev"

func environmentInfo(spiName string, client openstack.Client) spi.RuntimeEnvironmentInfo {
	return spi.RuntimeEnvironmentInfo{
		SPI:                   spiName,
		ImplementationName:    ImplementationName,
		ImplementationVersion: Version,
		PlatformType:          spi.PlatformType,
		PlatformAPIVersion:    spi.PlatformAPIVersion,
		PlatformClientVersion: client.Version(),
		PlatformHostVersion:   "unknown",
		PlatformSpecificInfo: map[string]string{
			EndpointInfoKey:          client.Endpoint(),
			SupportedServicesInfoKey: strings.Join(client.SupportedServices(), ","),
		},
	}
}
