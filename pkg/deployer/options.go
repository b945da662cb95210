package deployer

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/ianzx15/cloud-deployer-openstack/pkg/apis/spi"
	"github.com/ianzx15/cloud-deployer-openstack/pkg/openstack"
	"github.com/ianzx15/cloud-deployer-openstack/pkg/utils"
)

const defaultServerPort = 8080

// serverTemplate builds the part of a ServerSpec shared by every instance of
// a request: configured defaults with the deployment property overrides
// applied and the flavor resolved to an ID.
func serverTemplate(ctx context.Context, client openstack.Client, cfg openstack.Config, request spi.AppDeploymentRequest) (openstack.ServerSpec, error) {
	spec := openstack.ServerSpec{
		FlavorRef:        cfg.Flavor,
		ImageRef:         cfg.Image,
		Networks:         cfg.Networks,
		SecurityGroups:   cfg.SecurityGroups,
		KeyPair:          cfg.KeyPair,
		AvailabilityZone: cfg.AvailabilityZone,
	}
	if v, ok := request.DeploymentProperty(spi.FlavorPropertyKey); ok {
		spec.FlavorRef = v
	}
	if v, ok := request.DeploymentProperty(spi.ImagePropertyKey); ok {
		spec.ImageRef = v
	}
	if v, ok := request.DeploymentProperty(spi.NetworksPropertyKey); ok {
		spec.Networks = openstack.SplitList(v)
	}
	if v, ok := request.DeploymentProperty(spi.SecurityGroupsPropertyKey); ok {
		spec.SecurityGroups = openstack.SplitList(v)
	}
	if v, ok := request.DeploymentProperty(spi.KeyPairPropertyKey); ok {
		spec.KeyPair = v
	}
	if v, ok := request.DeploymentProperty(spi.AvailabilityZonePropertyKey); ok {
		spec.AvailabilityZone = v
	}

	if spec.FlavorRef == "" {
		return spec, spi.NewConfigurationError(spi.FlavorPropertyKey, "", errors.New("no flavor configured"))
	}
	if spec.ImageRef == "" {
		return spec, spi.NewConfigurationError(spi.ImagePropertyKey, "", errors.New("no image configured"))
	}

	flavorID, err := client.ResolveFlavor(ctx, spec.FlavorRef)
	if err != nil {
		return spec, err
	}
	spec.FlavorRef = flavorID
	return spec, nil
}

// withInstance fills in the per-server fields of a template.
func withInstance(template openstack.ServerSpec, name string, request spi.AppDeploymentRequest, port int, metadata map[string]string) openstack.ServerSpec {
	spec := template
	spec.Name = name
	spec.Metadata = metadata
	spec.UserData = utils.GenerateUserData(request.Name, name, request.Resource, port, request.DefinitionProperties)
	return spec
}

// serverPort is the external port of the app, taken from its server.port
// definition property.
func serverPort(request spi.AppDeploymentRequest) (int, error) {
	v, ok := request.DefinitionProperties[spi.ServerPortPropertyKey]
	if !ok {
		return defaultServerPort, nil
	}
	port, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, spi.NewConfigurationError(spi.ServerPortPropertyKey, v, err)
	}
	return port, nil
}

func instanceCount(request spi.AppDeploymentRequest) (int, error) {
	v, ok := request.DeploymentProperty(spi.CountPropertyKey)
	if !ok {
		return 1, nil
	}
	count, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, spi.NewConfigurationError(spi.CountPropertyKey, v, err)
	}
	if count < 0 {
		return 0, spi.NewConfigurationError(spi.CountPropertyKey, v, errors.New("count must not be negative"))
	}
	return count, nil
}

func indexed(request spi.AppDeploymentRequest) bool {
	v, _ := request.DeploymentProperty(spi.IndexedPropertyKey)
	return strings.EqualFold(strings.TrimSpace(v), "true")
}
