// Package spi holds the value types shared by the app deployer and the task
// launcher: deployment requests, lifecycle states, statuses and errors.
package spi

const (
	// GroupPropertyKey names the group an app belongs to. When present the
	// deployment id becomes "<group>-<name>".
	GroupPropertyKey = "spring.cloud.deployer.group"
	// CountPropertyKey is the number of instances of an indexed app.
	CountPropertyKey = "spring.cloud.deployer.count"
	// IndexedPropertyKey switches an app to one instance per index.
	IndexedPropertyKey = "spring.cloud.deployer.indexed"

	// ServerPortPropertyKey is a definition property carrying the port the
	// app listens on.
	ServerPortPropertyKey = "server.port"

	// Per-request overrides for the server that gets booted.
	FlavorPropertyKey           = "spring.cloud.deployer.openstack.flavor"
	ImagePropertyKey            = "spring.cloud.deployer.openstack.image"
	NetworksPropertyKey         = "spring.cloud.deployer.openstack.networks"
	SecurityGroupsPropertyKey   = "spring.cloud.deployer.openstack.securityGroups"
	KeyPairPropertyKey          = "spring.cloud.deployer.openstack.keyPair"
	AvailabilityZonePropertyKey = "spring.cloud.deployer.openstack.availabilityZone"
)

// AppDeploymentRequest describes one app or task to run on the cloud.
type AppDeploymentRequest struct {
	// Name is the definition name of the app.
	Name string
	// Resource points at the artifact to run, e.g. a docker image or an URL.
	Resource string
	// DefinitionProperties are the app's own properties.
	DefinitionProperties map[string]string
	// DeploymentProperties tune how the deployer runs the app.
	DeploymentProperties map[string]string
}

// NewAppDeploymentRequest returns a request with non-nil property maps.
func NewAppDeploymentRequest(name, resource string, definitionProperties, deploymentProperties map[string]string) AppDeploymentRequest {
	if definitionProperties == nil {
		definitionProperties = map[string]string{}
	}
	if deploymentProperties == nil {
		deploymentProperties = map[string]string{}
	}
	return AppDeploymentRequest{
		Name:                 name,
		Resource:             resource,
		DefinitionProperties: definitionProperties,
		DeploymentProperties: deploymentProperties,
	}
}

// DeploymentProperty returns a deployment property and whether it was set.
func (r AppDeploymentRequest) DeploymentProperty(key string) (string, bool) {
	v, ok := r.DeploymentProperties[key]
	return v, ok
}

// Group returns the group of the request, if any.
func (r AppDeploymentRequest) Group() (string, bool) {
	return r.DeploymentProperty(GroupPropertyKey)
}
