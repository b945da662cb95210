package openstack

import (
	"context"
	"fmt"
	"regexp"
	"slices"

	"github.com/gophercloud/gophercloud"
	"github.com/gophercloud/gophercloud/openstack"
	"github.com/gophercloud/gophercloud/openstack/compute/v2/extensions/keypairs"
	"github.com/gophercloud/gophercloud/openstack/compute/v2/extensions/serverusage"
	"github.com/gophercloud/gophercloud/openstack/compute/v2/extensions/suspendresume"
	"github.com/gophercloud/gophercloud/openstack/compute/v2/servers"
	"github.com/gophercloud/gophercloud/openstack/identity/v3/tokens"
	"github.com/samber/lo"
	"k8s.io/apimachinery/pkg/labels"
	"sigs.k8s.io/controller-runtime/pkg/log"

	"github.com/ianzx15/cloud-deployer-openstack/pkg/apis/spi"
	"github.com/ianzx15/cloud-deployer-openstack/pkg/instance"
	"github.com/ianzx15/cloud-deployer-openstack/pkg/instancetype"
)

// Client is everything the deployers need from the compute API. Every call
// is a single round trip; nothing is cached.
type Client interface {
	BootServer(ctx context.Context, spec ServerSpec) (*instance.Instance, error)
	// ListServers returns the servers whose metadata contains every
	// key/value pair of selector.
	ListServers(ctx context.Context, selector map[string]string) ([]instance.Instance, error)
	// GetServer returns the server named name, or nil when there is none.
	GetServer(ctx context.Context, name string) (*instance.Instance, error)
	SuspendServer(ctx context.Context, id string) error
	DeleteServer(ctx context.Context, id string) error
	ResolveFlavor(ctx context.Context, ref string) (string, error)

	Endpoint() string
	SupportedServices() []string
	Version() string
}

// ServerSpec is the input of BootServer.
type ServerSpec struct {
	Name             string
	FlavorRef        string
	ImageRef         string
	Networks         []string
	SecurityGroups   []string
	KeyPair          string
	AvailabilityZone string
	UserData         string
	Metadata         map[string]string
}

type client struct {
	compute           *gophercloud.ServiceClient
	flavors           instancetype.Provider
	supportedServices []string
}

// server adds the OS-SRV-USG launch time to the plain server body.
type server struct {
	servers.Server
	serverusage.UsageExt
}

// NewClient authenticates with the OS_* environment variables and returns
// a client for the compute service of cfg.Region.
func NewClient(cfg Config) (Client, error) {
	opts, err := openstack.AuthOptionsFromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to get auth options: %w", err)
	}

	provider, err := openstack.AuthenticatedClient(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to authenticate: %w", err)
	}

	compute, err := openstack.NewComputeV2(provider, gophercloud.EndpointOpts{
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create compute client: %w", err)
	}

	return NewClientWithServiceClient(compute, catalogServices(provider)), nil
}

// NewClientWithServiceClient wraps an already built compute client.
func NewClientWithServiceClient(compute *gophercloud.ServiceClient, supportedServices []string) Client {
	if len(supportedServices) == 0 {
		supportedServices = []string{lo.Ternary(compute.Type != "", compute.Type, "compute")}
	}
	return &client{
		compute:           compute,
		flavors:           instancetype.NewProvider(compute),
		supportedServices: supportedServices,
	}
}

func catalogServices(provider *gophercloud.ProviderClient) []string {
	result, ok := provider.GetAuthResult().(tokens.CreateResult)
	if !ok {
		return nil
	}
	catalog, err := result.ExtractServiceCatalog()
	if err != nil {
		return nil
	}
	services := lo.Uniq(lo.Map(catalog.Entries, func(e tokens.CatalogEntry, _ int) string { return e.Type }))
	slices.Sort(services)
	return services
}

func (c *client) BootServer(ctx context.Context, spec ServerSpec) (*instance.Instance, error) {
	createOpts := servers.CreateOpts{
		Name:             spec.Name,
		FlavorRef:        spec.FlavorRef,
		ImageRef:         spec.ImageRef,
		SecurityGroups:   spec.SecurityGroups,
		AvailabilityZone: spec.AvailabilityZone,
		Metadata:         spec.Metadata,
	}
	if len(spec.Networks) > 0 {
		createOpts.Networks = lo.Map(spec.Networks, func(id string, _ int) servers.Network {
			return servers.Network{UUID: id}
		})
	}
	if spec.UserData != "" {
		createOpts.UserData = []byte(spec.UserData)
	}

	var opts servers.CreateOptsBuilder = createOpts
	if spec.KeyPair != "" {
		opts = keypairs.CreateOptsExt{CreateOptsBuilder: createOpts, KeyName: spec.KeyPair}
	}

	created, err := servers.Create(c.compute, opts).Extract()
	if err != nil {
		return nil, spi.NewProviderError("boot server", err)
	}

	log.FromContext(ctx).V(1).Info("booted server", "name", spec.Name, "id", created.ID)
	return &instance.Instance{
		InstanceID: created.ID,
		Name:       spec.Name,
		Status:     created.Status,
		AccessIPv4: created.AccessIPv4,
		Metadata:   spec.Metadata,
	}, nil
}

func (c *client) ListServers(ctx context.Context, selector map[string]string) ([]instance.Instance, error) {
	// Nova cannot filter on metadata, so the selector is applied here.
	all, err := c.list(servers.ListOpts{})
	if err != nil {
		return nil, err
	}
	matched := lo.Filter(all, func(i instance.Instance, _ int) bool {
		return matchesSelector(selector, i.Metadata)
	})
	log.FromContext(ctx).V(1).Info("listed servers", "selector", selector, "total", len(all), "matched", len(matched))
	return matched, nil
}

func (c *client) GetServer(ctx context.Context, name string) (*instance.Instance, error) {
	// The name filter is a regular expression on the Nova side.
	all, err := c.list(servers.ListOpts{Name: "^" + regexp.QuoteMeta(name) + "$"})
	if err != nil {
		return nil, err
	}
	named := lo.Filter(all, func(i instance.Instance, _ int) bool { return i.Name == name })
	if len(named) == 0 {
		return nil, nil
	}
	if len(named) > 1 {
		log.FromContext(ctx).Info("several servers share a name, using the first", "name", name, "count", len(named))
	}
	return &named[0], nil
}

func (c *client) SuspendServer(ctx context.Context, id string) error {
	if err := suspendresume.Suspend(c.compute, id).ExtractErr(); err != nil {
		return spi.NewProviderError("suspend server", err)
	}
	log.FromContext(ctx).V(1).Info("suspended server", "id", id)
	return nil
}

func (c *client) DeleteServer(ctx context.Context, id string) error {
	if err := servers.Delete(c.compute, id).ExtractErr(); err != nil {
		return spi.NewProviderError("delete server", err)
	}
	log.FromContext(ctx).V(1).Info("deleted server", "id", id)
	return nil
}

func (c *client) ResolveFlavor(ctx context.Context, ref string) (string, error) {
	id, err := c.flavors.Resolve(ctx, ref)
	if err != nil {
		return "", spi.NewProviderError("resolve flavor", err)
	}
	return id, nil
}

func (c *client) Endpoint() string {
	return c.compute.Endpoint
}

func (c *client) SupportedServices() []string {
	return c.supportedServices
}

func (c *client) Version() string {
	return gophercloud.DefaultUserAgent
}

func (c *client) list(opts servers.ListOpts) ([]instance.Instance, error) {
	pages, err := servers.List(c.compute, opts).AllPages()
	if err != nil {
		return nil, spi.NewProviderError("list servers", err)
	}
	var all []server
	if err := servers.ExtractServersInto(pages, &all); err != nil {
		return nil, spi.NewProviderError("list servers", err)
	}
	return lo.Map(all, func(s server, _ int) instance.Instance {
		return instance.Instance{
			InstanceID: s.ID,
			Name:       s.Name,
			Status:     s.Status,
			LaunchedAt: s.UsageExt.LaunchedAt,
			AccessIPv4: s.AccessIPv4,
			Metadata:   s.Metadata,
		}
	}), nil
}

func matchesSelector(selector, metadata map[string]string) bool {
	return labels.SelectorFromValidatedSet(labels.Set(selector)).Matches(labels.Set(metadata))
}
