package deployer

import (
	"context"
	"fmt"

	"github.com/samber/lo"
	"sigs.k8s.io/controller-runtime/pkg/log"

	"github.com/ianzx15/cloud-deployer-openstack/pkg/apis/spi"
	"github.com/ianzx15/cloud-deployer-openstack/pkg/instance"
	"github.com/ianzx15/cloud-deployer-openstack/pkg/openstack"
	"github.com/ianzx15/cloud-deployer-openstack/pkg/utils"
)

// AppDeployer runs long lived apps as one or more compute servers.
type AppDeployer struct {
	client openstack.Client
	config openstack.Config
}

func NewAppDeployer(client openstack.Client, config openstack.Config) *AppDeployer {
	return &AppDeployer{client: client, config: config}
}

// Deploy boots the servers of request and returns its deployment id. An
// indexed request gets one server per index, named "<id>-<index>". Servers
// booted before a failure are left in place.
func (d *AppDeployer) Deploy(ctx context.Context, request spi.AppDeploymentRequest) (string, error) {
	id := utils.AppDeploymentID(request)
	logger := log.FromContext(ctx).WithValues("deploymentId", id)

	status, err := d.Status(ctx, id)
	if err != nil {
		logger.Error(err, "failed to read app status")
		return "", err
	}
	if status.State() != spi.DeploymentStateUnknown {
		err := spi.NewAlreadyDeployedError(id)
		logger.Error(err, "refusing to deploy", "state", status.State())
		return "", err
	}

	port, err := serverPort(request)
	if err != nil {
		logger.Error(err, "bad server port")
		return "", err
	}
	count, err := instanceCount(request)
	if err != nil {
		logger.Error(err, "bad instance count")
		return "", err
	}
	template, err := serverTemplate(ctx, d.client, d.config, request)
	if err != nil {
		logger.Error(err, "failed to build server template")
		return "", err
	}

	if !indexed(request) {
		metadata := utils.AppMetadata(utils.LabelSet(id, request, nil))
		if _, err := d.client.BootServer(ctx, withInstance(template, id, request, port, metadata)); err != nil {
			logger.Error(err, "failed to boot server")
			return "", err
		}
		logger.Info("deployed app", "port", port)
		return id, nil
	}

	for i := 0; i < count; i++ {
		name := fmt.Sprintf("%s-%d", id, i)
		metadata := utils.AppMetadata(utils.LabelSet(id, request, lo.ToPtr(i)))
		if _, err := d.client.BootServer(ctx, withInstance(template, name, request, port, metadata)); err != nil {
			logger.Error(err, "failed to boot indexed server", "index", i)
			return "", err
		}
	}
	logger.Info("deployed indexed app", "count", count, "port", port)
	return id, nil
}

// Undeploy suspends and deletes every server of the deployment id.
func (d *AppDeployer) Undeploy(ctx context.Context, id string) error {
	logger := log.FromContext(ctx).WithValues("deploymentId", id)

	servers, err := d.servers(ctx, id)
	if err != nil {
		logger.Error(err, "failed to list app servers")
		return err
	}
	if statusOf(id, servers).State() == spi.DeploymentStateUnknown {
		err := spi.NewNotDeployedError(id)
		logger.Error(err, "nothing to undeploy")
		return err
	}

	for _, srv := range servers {
		if err := teardown(ctx, d.client, srv); err != nil {
			logger.Error(err, "failed to remove server", "name", srv.Name)
			return err
		}
	}
	logger.Info("undeployed app", "servers", len(servers))
	return nil
}

// Status reports every server carrying the app-id label of id.
func (d *AppDeployer) Status(ctx context.Context, id string) (*spi.AppStatus, error) {
	servers, err := d.servers(ctx, id)
	if err != nil {
		return nil, err
	}
	status := statusOf(id, servers)
	log.FromContext(ctx).V(1).Info("app status", "deploymentId", id, "state", status.State())
	return status, nil
}

func (d *AppDeployer) EnvironmentInfo() spi.RuntimeEnvironmentInfo {
	return environmentInfo("AppDeployer", d.client)
}

func (d *AppDeployer) servers(ctx context.Context, id string) ([]instance.Instance, error) {
	return d.client.ListServers(ctx, map[string]string{utils.AppIDLabelKey: id})
}

func statusOf(id string, servers []instance.Instance) *spi.AppStatus {
	return spi.NewAppStatus(id, lo.Map(servers, func(i instance.Instance, _ int) spi.AppInstanceStatus {
		return instance.AppInstanceStatus(i)
	})...)
}

// teardown suspends srv and then deletes it. A failed suspend leaves the
// server untouched.
func teardown(ctx context.Context, client openstack.Client, srv instance.Instance) error {
	if err := client.SuspendServer(ctx, srv.InstanceID); err != nil {
		return err
	}
	return client.DeleteServer(ctx, srv.InstanceID)
}
