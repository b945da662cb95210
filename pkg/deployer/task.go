package deployer

import (
	"context"

	"k8s.io/utils/clock"
	"sigs.k8s.io/controller-runtime/pkg/log"

	"github.com/ianzx15/cloud-deployer-openstack/pkg/apis/spi"
	"github.com/ianzx15/cloud-deployer-openstack/pkg/instance"
	"github.com/ianzx15/cloud-deployer-openstack/pkg/openstack"
	"github.com/ianzx15/cloud-deployer-openstack/pkg/utils"
)

// TaskLauncher runs short lived tasks, one server per launch.
type TaskLauncher struct {
	client openstack.Client
	config openstack.Config
	clock  clock.PassiveClock
}

func NewTaskLauncher(client openstack.Client, config openstack.Config, clk clock.PassiveClock) *TaskLauncher {
	return &TaskLauncher{client: client, config: config, clock: clk}
}

// Launch boots a server for a new run of request and returns the launch id.
func (l *TaskLauncher) Launch(ctx context.Context, request spi.AppDeploymentRequest) (string, error) {
	id := utils.TaskDeploymentID(request.Name, l.clock.Now())
	logger := log.FromContext(ctx).WithValues("taskId", id)

	status, err := l.Status(ctx, id)
	if err != nil {
		logger.Error(err, "failed to read task status")
		return "", err
	}
	if status.State != spi.LaunchStateUnknown {
		err := spi.NewAlreadyLaunchedError(id, status.State)
		logger.Error(err, "refusing to launch")
		return "", err
	}

	port, err := serverPort(request)
	if err != nil {
		logger.Error(err, "bad server port")
		return "", err
	}
	template, err := serverTemplate(ctx, l.client, l.config, request)
	if err != nil {
		logger.Error(err, "failed to build server template")
		return "", err
	}

	metadata := utils.TaskMetadata(utils.LabelSet(id, request, nil), request.Name)
	if _, err := l.client.BootServer(ctx, withInstance(template, id, request, port, metadata)); err != nil {
		logger.Error(err, "failed to boot task server")
		return "", err
	}
	logger.Info("launched task", "taskName", request.Name)
	return id, nil
}

// Cancel stops the launch id. It removes the server like Cleanup does.
func (l *TaskLauncher) Cancel(ctx context.Context, id string) error {
	return l.Cleanup(ctx, id)
}

// Cleanup suspends and deletes the server of the launch id.
func (l *TaskLauncher) Cleanup(ctx context.Context, id string) error {
	logger := log.FromContext(ctx).WithValues("taskId", id)

	srv, err := l.client.GetServer(ctx, id)
	if err != nil {
		logger.Error(err, "failed to look up task server")
		return err
	}
	if srv == nil {
		err := spi.NewNotDeployedError(id)
		logger.Error(err, "nothing to clean up")
		return err
	}
	if err := teardown(ctx, l.client, *srv); err != nil {
		logger.Error(err, "failed to remove task server")
		return err
	}
	logger.Info("cleaned up task")
	return nil
}

// Destroy removes every launch of taskName, one after the other. The first
// failure stops it.
func (l *TaskLauncher) Destroy(ctx context.Context, taskName string) error {
	logger := log.FromContext(ctx).WithValues("taskName", taskName)

	servers, err := l.client.ListServers(ctx, map[string]string{utils.TaskNameLabelKey: taskName})
	if err != nil {
		logger.Error(err, "failed to list task servers")
		return err
	}
	for _, srv := range servers {
		if err := teardown(ctx, l.client, srv); err != nil {
			logger.Error(err, "failed to remove task server", "taskId", srv.Name)
			return err
		}
	}
	logger.Info("destroyed task", "launches", len(servers))
	return nil
}

// Status reports the launch id. A launch the cloud does not know is unknown.
func (l *TaskLauncher) Status(ctx context.Context, id string) (*spi.TaskStatus, error) {
	srv, err := l.client.GetServer(ctx, id)
	if err != nil {
		return nil, err
	}
	status := spi.NewTaskStatus(id, instance.LaunchState(srv))
	log.FromContext(ctx).V(1).Info("task status", "taskId", id, "state", status.State)
	return status, nil
}

func (l *TaskLauncher) EnvironmentInfo() spi.RuntimeEnvironmentInfo {
	return environmentInfo("TaskLauncher", l.client)
}
