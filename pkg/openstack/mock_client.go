package openstack

import (
	"context"
	"fmt"

	"github.com/samber/lo"

	"github.com/ianzx15/cloud-deployer-openstack/pkg/instance"
)

// MockClient is an in-memory Client. Servers live in the Servers slice in
// boot order; the *Func fields inject failures.
type MockClient struct {
	Servers []instance.Instance
	// BootStatus is the status given to booted servers, BUILD when empty.
	BootStatus string
	// Flavors maps flavor names to IDs. Unknown refs resolve to themselves.
	Flavors map[string]string

	BootServerFunc    func(ctx context.Context, spec ServerSpec) error
	ListServersFunc   func(ctx context.Context, selector map[string]string) error
	SuspendServerFunc func(ctx context.Context, id string) error
	DeleteServerFunc  func(ctx context.Context, id string) error

	Booted    []ServerSpec
	Suspended []string
	Deleted   []string
	ListCalls int
	GetCalls  int

	nextID int
}

var _ Client = (*MockClient)(nil)

func (m *MockClient) BootServer(ctx context.Context, spec ServerSpec) (*instance.Instance, error) {
	m.Booted = append(m.Booted, spec)
	if m.BootServerFunc != nil {
		if err := m.BootServerFunc(ctx, spec); err != nil {
			return nil, err
		}
	}
	m.nextID++
	srv := instance.Instance{
		InstanceID: fmt.Sprintf("mock-server-id-%d", m.nextID),
		Name:       spec.Name,
		Status:     lo.Ternary(m.BootStatus == "", instance.StatusBuild, m.BootStatus),
		Metadata:   lo.Assign(spec.Metadata),
	}
	m.Servers = append(m.Servers, srv)
	return &srv, nil
}

func (m *MockClient) ListServers(ctx context.Context, selector map[string]string) ([]instance.Instance, error) {
	m.ListCalls++
	if m.ListServersFunc != nil {
		if err := m.ListServersFunc(ctx, selector); err != nil {
			return nil, err
		}
	}
	return lo.Filter(m.Servers, func(i instance.Instance, _ int) bool {
		return matchesSelector(selector, i.Metadata)
	}), nil
}

func (m *MockClient) GetServer(_ context.Context, name string) (*instance.Instance, error) {
	m.GetCalls++
	srv, ok := lo.Find(m.Servers, func(i instance.Instance) bool { return i.Name == name })
	if !ok {
		return nil, nil
	}
	return &srv, nil
}

func (m *MockClient) SuspendServer(ctx context.Context, id string) error {
	m.Suspended = append(m.Suspended, id)
	if m.SuspendServerFunc != nil {
		if err := m.SuspendServerFunc(ctx, id); err != nil {
			return err
		}
	}
	for i := range m.Servers {
		if m.Servers[i].InstanceID == id {
			m.Servers[i].Status = "SUSPENDED"
		}
	}
	return nil
}

func (m *MockClient) DeleteServer(ctx context.Context, id string) error {
	m.Deleted = append(m.Deleted, id)
	if m.DeleteServerFunc != nil {
		if err := m.DeleteServerFunc(ctx, id); err != nil {
			return err
		}
	}
	m.Servers = lo.Reject(m.Servers, func(i instance.Instance, _ int) bool { return i.InstanceID == id })
	return nil
}

func (m *MockClient) ResolveFlavor(_ context.Context, ref string) (string, error) {
	if id, ok := m.Flavors[ref]; ok {
		return id, nil
	}
	return ref, nil
}

func (m *MockClient) Endpoint() string {
	return "http://mock-openstack:8774/v2.1/"
}

func (m *MockClient) SupportedServices() []string {
	return []string{"compute", "identity"}
}

func (m *MockClient) Version() string {
	return "mock"
}
