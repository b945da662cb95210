// Package instancetype resolves the flavor a server is booted with.
package instancetype

import (
	"context"
	"fmt"

	"github.com/gophercloud/gophercloud"
	"github.com/gophercloud/gophercloud/openstack/compute/v2/flavors"
	"github.com/samber/lo"
	"sigs.k8s.io/controller-runtime/pkg/log"
)

type Provider interface {
	List(context.Context) ([]flavors.Flavor, error)
	// Resolve returns the ID of the flavor whose ID or name equals ref.
	Resolve(ctx context.Context, ref string) (string, error)
}

type DefaultProvider struct {
	computeClient *gophercloud.ServiceClient
}

func NewProvider(client *gophercloud.ServiceClient) *DefaultProvider {
	return &DefaultProvider{computeClient: client}
}

func (p *DefaultProvider) List(ctx context.Context) ([]flavors.Flavor, error) {
	pages, err := flavors.ListDetail(p.computeClient, flavors.ListOpts{AccessType: flavors.AllAccess}).AllPages()
	if err != nil {
		return nil, fmt.Errorf("listing flavors: %w", err)
	}
	all, err := flavors.ExtractFlavors(pages)
	if err != nil {
		return nil, fmt.Errorf("extracting flavors: %w", err)
	}
	log.FromContext(ctx).V(1).Info("listed flavors", "count", len(all))
	return all, nil
}

func (p *DefaultProvider) Resolve(ctx context.Context, ref string) (string, error) {
	all, err := p.List(ctx)
	if err != nil {
		return "", err
	}
	return Resolve(all, ref)
}

// Resolve picks ref out of the given flavors. An exact ID match wins over a
// name match; a name shared by several flavors is ambiguous.
func Resolve(all []flavors.Flavor, ref string) (string, error) {
	if f, ok := lo.Find(all, func(f flavors.Flavor) bool { return f.ID == ref }); ok {
		return f.ID, nil
	}
	byName := lo.Filter(all, func(f flavors.Flavor, _ int) bool { return f.Name == ref })
	switch len(byName) {
	case 0:
		return "", fmt.Errorf("flavor %q not found", ref)
	case 1:
		return byName[0].ID, nil
	default:
		return "", fmt.Errorf("flavor name %q matches %d flavors", ref, len(byName))
	}
}
