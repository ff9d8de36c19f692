package mock

import (
	"context"

	"github.com/fwojciec/permitsearch"
)

var _ permitsearch.RegistryStore = (*RegistryStore)(nil)

// RegistryStore is a mock implementation of permitsearch.RegistryStore.
type RegistryStore struct {
	SaveRegistryFn func(ctx context.Context, reg *permitsearch.Registry) error
	LoadRegistryFn func(ctx context.Context) (*permitsearch.Registry, error)
}

func (s *RegistryStore) SaveRegistry(ctx context.Context, reg *permitsearch.Registry) error {
	return s.SaveRegistryFn(ctx, reg)
}

func (s *RegistryStore) LoadRegistry(ctx context.Context) (*permitsearch.Registry, error) {
	return s.LoadRegistryFn(ctx)
}
