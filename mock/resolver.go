package mock

import "github.com/fwojciec/permitsearch"

var _ permitsearch.Resolver = (*Resolver)(nil)

// Resolver is a mock implementation of permitsearch.Resolver.
type Resolver struct {
	ResolveFn func(state permitsearch.State, zipcode string) (*permitsearch.CountyData, error)
}

func (r *Resolver) Resolve(state permitsearch.State, zipcode string) (*permitsearch.CountyData, error) {
	return r.ResolveFn(state, zipcode)
}
