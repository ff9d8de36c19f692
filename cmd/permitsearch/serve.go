package main

import (
	pshttp "github.com/fwojciec/permitsearch/http"
)

// Run executes the serve command. It blocks until the context is canceled.
func (c *ServeCmd) Run(deps *Dependencies) error {
	addr := deps.Config.ListenAddr
	if c.Addr != "" {
		addr = c.Addr
	}

	srv := pshttp.NewServer(deps.Registry,
		pshttp.WithAddr(addr),
		pshttp.WithResolver(deps.Resolver),
		pshttp.WithLogger(deps.Logger),
		pshttp.WithRateLimit(deps.Config.RateLimit, deps.Config.RateBurst),
		pshttp.WithSessionTTL(deps.Config.SessionTTL),
		pshttp.WithTrustProxy(deps.Config.TrustProxy),
	)
	return srv.Run(deps.Ctx)
}
