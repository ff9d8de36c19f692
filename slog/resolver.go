// Package slog provides log/slog decorators for permitsearch services.
package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/permitsearch"
)

// Lookup outcomes recorded in log entries.
const (
	OutcomeResolved = "resolved"
	OutcomeNotFound = "not_found"
	OutcomeInvalid  = "invalid"
)

// Ensure LoggingResolver implements permitsearch.Resolver.
var _ permitsearch.Resolver = (*LoggingResolver)(nil)

// LoggingResolver wraps a Resolver and logs every lookup.
type LoggingResolver struct {
	next   permitsearch.Resolver
	logger *slog.Logger
}

// NewLoggingResolver creates a new LoggingResolver.
func NewLoggingResolver(next permitsearch.Resolver, logger *slog.Logger) *LoggingResolver {
	return &LoggingResolver{next: next, logger: logger}
}

// Resolve delegates to the wrapped resolver and logs the outcome.
// Input errors are logged at info level; they are expected user mistakes.
func (r *LoggingResolver) Resolve(state permitsearch.State, zipcode string) (data *permitsearch.CountyData, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"state", string(state),
			"zipcode", zipcode,
			"outcome", outcome(err),
			"duration", time.Since(begin),
		}
		if data != nil {
			attrs = append(attrs, "county", data.County)
		}
		if err != nil {
			attrs = append(attrs, "code", permitsearch.ErrorCode(err))
		}

		if permitsearch.ErrorCode(err) == permitsearch.EINTERNAL {
			r.logger.Error("lookup", append(attrs, "err", err)...)
			return
		}
		r.logger.Info("lookup", attrs...)
	}(time.Now())
	return r.next.Resolve(state, zipcode)
}

func outcome(err error) string {
	switch permitsearch.ErrorCode(err) {
	case "":
		return OutcomeResolved
	case permitsearch.ENOTFOUND:
		return OutcomeNotFound
	}
	return OutcomeInvalid
}
