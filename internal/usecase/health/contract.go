package health

import "context"

// StorePinger checks document store availability.
type StorePinger interface {
	Ping(ctx context.Context) error
}

// CompletionChecker checks completion API availability.
type CompletionChecker interface {
	HealthCheck(ctx context.Context) error
}
