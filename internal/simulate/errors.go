package simulate

import "errors"

// Sentinel errors for simulation runs.
var (
	ErrUnhealthy  = errors.New("service is not healthy")
	ErrStatus     = errors.New("unexpected status code")
	ErrMismatch   = errors.New("server totals do not match expected totals")
	ErrMissingRun = errors.New("created game missing from history")
)
