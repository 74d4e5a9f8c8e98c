package domain

import "context"

// PathInvalidator signals that previously cached or rendered pages for a
// path are stale. Calls are fire-and-forget: implementations handle their
// own failures and callers never consult a result.
type PathInvalidator interface {
	Invalidate(ctx context.Context, path string)
}
