package getalts

import (
	"context"
	"errors"
	"net"
)

// isTimeout reports whether err represents an exceeded deadline rather
// than a connection-level failure. Covers context deadlines (both the
// per-call deadline and a caller-supplied one) and net-level timeouts
// surfaced through url.Error.
func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	if ctx.Err() == context.DeadlineExceeded {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
