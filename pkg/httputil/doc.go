// Package httputil provides shared HTTP reliability helpers.
//
// It contains a [RetryableError] marker type and a [Retry] loop with
// exponential backoff. Higher layers decide which
// failures are transient by wrapping them with [Retryable]; everything
// else surfaces on the first attempt.
//
// # Retry Example
//
//	err := httputil.RetryWithPolicy(ctx, httputil.Policy{Attempts: 5, Delay: 500 * time.Millisecond}, func() error {
//	    if err := callRemote(); isTransient(err) {
//	        return httputil.Retryable(err)
//	    } else if err != nil {
//	        return err
//	    }
//	    return nil
//	})
//
// Retry honors context cancellation between attempts, so a cancelled
// caller never sleeps through a backoff window.
package httputil
