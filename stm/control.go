package stm

import (
	"context"

	"golang.org/x/time/rate"
)

// RetryForever is the control policy equivalent to Atomically: every
// conflict is retried.
func RetryForever() Control {
	return func(error) Decision { return DecisionRetry }
}

// RetryLimit retries at most n conflicts before cancelling. n <= 0 cancels
// on the first conflict.
func RetryLimit(n int) Control {
	remaining := n
	return func(error) Decision {
		if remaining <= 0 {
			return DecisionCancel
		}
		remaining--
		return DecisionRetry
	}
}

// RateLimited retries every conflict, but paces re-executions through
// limiter. Under heavy contention this trades raw retry throughput for less
// cache-line ping-pong between workers hammering the same cells.
func RateLimited(limiter *rate.Limiter) Control {
	return func(error) Decision {
		_ = limiter.Wait(context.Background())
		return DecisionRetry
	}
}

// Counting wraps ctrl and increments *n on every conflict. Dispatch layers
// use it to report per-unit retry counts.
func Counting(n *int, ctrl Control) Control {
	return func(cause error) Decision {
		*n++
		return ctrl(cause)
	}
}
