package main

import (
	"context"
	"errors"
	"time"

	"k8s.io/apimachinery/pkg/util/wait"
	"k8s.io/client-go/util/retry"

	"github.com/yuriy-kovalchuk/yk-bunny-dns/internal/bunnyapi"
)

var retryDelay = 500 * time.Millisecond

// retriable reports whether a failed API call is worth repeating. Auth,
// lookup and validation failures will fail again the same way.
func retriable(err error) bool {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return false
	case bunnyapi.IsUnauthorized(err), bunnyapi.IsNotFound(err):
		return false
	case errors.Is(err, bunnyapi.ErrInvalidRecord):
		return false
	}
	return errors.Is(err, bunnyapi.ErrClient)
}

// withRetry runs fn once plus up to a.retries more times on retriable errors.
// It stops as soon as ctx is done.
func (a *app) withRetry(ctx context.Context, fn func() error) error {
	if a.retries <= 0 {
		return fn()
	}
	backoff := wait.Backoff{
		Steps:    a.retries + 1,
		Duration: retryDelay,
		Factor:   2.0,
		Jitter:   0.1,
	}
	attempt := 0
	canRetry := func(err error) bool {
		return ctx.Err() == nil && retriable(err)
	}
	return retry.OnError(backoff, canRetry, func() error {
		attempt++
		err := fn()
		if err != nil && canRetry(err) && attempt <= a.retries {
			a.log.Info("API call failed, retrying", "attempt", attempt, "error", err.Error())
		}
		return err
	})
}
