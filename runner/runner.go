// Package runner coordinates the long running pieces of an application.
package runner

import (
	"context"

	"golang.org/x/sync/errgroup"
)

type (
	// Runnable is a long running component driven by a context.
	Runnable interface {
		Run(ctx context.Context) error
	}

	// RunnableFunc adapts a plain function into a Runnable.
	RunnableFunc func(ctx context.Context) error
)

func (f RunnableFunc) Run(ctx context.Context) error {
	return f(ctx)
}

// RunAll runs every runnable concurrently and blocks until they all return.
//
// The first error cancels the context shared by the runnables, and is
// returned once every runnable has stopped.
func RunAll(parentCtx context.Context, runnables ...Runnable) error {
	group, ctx := errgroup.WithContext(parentCtx)

	for _, runnable := range runnables {
		runnable := runnable // per-iteration copy for go < 1.22 loop semantics
		group.Go(func() error {
			return runnable.Run(ctx)
		})
	}

	return group.Wait()
}
