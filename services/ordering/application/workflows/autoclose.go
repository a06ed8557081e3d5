// Package workflows holds the ordering context's Temporal workflows. Only
// one exists today: the hourly sweep that closes sessions nobody bothered to
// close, so "closed" is reachable even when the creator walks away.
package workflows

import (
	"context"
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	appsvcs "github.com/ghuser/tabshare/services/ordering/application/services"
)

const (
	// AutoCloseWorkflowID is the fixed workflow ID so the cron schedule is a
	// singleton per namespace.
	AutoCloseWorkflowID = "ordering-auto-close"

	// AutoCloseCronSchedule runs the sweep at the top of every hour.
	AutoCloseCronSchedule = "0 * * * *"

	// TaskQueue is the Temporal task queue for ordering workflows.
	TaskQueue = "ordering"
)

// AutoCloseInput parameterizes one sweep.
type AutoCloseInput struct {
	MaxAge time.Duration
}

// AutoCloseResult reports what a sweep did.
type AutoCloseResult struct {
	Closed int
}

// AutoCloseWorkflow closes every active session older than MaxAge. The work
// happens in a single activity; the workflow only adds retry policy and
// visibility.
func AutoCloseWorkflow(ctx workflow.Context, input AutoCloseInput) (AutoCloseResult, error) {
	ctx = workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval: 5 * time.Second,
			MaximumAttempts: 3,
		},
	})

	var result AutoCloseResult
	err := workflow.ExecuteActivity(ctx, "CloseIdleSessions", input).Get(ctx, &result)
	return result, err
}

// Activities bundles the activity implementations with their dependencies.
// Registered by cmd/worker.
type Activities struct {
	Sessions *appsvcs.SessionService
}

// CloseIdleSessions closes sessions created more than MaxAge ago and evicts
// their PIN cache entries.
func (a *Activities) CloseIdleSessions(ctx context.Context, input AutoCloseInput) (AutoCloseResult, error) {
	closed, err := a.Sessions.CloseIdle(ctx, time.Now().UTC().Add(-input.MaxAge))
	if err != nil {
		return AutoCloseResult{}, err
	}
	return AutoCloseResult{Closed: closed}, nil
}
