package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"cityforge/internal/logging"
	"cityforge/internal/services"
)

// Runner executes stages strictly in order. A stage failure aborts the run;
// there is no retry and no feedback between stages.
type Runner struct {
	lockPath string
	logger   *slog.Logger
}

// Option customizes a Runner.
type Option func(*Runner)

// WithLogger attaches a logger for run and stage events.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRunner builds a Runner guarding runs with a file lock at lockPath.
func NewRunner(lockPath string, opts ...Option) *Runner {
	runner := &Runner{
		lockPath: lockPath,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(runner)
	}
	return runner
}

// Run executes the stages sequentially under the run lock. Each stage is
// health-checked and prepared before execution.
func (r *Runner) Run(ctx context.Context, stages ...Stage) error {
	lock := flock.New(r.lockPath)
	locked, err := lock.TryLock()
	if err != nil {
		return services.Wrap(services.ErrTransient, "pipeline", "lock", "acquire run lock", err)
	}
	if !locked {
		return services.Wrap(services.ErrTransient, "pipeline", "lock", "another run holds the lock", nil)
	}
	defer func() { _ = lock.Unlock() }()

	runID := uuid.NewString()
	logger := r.logger.With(logging.String("run_id", runID))
	runStart := time.Now()
	logger.Info("run started", logging.Int("stages", len(stages)))

	for _, stage := range stages {
		if err := ctx.Err(); err != nil {
			return err
		}

		stageLogger := logger.With(logging.String(logging.FieldStage, stage.Name()))
		stageCtx := logging.IntoContext(ctx, stageLogger)
		health := stage.HealthCheck(stageCtx)
		if !health.Ready {
			stageLogger.Error("stage unhealthy", logging.String("detail", health.Detail))
			return services.Wrap(services.ErrConfiguration, stage.Name(), "health",
				fmt.Sprintf("stage not ready: %s", health.Detail), nil)
		}

		if err := stage.Prepare(stageCtx); err != nil {
			stageLogger.Error("stage preparation failed", logging.Error(err))
			return err
		}

		stageStart := time.Now()
		stageLogger.Info("stage started")
		if err := stage.Execute(stageCtx); err != nil {
			stageLogger.Error("stage failed",
				logging.Error(err), logging.Duration("stage_duration", time.Since(stageStart)))
			return err
		}
		stageLogger.Info("stage completed",
			logging.Duration("stage_duration", time.Since(stageStart)))
	}

	logger.Info("run completed", logging.Duration("run_duration", time.Since(runStart)))
	return nil
}
