// internal/common/camunda/worker.go
package camunda

import (
	"context"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"go.uber.org/zap"
)

// HandlerFunc processes a single job. Handlers complete or fail the job
// themselves through the JobClient.
type HandlerFunc func(client worker.JobClient, job entities.Job)

// JobRecorder receives one observation per handled job.
type JobRecorder interface {
	RecordJobHandled(ctx context.Context, taskType string, duration time.Duration)
}

// Worker wraps a running Zeebe job worker for one task type.
type Worker struct {
	worker   worker.JobWorker
	taskType string
	logger   *zap.Logger
}

// WorkerOptions configures job polling for a single task type.
type WorkerOptions struct {
	MaxJobsActive int
	Timeout       time.Duration
	Recorder      JobRecorder
}

func NewWorker(client zbc.Client, taskType string, opts WorkerOptions, handler HandlerFunc, logger *zap.Logger) *Worker {
	wrapped := handler
	if opts.Recorder != nil {
		wrapped = func(client worker.JobClient, job entities.Job) {
			start := time.Now()
			handler(client, job)
			opts.Recorder.RecordJobHandled(context.Background(), taskType, time.Since(start))
		}
	}

	jobWorker := client.NewJobWorker().
		JobType(taskType).
		Handler(worker.JobHandler(wrapped)).
		MaxJobsActive(opts.MaxJobsActive).
		Timeout(opts.Timeout).
		Open()

	logger.Info("worker started",
		zap.String("taskType", taskType),
		zap.Int("maxJobsActive", opts.MaxJobsActive),
		zap.Duration("timeout", opts.Timeout),
	)

	return &Worker{
		worker:   jobWorker,
		taskType: taskType,
		logger:   logger,
	}
}

// Close stops polling and waits for in-flight jobs to finish.
func (w *Worker) Close() {
	w.logger.Info("stopping worker", zap.String("taskType", w.taskType))
	w.worker.Close()
}
