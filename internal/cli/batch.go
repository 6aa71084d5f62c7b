package cli

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kevin-luna/cursito-api/internal/dto"
	"github.com/kevin-luna/cursito-api/internal/models"
	"github.com/kevin-luna/cursito-api/internal/service"
	appErrors "github.com/kevin-luna/cursito-api/pkg/errors"
	"github.com/kevin-luna/cursito-api/pkg/jobs"
	"github.com/kevin-luna/cursito-api/pkg/storage"
)

type reportBuilder interface {
	Build(ctx context.Context, req dto.ReportRequest) (*service.ReportFile, error)
}

type batchOptions struct {
	workerIDs []string
	courseIDs []string
	format    string
	dir       string
	workers   int
	retries   int
}

func newBatchCommand() *cobra.Command {
	opts := &batchOptions{}
	cmd := &cobra.Command{
		Use:   "batch <kind>",
		Short: "Compile one report per worker/course into the export directory",
		Long: "Compile one report per requested subject. Kinds that need both ids get one report for every\n" +
			"worker and course pair. Files land in <dir>/<kind>/ under the name the API would send.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession()
			if err != nil {
				return err
			}
			defer sess.close()

			kind := models.ReportKind(strings.ToLower(args[0]))
			needsWorker, needsCourse, ok := sess.reports.Requirements(kind)
			if !ok {
				return fmt.Errorf("unknown report kind %q (want one of %s)", args[0], kindList())
			}
			requests, err := opts.plan(kind, needsWorker, needsCourse)
			if err != nil {
				return err
			}

			dir := opts.dir
			if dir == "" {
				dir = sess.cfg.Reports.ExportDir
			}
			store, err := storage.NewLocalStorage(dir)
			if err != nil {
				return err
			}
			workers := opts.workers
			if workers <= 0 {
				workers = sess.cfg.Reports.BatchWorkers
			}

			outcomes := runBatch(cmd.Context(), sess.reports, store, requests, jobs.QueueConfig{
				Workers:    workers,
				MaxRetries: opts.retries,
				RetryDelay: 500 * time.Millisecond,
				Logger:     sess.logger,
			})
			return summarize(cmd.OutOrStdout(), outcomes)
		},
	}
	cmd.Flags().StringSliceVar(&opts.workerIDs, "worker", nil, "worker id (repeatable or comma separated)")
	cmd.Flags().StringSliceVar(&opts.courseIDs, "course", nil, "course id (repeatable or comma separated)")
	cmd.Flags().StringVar(&opts.format, "format", string(models.ReportFormatPDF), "pdf or csv (csv only for attendance)")
	cmd.Flags().StringVar(&opts.dir, "dir", "", "export directory (default REPORT_EXPORT_DIR)")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "parallel builds (default REPORT_BATCH_WORKERS)")
	cmd.Flags().IntVar(&opts.retries, "retries", 2, "extra attempts after a database failure")
	return cmd
}

// plan expands the id lists into one request per subject the kind needs.
func (o *batchOptions) plan(kind models.ReportKind, needsWorker, needsCourse bool) ([]dto.ReportRequest, error) {
	workers := compact(o.workerIDs)
	courses := compact(o.courseIDs)
	if needsWorker && len(workers) == 0 {
		return nil, fmt.Errorf("%s needs at least one --worker", kind)
	}
	if needsCourse && len(courses) == 0 {
		return nil, fmt.Errorf("%s needs at least one --course", kind)
	}
	if !needsWorker {
		workers = []string{""}
	}
	if !needsCourse {
		courses = []string{""}
	}

	format := models.ReportFormat(strings.ToLower(o.format))
	requests := make([]dto.ReportRequest, 0, len(workers)*len(courses))
	for _, w := range workers {
		for _, c := range courses {
			requests = append(requests, dto.ReportRequest{Kind: kind, WorkerID: w, CourseID: c, Format: format})
		}
	}
	return requests, nil
}

func runBatch(ctx context.Context, reports reportBuilder, store *storage.LocalStorage, requests []dto.ReportRequest, cfg jobs.QueueConfig) []jobs.Outcome {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	cfg.Retryable = func(err error) bool {
		return appErrors.Is(err, appErrors.ErrInternal)
	}
	q := jobs.NewQueue("report-batch", func(ctx context.Context, job jobs.Job) error {
		req := job.Payload.(dto.ReportRequest)
		file, err := reports.Build(ctx, req)
		if err != nil {
			return err
		}
		saved, err := store.Save(path.Join(string(req.Kind), file.Filename), file.Content)
		if err != nil {
			return err
		}
		cfg.Logger.Debug("report saved", zap.String("path", saved), zap.Int("bytes", len(file.Content)))
		return nil
	}, cfg)

	q.Start(ctx)
	for _, req := range requests {
		if err := q.Enqueue(jobs.Job{ID: jobID(req), Payload: req}); err != nil {
			break
		}
	}
	return q.Wait()
}

func summarize(w io.Writer, outcomes []jobs.Outcome) error {
	failed := 0
	for _, o := range outcomes {
		if o.Err != nil {
			failed++
			fmt.Fprintf(w, "fail %s: %v\n", o.Job.ID, o.Err)
			continue
		}
		fmt.Fprintf(w, "ok   %s (%s)\n", o.Job.ID, o.Elapsed.Round(time.Millisecond))
	}
	fmt.Fprintf(w, "%d built, %d failed\n", len(outcomes)-failed, failed)
	if failed > 0 {
		return fmt.Errorf("%d of %d reports failed", failed, len(outcomes))
	}
	return nil
}

func jobID(req dto.ReportRequest) string {
	parts := []string{string(req.Kind)}
	if req.WorkerID != "" {
		parts = append(parts, "worker="+req.WorkerID)
	}
	if req.CourseID != "" {
		parts = append(parts, "course="+req.CourseID)
	}
	return strings.Join(parts, " ")
}

func compact(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
