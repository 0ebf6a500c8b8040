package job

import (
	"context"
	"fmt"
	"log"

	"btc-yardstick/internal/domain"

	"github.com/robfig/cron/v3"
	"go.opentelemetry.io/otel/trace"
)

// Refresher regenerates all tracked documents and reports the outcome.
type Refresher interface {
	RefreshAll(ctx context.Context) *domain.RunSummary
}

// SummaryNotifier pushes run summaries to an external channel (Telegram).
type SummaryNotifier interface {
	NotifySummary(summary *domain.RunSummary)
}

// RefreshJob runs scheduled document regenerations when the viewer server is
// up, so the flat files stay current without a separate fetch invocation.
type RefreshJob struct {
	tracer    trace.Tracer
	cron      *cron.Cron
	refresher Refresher
	notifier  SummaryNotifier
	spec      string
}

func NewRefreshJob(tracer trace.Tracer, refresher Refresher, notifier SummaryNotifier, spec string) *RefreshJob {
	return &RefreshJob{
		tracer:    tracer,
		cron:      cron.New(cron.WithSeconds()),
		refresher: refresher,
		notifier:  notifier,
		spec:      spec,
	}
}

// Register wires the cron entry. A bad spec is a configuration error and
// surfaces to the caller.
func (j *RefreshJob) Register() error {
	if _, err := j.cron.AddFunc(j.spec, j.run); err != nil {
		return fmt.Errorf("register refresh job %q: %w", j.spec, err)
	}
	return nil
}

func (j *RefreshJob) Start() {
	j.cron.Start()
	log.Printf("refresh job scheduled: %s", j.spec)
}

func (j *RefreshJob) Stop() {
	j.cron.Stop()
	log.Println("refresh job stopped")
}

// RunNow executes a refresh immediately (RUN_ON_START and manual triggers).
func (j *RefreshJob) RunNow() {
	j.run()
}

func (j *RefreshJob) run() {
	ctx, span := j.tracer.Start(context.Background(), "refresh-job.run")
	defer span.End()

	summary := j.refresher.RefreshAll(ctx)
	if j.notifier != nil {
		j.notifier.NotifySummary(summary)
	}
}
