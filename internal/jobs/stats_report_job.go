package jobs

import (
	"context"
	"log/slog"

	"parceltrack/internal/core/application/usecases/queries"
	"parceltrack/internal/core/domain/model/account"
	"parceltrack/internal/core/domain/model/kernel"

	"github.com/robfig/cron/v3"
)

// StatsReportJob periodically computes the dashboard statistics and writes a
// snapshot to the structured log.
type StatsReportJob struct {
	handler  queries.ParcelStatsQueryHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewStatsReportJob creates a job reporting parcel statistics on the given
// cron schedule.
func NewStatsReportJob(handler queries.ParcelStatsQueryHandler, schedule string, logger *slog.Logger) *StatsReportJob {
	return &StatsReportJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(),
		logger:   logger.With("component", "stats_report_job"),
	}
}

// Start begins the stats report job on its configured schedule.
func (j *StatsReportJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()

		query, qErr := queries.NewParcelStatsQuery(systemPrincipal())
		if qErr != nil {
			j.logger.ErrorContext(ctx, "Stats report job failed to build query", "error", qErr)
			return
		}

		stats, hErr := j.handler.Handle(ctx, query)
		if hErr != nil {
			j.logger.ErrorContext(ctx, "Stats report job failed", "error", hErr)
			return
		}

		j.logger.InfoContext(ctx, "Parcel statistics snapshot",
			"totalParcels", stats.TotalParcels,
			"deliveredParcels", stats.DeliveredParcels,
			"inTransitParcels", stats.InTransitParcels,
			"pendingParcels", stats.PendingParcels,
			"cancelledParcels", stats.CancelledParcels,
			"monthlyRevenue", stats.MonthlyRevenue,
			"averageDeliveryDays", stats.AverageDeliveryDays,
		)
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stats report job started", "schedule", j.schedule)
	return nil
}

// Stop stops the stats report job.
func (j *StatsReportJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Stats report job stopped")
}

// systemPrincipal is the internal identity the scheduler acts under. The
// stats query is admin-scoped and the scheduler is trusted.
func systemPrincipal() account.Principal {
	principal, _ := account.NewPrincipal(kernel.NewUUID(), "scheduler@parceltrack.internal", account.RoleAdmin)
	return principal
}
