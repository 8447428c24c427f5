// Package jobs provides scheduled background tasks for the parcel service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations.
//
// # Available Jobs
//
// 1. StatsReportJob - Periodically computes the operational dashboard numbers
// (per-status counts, monthly revenue, average delivery time) and writes a
// snapshot to the structured log, giving operators a trail of the platform's
// throughput without querying the API.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(statsHandler, schedule, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The report schedule is configured through APP config (hourly by default).
//
// # Error Handling
//
// The stats job logs failures and keeps running; a failed snapshot is
// recomputed on the next tick.
package jobs
