package background

import (
	"context"
	"log"
	"time"

	"bugstore/internal/analytics"

	"github.com/go-co-op/gocron/v2"
)

// JobScheduler manages background jobs
type JobScheduler struct {
	scheduler    gocron.Scheduler
	analyticsSvc *analytics.Service
	jobs         map[string]gocron.Job
}

// NewJobScheduler creates a new job scheduler
func NewJobScheduler(analyticsSvc *analytics.Service) (*JobScheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	js := &JobScheduler{
		scheduler:    scheduler,
		analyticsSvc: analyticsSvc,
		jobs:         make(map[string]gocron.Job),
	}

	js.registerJobs()

	return js, nil
}

// Start starts the job scheduler
func (js *JobScheduler) Start() {
	log.Printf("Starting background job scheduler")
	js.scheduler.Start()
}

// Stop stops the job scheduler
func (js *JobScheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

func (js *JobScheduler) registerJobs() {
	// Sales summary refresh - every 5 minutes
	summaryJob, err := js.scheduler.NewJob(
		gocron.DurationJob(5*time.Minute),
		gocron.NewTask(js.refreshSalesSummary),
		gocron.WithName("sales-summary-refresh"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create sales summary job: %v", err)
	} else {
		js.jobs["sales-summary"] = summaryJob
	}
}

func (js *JobScheduler) refreshSalesSummary() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	start := time.Now()
	summary, err := js.analyticsSvc.Refresh(ctx)
	if err != nil {
		log.Printf("Sales summary refresh failed: %v", err)
		return
	}
	log.Printf("Sales summary refreshed in %v: orders=%d revenue=%s",
		time.Since(start), summary.TotalOrders, summary.TotalRevenue.String())
}
