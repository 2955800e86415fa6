package dashboard

import (
	"context"
	"log/slog"
	"time"

	"github.com/jobnest/jobnest/internal"
	"github.com/jobnest/jobnest/internal/application"
	"github.com/jobnest/jobnest/internal/candidate"
	"github.com/jobnest/jobnest/internal/interview"
	"github.com/jobnest/jobnest/internal/job"
	"github.com/jobnest/jobnest/internal/tenantdb"
)

// Stats is the tenant overview served to the analytics dashboard.
type Stats struct {
	OpenJobs             int64            `json:"open_jobs"`
	TotalCandidates      int64            `json:"total_candidates"`
	ApplicationsByStatus map[string]int64 `json:"applications_by_status"`
	UpcomingInterviews   int64            `json:"upcoming_interviews"`
	GeneratedAt          time.Time        `json:"generated_at"`
}

// Service aggregates counts straight off the tenant partition; the numbers
// are cheap enough that no cached view is kept for them.
type Service struct {
	mgr    *tenantdb.Manager
	logger *slog.Logger
}

func NewService(mgr *tenantdb.Manager, logger *slog.Logger) *Service {
	return &Service{mgr: mgr, logger: logger}
}

func (s *Service) GetStats(ctx context.Context) (*Stats, error) {
	scope, err := s.mgr.Scope(ctx)
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		ApplicationsByStatus: make(map[string]int64),
		GeneratedAt:          time.Now(),
	}

	if err := scope.Query(&job.Job{}).Where("status = ?", job.StatusOpen).Count(&stats.OpenJobs).Error; err != nil {
		return nil, internal.NewInternalError("Failed to count open jobs", err)
	}

	if err := scope.Query(&candidate.Candidate{}).Count(&stats.TotalCandidates).Error; err != nil {
		return nil, internal.NewInternalError("Failed to count candidates", err)
	}

	type statusCount struct {
		Status string
		Count  int64
	}
	var rows []statusCount
	if err := scope.Query(&application.Application{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, internal.NewInternalError("Failed to count applications", err)
	}
	for _, row := range rows {
		stats.ApplicationsByStatus[row.Status] = row.Count
	}

	if err := scope.Query(&interview.Interview{}).
		Where("scheduled_date >= ?", time.Now()).
		Where("status IN ?", []string{interview.StatusScheduled, interview.StatusRescheduled}).
		Count(&stats.UpcomingInterviews).Error; err != nil {
		return nil, internal.NewInternalError("Failed to count interviews", err)
	}

	return stats, nil
}
