package postgres

import (
	"context"
	"errors"

	"github.com/jobnest/jobnest/internal"
	"github.com/jobnest/jobnest/internal/feedback"
	"github.com/jobnest/jobnest/internal/tenantdb"
	"gorm.io/gorm"
)

// FeedbackRepository implements feedback.Repository through the
// tenant-scoped data gateway.
type FeedbackRepository struct {
	mgr *tenantdb.Manager
}

func NewFeedbackRepository(mgr *tenantdb.Manager) feedback.Repository {
	return &FeedbackRepository{mgr: mgr}
}

func (r *FeedbackRepository) Create(ctx context.Context, f *feedback.Feedback) error {
	scope, err := r.mgr.Scope(ctx)
	if err != nil {
		return err
	}
	return scope.Create(f)
}

func (r *FeedbackRepository) GetByID(ctx context.Context, id string) (*feedback.Feedback, error) {
	scope, err := r.mgr.Scope(ctx)
	if err != nil {
		return nil, err
	}

	var f feedback.Feedback
	if err := scope.Query(&feedback.Feedback{}).Where("id = ?", id).First(&f).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrFeedbackNotFound
		}
		return nil, internal.NewInternalError("Failed to load feedback", err)
	}
	return &f, nil
}

func (r *FeedbackRepository) List(ctx context.Context, filter feedback.ListFeedbackFilter) ([]*feedback.Feedback, error) {
	scope, err := r.mgr.Scope(ctx)
	if err != nil {
		return nil, err
	}

	q := scope.Query(&feedback.Feedback{})
	if filter.CandidateID != "" {
		q = q.Where("candidate_id = ?", filter.CandidateID)
	}
	if filter.JobID != "" {
		q = q.Where("job_id = ?", filter.JobID)
	}
	if filter.InterviewID != "" {
		q = q.Where("interview_id = ?", filter.InterviewID)
	}
	if filter.ReviewerID != "" {
		q = q.Where("reviewer_id = ?", filter.ReviewerID)
	}

	var items []*feedback.Feedback
	if err := q.Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, internal.NewInternalError("Failed to list feedback", err)
	}
	return items, nil
}

func (r *FeedbackRepository) Update(ctx context.Context, f *feedback.Feedback) error {
	scope, err := r.mgr.Scope(ctx)
	if err != nil {
		return err
	}
	return scope.Save(f)
}

func (r *FeedbackRepository) Delete(ctx context.Context, id string) error {
	scope, err := r.mgr.Scope(ctx)
	if err != nil {
		return err
	}

	res := scope.Query(&feedback.Feedback{}).Where("id = ?", id).Delete(&feedback.Feedback{})
	if res.Error != nil {
		return internal.NewInternalError("Failed to delete feedback", res.Error)
	}
	if res.RowsAffected == 0 {
		return internal.ErrFeedbackNotFound
	}
	return nil
}
