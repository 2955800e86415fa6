package postgres

import (
	"context"
	"errors"

	"github.com/jobnest/jobnest/internal"
	"github.com/jobnest/jobnest/internal/interview"
	"github.com/jobnest/jobnest/internal/tenantdb"
	"gorm.io/gorm"
)

// InterviewRepository implements interview.Repository through the
// tenant-scoped data gateway.
type InterviewRepository struct {
	mgr *tenantdb.Manager
}

func NewInterviewRepository(mgr *tenantdb.Manager) interview.Repository {
	return &InterviewRepository{mgr: mgr}
}

func (r *InterviewRepository) Create(ctx context.Context, i *interview.Interview) error {
	scope, err := r.mgr.Scope(ctx)
	if err != nil {
		return err
	}
	return scope.Create(i)
}

func (r *InterviewRepository) GetByID(ctx context.Context, id string) (*interview.Interview, error) {
	scope, err := r.mgr.Scope(ctx)
	if err != nil {
		return nil, err
	}

	var i interview.Interview
	if err := scope.Query(&interview.Interview{}).Where("id = ?", id).First(&i).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrInterviewNotFound
		}
		return nil, internal.NewInternalError("Failed to load interview", err)
	}
	return &i, nil
}

func (r *InterviewRepository) List(ctx context.Context, filter interview.ListInterviewsFilter) ([]*interview.Interview, error) {
	scope, err := r.mgr.Scope(ctx)
	if err != nil {
		return nil, err
	}

	q := scope.Query(&interview.Interview{})
	if filter.CandidateID != "" {
		q = q.Where("candidate_id = ?", filter.CandidateID)
	}
	if filter.JobID != "" {
		q = q.Where("job_id = ?", filter.JobID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.InterviewerID != "" {
		// interviewers is a serialized json array of user ids
		q = q.Where("interviewers LIKE ?", `%"`+filter.InterviewerID+`"%`)
	}

	var interviews []*interview.Interview
	if err := q.Order("scheduled_date ASC").Find(&interviews).Error; err != nil {
		return nil, internal.NewInternalError("Failed to list interviews", err)
	}
	return interviews, nil
}

func (r *InterviewRepository) Update(ctx context.Context, i *interview.Interview) error {
	scope, err := r.mgr.Scope(ctx)
	if err != nil {
		return err
	}
	return scope.Save(i)
}

func (r *InterviewRepository) Delete(ctx context.Context, id string) error {
	scope, err := r.mgr.Scope(ctx)
	if err != nil {
		return err
	}

	res := scope.Query(&interview.Interview{}).Where("id = ?", id).Delete(&interview.Interview{})
	if res.Error != nil {
		return internal.NewInternalError("Failed to delete interview", res.Error)
	}
	if res.RowsAffected == 0 {
		return internal.ErrInterviewNotFound
	}
	return nil
}
