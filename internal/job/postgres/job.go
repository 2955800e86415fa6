package postgres

import (
	"context"
	"errors"

	"github.com/jobnest/jobnest/internal"
	"github.com/jobnest/jobnest/internal/job"
	"github.com/jobnest/jobnest/internal/tenantdb"
	"gorm.io/gorm"
)

// JobRepository implements job.Repository on top of the tenant-scoped data
// gateway. Every operation resolves a Scope from the request context, so a
// query can only ever touch the caller's tenant partition.
type JobRepository struct {
	mgr *tenantdb.Manager
}

func NewJobRepository(mgr *tenantdb.Manager) job.Repository {
	return &JobRepository{mgr: mgr}
}

func (r *JobRepository) Create(ctx context.Context, j *job.Job) error {
	scope, err := r.mgr.Scope(ctx)
	if err != nil {
		return err
	}
	return scope.Create(j)
}

func (r *JobRepository) GetByID(ctx context.Context, id string) (*job.Job, error) {
	scope, err := r.mgr.Scope(ctx)
	if err != nil {
		return nil, err
	}

	var j job.Job
	if err := scope.Query(&job.Job{}).Where("id = ?", id).First(&j).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrJobNotFound
		}
		return nil, internal.NewInternalError("Failed to load job", err)
	}
	return &j, nil
}

func (r *JobRepository) List(ctx context.Context, filter job.ListJobsFilter) ([]*job.Job, error) {
	scope, err := r.mgr.Scope(ctx)
	if err != nil {
		return nil, err
	}

	q := scope.Query(&job.Job{})
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Department != "" {
		q = q.Where("department = ?", filter.Department)
	}

	var jobs []*job.Job
	if err := q.Order("created_at DESC").Find(&jobs).Error; err != nil {
		return nil, internal.NewInternalError("Failed to list jobs", err)
	}
	return jobs, nil
}

func (r *JobRepository) Update(ctx context.Context, j *job.Job) error {
	scope, err := r.mgr.Scope(ctx)
	if err != nil {
		return err
	}
	return scope.Save(j)
}

func (r *JobRepository) Delete(ctx context.Context, id string) error {
	scope, err := r.mgr.Scope(ctx)
	if err != nil {
		return err
	}

	res := scope.Query(&job.Job{}).Where("id = ?", id).Delete(&job.Job{})
	if res.Error != nil {
		return internal.NewInternalError("Failed to delete job", res.Error)
	}
	if res.RowsAffected == 0 {
		return internal.ErrJobNotFound
	}
	return nil
}
