package postgres

import (
	"context"
	"errors"

	"github.com/jobnest/jobnest/internal"
	"github.com/jobnest/jobnest/internal/application"
	"github.com/jobnest/jobnest/internal/tenantdb"
	"gorm.io/gorm"
)

// ApplicationRepository implements application.Repository through the
// tenant-scoped data gateway.
type ApplicationRepository struct {
	mgr *tenantdb.Manager
}

func NewApplicationRepository(mgr *tenantdb.Manager) application.Repository {
	return &ApplicationRepository{mgr: mgr}
}

func (r *ApplicationRepository) Create(ctx context.Context, a *application.Application) error {
	scope, err := r.mgr.Scope(ctx)
	if err != nil {
		return err
	}
	return scope.Create(a)
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id string) (*application.Application, error) {
	scope, err := r.mgr.Scope(ctx)
	if err != nil {
		return nil, err
	}

	var a application.Application
	if err := scope.Query(&application.Application{}).Where("id = ?", id).First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrApplicationNotFound
		}
		return nil, internal.NewInternalError("Failed to load application", err)
	}
	return &a, nil
}

func (r *ApplicationRepository) List(ctx context.Context, filter application.ListApplicationsFilter) ([]*application.Application, error) {
	scope, err := r.mgr.Scope(ctx)
	if err != nil {
		return nil, err
	}

	q := scope.Query(&application.Application{})
	if filter.JobID != "" {
		q = q.Where("job_id = ?", filter.JobID)
	}
	if filter.CandidateID != "" {
		q = q.Where("candidate_id = ?", filter.CandidateID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	var apps []*application.Application
	if err := q.Order("applied_date DESC").Find(&apps).Error; err != nil {
		return nil, internal.NewInternalError("Failed to list applications", err)
	}
	return apps, nil
}

func (r *ApplicationRepository) Update(ctx context.Context, a *application.Application) error {
	scope, err := r.mgr.Scope(ctx)
	if err != nil {
		return err
	}
	return scope.Save(a)
}

func (r *ApplicationRepository) Delete(ctx context.Context, id string) error {
	scope, err := r.mgr.Scope(ctx)
	if err != nil {
		return err
	}

	res := scope.Query(&application.Application{}).Where("id = ?", id).Delete(&application.Application{})
	if res.Error != nil {
		return internal.NewInternalError("Failed to delete application", res.Error)
	}
	if res.RowsAffected == 0 {
		return internal.ErrApplicationNotFound
	}
	return nil
}
