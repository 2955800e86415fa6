package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/jobnest/jobnest/internal"
	"github.com/jobnest/jobnest/internal/candidate"
	"github.com/jobnest/jobnest/internal/tenantdb"
	"gorm.io/gorm"
)

// CandidateRepository implements candidate.Repository through the
// tenant-scoped data gateway.
type CandidateRepository struct {
	mgr *tenantdb.Manager
}

func NewCandidateRepository(mgr *tenantdb.Manager) candidate.Repository {
	return &CandidateRepository{mgr: mgr}
}

func (r *CandidateRepository) Create(ctx context.Context, c *candidate.Candidate) error {
	scope, err := r.mgr.Scope(ctx)
	if err != nil {
		return err
	}
	if err := scope.Create(c); err != nil {
		if isUniqueViolation(err) {
			return internal.NewConflictError("Email already registered for this tenant", internal.ErrCodeEmailTaken)
		}
		return internal.NewInternalError("Failed to create candidate", err)
	}
	return nil
}

func (r *CandidateRepository) GetByID(ctx context.Context, id string) (*candidate.Candidate, error) {
	scope, err := r.mgr.Scope(ctx)
	if err != nil {
		return nil, err
	}
	return r.first(scope, "id = ?", id)
}

func (r *CandidateRepository) GetByEmail(ctx context.Context, email string) (*candidate.Candidate, error) {
	scope, err := r.mgr.Scope(ctx)
	if err != nil {
		return nil, err
	}
	return r.first(scope, "email = ?", email)
}

func (r *CandidateRepository) GetByUserID(ctx context.Context, userID string) (*candidate.Candidate, error) {
	scope, err := r.mgr.Scope(ctx)
	if err != nil {
		return nil, err
	}
	return r.first(scope, "user_id = ?", userID)
}

func (r *CandidateRepository) first(scope *tenantdb.Scope, query string, arg interface{}) (*candidate.Candidate, error) {
	var c candidate.Candidate
	if err := scope.Query(&candidate.Candidate{}).Where(query, arg).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrCandidateNotFound
		}
		return nil, internal.NewInternalError("Failed to load candidate", err)
	}
	return &c, nil
}

func (r *CandidateRepository) List(ctx context.Context, filter candidate.ListCandidatesFilter) ([]*candidate.Candidate, error) {
	scope, err := r.mgr.Scope(ctx)
	if err != nil {
		return nil, err
	}

	q := scope.Query(&candidate.Candidate{})
	if filter.Skill != "" {
		q = q.Where("skills LIKE ?", "%"+filter.Skill+"%")
	}
	if filter.Location != "" {
		q = q.Where("location = ?", filter.Location)
	}

	var candidates []*candidate.Candidate
	if err := q.Order("created_at DESC").Find(&candidates).Error; err != nil {
		return nil, internal.NewInternalError("Failed to list candidates", err)
	}
	return candidates, nil
}

func (r *CandidateRepository) Update(ctx context.Context, c *candidate.Candidate) error {
	scope, err := r.mgr.Scope(ctx)
	if err != nil {
		return err
	}
	if err := scope.Save(c); err != nil {
		if isUniqueViolation(err) {
			return internal.NewConflictError("Email already registered for this tenant", internal.ErrCodeEmailTaken)
		}
		return err
	}
	return nil
}

func (r *CandidateRepository) Delete(ctx context.Context, id string) error {
	scope, err := r.mgr.Scope(ctx)
	if err != nil {
		return err
	}

	res := scope.Query(&candidate.Candidate{}).Where("id = ?", id).Delete(&candidate.Candidate{})
	if res.Error != nil {
		return internal.NewInternalError("Failed to delete candidate", res.Error)
	}
	if res.RowsAffected == 0 {
		return internal.ErrCandidateNotFound
	}
	return nil
}

// isUniqueViolation matches both the postgres and sqlite duplicate-key
// messages so repository specs can run on either driver.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}
