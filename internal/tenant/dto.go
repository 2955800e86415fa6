package tenant

import (
	"github.com/jobnest/jobnest/internal/core/validation"
)

// CreateTenantDTO is the provisioning payload for a new tenant.
type CreateTenantDTO struct {
	Name         string  `json:"name"`
	Subdomain    string  `json:"subdomain"`
	CustomDomain *string `json:"custom_domain,omitempty"`
	Plan         string  `json:"plan,omitempty"`
}

func (dto CreateTenantDTO) Validate() error {
	v := validation.New().
		Required("name", dto.Name).
		MinLength("name", dto.Name, 2).
		Required("subdomain", dto.Subdomain).
		MinLength("subdomain", dto.Subdomain, 2).
		MaxLength("subdomain", dto.Subdomain, 63)
	if dto.Plan != "" {
		v.Custom(ValidPlan(dto.Plan), "plan", "plan must be one of free, starter, professional, enterprise")
	}
	return v.Err()
}

// UpdateTenantDTO is a partial patch against tenant settings.
type UpdateTenantDTO struct {
	Name         *string `json:"name,omitempty"`
	Subdomain    *string `json:"subdomain,omitempty"`
	CustomDomain *string `json:"custom_domain,omitempty"`
	Plan         *string `json:"plan,omitempty"`
}

func (dto UpdateTenantDTO) Validate() error {
	v := validation.New()
	if dto.Name != nil {
		v.Required("name", *dto.Name).MinLength("name", *dto.Name, 2)
	}
	if dto.Subdomain != nil {
		v.Required("subdomain", *dto.Subdomain).
			MinLength("subdomain", *dto.Subdomain, 2).
			MaxLength("subdomain", *dto.Subdomain, 63)
	}
	if dto.Plan != nil {
		v.Custom(ValidPlan(*dto.Plan), "plan", "plan must be one of free, starter, professional, enterprise")
	}
	return v.Err()
}
