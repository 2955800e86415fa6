package auth

import (
	"github.com/jobnest/jobnest/internal/core/validation"
)

type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (dto LoginDTO) Validate() error {
	return validation.New().
		Required("email", dto.Email).
		Required("password", dto.Password).
		Err()
}

type RegisterDTO struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

func (dto RegisterDTO) Validate() error {
	v := validation.New().
		Required("name", dto.Name).
		MinLength("name", dto.Name, 2).
		Required("email", dto.Email).
		Required("password", dto.Password).
		MinLength("password", dto.Password, 8)
	if dto.Role != "" {
		_, ok := ParseRole(dto.Role)
		v.Custom(ok, "role", "role must be one of admin, manager, employee, candidate")
	}
	return v.Err()
}

type RefreshDTO struct {
	RefreshToken string `json:"refresh_token"`
}

func (dto RefreshDTO) Validate() error {
	return validation.New().
		Required("refresh_token", dto.RefreshToken).
		Err()
}

type ChangeRoleDTO struct {
	Role string `json:"role"`
}

func (dto ChangeRoleDTO) Validate() error {
	v := validation.New().Required("role", dto.Role)
	if dto.Role != "" {
		_, ok := ParseRole(dto.Role)
		v.Custom(ok, "role", "role must be one of admin, manager, employee, candidate")
	}
	return v.Err()
}
