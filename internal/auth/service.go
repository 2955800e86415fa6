package auth

import (
	"context"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jobnest/jobnest/internal"
	"golang.org/x/crypto/bcrypt"
)

type Service struct {
	userRepo       UserRepository
	tokenGenerator TokenGenerator
	bcryptCost     int
	logger         *slog.Logger
}

func NewService(userRepo UserRepository, tokenGen TokenGenerator, bcryptCost int, logger *slog.Logger) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		userRepo:       userRepo,
		tokenGenerator: tokenGen,
		bcryptCost:     bcryptCost,
		logger:         logger,
	}
}

// Authenticate validates credentials within the given tenant and returns
// tokens bound to that tenant.
func (s *Service) Authenticate(ctx context.Context, tenantID string, dto LoginDTO) (AuthTokens, *User, error) {
	if err := dto.Validate(); err != nil {
		return AuthTokens{}, nil, err
	}

	user, err := s.userRepo.GetByEmail(ctx, tenantID, dto.Email)
	if err != nil {
		return AuthTokens{}, nil, internal.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(dto.Password)); err != nil {
		return AuthTokens{}, nil, internal.ErrInvalidCredentials
	}

	if !user.IsActive {
		return AuthTokens{}, nil, internal.ErrUserInactive
	}

	tokens, err := s.issueTokens(user)
	if err != nil {
		return AuthTokens{}, nil, err
	}

	user.Permissions = PermissionsForRole(user.Role)
	s.logger.Info("user authenticated", "user_id", user.ID, "tenant_id", user.TenantID, "role", user.Role)
	return tokens, user, nil
}

// Register creates a new principal within the tenant. Defaults to the
// candidate role when none is given.
func (s *Service) Register(ctx context.Context, tenantID string, dto RegisterDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	if tenantID == "" {
		return nil, internal.ErrNoTenantContext
	}

	if _, err := s.userRepo.GetByEmail(ctx, tenantID, dto.Email); err == nil {
		return nil, internal.NewConflictError("Email is already registered", internal.ErrCodeEmailTaken)
	}

	role := RoleCandidate
	if dto.Role != "" {
		role, _ = ParseRole(dto.Role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), s.bcryptCost)
	if err != nil {
		return nil, internal.NewInternalError("Failed to hash password", err)
	}

	now := time.Now()
	user := &User{
		ID:           uuid.NewString(),
		TenantID:     tenantID,
		Name:         dto.Name,
		Email:        dto.Email,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		s.logger.Error("failed to create user", "email", dto.Email, "tenant_id", tenantID, "error", err)
		return nil, internal.NewInternalError("Failed to create user", err)
	}

	user.Permissions = PermissionsForRole(user.Role)
	s.logger.Info("user registered", "user_id", user.ID, "tenant_id", tenantID, "role", role)
	return user, nil
}

// RefreshTokens rotates both tokens after validating the refresh token.
func (s *Service) RefreshTokens(ctx context.Context, refreshToken string) (AuthTokens, error) {
	claims, err := s.tokenGenerator.ValidateToken(refreshToken)
	if err != nil {
		return AuthTokens{}, err
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return AuthTokens{}, internal.ErrInvalidToken
	}
	if !user.IsActive {
		return AuthTokens{}, internal.ErrUserInactive
	}

	return s.issueTokens(user)
}

func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.tokenGenerator.ValidateToken(tokenString)
}

// GetUser loads the principal and derives its permission set.
func (s *Service) GetUser(ctx context.Context, userID string) (*User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Permissions = PermissionsForRole(user.Role)
	return user, nil
}

func (s *Service) issueTokens(user *User) (AuthTokens, error) {
	accessToken, err := s.tokenGenerator.GenerateAccessToken(user)
	if err != nil {
		return AuthTokens{}, internal.NewInternalError("Failed to generate token", err)
	}
	refreshToken, err := s.tokenGenerator.GenerateRefreshToken(user)
	if err != nil {
		return AuthTokens{}, internal.NewInternalError("Failed to generate token", err)
	}
	return AuthTokens{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// JWTTokenGenerator signs HS256 tokens carrying the tenant binding.
type JWTTokenGenerator struct {
	AccessTokenSecret  []byte
	RefreshTokenSecret []byte
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
}

func NewJWTTokenGenerator(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *JWTTokenGenerator {
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &JWTTokenGenerator{
		AccessTokenSecret:  []byte(accessSecret),
		RefreshTokenSecret: []byte(refreshSecret),
		AccessTokenTTL:     accessTTL,
		RefreshTokenTTL:    refreshTTL,
	}
}

func (j *JWTTokenGenerator) GenerateAccessToken(user *User) (string, error) {
	return j.sign(user, j.AccessTokenSecret, j.AccessTokenTTL)
}

func (j *JWTTokenGenerator) GenerateRefreshToken(user *User) (string, error) {
	return j.sign(user, j.RefreshTokenSecret, j.RefreshTokenTTL)
}

func (j *JWTTokenGenerator) sign(user *User, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:   user.ID,
		Email:    user.Email,
		TenantID: user.TenantID,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   user.ID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func (j *JWTTokenGenerator) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, internal.ErrInvalidToken
		}
		return j.AccessTokenSecret, nil
	})
	if err != nil || !token.Valid {
		// refresh tokens are signed with the refresh secret
		token, err = jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, internal.ErrInvalidToken
			}
			return j.RefreshTokenSecret, nil
		})
		if err != nil || !token.Valid {
			return nil, internal.ErrInvalidToken
		}
	}

	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now()) {
		return nil, internal.ErrTokenExpired
	}
	return claims, nil
}
