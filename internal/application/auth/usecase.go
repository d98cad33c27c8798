package auth

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/nivaanlabs/gstbill-api/internal/application/dto"
	"github.com/nivaanlabs/gstbill-api/internal/domain"
	"github.com/nivaanlabs/gstbill-api/internal/domain/entity"
	"github.com/nivaanlabs/gstbill-api/internal/domain/repository"
	"github.com/nivaanlabs/gstbill-api/pkg/jwt"
)

// JWTConfig token generation settings.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase authentication use cases: registration and login.
type AuthUseCase struct {
	userRepo     repository.UserRepository
	businessRepo repository.BusinessRepository
	jwtCfg       JWTConfig
}

// NewAuthUseCase builds the auth use case.
func NewAuthUseCase(userRepo repository.UserRepository, businessRepo repository.BusinessRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, businessRepo: businessRepo, jwtCfg: jwtCfg}
}

// Register creates a business together with its admin user, hashes the
// password with bcrypt and returns a signed token.
// Returns ErrEmailAlreadyExists when the email is taken.
func (uc *AuthUseCase) Register(in dto.RegisterRequest) (*dto.AuthResponse, error) {
	existing, _ := uc.userRepo.GetByEmail(in.Email)
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	business := &entity.Business{
		ID:         uuid.New().String(),
		Name:       in.BusinessName,
		GSTIN:      in.GSTIN,
		Address:    in.Address,
		Phone:      in.Phone,
		Email:      in.Email,
		UPIAddress: in.UPIAddress,
		Status:     "active",
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.businessRepo.Create(business); err != nil {
		return nil, err
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		BusinessID:   business.ID,
		Name:         in.UserName,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         entity.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, business.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{Token: token, UserID: user.ID, BusinessID: business.ID, Role: user.Role}, nil
}

// Login verifies email/password and returns a signed token.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.BusinessID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{Token: token, UserID: user.ID, BusinessID: user.BusinessID, Role: user.Role}, nil
}
