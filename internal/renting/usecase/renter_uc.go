package usecase

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/renthome/renter-service/internal/platform/auth"
	"github.com/renthome/renter-service/internal/renting/domain"
)

const minPasswordLength = 6

// RenterUsecase handles registration and login. Hashing and token issuance
// are delegated to the auth service.
type RenterUsecase struct {
	renters domain.RenterRepository
	auth    *auth.Service
	logger  *zap.Logger
}

func NewRenterUsecase(renters domain.RenterRepository, authSvc *auth.Service, logger *zap.Logger) *RenterUsecase {
	return &RenterUsecase{
		renters: renters,
		auth:    authSvc,
		logger:  logger.Named("RenterUsecase"),
	}
}

// Registration carries the fields of a registration request.
type Registration struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Mobile    string
}

func (r Registration) missingFields() []string {
	var missing []string
	for _, f := range []struct {
		name  string
		value string
	}{
		{"firstname", r.FirstName},
		{"lastname", r.LastName},
		{"email", r.Email},
		{"password", r.Password},
		{"mobile", r.Mobile},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

func (uc *RenterUsecase) Register(ctx context.Context, reg Registration) (string, error) {
	if missing := reg.missingFields(); len(missing) > 0 {
		return "", &domain.ValidationError{Missing: missing}
	}
	if len(reg.Password) < minPasswordLength {
		return "", fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidCredentials, minPasswordLength)
	}

	hashed, err := auth.HashPassword(reg.Password)
	if err != nil {
		return "", err
	}

	renter := &domain.Renter{
		FirstName: reg.FirstName,
		LastName:  reg.LastName,
		Email:     reg.Email,
		Password:  hashed,
		Mobile:    reg.Mobile,
	}
	if err := uc.renters.Create(ctx, renter); err != nil {
		return "", err
	}

	uc.logger.Info("renter registered", zap.String("renterID", renter.ID))
	return renter.ID, nil
}

// Login verifies credentials and issues a bearer token. Unknown email and
// wrong password produce the same error shape.
func (uc *RenterUsecase) Login(ctx context.Context, email, password string) (token, renterID string, err error) {
	renter, err := uc.renters.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrRenterNotFound) {
			return "", "", domain.ErrInvalidCredentials
		}
		return "", "", err
	}

	if !auth.CheckPassword(renter.Password, password) {
		return "", "", domain.ErrInvalidCredentials
	}

	token, err = uc.auth.IssueToken(renter.ID)
	if err != nil {
		return "", "", err
	}

	uc.logger.Info("renter logged in", zap.String("renterID", renter.ID))
	return token, renter.ID, nil
}
