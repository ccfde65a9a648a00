package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/bloomcare/bloom-practice-engine/internal/core/domain"
	"github.com/google/uuid"
)

type AuthService struct {
	repo domain.PractitionerRepository
}

func NewAuthService(repo domain.PractitionerRepository) *AuthService {
	return &AuthService{
		repo: repo,
	}
}

type RegisterInput struct {
	Email      string
	Password   string
	FullName   string
	Profession string
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.Practitioner, error) {
	id := uuid.NewString()
	practitioner, err := domain.NewPractitioner(id, input.Email, input.FullName, input.Profession)
	if err != nil {
		return nil, err
	}

	if err := practitioner.SetPassword(input.Password); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, practitioner); err != nil {
		return nil, fmt.Errorf("auth service: failed to create practitioner: %w", err)
	}

	return practitioner, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.Practitioner, error) {
	practitioner, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrPractitionerNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("auth service: failed to fetch practitioner: %w", err)
	}

	if err := practitioner.CheckPassword(password); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return practitioner, nil
}
