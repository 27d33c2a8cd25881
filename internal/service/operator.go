package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rookgm/cargolabel/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// OperatorRepository is interface for operator accounts
type OperatorRepository interface {
	// CreateOperator inserts new operator
	CreateOperator(ctx context.Context, op *models.Operator) (*models.Operator, error)
	// GetOperatorByLogin returns operator by login
	GetOperatorByLogin(ctx context.Context, login string) (*models.Operator, error)
}

// OperatorService registers and authenticates operators
type OperatorService struct {
	repo  OperatorRepository
	token TokenService
}

// NewOperatorService creates new OperatorService instance
func NewOperatorService(repo OperatorRepository, token TokenService) *OperatorService {
	return &OperatorService{
		repo:  repo,
		token: token,
	}
}

// Register creates operator account and returns its session token
func (s *OperatorService) Register(ctx context.Context, creds models.Credentials) (string, error) {
	if err := validateCredentials(creds); err != nil {
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	op, err := s.repo.CreateOperator(ctx, &models.Operator{
		Login:        creds.Login,
		PasswordHash: string(hash),
	})
	if err != nil {
		if errors.Is(err, models.ErrConflictData) {
			return "", models.ErrLoginTaken
		}
		return "", fmt.Errorf("create operator: %w", err)
	}

	return s.token.CreateToken(op)
}

// Login checks credentials and returns session token
func (s *OperatorService) Login(ctx context.Context, creds models.Credentials) (string, error) {
	if err := validateCredentials(creds); err != nil {
		return "", err
	}

	op, err := s.repo.GetOperatorByLogin(ctx, creds.Login)
	if err != nil {
		if errors.Is(err, models.ErrDataNotFound) {
			return "", models.ErrInvalidCredentials
		}
		return "", fmt.Errorf("find operator: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(op.PasswordHash), []byte(creds.Password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return "", models.ErrInvalidCredentials
		}
		return "", fmt.Errorf("compare password: %w", err)
	}

	return s.token.CreateToken(op)
}

func validateCredentials(creds models.Credentials) error {
	if creds.Login == "" || creds.Password == "" {
		return fmt.Errorf("login and password are required: %w", models.ErrInvalidRequest)
	}
	return nil
}
