package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/Apurer/cafe-api/internal/domains/identity/domain"
	"github.com/Apurer/cafe-api/internal/domains/identity/ports"
)

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 8

// Service implements registration, login, and guest reconciliation.
type Service struct {
	repo     ports.Repository
	tokens   ports.TokenIssuer
	hashCost int
}

type Option func(*Service)

// WithHashCost overrides the bcrypt cost, mostly so tests stay fast.
func WithHashCost(cost int) Option {
	return func(s *Service) {
		if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
			s.hashCost = cost
		}
	}
}

func NewService(repo ports.Repository, tokens ports.TokenIssuer, opts ...Option) *Service {
	s := &Service{repo: repo, tokens: tokens, hashCost: bcrypt.DefaultCost}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Register creates a CUSTOMER identity. Any existing identity for the email,
// guest or member, makes the registration fail.
func (s *Service) Register(ctx context.Context, input ports.RegisterInput) (*ports.Session, error) {
	email, err := domain.NormalizeEmail(input.Email)
	if err != nil {
		return nil, mapError(err)
	}
	if len(input.Password) < MinPasswordLength {
		return nil, mapError(ErrWeakPassword)
	}
	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, ports.ErrNotFound) {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	member, err := domain.NewMember(email, string(hash), domain.RoleCustomer, input.FirstName, input.LastName)
	if err != nil {
		return nil, mapError(err)
	}
	created, err := s.repo.Create(ctx, member)
	if err != nil {
		if errors.Is(err, ports.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return s.newSession(created)
}

func (s *Service) Login(ctx context.Context, email, password string) (*ports.Session, error) {
	email, err := domain.NormalizeEmail(email)
	if err != nil || strings.TrimSpace(password) == "" {
		return nil, ErrInvalidCredentials
	}
	identity, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !identity.HasCredential() {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(identity.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.newSession(identity)
}

// ResolveGuest returns the identity owning the contact email, creating a GUEST
// when none exists. A concurrent creation for the same email is resolved by
// re-reading the winner's row.
func (s *Service) ResolveGuest(ctx context.Context, contact ports.GuestContact) (*domain.Identity, error) {
	email, err := domain.NormalizeEmail(contact.Email)
	if err != nil {
		return nil, mapError(err)
	}
	existing, err := s.repo.FindByEmail(ctx, email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ports.ErrNotFound) {
		return nil, err
	}
	guest, err := domain.NewGuest(email, contact.FirstName, contact.LastName)
	if err != nil {
		return nil, mapError(err)
	}
	created, err := s.repo.Create(ctx, guest)
	if err == nil {
		return created, nil
	}
	if !errors.Is(err, ports.ErrDuplicateEmail) {
		return nil, err
	}
	return s.repo.FindByEmail(ctx, email)
}

func (s *Service) FindByID(ctx context.Context, id int64) (*domain.Identity, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *Service) newSession(identity *domain.Identity) (*ports.Session, error) {
	if s.tokens == nil {
		return nil, errors.New("token issuer not configured")
	}
	token, err := s.tokens.Issue(identity.ID, identity.Email, identity.Role)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &ports.Session{Identity: identity, Token: token}, nil
}

var _ ports.Service = (*Service)(nil)
