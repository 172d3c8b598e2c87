package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yukikurage/club-projects-api/internal/auth"
	"github.com/yukikurage/club-projects-api/internal/models"
	"github.com/yukikurage/club-projects-api/internal/notify"
	"github.com/yukikurage/club-projects-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrFailedToHashPassword = errors.New("failed to hash password")

// AuthService handles registration and login.
type AuthService struct {
	memberRepo repository.MemberRepository
	tokens     *auth.TokenManager
	notifier   notify.Notifier
	now        func() time.Time
}

// NewAuthService creates a new AuthService.
func NewAuthService(memberRepo repository.MemberRepository, tokens *auth.TokenManager, notifier notify.Notifier) *AuthService {
	if notifier == nil {
		notifier = notify.Discard{}
	}
	return &AuthService{
		memberRepo: memberRepo,
		tokens:     tokens,
		notifier:   notifier,
		now:        time.Now,
	}
}

// RegisterInput represents the required information to create a new member.
type RegisterInput struct {
	FullName string `json:"fullName" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// Session is the result of a successful login.
type Session struct {
	Member    *models.Member
	Token     string
	ExpiresAt time.Time
}

// Register creates a new member with the member role and sends a welcome email.
func (s *AuthService) Register(input RegisterInput) (*Session, error) {
	input.FullName = strings.TrimSpace(input.FullName)
	input.Email = normalizeEmail(input.Email)
	if err := validateStruct(input); err != nil {
		return nil, err
	}

	if _, err := s.memberRepo.FindByEmail(input.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	member := &models.Member{
		FullName:     input.FullName,
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		Role:         models.RoleMember,
		IsActive:     true,
		JoinDate:     s.now().UTC(),
	}
	if err := s.memberRepo.Create(member); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create member: %w", err)
	}

	s.notifier.Notify(notify.Message{
		Kind:          notify.KindWelcome,
		RecipientMail: member.Email,
		RecipientName: member.FullName,
	})

	return s.issue(member)
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Login verifies credentials, stamps the last login and issues a token.
func (s *AuthService) Login(input LoginInput) (*Session, error) {
	input.Email = normalizeEmail(input.Email)
	if err := validateStruct(input); err != nil {
		return nil, err
	}

	member, err := s.memberRepo.FindByEmail(input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find member: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(member.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !member.IsActive {
		return nil, ErrAccountInactive
	}

	now := s.now().UTC()
	if err := s.memberRepo.TouchLastLogin(member.ID, now); err != nil {
		return nil, fmt.Errorf("failed to record login: %w", err)
	}
	member.LastLogin = &now

	return s.issue(member)
}

// GetMember retrieves a member by ID.
func (s *AuthService) GetMember(id uint64) (*models.Member, error) {
	return findMember(s.memberRepo, id)
}

func (s *AuthService) issue(member *models.Member) (*Session, error) {
	token, expiresAt, err := s.tokens.Issue(member.ID, string(member.Role))
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return &Session{Member: member, Token: token, ExpiresAt: expiresAt}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
