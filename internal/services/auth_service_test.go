package services

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/club-projects-api/internal/auth"
	"github.com/yukikurage/club-projects-api/internal/models"
	"github.com/yukikurage/club-projects-api/internal/notify"
)

type AuthServiceTestSuite struct {
	suite.Suite
	env    *testEnv
	tokens *auth.TokenManager
	svc    *AuthService
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}

func (s *AuthServiceTestSuite) SetupTest() {
	s.env = newTestEnv(s.T())
	s.tokens = auth.NewTokenManager("test-secret", time.Hour)
	s.svc = NewAuthService(s.env.members, s.tokens, s.env.notifier)
}

func (s *AuthServiceTestSuite) register(email string) *Session {
	session, err := s.svc.Register(RegisterInput{FullName: "Grace Hopper", Email: email, Password: "supersecret"})
	s.Require().NoError(err)
	return session
}

func (s *AuthServiceTestSuite) TestRegister_NormalizesEmailAndIssuesToken() {
	session := s.register("  Grace@Example.COM ")

	s.Equal("grace@example.com", session.Member.Email)
	s.Equal(models.RoleMember, session.Member.Role)
	s.True(session.Member.IsActive)
	s.NotEqual("supersecret", session.Member.PasswordHash)
	s.False(session.Member.JoinDate.IsZero())

	id, err := s.tokens.Parse(session.Token)
	s.Require().NoError(err)
	s.Equal(session.Member.ID, id)

	sent := s.env.notifier.sent()
	s.Require().Len(sent, 1)
	s.Equal(notify.KindWelcome, sent[0].Kind)
	s.Equal("grace@example.com", sent[0].RecipientMail)
}

func (s *AuthServiceTestSuite) TestRegister_DuplicateEmailIgnoresCase() {
	s.register("grace@example.com")

	_, err := s.svc.Register(RegisterInput{FullName: "Other Grace", Email: "GRACE@example.com", Password: "supersecret"})
	s.True(errors.Is(err, ErrEmailTaken))
}

func (s *AuthServiceTestSuite) TestRegister_Validation() {
	tests := []struct {
		name  string
		input RegisterInput
		field string
	}{
		{"short password", RegisterInput{FullName: "A", Email: "a@example.com", Password: "short"}, "password"},
		{"seven char password", RegisterInput{FullName: "A", Email: "a@example.com", Password: "1234567"}, "password"},
		{"long password", RegisterInput{FullName: "A", Email: "a@example.com", Password: strings.Repeat("p", 129)}, "password"},
		{"bad email", RegisterInput{FullName: "A", Email: "not-an-email", Password: "supersecret"}, "email"},
		{"missing name", RegisterInput{FullName: "  ", Email: "a@example.com", Password: "supersecret"}, "fullName"},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.svc.Register(tt.input)
			var verr *ValidationError
			s.Require().True(errors.As(err, &verr), "got %v", err)
			s.Contains(verr.Fields, tt.field)
		})
	}
}

func (s *AuthServiceTestSuite) TestLogin() {
	registered := s.register("grace@example.com")

	session, err := s.svc.Login(LoginInput{Email: "Grace@Example.com", Password: "supersecret"})
	s.Require().NoError(err)
	s.Equal(registered.Member.ID, session.Member.ID)
	s.NotEmpty(session.Token)
	s.Require().NotNil(session.Member.LastLogin)

	stored, err := s.env.members.FindByID(registered.Member.ID)
	s.Require().NoError(err)
	s.NotNil(stored.LastLogin)
}

func (s *AuthServiceTestSuite) TestLogin_WrongPasswordOrUnknownEmail() {
	s.register("grace@example.com")

	_, err := s.svc.Login(LoginInput{Email: "grace@example.com", Password: "wrong-password"})
	s.True(errors.Is(err, ErrInvalidCredentials))

	_, err = s.svc.Login(LoginInput{Email: "nobody@example.com", Password: "supersecret"})
	s.True(errors.Is(err, ErrInvalidCredentials))
}

func (s *AuthServiceTestSuite) TestLogin_InactiveAccount() {
	registered := s.register("grace@example.com")
	s.Require().NoError(s.env.db.Model(&models.Member{}).
		Where("id = ?", registered.Member.ID).
		Update("is_active", false).Error)

	_, err := s.svc.Login(LoginInput{Email: "grace@example.com", Password: "supersecret"})
	s.True(errors.Is(err, ErrAccountInactive))
}

func (s *AuthServiceTestSuite) TestGetMember() {
	registered := s.register("grace@example.com")

	member, err := s.svc.GetMember(registered.Member.ID)
	s.Require().NoError(err)
	s.Equal("Grace Hopper", member.FullName)

	_, err = s.svc.GetMember(4040)
	s.True(errors.Is(err, ErrMemberNotFound))
}
