package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Rohityadav8366/service-provider-platform/internal/core/auth"
	"github.com/Rohityadav8366/service-provider-platform/internal/core/cache"
	"github.com/Rohityadav8366/service-provider-platform/internal/domain"
	"github.com/Rohityadav8366/service-provider-platform/internal/mailer"
	"github.com/Rohityadav8366/service-provider-platform/pkg/utils"
)

const profileCacheTTL = 5 * time.Minute

type RegisterInput struct {
	Email    string
	Password string
	Role     domain.Role
	FullName string
	Phone    string

	// provider-only, optional
	BusinessName    string
	Specialization  string
	ExperienceYears *int
}

// UserService owns registration, login and email verification. It holds no
// mutable state beyond its collaborators; every method is safe for concurrent
// use.
type UserService struct {
	users domain.UserRepository
	jwter *auth.JWTer
	cache *cache.Cache // nil disables caching
	mail  mailer.Sender
	log   *zap.Logger
}

func NewUserService(users domain.UserRepository, jwter *auth.JWTer, c *cache.Cache, mail mailer.Sender, log *zap.Logger) *UserService {
	if mail == nil {
		mail = mailer.Noop{}
	}
	return &UserService{users: users, jwter: jwter, cache: c, mail: mail, log: log}
}

// Register creates the user, its role profile and a single-use verification
// token atomically, then returns the sanitized profile view. The verification
// mail goes out asynchronously; registration does not wait on it.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*ProfileView, error) {
	if verr := validateRegistration(in); verr != nil {
		return nil, verr
	}

	email := strings.TrimSpace(in.Email)
	taken, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, domain.Unexpected("registration failed", err)
	}
	if taken {
		return nil, domain.Duplicate("email already registered")
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, domain.Unexpected("registration failed", err)
	}

	token := uuid.NewString()
	u := &domain.User{
		Email:             email,
		PasswordHash:      hash,
		Role:              in.Role,
		Status:            domain.StatusActive,
		EmailVerified:     false,
		VerificationToken: &token,
	}

	switch in.Role {
	case domain.RoleCustomer:
		u.CustomerProfile = &domain.CustomerProfile{
			FullName: in.FullName,
			Phone:    in.Phone,
		}
	case domain.RoleProvider:
		business := strings.TrimSpace(in.BusinessName)
		if business == "" {
			business = in.FullName
		}
		years := 0
		if in.ExperienceYears != nil {
			years = *in.ExperienceYears
		}
		u.ProviderProfile = &domain.ProviderProfile{
			BusinessName:    business,
			Phone:           in.Phone,
			Specialization:  in.Specialization,
			ExperienceYears: years,
			IsVerified:      false,
			IsAvailable:     true,
		}
	}

	if err := s.users.Register(ctx, u); err != nil {
		if domain.KindOf(err) != domain.KindUnexpected {
			return nil, err
		}
		return nil, domain.Unexpected("registration failed", err)
	}
	s.log.Info("user registered", zap.Int64("user_id", u.ID), zap.String("role", string(u.Role)))

	go func(to, name, tok string) {
		if err := s.mail.SendVerification(to, name, tok); err != nil {
			s.log.Warn("verification mail not sent", zap.Error(err))
		}
	}(u.Email, in.FullName, token)

	return viewOf(u), nil
}

// Login verifies credentials and issues a token. Unknown email, wrong
// password and non-active status all yield the same InvalidCredentials.
func (s *UserService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	u, err := s.users.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, domain.Unexpected("login failed", err)
	}
	if u == nil {
		return nil, domain.InvalidCredentials()
	}
	if !utils.CheckPassword(password, u.PasswordHash) {
		return nil, domain.InvalidCredentials()
	}
	if u.Status != domain.StatusActive {
		return nil, domain.InvalidCredentials()
	}

	tok, err := s.jwter.Issue(u.ID, u.Email, string(u.Role))
	if err != nil {
		return nil, domain.Unexpected("login failed", err)
	}
	s.log.Info("user logged in", zap.Int64("user_id", u.ID))

	return &LoginResult{
		Token:     tok,
		TokenType: "Bearer",
		UserID:    u.ID,
		Email:     u.Email,
		Role:      u.Role,
		ExpiresIn: s.jwter.ExpiresInSeconds(),
	}, nil
}

// Profile returns the sanitized view for a user id, cached when redis is
// configured.
func (s *UserService) Profile(ctx context.Context, userID int64) (*ProfileView, error) {
	if s.cache == nil {
		return s.loadProfile(ctx, userID)
	}
	v, err := cache.GetOrLoadJSON(s.cache, ctx, profileKey(userID), profileCacheTTL,
		func(ctx context.Context) (*ProfileView, error) {
			return s.loadProfile(ctx, userID)
		})
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (s *UserService) loadProfile(ctx context.Context, userID int64) (*ProfileView, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, domain.Unexpected("profile lookup failed", err)
	}
	if u == nil {
		return nil, domain.NotFound(fmt.Sprintf("user not found with id %d", userID))
	}
	return viewOf(u), nil
}

// VerifyEmail redeems a verification token. Clearing the column makes the
// token single-use: a second presentation finds no user and returns NotFound.
func (s *UserService) VerifyEmail(ctx context.Context, token string) error {
	u, err := s.users.FindByVerificationToken(ctx, token)
	if err != nil {
		return domain.Unexpected("email verification failed", err)
	}
	if u == nil {
		return domain.NotFound("invalid verification token")
	}

	u.EmailVerified = true
	u.VerificationToken = nil
	if err := s.users.Update(ctx, u); err != nil {
		return domain.Unexpected("email verification failed", err)
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, profileKey(u.ID))
	}
	s.log.Info("email verified", zap.Int64("user_id", u.ID))
	return nil
}

func (s *UserService) EmailExists(ctx context.Context, email string) (bool, error) {
	ok, err := s.users.ExistsByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return false, domain.Unexpected("email check failed", err)
	}
	return ok, nil
}

func profileKey(id int64) string { return fmt.Sprintf("user:profile:%d", id) }
