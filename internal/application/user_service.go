package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/khalilbouhlel1/threadly-api/config"
	"github.com/khalilbouhlel1/threadly-api/internal/domain/entity"
	"github.com/khalilbouhlel1/threadly-api/internal/domain/repository"
	"github.com/khalilbouhlel1/threadly-api/pkg/helpers"
	"github.com/khalilbouhlel1/threadly-api/pkg/mailer"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email is already in use")
	ErrResetTokenInvalid  = errors.New("invalid or expired reset token")
)

const resetTokenTTL = 30 * time.Minute

// Publisher is the queue the service enqueues outgoing mail on.
// *helpers.RabbitPublisher satisfies it.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

type UserService struct {
	Repo   repository.UserRepository
	JWT    *helpers.JWTManager
	Pub    Publisher
	Logger *logrus.Logger
	Cfg    *config.Config
}

func NewUserService(repo repository.UserRepository, jwt *helpers.JWTManager, pub Publisher, logger *logrus.Logger, cfg *config.Config) *UserService {
	return &UserService{Repo: repo, JWT: jwt, Pub: pub, Logger: logger, Cfg: cfg}
}

// AuthResult is returned by the login/register flows: the user plus a signed
// bearer token carrying identity and the admin flag.
type AuthResult struct {
	User    *entity.User
	Token   string
	Expires time.Time
}

// Register creates an account with a bcrypt-hashed password and issues a
// token. A duplicate email surfaces as ErrEmailTaken.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{Name: name, Email: email, Password: hash}
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return s.issue(u)
}

// Login verifies credentials. An unknown email is reported distinctly from a
// wrong password, matching the storefront's error surfaces.
func (s *UserService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return s.issue(u)
}

// AdminLogin authenticates an admin-flagged account. Authorization rides on
// the role claim in the token, never on the email itself, so any number of
// admin accounts work.
func (s *UserService) AdminLogin(ctx context.Context, email, password string) (*AuthResult, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !u.IsAdmin || !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return s.issue(u)
}

func (s *UserService) issue(u *entity.User) (*AuthResult, error) {
	token, exp, err := s.JWT.Generate(u.ID.Hex(), u.IsAdmin)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID.Hex()).Error("token generation failed")
		}
		return nil, err
	}
	return &AuthResult{User: u, Token: token, Expires: exp}, nil
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrInvalidID) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

type UpdateProfileInput struct {
	Name  string
	Email string
}

// UpdateProfile changes name/email for the authenticated user. An email
// belonging to another account surfaces as ErrEmailTaken.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*entity.User, error) {
	u, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if in.Name != "" {
		u.Name = in.Name
	}
	if in.Email != "" {
		u.Email = in.Email
	}
	if err := s.Repo.Update(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return u, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]*entity.User, error) {
	return s.Repo.List(ctx)
}

// UpdateUser is the admin edit: name and email replacement with the same
// email-taken check as profile updates.
func (s *UserService) UpdateUser(ctx context.Context, id, name, email string) (*entity.User, error) {
	u, err := s.GetProfile(ctx, id)
	if err != nil {
		return nil, err
	}
	u.Name = name
	u.Email = email
	if err := s.Repo.Update(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return u, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	err := s.Repo.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrInvalidID) {
		return ErrUserNotFound
	}
	return err
}

// ForgotPassword stores a reset token with expiry on the user document and
// enqueues the reset email. Unknown emails succeed silently to avoid account
// enumeration.
func (s *UserService) ForgotPassword(ctx context.Context, email string) error {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return err
	}

	token, err := helpers.GenToken(32)
	if err != nil {
		return err
	}
	expires := time.Now().Add(resetTokenTTL)
	u.ResetPasswordToken = token
	u.ResetPasswordExpire = expires
	if err := s.Repo.Update(ctx, u); err != nil {
		return err
	}

	if s.Pub != nil && s.Cfg != nil && s.Cfg.MailSendEnabled {
		link := s.Cfg.ResetPasswordURL + "?token=" + token
		job := mailer.EmailJob{
			To:       u.Email,
			Template: "reset_password",
			Data: map[string]any{
				"Name":      u.Name,
				"ResetURL":  link,
				"ExpiresAt": expires.UTC().Format("02 January 2006, 15:04 MST"),
			},
		}
		if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("email", u.Email).Warn("failed to enqueue reset email")
		}
	}
	return nil
}

// ResetPassword consumes a reset token: expired or unknown tokens fail, a
// valid one replaces the password hash and clears the token fields.
func (s *UserService) ResetPassword(ctx context.Context, token, newPassword string) error {
	u, err := s.Repo.GetByResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrResetTokenInvalid
		}
		return err
	}
	if u.ResetPasswordExpire.Before(time.Now()) {
		return ErrResetTokenInvalid
	}

	hash, err := helpers.HashPassword(newPassword)
	if err != nil {
		return err
	}
	u.Password = hash
	u.ResetPasswordToken = ""
	u.ResetPasswordExpire = time.Time{}
	return s.Repo.Update(ctx, u)
}
