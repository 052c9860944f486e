package application

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/devconnector/devconnector/internal/apperror"
	"github.com/devconnector/devconnector/internal/domain/entity"
	repo "github.com/devconnector/devconnector/internal/domain/repository"
	"github.com/devconnector/devconnector/pkg/helpers"
	"github.com/devconnector/devconnector/pkg/mailer"
)

// UserService handles registration, login and account-level operations.
type UserService struct {
	Users       repo.UserRepository
	JWT         *helpers.JWTManager
	Logger      *logrus.Logger
	Pub         *helpers.RabbitPublisher
	MailEnabled bool
	GCS         *storage.Client
	GCSBucket   string
}

func NewUserService(users repo.UserRepository, jwt *helpers.JWTManager, logger *logrus.Logger, pub *helpers.RabbitPublisher, mailEnabled bool, gcs *storage.Client, gcsBucket string) *UserService {
	return &UserService{
		Users:       users,
		JWT:         jwt,
		Logger:      logger,
		Pub:         pub,
		MailEnabled: mailEnabled,
		GCS:         gcs,
		GCSBucket:   gcsBucket,
	}
}

// parseObjectID maps a malformed hex id to the same NotFound the caller
// would get for a genuinely absent document.
func parseObjectID(hex, notFoundMsg string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, apperror.NotFound(notFoundMsg)
	}
	return id, nil
}

// Register creates a user with a bcrypt password hash and a gravatar-derived
// avatar, then returns a signed bearer token.
func (s *UserService) Register(ctx context.Context, name, email, password string) (string, error) {
	if _, err := s.Users.GetByEmail(ctx, email); err == nil {
		return "", apperror.Conflict("User already exists")
	} else if !errors.Is(err, apperror.ErrNotFound) {
		return "", err
	}

	hash, err := helpers.HashPassword(password)
	if err != nil {
		return "", apperror.Internal(err)
	}

	u := &entity.User{
		Name:     name,
		Email:    email,
		Password: hash,
		Avatar:   helpers.GravatarURL(email),
	}
	if err := s.Users.Create(ctx, u); err != nil {
		return "", err
	}

	token, _, err := s.JWT.GenerateToken(u.ID.Hex())
	if err != nil {
		return "", apperror.Internal(err)
	}

	s.enqueueEmail(ctx, mailer.EmailJob{
		To:       u.Email,
		Template: mailer.TemplateWelcome,
		Data:     map[string]any{"Name": u.Name},
	})

	s.Logger.WithField("user_id", u.ID.Hex()).Info("user registered")
	return token, nil
}

// Login verifies credentials and returns a signed bearer token.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return "", apperror.Validation("Invalid credentials")
		}
		return "", err
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return "", apperror.Validation("Invalid credentials")
	}

	token, _, err := s.JWT.GenerateToken(u.ID.Hex())
	if err != nil {
		return "", apperror.Internal(err)
	}
	return token, nil
}

// CurrentUser resolves the authenticated user id to its record.
func (s *UserService) CurrentUser(ctx context.Context, userID string) (*entity.User, error) {
	id, err := parseObjectID(userID, "User not found")
	if err != nil {
		return nil, err
	}
	return s.Users.GetByID(ctx, id)
}

// UploadAvatar stores an avatar image in GCS and points the user record at it.
func (s *UserService) UploadAvatar(ctx context.Context, userID string, r io.Reader, filename, contentType string) (*entity.User, error) {
	if s.GCS == nil || s.GCSBucket == "" {
		return nil, apperror.Internal(errors.New("gcs not configured"))
	}
	id, err := parseObjectID(userID, "User not found")
	if err != nil {
		return nil, err
	}
	u, err := s.Users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("avatars", userID, uuid.NewString()+ext))
	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	u.Avatar = url
	if err := s.Users.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *UserService) enqueueEmail(ctx context.Context, job mailer.EmailJob) {
	if s.Pub == nil || !s.MailEnabled {
		return
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil {
		s.Logger.WithError(err).WithField("to", job.To).Warn("email enqueue failed")
	}
}
