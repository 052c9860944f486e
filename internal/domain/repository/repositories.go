package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/devconnector/devconnector/internal/domain/entity"
)

// UserRepository defines user-related persistence operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// ProfileFields is the sparse field set applied by the profile upsert. Nil
// pointers mean "not supplied": the stored value is left untouched on update
// and absent on create. Status and Skills are always set.
type ProfileFields struct {
	Status         string
	Skills         []string
	Company        *string
	Website        *string
	Location       *string
	Bio            *string
	GithubUsername *string
	Social         *entity.SocialLinks
}

// ProfileRepository defines profile persistence operations. Profiles are
// keyed by their user reference; Upsert creates the document when absent and
// merge-updates it in place otherwise.
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID primitive.ObjectID) (*entity.Profile, error)
	GetAll(ctx context.Context) ([]entity.Profile, error)
	Upsert(ctx context.Context, userID primitive.ObjectID, fields ProfileFields) (*entity.Profile, error)
	Save(ctx context.Context, p *entity.Profile) error
	DeleteByUserID(ctx context.Context, userID primitive.ObjectID) error
}

// PostRepository defines post persistence operations. Save persists the whole
// document; embedded likes and comments are never independently addressable.
type PostRepository interface {
	Create(ctx context.Context, p *entity.Post) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Post, error)
	GetAll(ctx context.Context) ([]entity.Post, error)
	Save(ctx context.Context, p *entity.Post) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByUserID(ctx context.Context, userID primitive.ObjectID) error
}
