package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/devconnector/devconnector/internal/apperror"
	"github.com/devconnector/devconnector/internal/domain/entity"
	"github.com/devconnector/devconnector/internal/domain/repository"
)

type PostRepository struct {
	coll *mongo.Collection
}

func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{coll: db.Collection(postsCollection)}
}

func (r *PostRepository) Create(ctx context.Context, p *entity.Post) error {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	if _, err := r.coll.InsertOne(ctx, p); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (r *PostRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Post, error) {
	p := &entity.Post{}
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperror.NotFound("Post not found")
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return p, nil
}

// GetAll returns every post, newest first.
func (r *PostRepository) GetAll(ctx context.Context) ([]entity.Post, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	defer func() { _ = cur.Close(ctx) }()

	posts := []entity.Post{}
	if err := cur.All(ctx, &posts); err != nil {
		return nil, apperror.Internal(err)
	}
	return posts, nil
}

// Save writes the whole document back; the embedded like and comment lists
// are not independently addressable resources.
func (r *PostRepository) Save(ctx context.Context, p *entity.Post) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		return apperror.Internal(err)
	}
	if res.MatchedCount == 0 {
		return apperror.NotFound("Post not found")
	}
	return nil
}

func (r *PostRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return apperror.Internal(err)
	}
	if res.DeletedCount == 0 {
		return apperror.NotFound("Post not found")
	}
	return nil
}

func (r *PostRepository) DeleteByUserID(ctx context.Context, userID primitive.ObjectID) error {
	if _, err := r.coll.DeleteMany(ctx, bson.M{"user": userID}); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

var _ repository.PostRepository = (*PostRepository)(nil)
