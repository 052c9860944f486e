package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/devconnector/devconnector/internal/apperror"
	"github.com/devconnector/devconnector/internal/domain/entity"
	"github.com/devconnector/devconnector/internal/domain/repository"
)

type ProfileRepository struct {
	coll *mongo.Collection
}

func NewProfileRepository(db *mongo.Database) *ProfileRepository {
	return &ProfileRepository{coll: db.Collection(profilesCollection)}
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*entity.Profile, error) {
	p := &entity.Profile{}
	err := r.coll.FindOne(ctx, bson.M{"user": userID}).Decode(p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperror.NotFound("Profile not found")
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return p, nil
}

func (r *ProfileRepository) GetAll(ctx context.Context) ([]entity.Profile, error) {
	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	defer func() { _ = cur.Close(ctx) }()

	profiles := []entity.Profile{}
	if err := cur.All(ctx, &profiles); err != nil {
		return nil, apperror.Internal(err)
	}
	return profiles, nil
}

// Upsert applies the sparse field set keyed by user reference: create when
// absent, merge-update in place otherwise. Omitted optional fields never
// overwrite stored values.
func (r *ProfileRepository) Upsert(ctx context.Context, userID primitive.ObjectID, fields repository.ProfileFields) (*entity.Profile, error) {
	set := bson.M{
		"user":   userID,
		"status": fields.Status,
		"skills": fields.Skills,
	}
	if fields.Company != nil {
		set["company"] = *fields.Company
	}
	if fields.Website != nil {
		set["website"] = *fields.Website
	}
	if fields.Location != nil {
		set["location"] = *fields.Location
	}
	if fields.Bio != nil {
		set["bio"] = *fields.Bio
	}
	if fields.GithubUsername != nil {
		set["githubusername"] = *fields.GithubUsername
	}
	if fields.Social != nil {
		set["social"] = fields.Social
	}

	update := bson.M{
		"$set": set,
		"$setOnInsert": bson.M{
			"experience": []entity.Experience{},
			"education":  []entity.Education{},
			"date":       time.Now().UTC(),
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	p := &entity.Profile{}
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"user": userID}, update, opts).Decode(p); err != nil {
		return nil, apperror.Internal(err)
	}
	return p, nil
}

// Save persists the whole profile document; embedded experience and education
// lists travel with it.
func (r *ProfileRepository) Save(ctx context.Context, p *entity.Profile) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		return apperror.Internal(err)
	}
	if res.MatchedCount == 0 {
		return apperror.NotFound("Profile not found")
	}
	return nil
}

func (r *ProfileRepository) DeleteByUserID(ctx context.Context, userID primitive.ObjectID) error {
	if _, err := r.coll.DeleteOne(ctx, bson.M{"user": userID}); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

var _ repository.ProfileRepository = (*ProfileRepository)(nil)
