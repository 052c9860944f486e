package application

import (
	"context"
	"io"
	"sort"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/devconnector/devconnector/internal/apperror"
	"github.com/devconnector/devconnector/internal/domain/entity"
	"github.com/devconnector/devconnector/internal/domain/repository"
)

// In-memory repository fakes mirroring the error mapping of the mongodb
// implementations.

type fakeUserRepo struct {
	users map[primitive.ObjectID]*entity.User
	errs  map[string]error // op name -> forced error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[primitive.ObjectID]*entity.User{}, errs: map[string]error{}}
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	if err := r.errs["create"]; err != nil {
		return err
	}
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return apperror.Conflict("User already exists")
		}
	}
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	u.CreatedAt = time.Now().UTC()
	u.UpdatedAt = u.CreatedAt
	stored := *u
	r.users[u.ID] = &stored
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, apperror.NotFound("User not found")
	}
	out := *u
	return &out, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			out := *u
			return &out, nil
		}
	}
	return nil, apperror.NotFound("User not found")
}

func (r *fakeUserRepo) Update(_ context.Context, u *entity.User) error {
	if _, ok := r.users[u.ID]; !ok {
		return apperror.NotFound("User not found")
	}
	stored := *u
	r.users[u.ID] = &stored
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if err := r.errs["delete"]; err != nil {
		return err
	}
	if _, ok := r.users[id]; !ok {
		return apperror.NotFound("User not found")
	}
	delete(r.users, id)
	return nil
}

type fakeProfileRepo struct {
	profiles map[primitive.ObjectID]*entity.Profile // keyed by user id
	errs     map[string]error
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: map[primitive.ObjectID]*entity.Profile{}, errs: map[string]error{}}
}

func (r *fakeProfileRepo) GetByUserID(_ context.Context, userID primitive.ObjectID) (*entity.Profile, error) {
	p, ok := r.profiles[userID]
	if !ok {
		return nil, apperror.NotFound("Profile not found")
	}
	out := *p
	return &out, nil
}

func (r *fakeProfileRepo) GetAll(_ context.Context) ([]entity.Profile, error) {
	out := make([]entity.Profile, 0, len(r.profiles))
	for _, p := range r.profiles {
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakeProfileRepo) Upsert(_ context.Context, userID primitive.ObjectID, fields repository.ProfileFields) (*entity.Profile, error) {
	p, ok := r.profiles[userID]
	if !ok {
		p = &entity.Profile{
			ID:         primitive.NewObjectID(),
			User:       userID,
			Experience: []entity.Experience{},
			Education:  []entity.Education{},
			Date:       time.Now().UTC(),
		}
		r.profiles[userID] = p
	}
	p.Status = fields.Status
	p.Skills = fields.Skills
	if fields.Company != nil {
		p.Company = *fields.Company
	}
	if fields.Website != nil {
		p.Website = *fields.Website
	}
	if fields.Location != nil {
		p.Location = *fields.Location
	}
	if fields.Bio != nil {
		p.Bio = *fields.Bio
	}
	if fields.GithubUsername != nil {
		p.GithubUsername = *fields.GithubUsername
	}
	if fields.Social != nil {
		social := *fields.Social
		p.Social = &social
	}
	out := *p
	return &out, nil
}

func (r *fakeProfileRepo) Save(_ context.Context, p *entity.Profile) error {
	if _, ok := r.profiles[p.User]; !ok {
		return apperror.NotFound("Profile not found")
	}
	stored := *p
	r.profiles[p.User] = &stored
	return nil
}

func (r *fakeProfileRepo) DeleteByUserID(_ context.Context, userID primitive.ObjectID) error {
	if err := r.errs["delete"]; err != nil {
		return err
	}
	delete(r.profiles, userID)
	return nil
}

type fakePostRepo struct {
	posts map[primitive.ObjectID]*entity.Post
	errs  map[string]error
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: map[primitive.ObjectID]*entity.Post{}, errs: map[string]error{}}
}

func (r *fakePostRepo) Create(_ context.Context, p *entity.Post) error {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	stored := *p
	r.posts[p.ID] = &stored
	return nil
}

func (r *fakePostRepo) GetByID(_ context.Context, id primitive.ObjectID) (*entity.Post, error) {
	p, ok := r.posts[id]
	if !ok {
		return nil, apperror.NotFound("Post not found")
	}
	out := *p
	return &out, nil
}

func (r *fakePostRepo) GetAll(_ context.Context) ([]entity.Post, error) {
	out := make([]entity.Post, 0, len(r.posts))
	for _, p := range r.posts {
		out = append(out, *p)
	}
	// Newest first, matching the mongodb repository's sort.
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (r *fakePostRepo) Save(_ context.Context, p *entity.Post) error {
	if _, ok := r.posts[p.ID]; !ok {
		return apperror.NotFound("Post not found")
	}
	stored := *p
	r.posts[p.ID] = &stored
	return nil
}

func (r *fakePostRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.posts[id]; !ok {
		return apperror.NotFound("Post not found")
	}
	delete(r.posts, id)
	return nil
}

func (r *fakePostRepo) DeleteByUserID(_ context.Context, userID primitive.ObjectID) error {
	if err := r.errs["deleteByUser"]; err != nil {
		return err
	}
	for id, p := range r.posts {
		if p.User == userID {
			delete(r.posts, id)
		}
	}
	return nil
}

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func seedUser(t *testing.T, users *fakeUserRepo, name, email string) *entity.User {
	t.Helper()
	u := &entity.User{Name: name, Email: email, Password: "hashed", Avatar: "https://example.com/a.png"}
	if err := users.Create(context.Background(), u); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}
