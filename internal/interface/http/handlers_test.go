package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/devconnector/devconnector/internal/apperror"
	"github.com/devconnector/devconnector/internal/application"
	"github.com/devconnector/devconnector/internal/domain/entity"
	"github.com/devconnector/devconnector/internal/domain/repository"
	"github.com/devconnector/devconnector/internal/interface/middleware"
	"github.com/devconnector/devconnector/pkg/helpers"
	"github.com/devconnector/devconnector/pkg/validation"
)

// In-memory repositories backing full request-to-response tests.

type memUserRepo struct {
	users map[primitive.ObjectID]*entity.User
}

func (r *memUserRepo) Create(_ context.Context, u *entity.User) error {
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

func (r *memUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, apperror.NotFound("User not found")
	}
	out := *u
	return &out, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			out := *u
			return &out, nil
		}
	}
	return nil, apperror.NotFound("User not found")
}

func (r *memUserRepo) Update(_ context.Context, u *entity.User) error {
	stored := *u
	r.users[u.ID] = &stored
	return nil
}

func (r *memUserRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	delete(r.users, id)
	return nil
}

type memProfileRepo struct {
	profiles map[primitive.ObjectID]*entity.Profile
}

func (r *memProfileRepo) GetByUserID(_ context.Context, userID primitive.ObjectID) (*entity.Profile, error) {
	p, ok := r.profiles[userID]
	if !ok {
		return nil, apperror.NotFound("Profile not found")
	}
	out := *p
	return &out, nil
}

func (r *memProfileRepo) GetAll(_ context.Context) ([]entity.Profile, error) {
	out := make([]entity.Profile, 0, len(r.profiles))
	for _, p := range r.profiles {
		out = append(out, *p)
	}
	return out, nil
}

func (r *memProfileRepo) Upsert(_ context.Context, userID primitive.ObjectID, fields repository.ProfileFields) (*entity.Profile, error) {
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

func (r *memProfileRepo) Save(_ context.Context, p *entity.Profile) error {
	stored := *p
	r.profiles[p.User] = &stored
	return nil
}

func (r *memProfileRepo) DeleteByUserID(_ context.Context, userID primitive.ObjectID) error {
	delete(r.profiles, userID)
	return nil
}

type memPostRepo struct {
	posts map[primitive.ObjectID]*entity.Post
}

func (r *memPostRepo) Create(_ context.Context, p *entity.Post) error {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	stored := *p
	r.posts[p.ID] = &stored
	return nil
}

func (r *memPostRepo) GetByID(_ context.Context, id primitive.ObjectID) (*entity.Post, error) {
	p, ok := r.posts[id]
	if !ok {
		return nil, apperror.NotFound("Post not found")
	}
	out := *p
	return &out, nil
}

func (r *memPostRepo) GetAll(_ context.Context) ([]entity.Post, error) {
	out := make([]entity.Post, 0, len(r.posts))
	for _, p := range r.posts {
		out = append(out, *p)
	}
	// Newest first, matching the mongodb repository's sort.
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (r *memPostRepo) Save(_ context.Context, p *entity.Post) error {
	stored := *p
	r.posts[p.ID] = &stored
	return nil
}

func (r *memPostRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	delete(r.posts, id)
	return nil
}

func (r *memPostRepo) DeleteByUserID(_ context.Context, userID primitive.ObjectID) error {
	for id, p := range r.posts {
		if p.User == userID {
			delete(r.posts, id)
		}
	}
	return nil
}

// testEnv wires the full stack minus external infrastructure: real services
// and handlers over in-memory repositories, real auth middleware and routes.
type testEnv struct {
	engine   *gin.Engine
	users    *memUserRepo
	profiles *memProfileRepo
	posts    *memPostRepo
	jwt      *helpers.JWTManager
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	env := &testEnv{
		users:    &memUserRepo{users: map[primitive.ObjectID]*entity.User{}},
		profiles: &memProfileRepo{profiles: map[primitive.ObjectID]*entity.Profile{}},
		posts:    &memPostRepo{posts: map[primitive.ObjectID]*entity.Post{}},
		jwt:      helpers.NewJWTManager("test-secret", time.Hour),
	}

	userSvc := application.NewUserService(env.users, env.jwt, logger, nil, false, nil, "")
	profileSvc := application.NewProfileService(env.profiles, env.users, env.posts, logger, nil, nil, false, nil, "")
	postSvc := application.NewPostService(env.posts, env.users, logger)

	userH := NewUserHandler(userSvc, logger)
	profileH := NewProfileHandler(profileSvc, logger)
	postH := NewPostHandler(postSvc, logger)

	engine := gin.New()
	api := engine.Group("/api")
	auth := middleware.Auth(env.jwt)

	api.POST("/users", userH.Register)
	api.POST("/auth", userH.Login)
	api.GET("/auth", auth, userH.Current)

	api.GET("/profile", profileH.List)
	api.GET("/profile/user/:user_id", profileH.GetByUser)
	api.GET("/profile/me", auth, profileH.Me)
	api.POST("/profile", auth, profileH.Upsert)
	api.DELETE("/profile", auth, profileH.DeleteAccount)
	api.PUT("/profile/experience", auth, profileH.AddExperience)
	api.DELETE("/profile/experience/:exp_id", auth, profileH.RemoveExperience)
	api.PUT("/profile/education", auth, profileH.AddEducation)
	api.DELETE("/profile/education/:edu_id", auth, profileH.RemoveEducation)

	posts := api.Group("/posts", auth)
	posts.POST("", postH.Create)
	posts.GET("", postH.List)
	posts.GET("/:post_id", postH.Get)
	posts.DELETE("/:post_id", postH.Delete)
	posts.PUT("/like/:post_id", postH.Like)
	posts.PUT("/unlike/:post_id", postH.Unlike)
	posts.PUT("/comment/:post_id", postH.AddComment)
	posts.DELETE("/comment/:post_id/:comment_id", postH.DeleteComment)

	env.engine = engine
	return env
}

// register creates a user straight through the repo and returns a valid token.
func (e *testEnv) register(t *testing.T, name, email string) (*entity.User, string) {
	t.Helper()
	hash, err := helpers.HashPassword("secret123")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	u := &entity.User{Name: name, Email: email, Password: hash, Avatar: helpers.GravatarURL(email)}
	if err := e.users.Create(context.Background(), u); err != nil {
		t.Fatalf("create user: %v", err)
	}
	token, _, err := e.jwt.GenerateToken(u.ID.Hex())
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return u, token
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
}
