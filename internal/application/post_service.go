package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/devconnector/devconnector/internal/apperror"
	"github.com/devconnector/devconnector/internal/domain/entity"
	repo "github.com/devconnector/devconnector/internal/domain/repository"
)

// PostService orchestrates the find-or-404, authorize, mutate-embedded-list,
// persist flow around posts. Each mutation is a whole-document
// read-modify-write; concurrent writers can lose updates, which is accepted.
type PostService struct {
	Posts  repo.PostRepository
	Users  repo.UserRepository
	Logger *logrus.Logger
}

func NewPostService(posts repo.PostRepository, users repo.UserRepository, logger *logrus.Logger) *PostService {
	return &PostService{Posts: posts, Users: users, Logger: logger}
}

// Create builds a post with display fields denormalized from the author.
func (s *PostService) Create(ctx context.Context, userID, text string) (*entity.Post, error) {
	uid, err := parseObjectID(userID, "User not found")
	if err != nil {
		return nil, err
	}
	u, err := s.Users.GetByID(ctx, uid)
	if err != nil {
		return nil, err
	}

	p := entity.NewPost(u.Summary(), text)
	if err := s.Posts.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// List returns all posts, newest first.
func (s *PostService) List(ctx context.Context) ([]entity.Post, error) {
	return s.Posts.GetAll(ctx)
}

// Get fetches one post; a malformed id yields the same NotFound as a
// missing one.
func (s *PostService) Get(ctx context.Context, postID string) (*entity.Post, error) {
	id, err := parseObjectID(postID, "Post not found")
	if err != nil {
		return nil, err
	}
	return s.Posts.GetByID(ctx, id)
}

// Delete removes a post owned by the caller.
func (s *PostService) Delete(ctx context.Context, userID, postID string) error {
	p, err := s.Get(ctx, postID)
	if err != nil {
		return err
	}
	if p.User.Hex() != userID {
		return apperror.Unauthorized("User not authorized")
	}
	return s.Posts.Delete(ctx, p.ID)
}

// Like appends the caller's like at the front of the list. Liking a post
// already liked by the same caller mutates nothing.
func (s *PostService) Like(ctx context.Context, userID, postID string) ([]entity.Like, error) {
	uid, err := parseObjectID(userID, "User not found")
	if err != nil {
		return nil, err
	}
	p, err := s.Get(ctx, postID)
	if err != nil {
		return nil, err
	}
	if p.LikedBy(uid) {
		return nil, apperror.Conflict("Post already liked")
	}
	p.AddLike(uid)
	if err := s.Posts.Save(ctx, p); err != nil {
		return nil, err
	}
	return p.Likes, nil
}

// Unlike removes the caller's like; unliking a post that was never liked is
// a client error, not a no-op.
func (s *PostService) Unlike(ctx context.Context, userID, postID string) ([]entity.Like, error) {
	uid, err := parseObjectID(userID, "User not found")
	if err != nil {
		return nil, err
	}
	p, err := s.Get(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !p.RemoveLike(uid) {
		return nil, apperror.Conflict("Post has not yet been liked")
	}
	if err := s.Posts.Save(ctx, p); err != nil {
		return nil, err
	}
	return p.Likes, nil
}

// AddComment appends a comment with display fields copied from the caller at
// write time.
func (s *PostService) AddComment(ctx context.Context, userID, postID, text string) ([]entity.Comment, error) {
	uid, err := parseObjectID(userID, "User not found")
	if err != nil {
		return nil, err
	}
	u, err := s.Users.GetByID(ctx, uid)
	if err != nil {
		return nil, err
	}
	p, err := s.Get(ctx, postID)
	if err != nil {
		return nil, err
	}

	p.AddComment(u.Summary(), text)
	if err := s.Posts.Save(ctx, p); err != nil {
		return nil, err
	}
	return p.Comments, nil
}

// DeleteComment removes one comment owned by the caller from the post.
func (s *PostService) DeleteComment(ctx context.Context, userID, postID, commentID string) ([]entity.Comment, error) {
	p, err := s.Get(ctx, postID)
	if err != nil {
		return nil, err
	}
	cid, err := parseObjectID(commentID, "Comment not found")
	if err != nil {
		return nil, err
	}

	c, ok := p.CommentByID(cid)
	if !ok {
		return nil, apperror.NotFound("Comment not found")
	}
	if c.User.Hex() != userID {
		return nil, apperror.Unauthorized("User not authorized")
	}

	p.RemoveComment(cid)
	if err := s.Posts.Save(ctx, p); err != nil {
		return nil, err
	}
	return p.Comments, nil
}
