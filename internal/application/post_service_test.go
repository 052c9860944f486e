package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/devconnector/devconnector/internal/apperror"
)

func newPostService(posts *fakePostRepo, users *fakeUserRepo) *PostService {
	return NewPostService(posts, users, testLogger())
}

func TestPostService_Create(t *testing.T) {
	users := newFakeUserRepo()
	posts := newFakePostRepo()
	svc := newPostService(posts, users)
	ctx := context.Background()
	u := seedUser(t, users, "Jane", "jane@example.com")

	p, err := svc.Create(ctx, u.ID.Hex(), "my first post")
	require.NoError(t, err)
	assert.Equal(t, u.ID, p.User)
	assert.Equal(t, "my first post", p.Text)
	assert.Equal(t, "Jane", p.Name)
	assert.Equal(t, u.Avatar, p.Avatar)

	got, err := svc.Get(ctx, p.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, p.Text, got.Text)
}

func TestPostService_GetNotFound(t *testing.T) {
	svc := newPostService(newFakePostRepo(), newFakeUserRepo())
	ctx := context.Background()

	t.Run("missing", func(t *testing.T) {
		_, err := svc.Get(ctx, primitive.NewObjectID().Hex())
		assert.True(t, errors.Is(err, apperror.ErrNotFound))
		assert.Equal(t, "Post not found", err.Error())
	})

	t.Run("malformed id is indistinguishable from missing", func(t *testing.T) {
		_, err := svc.Get(ctx, "zzz")
		assert.True(t, errors.Is(err, apperror.ErrNotFound))
		assert.Equal(t, "Post not found", err.Error())
	})
}

func TestPostService_Delete(t *testing.T) {
	users := newFakeUserRepo()
	posts := newFakePostRepo()
	svc := newPostService(posts, users)
	ctx := context.Background()
	owner := seedUser(t, users, "Jane", "jane@example.com")
	other := seedUser(t, users, "Bob", "bob@example.com")

	p, err := svc.Create(ctx, owner.ID.Hex(), "to be removed")
	require.NoError(t, err)

	t.Run("non-owner is rejected", func(t *testing.T) {
		err := svc.Delete(ctx, other.ID.Hex(), p.ID.Hex())
		assert.True(t, errors.Is(err, apperror.ErrUnauthorized))
		assert.Equal(t, "User not authorized", err.Error())
	})

	t.Run("owner removes the post", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, owner.ID.Hex(), p.ID.Hex()))
		_, err := svc.Get(ctx, p.ID.Hex())
		assert.True(t, errors.Is(err, apperror.ErrNotFound))
	})
}

func TestPostService_LikeUnlike(t *testing.T) {
	users := newFakeUserRepo()
	posts := newFakePostRepo()
	svc := newPostService(posts, users)
	ctx := context.Background()
	author := seedUser(t, users, "Jane", "jane@example.com")
	liker := seedUser(t, users, "Bob", "bob@example.com")

	p, err := svc.Create(ctx, author.ID.Hex(), "likeable")
	require.NoError(t, err)

	likes, err := svc.Like(ctx, liker.ID.Hex(), p.ID.Hex())
	require.NoError(t, err)
	require.Len(t, likes, 1)
	assert.Equal(t, liker.ID, likes[0].User)

	t.Run("second like from the same user is rejected", func(t *testing.T) {
		_, err := svc.Like(ctx, liker.ID.Hex(), p.ID.Hex())
		assert.True(t, errors.Is(err, apperror.ErrConflict))
		assert.Equal(t, "Post already liked", err.Error())
	})

	t.Run("a second user stacks on top", func(t *testing.T) {
		likes, err := svc.Like(ctx, author.ID.Hex(), p.ID.Hex())
		require.NoError(t, err)
		require.Len(t, likes, 2)
		assert.Equal(t, author.ID, likes[0].User)
		assert.Equal(t, liker.ID, likes[1].User)
	})

	t.Run("unlike removes only the caller's like", func(t *testing.T) {
		likes, err := svc.Unlike(ctx, liker.ID.Hex(), p.ID.Hex())
		require.NoError(t, err)
		require.Len(t, likes, 1)
		assert.Equal(t, author.ID, likes[0].User)
	})

	t.Run("unlike without a like is rejected", func(t *testing.T) {
		_, err := svc.Unlike(ctx, liker.ID.Hex(), p.ID.Hex())
		assert.True(t, errors.Is(err, apperror.ErrConflict))
		assert.Equal(t, "Post has not yet been liked", err.Error())
	})
}

func TestPostService_Comments(t *testing.T) {
	users := newFakeUserRepo()
	posts := newFakePostRepo()
	svc := newPostService(posts, users)
	ctx := context.Background()
	author := seedUser(t, users, "Jane", "jane@example.com")
	commenter := seedUser(t, users, "Bob", "bob@example.com")

	p, err := svc.Create(ctx, author.ID.Hex(), "discuss")
	require.NoError(t, err)

	comments, err := svc.AddComment(ctx, commenter.ID.Hex(), p.ID.Hex(), "nice post")
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "nice post", comments[0].Text)
	assert.Equal(t, "Bob", comments[0].Name)
	commentID := comments[0].ID.Hex()

	t.Run("deleting someone else's comment is rejected", func(t *testing.T) {
		_, err := svc.DeleteComment(ctx, author.ID.Hex(), p.ID.Hex(), commentID)
		assert.True(t, errors.Is(err, apperror.ErrUnauthorized))
		assert.Equal(t, "User not authorized", err.Error())
	})

	t.Run("unknown comment id", func(t *testing.T) {
		_, err := svc.DeleteComment(ctx, commenter.ID.Hex(), p.ID.Hex(), primitive.NewObjectID().Hex())
		assert.True(t, errors.Is(err, apperror.ErrNotFound))
		assert.Equal(t, "Comment not found", err.Error())
	})

	t.Run("author of the comment removes it", func(t *testing.T) {
		comments, err := svc.DeleteComment(ctx, commenter.ID.Hex(), p.ID.Hex(), commentID)
		require.NoError(t, err)
		assert.Empty(t, comments)
	})
}
