package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Like is an embedded child of Post. At most one like per distinct user per
// post; the comparison is exact ObjectID equality, never normalized.
type Like struct {
	ID   primitive.ObjectID `bson:"_id" json:"_id"`
	User primitive.ObjectID `bson:"user" json:"user"`
}

// Comment is an embedded child of Post. Name and Avatar are copied from the
// author at write time and are not kept in sync with later user edits.
type Comment struct {
	ID     primitive.ObjectID `bson:"_id" json:"_id"`
	User   primitive.ObjectID `bson:"user" json:"user"`
	Text   string             `bson:"text" json:"text"`
	Name   string             `bson:"name" json:"name"`
	Avatar string             `bson:"avatar" json:"avatar"`
	Date   time.Time          `bson:"date" json:"date"`
}

// Post embeds its likes and comments inline; they have no independent
// existence and are persisted only as part of the whole document.
type Post struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	User     primitive.ObjectID `bson:"user" json:"user"`
	Text     string             `bson:"text" json:"text"`
	Name     string             `bson:"name" json:"name"`
	Avatar   string             `bson:"avatar" json:"avatar"`
	Date     time.Time          `bson:"date" json:"date"`
	Likes    []Like             `bson:"likes" json:"likes"`
	Comments []Comment          `bson:"comments" json:"comments"`
}

// NewPost builds a post for the given author with denormalized display fields.
func NewPost(author UserSummary, text string) *Post {
	return &Post{
		ID:       primitive.NewObjectID(),
		User:     author.ID,
		Text:     text,
		Name:     author.Name,
		Avatar:   author.Avatar,
		Date:     time.Now().UTC(),
		Likes:    []Like{},
		Comments: []Comment{},
	}
}

// LikedBy reports whether the given user already has a like on the post.
func (p *Post) LikedBy(user primitive.ObjectID) bool {
	for _, l := range p.Likes {
		if l.User == user {
			return true
		}
	}
	return false
}

// AddLike inserts a fresh like at the front of the list. Callers must check
// LikedBy first; the one-like-per-user invariant lives with them.
func (p *Post) AddLike(user primitive.ObjectID) Like {
	like := Like{ID: primitive.NewObjectID(), User: user}
	p.Likes = append([]Like{like}, p.Likes...)
	return like
}

// RemoveLike removes the caller's like, preserving the relative order of the
// remaining entries. It reports false when the user has no like on the post.
func (p *Post) RemoveLike(user primitive.ObjectID) bool {
	for i, l := range p.Likes {
		if l.User == user {
			p.Likes = append(p.Likes[:i], p.Likes[i+1:]...)
			return true
		}
	}
	return false
}

// AddComment inserts a fresh comment at the front of the list and returns it.
func (p *Post) AddComment(author UserSummary, text string) Comment {
	comment := Comment{
		ID:     primitive.NewObjectID(),
		User:   author.ID,
		Text:   text,
		Name:   author.Name,
		Avatar: author.Avatar,
		Date:   time.Now().UTC(),
	}
	p.Comments = append([]Comment{comment}, p.Comments...)
	return comment
}

// CommentByID looks up an embedded comment by its id.
func (p *Post) CommentByID(id primitive.ObjectID) (Comment, bool) {
	for _, c := range p.Comments {
		if c.ID == id {
			return c, true
		}
	}
	return Comment{}, false
}

// RemoveComment removes exactly the comment with the given id, preserving the
// relative order of the remaining entries.
func (p *Post) RemoveComment(id primitive.ObjectID) bool {
	for i, c := range p.Comments {
		if c.ID == id {
			p.Comments = append(p.Comments[:i], p.Comments[i+1:]...)
			return true
		}
	}
	return false
}
