package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/devconnector/devconnector/config"
	"github.com/devconnector/devconnector/internal/apperror"
	"github.com/devconnector/devconnector/internal/domain/entity"
	"github.com/devconnector/devconnector/internal/domain/repository"
	"github.com/devconnector/devconnector/internal/infrastructure/mongodb"
	"github.com/devconnector/devconnector/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := mongodb.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase, cfg.MongoConnTimeout)
	if err != nil {
		log.Fatalf("failed to connect to mongodb: %v", err)
	}
	defer func() { _ = db.Client().Disconnect(context.Background()) }()
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("failed to ensure indexes: %v", err)
	}

	users := mongodb.NewUserRepository(db)
	profiles := mongodb.NewProfileRepository(db)
	posts := mongodb.NewPostRepository(db)

	email := "demo@example.com"
	password := "password123"
	name := "Demo User"

	user, err := users.GetByEmail(ctx, email)
	if errors.Is(err, apperror.ErrNotFound) {
		hash, herr := helpers.HashPassword(password)
		if herr != nil {
			log.Fatalf("failed to hash password: %v", herr)
		}
		user = &entity.User{
			Name:     name,
			Email:    email,
			Password: hash,
			Avatar:   helpers.GravatarURL(email),
		}
		if err := users.Create(ctx, user); err != nil {
			log.Fatalf("failed to seed user: %v", err)
		}
	} else if err != nil {
		log.Fatalf("failed to look up user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s password=%s\n", user.ID.Hex(), email, password)

	website := "https://example.com"
	bio := "Full stack developer seeded for local testing"
	profile, err := profiles.Upsert(ctx, user.ID, repository.ProfileFields{
		Status:  "Developer",
		Skills:  []string{"Go", "JavaScript", "MongoDB"},
		Website: &website,
		Bio:     &bio,
		Social:  &entity.SocialLinks{Twitter: "https://twitter.com/demo"},
	})
	if err != nil {
		log.Fatalf("failed to seed profile: %v", err)
	}
	fmt.Printf("seeded profile: id=%s skills=%v\n", profile.ID.Hex(), profile.Skills)

	post := entity.NewPost(user.Summary(), "Hello from the seeded demo account")
	if err := posts.Create(ctx, post); err != nil {
		log.Fatalf("failed to seed post: %v", err)
	}
	fmt.Printf("seeded post: id=%s\n", post.ID.Hex())
}
