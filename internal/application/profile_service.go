package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/sirupsen/logrus"

	"github.com/devconnector/devconnector/internal/apperror"
	"github.com/devconnector/devconnector/internal/domain/entity"
	repo "github.com/devconnector/devconnector/internal/domain/repository"
	"github.com/devconnector/devconnector/pkg/github"
	"github.com/devconnector/devconnector/pkg/helpers"
	"github.com/devconnector/devconnector/pkg/mailer"
)

const noProfileMsg = "There is no profile for this user"

// ProfileInput carries the sparse upsert payload. Empty optional fields are
// treated as not supplied and never overwrite stored values; the social
// links are rebuilt from exactly the supplied keys on every upsert.
type ProfileInput struct {
	Status         string
	Skills         string
	Company        string
	Website        string
	Location       string
	Bio            string
	GithubUsername string
	Youtube        string
	Twitter        string
	Facebook       string
	Linkedin       string
	Instagram      string
}

// ExperienceInput mirrors the validated experience payload.
type ExperienceInput struct {
	Title       string
	Company     string
	Location    string
	From        time.Time
	To          *time.Time
	Current     bool
	Description string
}

// EducationInput mirrors the validated education payload.
type EducationInput struct {
	School       string
	Degree       string
	FieldOfStudy string
	From         time.Time
	To           *time.Time
	Current      bool
	Description  string
}

// ProfileService orchestrates profile reads, the PATCH-like upsert, embedded
// experience/education mutations, the account cascade delete, the GitHub
// repos proxy and Elasticsearch profile search.
type ProfileService struct {
	Profiles    repo.ProfileRepository
	Users       repo.UserRepository
	Posts       repo.PostRepository
	Logger      *logrus.Logger
	Github      *github.Client
	Pub         *helpers.RabbitPublisher
	MailEnabled bool
	ES          *elasticsearch.Client
	ESIndex     string
}

func NewProfileService(profiles repo.ProfileRepository, users repo.UserRepository, posts repo.PostRepository, logger *logrus.Logger, gh *github.Client, pub *helpers.RabbitPublisher, mailEnabled bool, es *elasticsearch.Client, esIndex string) *ProfileService {
	return &ProfileService{
		Profiles:    profiles,
		Users:       users,
		Posts:       posts,
		Logger:      logger,
		Github:      gh,
		Pub:         pub,
		MailEnabled: mailEnabled,
		ES:          es,
		ESIndex:     esIndex,
	}
}

// Me returns the caller's profile with the owner summary joined in.
func (s *ProfileService) Me(ctx context.Context, userID string) (*entity.Profile, error) {
	uid, err := parseObjectID(userID, noProfileMsg)
	if err != nil {
		return nil, err
	}
	p, err := s.Profiles.GetByUserID(ctx, uid)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.NotFound(noProfileMsg)
		}
		return nil, err
	}
	s.attachOwner(ctx, p)
	return p, nil
}

// Upsert creates or merge-updates the caller's profile. Skills are split on
// commas and trimmed into an ordered list; omitted optional fields are left
// untouched on update and absent on create.
func (s *ProfileService) Upsert(ctx context.Context, userID string, in ProfileInput) (*entity.Profile, error) {
	uid, err := parseObjectID(userID, noProfileMsg)
	if err != nil {
		return nil, err
	}

	fields := repo.ProfileFields{
		Status: in.Status,
		Skills: SplitSkills(in.Skills),
		Social: &entity.SocialLinks{
			Youtube:   in.Youtube,
			Twitter:   in.Twitter,
			Facebook:  in.Facebook,
			Linkedin:  in.Linkedin,
			Instagram: in.Instagram,
		},
	}
	if in.Company != "" {
		fields.Company = &in.Company
	}
	if in.Website != "" {
		fields.Website = &in.Website
	}
	if in.Location != "" {
		fields.Location = &in.Location
	}
	if in.Bio != "" {
		fields.Bio = &in.Bio
	}
	if in.GithubUsername != "" {
		fields.GithubUsername = &in.GithubUsername
	}

	p, err := s.Profiles.Upsert(ctx, uid, fields)
	if err != nil {
		return nil, err
	}
	s.attachOwner(ctx, p)
	s.indexProfile(ctx, p)
	return p, nil
}

// SplitSkills turns the comma-separated skills input into an ordered list of
// trimmed tokens.
func SplitSkills(raw string) []string {
	parts := strings.Split(raw, ",")
	skills := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			skills = append(skills, t)
		}
	}
	return skills
}

// ListAll returns every profile with owner summaries joined in.
func (s *ProfileService) ListAll(ctx context.Context) ([]entity.Profile, error) {
	profiles, err := s.Profiles.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range profiles {
		s.attachOwner(ctx, &profiles[i])
	}
	return profiles, nil
}

// GetByUserID returns a profile by its owner's id; a malformed id is
// indistinguishable from a missing profile.
func (s *ProfileService) GetByUserID(ctx context.Context, userID string) (*entity.Profile, error) {
	uid, err := parseObjectID(userID, "Profile not found")
	if err != nil {
		return nil, err
	}
	p, err := s.Profiles.GetByUserID(ctx, uid)
	if err != nil {
		return nil, err
	}
	s.attachOwner(ctx, p)
	return p, nil
}

// AddExperience inserts the entry at the front of the caller's profile.
func (s *ProfileService) AddExperience(ctx context.Context, userID string, in ExperienceInput) (*entity.Profile, error) {
	p, err := s.callerProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	p.AddExperience(entity.Experience{
		Title:       in.Title,
		Company:     in.Company,
		Location:    in.Location,
		From:        in.From,
		To:          in.To,
		Current:     in.Current,
		Description: in.Description,
	})
	if err := s.Profiles.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// RemoveExperience removes one entry by id. Ownership is enforced by the
// caller-scoped profile lookup; no further check is applied.
func (s *ProfileService) RemoveExperience(ctx context.Context, userID, expID string) (*entity.Profile, error) {
	p, err := s.callerProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	id, err := parseObjectID(expID, "Experience not found")
	if err != nil {
		return nil, err
	}
	if !p.RemoveExperience(id) {
		return nil, apperror.NotFound("Experience not found")
	}
	if err := s.Profiles.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// AddEducation inserts the entry at the front of the caller's profile.
func (s *ProfileService) AddEducation(ctx context.Context, userID string, in EducationInput) (*entity.Profile, error) {
	p, err := s.callerProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	p.AddEducation(entity.Education{
		School:       in.School,
		Degree:       in.Degree,
		FieldOfStudy: in.FieldOfStudy,
		From:         in.From,
		To:           in.To,
		Current:      in.Current,
		Description:  in.Description,
	})
	if err := s.Profiles.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// RemoveEducation removes one entry by id, under the same caller scoping as
// RemoveExperience.
func (s *ProfileService) RemoveEducation(ctx context.Context, userID, eduID string) (*entity.Profile, error) {
	p, err := s.callerProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	id, err := parseObjectID(eduID, "Education not found")
	if err != nil {
		return nil, err
	}
	if !p.RemoveEducation(id) {
		return nil, apperror.NotFound("Education not found")
	}
	if err := s.Profiles.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// DeleteAccount removes the caller's posts, profile and user record in that
// order. The steps are not transactional: a failure partway stops the
// sequence and leaves the earlier deletions in place.
func (s *ProfileService) DeleteAccount(ctx context.Context, userID string) error {
	uid, err := parseObjectID(userID, "User not found")
	if err != nil {
		return err
	}
	u, err := s.Users.GetByID(ctx, uid)
	if err != nil {
		return err
	}

	if err := s.Posts.DeleteByUserID(ctx, uid); err != nil {
		s.Logger.WithError(err).WithField("user_id", userID).Error("cascade delete: posts step failed")
		return err
	}
	if err := s.Profiles.DeleteByUserID(ctx, uid); err != nil {
		s.Logger.WithError(err).WithField("user_id", userID).Error("cascade delete: profile step failed, posts already removed")
		return err
	}
	if err := s.Users.Delete(ctx, uid); err != nil {
		s.Logger.WithError(err).WithField("user_id", userID).Error("cascade delete: user step failed, posts and profile already removed")
		return err
	}

	s.removeFromIndex(ctx, uid)
	s.enqueueEmail(ctx, mailer.EmailJob{
		To:       u.Email,
		Template: mailer.TemplateAccountDeleted,
		Data:     map[string]any{"Name": u.Name},
	})

	s.Logger.WithField("user_id", userID).Info("account deleted")
	return nil
}

// GithubRepos proxies the user's five most recent public repositories.
func (s *ProfileService) GithubRepos(ctx context.Context, username string) ([]github.Repo, error) {
	repos, err := s.Github.RecentRepos(ctx, username, 5)
	if err != nil {
		if errors.Is(err, github.ErrNoProfile) {
			return nil, apperror.NotFound("No Github profile found")
		}
		return nil, apperror.Internal(err)
	}
	return repos, nil
}

func (s *ProfileService) callerProfile(ctx context.Context, userID string) (*entity.Profile, error) {
	uid, err := parseObjectID(userID, noProfileMsg)
	if err != nil {
		return nil, err
	}
	p, err := s.Profiles.GetByUserID(ctx, uid)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.NotFound(noProfileMsg)
		}
		return nil, err
	}
	return p, nil
}

func (s *ProfileService) attachOwner(ctx context.Context, p *entity.Profile) {
	u, err := s.Users.GetByID(ctx, p.User)
	if err != nil {
		return
	}
	summary := u.Summary()
	p.Owner = &summary
}

func (s *ProfileService) enqueueEmail(ctx context.Context, job mailer.EmailJob) {
	if s.Pub == nil || !s.MailEnabled {
		return
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil {
		s.Logger.WithError(err).WithField("to", job.To).Warn("email enqueue failed")
	}
}
