package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Experience is an embedded child of Profile with no independent lifecycle.
type Experience struct {
	ID          primitive.ObjectID `bson:"_id" json:"_id"`
	Title       string             `bson:"title" json:"title"`
	Company     string             `bson:"company" json:"company"`
	Location    string             `bson:"location,omitempty" json:"location,omitempty"`
	From        time.Time          `bson:"from" json:"from"`
	To          *time.Time         `bson:"to,omitempty" json:"to,omitempty"`
	Current     bool               `bson:"current" json:"current"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
}

// Education is an embedded child of Profile with no independent lifecycle.
type Education struct {
	ID           primitive.ObjectID `bson:"_id" json:"_id"`
	School       string             `bson:"school" json:"school"`
	Degree       string             `bson:"degree" json:"degree"`
	FieldOfStudy string             `bson:"fieldofstudy" json:"fieldofstudy"`
	From         time.Time          `bson:"from" json:"from"`
	To           *time.Time         `bson:"to,omitempty" json:"to,omitempty"`
	Current      bool               `bson:"current" json:"current"`
	Description  string             `bson:"description,omitempty" json:"description,omitempty"`
}

// SocialLinks maps platform name to URL; every key is optional.
type SocialLinks struct {
	Youtube   string `bson:"youtube,omitempty" json:"youtube,omitempty"`
	Twitter   string `bson:"twitter,omitempty" json:"twitter,omitempty"`
	Facebook  string `bson:"facebook,omitempty" json:"facebook,omitempty"`
	Linkedin  string `bson:"linkedin,omitempty" json:"linkedin,omitempty"`
	Instagram string `bson:"instagram,omitempty" json:"instagram,omitempty"`
}

// Profile is one-to-one with User via the User reference field; at most one
// profile per user, enforced by the upsert keyed on that field.
type Profile struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	User           primitive.ObjectID `bson:"user" json:"user"`
	Company        string             `bson:"company,omitempty" json:"company,omitempty"`
	Website        string             `bson:"website,omitempty" json:"website,omitempty"`
	Location       string             `bson:"location,omitempty" json:"location,omitempty"`
	Status         string             `bson:"status" json:"status"`
	Skills         []string           `bson:"skills" json:"skills"`
	Bio            string             `bson:"bio,omitempty" json:"bio,omitempty"`
	GithubUsername string             `bson:"githubusername,omitempty" json:"githubusername,omitempty"`
	Social         *SocialLinks       `bson:"social,omitempty" json:"social,omitempty"`
	Experience     []Experience       `bson:"experience" json:"experience"`
	Education      []Education        `bson:"education" json:"education"`
	Date           time.Time          `bson:"date" json:"date"`

	// Owner is joined in from the users collection for public listings.
	// Populated in response only.
	Owner *UserSummary `bson:"-" json:"owner,omitempty"`
}

// AddExperience inserts a fresh experience entry at the front of the list.
func (p *Profile) AddExperience(e Experience) Experience {
	e.ID = primitive.NewObjectID()
	p.Experience = append([]Experience{e}, p.Experience...)
	return e
}

// RemoveExperience removes exactly the entry with the given id, preserving
// the relative order of the remaining entries.
func (p *Profile) RemoveExperience(id primitive.ObjectID) bool {
	for i, e := range p.Experience {
		if e.ID == id {
			p.Experience = append(p.Experience[:i], p.Experience[i+1:]...)
			return true
		}
	}
	return false
}

// AddEducation inserts a fresh education entry at the front of the list.
func (p *Profile) AddEducation(e Education) Education {
	e.ID = primitive.NewObjectID()
	p.Education = append([]Education{e}, p.Education...)
	return e
}

// RemoveEducation removes exactly the entry with the given id, preserving
// the relative order of the remaining entries.
func (p *Profile) RemoveEducation(id primitive.ObjectID) bool {
	for i, e := range p.Education {
		if e.ID == id {
			p.Education = append(p.Education[:i], p.Education[i+1:]...)
			return true
		}
	}
	return false
}
