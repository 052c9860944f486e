package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestProfile_Experience(t *testing.T) {
	p := &Profile{User: primitive.NewObjectID()}
	from := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	e1 := p.AddExperience(Experience{Title: "Engineer", Company: "Acme", From: from})
	e2 := p.AddExperience(Experience{Title: "Senior Engineer", Company: "Acme", From: from.AddDate(2, 0, 0)})

	assert.False(t, e1.ID.IsZero())
	assert.NotEqual(t, e1.ID, e2.ID)

	// newest entry sits at index 0
	require.Len(t, p.Experience, 2)
	assert.Equal(t, e2.ID, p.Experience[0].ID)
	assert.Equal(t, e1.ID, p.Experience[1].ID)
}

func TestProfile_RemoveExperience(t *testing.T) {
	p := &Profile{User: primitive.NewObjectID()}
	e1 := p.AddExperience(Experience{Title: "a"})
	e2 := p.AddExperience(Experience{Title: "b"})
	e3 := p.AddExperience(Experience{Title: "c"})

	assert.True(t, p.RemoveExperience(e2.ID))
	require.Len(t, p.Experience, 2)
	assert.Equal(t, e3.ID, p.Experience[0].ID)
	assert.Equal(t, e1.ID, p.Experience[1].ID)

	assert.False(t, p.RemoveExperience(e2.ID))
	assert.False(t, p.RemoveExperience(primitive.NewObjectID()))
	assert.Len(t, p.Experience, 2)
}

func TestProfile_Education(t *testing.T) {
	p := &Profile{User: primitive.NewObjectID()}

	e1 := p.AddEducation(Education{School: "MIT", Degree: "BSc", FieldOfStudy: "CS"})
	e2 := p.AddEducation(Education{School: "Stanford", Degree: "MSc", FieldOfStudy: "CS"})

	require.Len(t, p.Education, 2)
	assert.Equal(t, e2.ID, p.Education[0].ID)
	assert.Equal(t, e1.ID, p.Education[1].ID)

	assert.True(t, p.RemoveEducation(e1.ID))
	require.Len(t, p.Education, 1)
	assert.Equal(t, e2.ID, p.Education[0].ID)

	assert.False(t, p.RemoveEducation(e1.ID))
}
