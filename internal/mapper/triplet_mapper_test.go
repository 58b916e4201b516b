package mapper

import (
	"testing"
	"time"

	"mcq-writer-be/internal/entity"
	"mcq-writer-be/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTripletMapperRoundTrip(t *testing.T) {
	m := NewTripletMapper()

	updated := time.Now().Truncate(time.Second)
	ent := &entity.Triplet{
		Id:       uuid.New(),
		Subject:  "Metformin",
		Action:   "treats",
		Object:   "type 2 diabetes",
		Relation: "treats",
		SourceId: uuid.New(),
		ContextSentences: []string{
			"Metformin is first-line therapy.",
			"It reduces hepatic glucose production.",
		},
		SchemaValid: true,
		Status:      entity.TripletStatusPending,
		CreatedAt:   time.Now().Truncate(time.Second),
		UpdatedAt:   &updated,
	}

	mod := m.ToModel(ent)
	require.NotNil(t, mod)
	assert.JSONEq(t, `["Metformin is first-line therapy.","It reduces hepatic glucose production."]`, mod.ContextSentences)

	back := m.ToEntity(mod)
	require.NotNil(t, back)
	assert.Equal(t, ent.Id, back.Id)
	assert.Equal(t, ent.Subject, back.Subject)
	assert.Equal(t, ent.Relation, back.Relation)
	assert.Equal(t, ent.ContextSentences, back.ContextSentences)
	assert.True(t, back.SchemaValid)
	assert.False(t, back.IsDeleted)
	require.NotNil(t, back.UpdatedAt)
	assert.Equal(t, updated.Unix(), back.UpdatedAt.Unix())
}

func TestTripletMapperCorruptSentencesDegradeToEmpty(t *testing.T) {
	m := NewTripletMapper()

	mod := &model.Triplet{
		Id:               uuid.New(),
		Subject:          "Metformin",
		ContextSentences: "{not json",
		CreatedAt:        time.Now(),
	}

	ent := m.ToEntity(mod)
	require.NotNil(t, ent)
	assert.Empty(t, ent.ContextSentences)
}

func TestTripletMapperNil(t *testing.T) {
	m := NewTripletMapper()
	assert.Nil(t, m.ToEntity(nil))
	assert.Nil(t, m.ToModel(nil))
}
