package mapper

import (
	"testing"
	"time"

	"mcq-writer-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMCQMapperRoundTrip(t *testing.T) {
	m := NewMCQMapper()

	ent := &entity.MCQ{
		Id:            uuid.New(),
		Stem:          "A 54-year-old presents with polyuria.",
		Question:      "Which drug is first-line therapy?",
		Options:       []string{"Metformin", "Insulin", "Glipizide", "Empagliflozin", "Acarbose"},
		CorrectOption: 0,
		SourceId:      uuid.New(),
		VisualPrompt:  "A diagram of hepatic glucose production.",
		Status:        entity.MCQStatusDraft,
		Model:         "gemini-2.0-flash",
		CreatedAt:     time.Now().Truncate(time.Second),
	}

	mod := m.ToModel(ent)
	require.NotNil(t, mod)
	assert.JSONEq(t, `["Metformin","Insulin","Glipizide","Empagliflozin","Acarbose"]`, mod.Options)

	back := m.ToEntity(mod)
	require.NotNil(t, back)
	assert.Equal(t, ent.Id, back.Id)
	assert.Equal(t, ent.Options, back.Options)
	assert.Equal(t, ent.CorrectOption, back.CorrectOption)
	assert.Equal(t, ent.Model, back.Model)
	assert.Nil(t, back.UpdatedAt)
	assert.False(t, back.IsDeleted)
}
