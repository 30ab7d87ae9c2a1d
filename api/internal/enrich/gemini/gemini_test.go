package gemini

import (
	"context"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
)

func TestGenerateWithoutKey(t *testing.T) {
	e := New("  ", "")
	assert.Equal(t, DefaultModel, e.GetModel())
	_, err := e.Generate(context.Background(), "hello")
	assert.Error(t, err)
}

func TestFirstText(t *testing.T) {
	assert.Equal(t, "", firstText(nil))
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: nil},
			{Content: &genai.Content{Parts: []genai.Part{genai.Text(`{"a":1}`)}}},
		},
	}
	assert.Equal(t, `{"a":1}`, firstText(resp))
}
