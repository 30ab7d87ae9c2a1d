package enrich

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type namedEngine string

func (n namedEngine) Name() string { return string(n) }
func (n namedEngine) Generate(context.Context, string) (string, error) {
	return "", nil
}

func TestGetEngine(t *testing.T) {
	engs := &Engines{HuggingFace: namedEngine("hf"), Gemini: namedEngine("gem")}

	e, err := engs.GetEngine("")
	require.NoError(t, err)
	assert.Equal(t, "hf", e.Name())

	e, err = engs.GetEngine(" Gemini ")
	require.NoError(t, err)
	assert.Equal(t, "gem", e.Name())

	e, err = engs.GetEngine(ProviderNone)
	require.NoError(t, err)
	assert.Nil(t, e)

	_, err = engs.GetEngine(ProviderAnthropic)
	assert.ErrorIs(t, err, ErrNoEngine)

	_, err = engs.GetEngine("openai")
	assert.Error(t, err)
}
