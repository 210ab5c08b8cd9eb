package token

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezkam/taskmaster/internal/domain"
)

func TestGenerateAndParseRoundTrip(t *testing.T) {
	parts, err := Generate()
	require.NoError(t, err)

	assert.Equal(t, Prefix, parts.Prefix)
	assert.Equal(t, Version, parts.Version)
	assert.Len(t, parts.ShortToken, 12)
	assert.Len(t, parts.LongSecret, 43)
	assert.True(t, strings.HasPrefix(parts.FullToken, "tm-v1-"))

	parsed, err := Parse(parts.FullToken)
	require.NoError(t, err)
	assert.Equal(t, parts.ShortToken, parsed.ShortToken)
	assert.Equal(t, parts.LongSecret, parsed.LongSecret)
}

func TestGenerate_TokensAreUnique(t *testing.T) {
	a, err := Generate()
	require.NoError(t, err)
	b, err := Generate()
	require.NoError(t, err)
	assert.NotEqual(t, a.FullToken, b.FullToken)
	assert.NotEqual(t, a.ShortToken, b.ShortToken)
}

func TestParse_RejectsMalformedTokens(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "too few parts", token: "tm-v1-abc"},
		{name: "wrong prefix", token: "sk-v1-a3f5d8c2b4e6-secret"},
		{name: "wrong version", token: "tm-v2-a3f5d8c2b4e6-secret"},
		{name: "short token wrong length", token: "tm-v1-abc-secret"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.token)
			assert.ErrorIs(t, err, domain.ErrInvalidSessionToken)
		})
	}
}

func TestVerify(t *testing.T) {
	parts, err := Generate()
	require.NoError(t, err)

	assert.True(t, parts.Verify(parts.SecretHash()))

	other, err := Generate()
	require.NoError(t, err)
	assert.False(t, parts.Verify(other.SecretHash()))
	assert.False(t, parts.Verify(nil))
}

func TestDisplayTokenHidesSecret(t *testing.T) {
	parts, err := Generate()
	require.NoError(t, err)

	display := parts.DisplayToken()
	assert.Contains(t, display, parts.ShortToken)
	assert.NotContains(t, display, parts.LongSecret)
	assert.True(t, strings.HasSuffix(display, "****"))
}
