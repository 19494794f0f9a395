package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueVerify_RoundTrip(t *testing.T) {
	codec := NewCodec("test-secret", time.Hour)

	tok, err := codec.Issue(42)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	userID, ok := codec.Verify(tok)
	assert.True(t, ok)
	assert.Equal(t, int64(42), userID)
}

func TestVerify_Malformed(t *testing.T) {
	codec := NewCodec("test-secret", time.Hour)

	for _, tok := range []string{
		"",
		"not-a-token",
		"a.b.c",
		"eyJhbGciOiJIUzI1NiJ9.e30.",
	} {
		userID, ok := codec.Verify(tok)
		assert.False(t, ok, "token %q must not verify", tok)
		assert.Zero(t, userID)
	}
}

func TestVerify_Expired(t *testing.T) {
	codec := NewCodec("test-secret", -time.Minute)

	tok, err := codec.Issue(42)
	require.NoError(t, err)

	_, ok := codec.Verify(tok)
	assert.False(t, ok)
}

func TestVerify_WrongSecret(t *testing.T) {
	issuer := NewCodec("secret-one", time.Hour)
	verifier := NewCodec("secret-two", time.Hour)

	tok, err := issuer.Issue(42)
	require.NoError(t, err)

	_, ok := verifier.Verify(tok)
	assert.False(t, ok)
}
