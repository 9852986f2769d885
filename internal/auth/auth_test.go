package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("rahasia123")
	require.NoError(t, err)

	assert.NoError(t, CheckPassword(hash, "rahasia123"))
	assert.ErrorIs(t, CheckPassword(hash, "salah"), ErrInvalidCredentials)

	_, err = HashPassword("abc")
	assert.Error(t, err)
}

func TestIssueAndParse(t *testing.T) {
	iss := NewIssuer("secret", time.Hour)

	token, exp, err := iss.Issue("admin", "admin")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := iss.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, exp.Unix(), claims.ExpiresAt.Unix())
}

func TestParseRejects(t *testing.T) {
	iss := NewIssuer("secret", time.Hour)
	token, _, err := iss.Issue("admin", "admin")
	require.NoError(t, err)

	testCases := []struct {
		name   string
		issuer *Issuer
		token  string
	}{
		{name: "Garbage", issuer: iss, token: "not-a-token"},
		{name: "Wrong secret", issuer: NewIssuer("other", time.Hour), token: token},
		{name: "Empty", issuer: iss, token: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.issuer.Parse(tc.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestParseRejectsExpired(t *testing.T) {
	iss := NewIssuer("secret", time.Hour)
	iss.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, _, err := iss.Issue("admin", "admin")
	require.NoError(t, err)

	iss.now = time.Now
	_, err = iss.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
