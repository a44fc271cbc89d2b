package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTokenService_ResetTokenRoundTrip(t *testing.T) {
	svc := NewTokenService("test-secret")

	token, err := svc.IssueResetToken(42, 30*time.Minute)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := svc.VerifyReset(token)
	assert.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
}

func TestTokenService_Verify_Failures(t *testing.T) {
	svc := NewTokenService("test-secret")

	expired, err := svc.IssueResetToken(42, -time.Second)
	assert.NoError(t, err)

	other := NewTokenService("other-secret")
	foreign, err := other.IssueResetToken(42, 30*time.Minute)
	assert.NoError(t, err)

	valid, err := svc.IssueResetToken(42, 30*time.Minute)
	assert.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "expired token", token: expired},
		{name: "wrong signing key", token: foreign},
		{name: "malformed token", token: "not-a-token"},
		{name: "tampered payload", token: valid + "x"},
		{name: "empty token", token: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := svc.VerifyReset(tt.token)
			assert.ErrorIs(t, err, ErrTokenInvalid)
			assert.Nil(t, claims)
		})
	}
}

func TestTokenService_SessionToken(t *testing.T) {
	svc := NewTokenService("test-secret")

	sessionID, token, err := svc.IssueSessionToken(7, time.Hour)
	assert.NoError(t, err)
	assert.NotEmpty(t, sessionID)
	assert.NotEmpty(t, token)

	claims, err := svc.VerifySession(token)
	assert.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, sessionID, claims.ID)

	// Two sessions for the same user must not share an ID.
	otherID, _, err := svc.IssueSessionToken(7, time.Hour)
	assert.NoError(t, err)
	assert.NotEqual(t, sessionID, otherID)
}

func TestTokenService_KindsAreNotInterchangeable(t *testing.T) {
	svc := NewTokenService("test-secret")

	_, sessionToken, err := svc.IssueSessionToken(7, time.Hour)
	assert.NoError(t, err)

	resetToken, err := svc.IssueResetToken(7, 30*time.Minute)
	assert.NoError(t, err)

	// A session cookie value must never work as a reset credential.
	claims, err := svc.VerifyReset(sessionToken)
	assert.ErrorIs(t, err, ErrTokenInvalid)
	assert.Nil(t, claims)

	// And a reset link token must never establish a session.
	claims, err = svc.VerifySession(resetToken)
	assert.ErrorIs(t, err, ErrTokenInvalid)
	assert.Nil(t, claims)
}
