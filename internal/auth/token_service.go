package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const (
	// DefaultResetTokenTTL is how long a password-reset token stays valid.
	DefaultResetTokenTTL = 30 * time.Minute
	// DefaultSessionTTL is how long a login session stays valid.
	DefaultSessionTTL = 24 * time.Hour
)

// ErrTokenInvalid is returned for any token that fails verification:
// malformed, wrong signature, expired, or of the wrong kind.
var ErrTokenInvalid = errors.New("invalid token")

const (
	tokenTypeSession = "session"
	tokenTypeReset   = "reset"
)

// Claims represents JWT claims carried by session and reset tokens. The
// token type keeps the two kinds from standing in for each other: a session
// cookie must never pass as a password-reset credential.
type Claims struct {
	UserID    uint   `json:"user_id"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// TokenService mints and verifies HS256 tokens. Verification is stateless;
// a reset token stays valid until its embedded expiry regardless of later
// password changes (known gap, kept deliberately).
type TokenService struct {
	secret []byte
}

// NewTokenService creates a token service with the given signing secret.
func NewTokenService(secret string) *TokenService {
	return &TokenService{
		secret: []byte(secret),
	}
}

// IssueSessionToken generates a session token for the user. The session ID
// (JTI) is returned separately for storage in Redis.
func (s *TokenService) IssueSessionToken(userID uint, ttl time.Duration) (sessionID string, token string, err error) {
	sessionID = uuid.New().String()
	claims := &Claims{
		UserID:    userID,
		TokenType: tokenTypeSession,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	tokenObj := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token, err = tokenObj.SignedString(s.secret)
	return sessionID, token, err
}

// IssueResetToken generates a password-reset token embedding the user id and
// an absolute expiry of now + ttl.
func (s *TokenService) IssueResetToken(userID uint, ttl time.Duration) (string, error) {
	claims := &Claims{
		UserID:    userID,
		TokenType: tokenTypeReset,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// VerifySession validates a session token.
func (s *TokenService) VerifySession(tokenString string) (*Claims, error) {
	return s.verify(tokenString, tokenTypeSession)
}

// VerifyReset validates a password-reset token.
func (s *TokenService) VerifyReset(tokenString string) (*Claims, error) {
	return s.verify(tokenString, tokenTypeReset)
}

// verify validates a token of the expected kind and returns the claims.
// Returns ErrTokenInvalid for malformed, tampered, expired, or wrong-kind
// tokens; never panics.
func (s *TokenService) verify(tokenString, expectedType string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})

	if err != nil {
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}
	if claims.TokenType != expectedType {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
