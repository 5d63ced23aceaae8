package auth

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// userSource is the slice of the store the service needs for lookups.
type userSource interface {
	GetByUserID(ctx context.Context, userID string) (*User, error)
}

type Service struct {
	store  userSource
	secret []byte
	ttl    time.Duration
}

func NewService(store userSource, secret string, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Service{
		store:  store,
		secret: []byte(secret),
		ttl:    ttl,
	}
}

var ErrInvalidCredentials = errors.New("invalid credentials")

// Authenticate verifies userID/password credentials and mints a token on
// success. Lookup misses and password mismatches are indistinguishable to the
// caller.
func (s *Service) Authenticate(ctx context.Context, userID, password string) (*User, string, error) {
	if userID == "" || password == "" {
		return nil, "", ErrInvalidCredentials
	}
	user, err := s.store.GetByUserID(ctx, userID)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}
	if !CheckPassword(password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}
	token, err := s.IssueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

type Claims struct {
	UserID          string `json:"userID"`
	IsAdministrator bool   `json:"isAdministrator"`
	FirstName       string `json:"firstName,omitempty"`
	LastName        string `json:"lastName,omitempty"`
	jwt.RegisteredClaims
}

// IssueToken signs a token carrying the account's identity and role claims.
// The claims are a snapshot: later account changes do not affect tokens
// already issued.
func (s *Service) IssueToken(user *User) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		UserID:          user.UserID,
		IsAdministrator: user.IsAdministrator,
		FirstName:       user.FirstName,
		LastName:        user.LastName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(s.secret)
}

// ParseToken validates signature and expiry. Malformed, tampered and expired
// tokens all come back as an error, never as partial claims.
func (s *Service) ParseToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// ExtractToken pulls a bearer token out of an Authorization header value.
// "Bearer <token>" yields the token. "Basic <payload>" is accepted for the
// legacy transition period, unless the decoded payload contains a ":" - then
// it is raw Basic credentials, not a token. Anything else yields "".
func ExtractToken(header string) string {
	if header == "" {
		return ""
	}
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return token
	}
	if token, ok := strings.CutPrefix(header, "Basic "); ok {
		if decoded, err := base64.StdEncoding.DecodeString(token); err == nil {
			if strings.Contains(string(decoded), ":") {
				return ""
			}
		}
		return token
	}
	return ""
}
