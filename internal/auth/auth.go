// Package auth signs back-office users in and carries their session
// explicitly through request contexts.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/Simplici0/calhas/internal/model"
	"github.com/Simplici0/calhas/internal/store"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidSession     = errors.New("invalid session")
	ErrNoSecret           = errors.New("session secret is empty")
)

// dummyHash keeps sign-in timing similar for unknown emails.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("calhas-timing"), bcrypt.DefaultCost)

// UserStore is the part of the record store sign-in needs.
type UserStore interface {
	GetUserByEmail(ctx context.Context, email string) (model.User, error)
}

// Session identifies the signed-in user of one request.
type Session struct {
	UserID    int64     `json:"user_id"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

type claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type Service struct {
	users  UserStore
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewService(users UserStore, secret string, ttl time.Duration) *Service {
	return &Service{users: users, secret: []byte(secret), ttl: ttl, now: time.Now}
}

// HashPassword returns a bcrypt hash of password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// SignIn checks the credentials and returns a session with its signed token.
func (s *Service) SignIn(ctx context.Context, email, password string) (Session, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return Session{}, "", ErrInvalidCredentials
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return Session{}, "", ErrInvalidCredentials
	}
	if err != nil {
		return Session{}, "", fmt.Errorf("load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return Session{}, "", ErrInvalidCredentials
	}

	sess := Session{UserID: user.ID, Email: user.Email, ExpiresAt: s.now().Add(s.ttl).Truncate(time.Second)}
	token, err := s.Issue(sess)
	if err != nil {
		return Session{}, "", err
	}
	return sess, token, nil
}

// Issue signs sess as an HS256 token.
func (s *Service) Issue(sess Session) (string, error) {
	if len(s.secret) == 0 {
		return "", ErrNoSecret
	}
	c := claims{
		Email: sess.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(sess.UserID, 10),
			IssuedAt:  jwt.NewNumericDate(s.now()),
			ExpiresAt: jwt.NewNumericDate(sess.ExpiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return token, nil
}

// Parse validates a token and returns its session.
func (s *Service) Parse(token string) (Session, error) {
	if len(s.secret) == 0 {
		return Session{}, ErrNoSecret
	}

	var c claims
	_, err := jwt.ParseWithClaims(token, &c, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return Session{}, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}

	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil || id <= 0 {
		return Session{}, fmt.Errorf("%w: bad subject", ErrInvalidSession)
	}
	return Session{UserID: id, Email: c.Email, ExpiresAt: c.ExpiresAt.Time}, nil
}

type sessionKey struct{}

// WithSession returns a copy of ctx carrying sess.
func WithSession(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, sess)
}

// SessionFrom returns the session stored in ctx, if any.
func SessionFrom(ctx context.Context) (*Session, bool) {
	sess, ok := ctx.Value(sessionKey{}).(*Session)
	return sess, ok && sess != nil
}
