package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"delish/middleware"
	"delish/models"
	"delish/repositories"
)

const (
	// resetTokenBytes gives 160 bits of token entropy.
	resetTokenBytes = 20

	resetTokenTTL = time.Hour

	sessionTTL = 24 * time.Hour

	minPasswordLength = 6
)

// AuthService handles registration, login and the password-reset flow.
type AuthService struct {
	users     repositories.UserRepository
	mailer    Mailer
	jwtSecret []byte
}

func NewAuthService(users repositories.UserRepository, mailer Mailer, jwtSecret string) *AuthService {
	return &AuthService{users: users, mailer: mailer, jwtSecret: []byte(jwtSecret)}
}

func (s *AuthService) generateJWT(userID primitive.ObjectID) (string, error) {
	claims := &middleware.Claims{
		UserID: userID.Hex(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(sessionTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func generateResetToken() (string, error) {
	b := make([]byte, resetTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// Register creates an account and returns it with a session token.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*models.User, string, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" {
		return nil, "", invalidField("name", "name is required")
	}
	if email == "" {
		return nil, "", invalidField("email", "email is required")
	}
	if len(password) < minPasswordLength {
		return nil, "", invalidField("password", fmt.Sprintf("must be at least %d characters", minPasswordLength))
	}

	_, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return nil, "", ErrEmailTaken
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, "", err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashed),
		Hearts:       []primitive.ObjectID{},
		CreatedAt:    time.Now().Unix(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.generateJWT(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login verifies credentials and returns the user with a session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.generateJWT(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Forgot starts the reset flow: it stores a fresh token with a one hour
// expiry and emails a reset link. An unknown email is reported to the
// caller and leaves no state behind. A failed send is reported as an
// error so the flow is never silently incomplete; the stored token is
// unusable without the mail and lapses on its own.
func (s *AuthService) Forgot(ctx context.Context, email, baseURL string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrUnknownEmail
	}
	if err != nil {
		return err
	}

	token, err := generateResetToken()
	if err != nil {
		return err
	}

	expires := time.Now().Add(resetTokenTTL)
	if err := s.users.SetResetToken(ctx, user.ID, token, expires); err != nil {
		return err
	}

	resetURL := fmt.Sprintf("%s/account/reset/%s", strings.TrimRight(baseURL, "/"), token)
	if err := s.mailer.Send(user, "Password reset", "password-reset", map[string]string{
		"resetURL": resetURL,
	}); err != nil {
		return err
	}
	return nil
}

// ValidateResetToken checks that a token exists and has not expired.
// It does not consume the token; the reset form is safe to reload.
func (s *AuthService) ValidateResetToken(ctx context.Context, token string) error {
	_, err := s.users.FindByResetToken(ctx, token, time.Now())
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrInvalidResetToken
	}
	return err
}

// ResetPassword commits a new password. The token and expiry are
// re-validated atomically in the same update that sets the hash, so a
// token expiring between form load and submit is still rejected. On
// success both reset fields are cleared and a new session is issued.
func (s *AuthService) ResetPassword(ctx context.Context, token, password, confirm string) (*models.User, string, error) {
	if password != confirm {
		return nil, "", invalidField("confirm", "passwords don't match")
	}
	if len(password) < minPasswordLength {
		return nil, "", invalidField("password", fmt.Sprintf("must be at least %d characters", minPasswordLength))
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user, err := s.users.ConsumeResetToken(ctx, token, time.Now(), string(hashed))
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, "", ErrInvalidResetToken
	}
	if err != nil {
		return nil, "", err
	}

	session, err := s.generateJWT(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, session, nil
}
