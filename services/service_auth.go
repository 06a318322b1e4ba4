package services

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/mrhabibie/go-socmed-api/internal/repository"
	"github.com/mrhabibie/go-socmed-api/model"
)

var ErrUserNotFound = errors.New("User not found")
var ErrInvalidPassword = errors.New("Invalid password")

const tokenTTL = 24 * time.Hour

type AuthService struct {
	Users  repository.UserRepository
	Secret string
}

func NewAuthService(users repository.UserRepository, secret string) *AuthService {
	return &AuthService{Users: users, Secret: secret}
}

// Register hashes the password and stores the user. Duplicate email or
// username surfaces as the unique-index write error.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return model.User{}, err
	}

	user := model.User{
		Username:  username,
		Email:     email,
		Password:  string(hash),
		CreatedAt: time.Now().UTC(),
	}
	return s.Users.Create(ctx, user)
}

// Login verifies the credentials and issues a 24h bearer token carrying the
// user id. Unknown email and wrong password fail distinctly.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, model.User, error) {
	user, err := s.Users.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return "", model.User{}, ErrUserNotFound
	}
	if err != nil {
		return "", model.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", model.User{}, ErrInvalidPassword
	}

	token, err := s.SignToken(user.ID.Hex())
	if err != nil {
		return "", model.User{}, err
	}
	return token, user, nil
}

func (s *AuthService) SignToken(userID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"userId": userID,
		"iat":    now.Unix(),
		"exp":    now.Add(tokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.Secret))
}
