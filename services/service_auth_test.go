package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/mrhabibie/go-socmed-api/internal/repository"
	"github.com/mrhabibie/go-socmed-api/model"
)

type fakeUserRepo struct {
	users []model.User
}

func (f *fakeUserRepo) Create(_ context.Context, user model.User) (model.User, error) {
	for _, u := range f.users {
		if u.Email == user.Email || u.Username == user.Username {
			return model.User{}, errors.New("duplicate key error")
		}
	}
	user.ID = bson.NewObjectID()
	f.users = append(f.users, user)
	return user, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, repository.ErrNotFound
}

func (f *fakeUserRepo) FindByID(_ context.Context, id bson.ObjectID) (model.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return model.User{}, repository.ErrNotFound
}

func TestRegisterThenLogin(t *testing.T) {
	svc := NewAuthService(&fakeUserRepo{}, "test-secret")
	ctx := context.Background()

	created, err := svc.Register(ctx, "alice", "alice@example.com", "secret123")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if created.Password == "secret123" {
		t.Fatal("password stored in plaintext")
	}

	token, user, err := svc.Login(ctx, "alice@example.com", "secret123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if user.ID != created.ID {
		t.Fatalf("login returned user %s, want %s", user.ID.Hex(), created.ID.Hex())
	}

	var claims struct {
		UserID string `json:"userId"`
		jwt.RegisteredClaims
	}
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token does not verify: %v", err)
	}
	if claims.UserID != created.ID.Hex() {
		t.Fatalf("token identity %q, want %q", claims.UserID, created.ID.Hex())
	}

	wantExp := time.Now().Add(24 * time.Hour)
	if got := claims.ExpiresAt.Time; got.Before(wantExp.Add(-time.Minute)) || got.After(wantExp.Add(time.Minute)) {
		t.Fatalf("expiry %v not ~24h out", got)
	}
}

func TestLoginFailures(t *testing.T) {
	svc := NewAuthService(&fakeUserRepo{}, "test-secret")
	ctx := context.Background()
	if _, err := svc.Register(ctx, "bob", "bob@example.com", "hunter22"); err != nil {
		t.Fatalf("register: %v", err)
	}

	cases := []struct {
		name     string
		email    string
		password string
		want     error
	}{
		{"unknown email", "nobody@example.com", "hunter22", ErrUserNotFound},
		{"wrong password", "bob@example.com", "wrong", ErrInvalidPassword},
	}
	for _, c := range cases {
		_, _, err := svc.Login(ctx, c.email, c.password)
		if !errors.Is(err, c.want) {
			t.Fatalf("%s: got %v, want %v", c.name, err, c.want)
		}
	}
}

func TestRegisterDuplicate(t *testing.T) {
	svc := NewAuthService(&fakeUserRepo{}, "test-secret")
	ctx := context.Background()

	if _, err := svc.Register(ctx, "carol", "carol@example.com", "pass123"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.Register(ctx, "carol", "other@example.com", "pass123"); err == nil {
		t.Fatal("expected duplicate username to fail")
	}
	if _, err := svc.Register(ctx, "other", "carol@example.com", "pass123"); err == nil {
		t.Fatal("expected duplicate email to fail")
	}
}
