package service

import (
	"context"
	"errors"
	"testing"
)

func TestAuthService_RegisterAndLogin(t *testing.T) {
	repo := newStubRepo()
	svc := &AuthService{Repo: repo}
	ctx := context.Background()

	user, err := svc.Register(ctx, "Trader@Example.com", "hunter2")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Email != "trader@example.com" {
		t.Fatalf("email=%q want lowercased", user.Email)
	}
	if user.PasswordHash == "hunter2" || len(user.PasswordHash) != 64 {
		t.Fatalf("password not hashed: %q", user.PasswordHash)
	}

	if _, err := svc.Register(ctx, "trader@example.com", "other"); !errors.Is(err, ErrUserExists) {
		t.Fatalf("duplicate register err=%v want ErrUserExists", err)
	}

	if _, err := svc.Login(ctx, "trader@example.com", "hunter2"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, err := svc.Login(ctx, "trader@example.com", "wrong"); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("bad password err=%v want ErrInvalidPassword", err)
	}
	if _, err := svc.Login(ctx, "nobody@example.com", "hunter2"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("unknown user err=%v want ErrUserNotFound", err)
	}
}

func TestAuthService_MissingCredentials(t *testing.T) {
	svc := &AuthService{Repo: newStubRepo()}
	if _, err := svc.Register(context.Background(), "", "pw"); !errors.Is(err, ErrMissingCredentials) {
		t.Fatalf("err=%v want ErrMissingCredentials", err)
	}
	if _, err := svc.Login(context.Background(), "a@b.c", ""); !errors.Is(err, ErrMissingCredentials) {
		t.Fatalf("err=%v want ErrMissingCredentials", err)
	}
}

func TestHashPassword_Deterministic(t *testing.T) {
	if HashPassword("secret") != HashPassword("secret") {
		t.Fatalf("hash not deterministic")
	}
	if HashPassword("secret") == HashPassword("Secret") {
		t.Fatalf("hash ignores case")
	}
}
