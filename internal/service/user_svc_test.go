package service

import (
	"context"
	"errors"
	"testing"

	"adcopy_studio_v1/internal/api/dto"
	"adcopy_studio_v1/internal/middleware"
	"adcopy_studio_v1/internal/model"
	"adcopy_studio_v1/internal/repository"
)

func newUserService(t *testing.T) (*UserService, repository.UserRepository) {
	t.Helper()
	repo := repository.NewUserRepository(setupServiceDB(t))
	return NewUserService(repo), repo
}

func TestUserService_RegisterAndLogin(t *testing.T) {
	svc, repo := newUserService(t)
	ctx := context.Background()

	info, err := svc.Register(ctx, &dto.RegisterRequest{Username: "alice", Password: "secret1", Email: "a@example.com"})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if info.ID == 0 || info.Role != model.RoleUser || !info.IsActive {
		t.Errorf("Register() = %+v", info)
	}

	stored, _ := repo.GetByUsername(ctx, "alice")
	if stored == nil || stored.Password == "secret1" {
		t.Fatal("password should be stored hashed")
	}

	if _, err := svc.Register(ctx, &dto.RegisterRequest{Username: "alice", Password: "other12"}); !errors.Is(err, ErrUsernameExists) {
		t.Errorf("duplicate Register() error = %v, want ErrUsernameExists", err)
	}

	resp, err := svc.Login(ctx, &dto.LoginRequest{Username: "alice", Password: "secret1"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	claims, err := middleware.ParseToken(resp.AccessToken)
	if err != nil {
		t.Fatalf("ParseToken() error = %v", err)
	}
	if claims.UserID != info.ID || claims.Username != "alice" {
		t.Errorf("claims = %+v", claims)
	}

	profile, err := svc.GetProfile(ctx, info.ID)
	if err != nil {
		t.Fatalf("GetProfile() error = %v", err)
	}
	if profile.LastLoginAt == nil {
		t.Error("LastLoginAt should be set after login")
	}
}

func TestUserService_LoginFailures(t *testing.T) {
	svc, repo := newUserService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, &dto.RegisterRequest{Username: "bob", Password: "secret1"}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if _, err := svc.Login(ctx, &dto.LoginRequest{Username: "bob", Password: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password error = %v", err)
	}
	if _, err := svc.Login(ctx, &dto.LoginRequest{Username: "nobody", Password: "secret1"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown user error = %v", err)
	}

	user, _ := repo.GetByUsername(ctx, "bob")
	user.IsActive = false
	if err := repo.Update(ctx, user); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if _, err := svc.Login(ctx, &dto.LoginRequest{Username: "bob", Password: "secret1"}); !errors.Is(err, ErrUserDisabled) {
		t.Errorf("disabled user error = %v", err)
	}
}

func TestUserService_RefreshToken(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, &dto.RegisterRequest{Username: "carol", Password: "secret1"}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	login, err := svc.Login(ctx, &dto.LoginRequest{Username: "carol", Password: "secret1"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	resp, err := svc.RefreshToken(ctx, &dto.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	if err != nil {
		t.Fatalf("RefreshToken() error = %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Error("RefreshToken() returned empty tokens")
	}

	// access token 不能用来刷新
	if _, err := svc.RefreshToken(ctx, &dto.RefreshTokenRequest{RefreshToken: login.AccessToken}); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("access token refresh error = %v, want ErrInvalidToken", err)
	}
	if _, err := svc.RefreshToken(ctx, &dto.RefreshTokenRequest{RefreshToken: "garbage"}); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("garbage refresh error = %v, want ErrInvalidToken", err)
	}
}

func TestUserService_EnsureAdmin(t *testing.T) {
	svc, repo := newUserService(t)
	ctx := context.Background()

	if err := svc.EnsureAdmin(ctx, "", ""); err != nil {
		t.Errorf("EnsureAdmin(empty) error = %v", err)
	}
	if err := svc.EnsureAdmin(ctx, "root", "rootpass"); err != nil {
		t.Fatalf("EnsureAdmin() error = %v", err)
	}
	// 重复调用不报错
	if err := svc.EnsureAdmin(ctx, "root", "changed"); err != nil {
		t.Fatalf("second EnsureAdmin() error = %v", err)
	}

	admin, _ := repo.GetByUsername(ctx, "root")
	if admin == nil || admin.Role != model.RoleAdmin {
		t.Fatalf("admin = %+v", admin)
	}
	if _, err := svc.Login(ctx, &dto.LoginRequest{Username: "root", Password: "rootpass"}); err != nil {
		t.Errorf("admin keeps the original password, Login() error = %v", err)
	}
}
