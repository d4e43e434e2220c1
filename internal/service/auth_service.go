package service

import (
	"context"
	"encoding/hex"
	"fmt"
	"time"

	"practice_hub_backend/internal/config"
	"practice_hub_backend/internal/form"
	"practice_hub_backend/internal/model"
	"practice_hub_backend/internal/repository"
	"practice_hub_backend/internal/util"
	"practice_hub_backend/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/sha3"
)

// SessionStore is the login-record store the auth flows drive. It is
// satisfied by session.Manager.
type SessionStore interface {
	Create(ctx context.Context, user *model.User) (string, error)
	Delete(ctx context.Context, id string) error
	DestroyUserSessions(ctx context.Context, userID uint) error
}

type AuthService struct {
	UserRepo *repository.UserRepository
	Sessions SessionStore
	Config   *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, sessions SessionStore, cfg *config.Config) *AuthService {
	return &AuthService{UserRepo: userRepo, Sessions: sessions, Config: cfg}
}

// generateCode derives the public account code from the email and the
// registration instant, retrying on the rare collision.
func (s *AuthService) generateCode(email string) string {
	for i := 0; ; i++ {
		shake := sha3.NewShake128()
		fmt.Fprintf(shake, "%s:%d:%d", email, time.Now().UnixNano(), i)
		buf := make([]byte, 8)
		shake.Read(buf)
		code := hex.EncodeToString(buf)[:15]
		if !s.UserRepo.CodeTaken(code) {
			return code
		}
	}
}

func (s *AuthService) EmailTaken(email string) bool {
	return s.UserRepo.EmailTaken(email, 0)
}

func (s *AuthService) Register(name, email, password string) (*model.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	normalized := form.NormalizeEmail(email)
	user := &model.User{
		Name:     name,
		Code:     s.generateCode(normalized),
		Email:    normalized,
		Password: string(hashed),
		State:    model.UserNormal,
		Role:     model.RoleUser,
	}
	if err := s.UserRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login checks the credentials and opens a session. The returned token
// is only honored while the session record lives.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.UserRepo.FindByEmail(form.NormalizeEmail(email))
	if err != nil {
		if repository.IsNotFound(err) {
			return "", nil, util.ErrBadCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return "", nil, util.ErrBadCredentials
	}
	if user.IsLocked() {
		return "", nil, util.ErrAccountLocked
	}

	sessionID, err := s.Sessions.Create(ctx, user)
	if err != nil {
		return "", nil, err
	}

	token, err := util.GenerateJWT(user, sessionID, s.Config.JWT.Secret, s.Config.JWT.ExpireTime)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	return s.Sessions.Delete(ctx, sessionID)
}

func (s *AuthService) PasswordMatches(user *model.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) == nil
}

// ChangePassword replaces the hash and revokes every login of the
// user, their current one included. The old token must not outlive the
// old password.
func (s *AuthService) ChangePassword(ctx context.Context, user *model.User, newPassword string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashed)
	if err := s.UserRepo.Update(user); err != nil {
		return err
	}
	if err := s.Sessions.DestroyUserSessions(ctx, user.ID); err != nil {
		logger.Log.Error("Failed to destroy sessions after password change",
			zap.Uint("user_id", user.ID), zap.Error(err))
	}
	return nil
}
