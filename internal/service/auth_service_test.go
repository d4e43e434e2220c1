package service

import (
	"context"
	"testing"

	"practice_hub_backend/internal/config"
	"practice_hub_backend/internal/model"
	"practice_hub_backend/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      conn,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

// sessionStoreStub records revocations instead of touching Redis.
type sessionStoreStub struct {
	destroyed []uint
}

func (s *sessionStoreStub) Create(ctx context.Context, user *model.User) (string, error) {
	return "stub-session", nil
}

func (s *sessionStoreStub) Delete(ctx context.Context, id string) error {
	return nil
}

func (s *sessionStoreStub) DestroyUserSessions(ctx context.Context, userID uint) error {
	s.destroyed = append(s.destroyed, userID)
	return nil
}

func TestChangePasswordRevokesSessions(t *testing.T) {
	db, mock := newMockDB(t)
	sessions := &sessionStoreStub{}
	svc := NewAuthService(repository.NewUserRepository(db), sessions, &config.Config{})

	user := &model.User{
		BaseModel: model.BaseModel{ID: 9},
		Name:      "pat",
		Code:      "a1b2c3d4e5f6a1b",
		Email:     "pat@example.com",
		Password:  "old-hash",
		State:     model.UserNormal,
		Role:      model.RoleUser,
	}

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `users`").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, svc.ChangePassword(context.Background(), user, "fresh-password"))

	assert.Equal(t, []uint{9}, sessions.destroyed)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("fresh-password")))
	assert.NoError(t, mock.ExpectationsWereMet())
}
