package user

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/loci-space/core/internal/database"
	"github.com/loci-space/core/internal/pkg/jwt"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return NewService(db)
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newTestService(t)

	created, err := svc.Register(&RegisterDTO{Username: "wanderer", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, "wanderer", created.Name, "name falls back to username")
	assert.NotEqual(t, "secret123", created.Password, "password is stored hashed")

	result, err := svc.Login(&LoginDTO{Username: "wanderer", Password: "secret123"}, "127.0.0.1")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, created.ID, result.User.ID)

	claims, err := jwt.Parse(result.Token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, claims.UserID)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Register(&RegisterDTO{Username: "wanderer", Password: "secret123"})
	require.NoError(t, err)

	_, err = svc.Register(&RegisterDTO{Username: "wanderer", Password: "other456"})
	assert.ErrorIs(t, err, errUsernameTaken)
}

func TestLoginFailures(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Register(&RegisterDTO{Username: "wanderer", Password: "secret123"})
	require.NoError(t, err)

	_, err = svc.Login(&LoginDTO{Username: "nobody", Password: "secret123"}, "")
	assert.ErrorIs(t, err, errUserNotFound)

	_, err = svc.Login(&LoginDTO{Username: "wanderer", Password: "wrong"}, "")
	assert.ErrorIs(t, err, errWrongPassword)
}

func TestLoginRecordsLastLogin(t *testing.T) {
	svc := newTestService(t)

	created, err := svc.Register(&RegisterDTO{Username: "wanderer", Password: "secret123"})
	require.NoError(t, err)

	_, err = svc.Login(&LoginDTO{Username: "wanderer", Password: "secret123"}, "10.0.0.8")
	require.NoError(t, err)

	got, err := svc.GetByID(created.ID)
	require.NoError(t, err)
	require.NotNil(t, got.LastLoginTime)
	assert.Equal(t, "10.0.0.8", got.LastLoginIP)
}
