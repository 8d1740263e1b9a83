package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/arnavshah/shelter-scheduler-go/pkg/database"
)

func newTestService(opts ...Option) *Service {
	return NewService("session-secret", "master-secret", append([]Option{WithBcryptCost(bcrypt.MinCost)}, opts...)...)
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))
	return db
}

func TestPasswordHash(t *testing.T) {
	s := newTestService()
	hash, err := s.HashPassword("admin123")
	require.NoError(t, err)
	assert.True(t, CheckPasswordHash("admin123", hash))
	assert.False(t, CheckPasswordHash("admin124", hash))
}

func TestToken_RoundTrip(t *testing.T) {
	s := newTestService()
	token, err := s.CreateToken("keeper")
	require.NoError(t, err)

	claims, err := s.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "keeper", claims.Username)
}

func TestToken_Rejected(t *testing.T) {
	s := newTestService()

	other := NewService("another-secret", "master-secret")
	forged, err := other.CreateToken("keeper")
	require.NoError(t, err)
	_, err = s.VerifyToken(forged)
	assert.Error(t, err)

	stale := newTestService(WithClock(func() time.Time { return time.Now().Add(-48 * time.Hour) }))
	expired, err := stale.CreateToken("keeper")
	require.NoError(t, err)
	_, err = s.VerifyToken(expired)
	assert.Error(t, err)

	_, err = s.VerifyToken("not-a-token")
	assert.Error(t, err)
}

func TestHMACKey(t *testing.T) {
	s := newTestService()
	key := s.GenerateHMACKey("frontdesk")
	assert.Regexp(t, `^frontdesk\.[0-9a-f]{64}$`, key)

	name, err := s.VerifyHMACKey(key)
	require.NoError(t, err)
	assert.Equal(t, "frontdesk", name)

	tests := []struct {
		name string
		key  string
		err  error
	}{
		{"no separator", "frontdesk", ErrInvalidKeyFormat},
		{"empty name", "." + s.sign(""), ErrInvalidKeyFormat},
		{"extra part", key + ".x", ErrInvalidKeyFormat},
		{"tampered name", "backdesk." + key[len("frontdesk."):], ErrInvalidSignature},
		{"other secret", NewService("", "elsewhere").GenerateHMACKey("frontdesk"), ErrInvalidSignature},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.VerifyHMACKey(tt.key)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestKeyPreview(t *testing.T) {
	assert.Equal(t, "****", KeyPreview("short"))
	assert.Equal(t, "fro...cdef", KeyPreview("frontdesk.0123456789abcdef"))
}

func TestEnsureAdminExists(t *testing.T) {
	db := newTestDB(t)
	s := newTestService()
	ctx := context.Background()

	require.NoError(t, s.EnsureAdminExists(ctx, db, "admin", "admin123", nil))
	require.NoError(t, s.EnsureAdminExists(ctx, db, "other", "secret", nil))

	var users []database.MasterUser
	require.NoError(t, db.Find(&users).Error)
	require.Len(t, users, 1)
	assert.Equal(t, "admin", users[0].Username)
	assert.NotEqual(t, "admin123", users[0].PasswordHash)
}

func TestAuthenticate(t *testing.T) {
	db := newTestDB(t)
	s := newTestService()
	ctx := context.Background()
	require.NoError(t, s.EnsureAdminExists(ctx, db, "admin", "admin123", nil))

	token, err := s.Authenticate(ctx, db, "admin", "admin123")
	require.NoError(t, err)
	claims, err := s.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)

	_, err = s.Authenticate(ctx, db, "admin", "wrong")
	assert.ErrorIs(t, err, ErrBadCredentials)
	_, err = s.Authenticate(ctx, db, "nobody", "admin123")
	assert.ErrorIs(t, err, ErrBadCredentials)
}
