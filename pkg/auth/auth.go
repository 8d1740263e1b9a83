package auth

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/arnavshah/shelter-scheduler-go/pkg/database"
)

var jwtAlgorithm = jwt.SigningMethodHS256

// TokenTTL is how long an admin session stays valid
const TokenTTL = 24 * time.Hour

var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrInvalidKeyFormat = errors.New("invalid key format")
	ErrInvalidSignature = errors.New("invalid signature")
	ErrBadCredentials   = errors.New("invalid credentials")
)

// Claims represents the JWT claims
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Service signs admin sessions and API keys
type Service struct {
	jwtSecret    []byte
	masterSecret []byte
	cost         int
	now          func() time.Time
}

// Option configures a Service
type Option func(*Service)

// WithBcryptCost overrides the password hashing cost
func WithBcryptCost(cost int) Option {
	return func(s *Service) { s.cost = cost }
}

// WithClock overrides the time source used for token expiry
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a Service from the session and API key secrets
func NewService(jwtSecret, masterSecret string, opts ...Option) *Service {
	s := &Service{
		jwtSecret:    []byte(jwtSecret),
		masterSecret: []byte(masterSecret),
		cost:         14,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// HashPassword hashes a password using bcrypt
func (s *Service) HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	return string(bytes), err
}

// CheckPasswordHash compares a password with its hash
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// CreateToken creates a new JWT token for a user
func (s *Service) CreateToken(username string) (string, error) {
	claims := &Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(s.now()),
			ExpiresAt: jwt.NewNumericDate(s.now().Add(TokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwtAlgorithm, claims)
	return token.SignedString(s.jwtSecret)
}

// VerifyToken verifies a JWT token
func (s *Service) VerifyToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwtAlgorithm {
			return nil, ErrInvalidToken
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *Service) sign(name string) string {
	h := hmac.New(sha256.New, s.masterSecret)
	h.Write([]byte(name))
	return hex.EncodeToString(h.Sum(nil))
}

// GenerateHMACKey creates a signed API key using HMAC-SHA256
func (s *Service) GenerateHMACKey(name string) string {
	return name + "." + s.sign(name)
}

// VerifyHMACKey validates an HMAC-signed API key and returns its name
func (s *Service) VerifyHMACKey(key string) (string, error) {
	name, signature, ok := strings.Cut(key, ".")
	if !ok || name == "" || strings.Contains(signature, ".") {
		return "", ErrInvalidKeyFormat
	}

	if !hmac.Equal([]byte(signature), []byte(s.sign(name))) {
		return "", ErrInvalidSignature
	}
	return name, nil
}

// KeyPreview shortens a key for display
func KeyPreview(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:3] + "..." + key[len(key)-4:]
}

// EnsureAdminExists creates the bootstrap admin when the table is empty
func (s *Service) EnsureAdminExists(ctx context.Context, db *gorm.DB, username, password string, logger *zap.Logger) error {
	var count int64
	if err := db.WithContext(ctx).Model(&database.MasterUser{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := s.HashPassword(password)
	if err != nil {
		return err
	}
	user := database.MasterUser{Username: username, PasswordHash: hash}
	if err := db.WithContext(ctx).Create(&user).Error; err != nil {
		return err
	}
	if logger != nil {
		logger.Info("default admin user created", zap.String("username", username))
	}
	return nil
}

// Authenticate checks admin credentials and returns a session token
func (s *Service) Authenticate(ctx context.Context, db *gorm.DB, username, password string) (string, error) {
	var user database.MasterUser
	err := db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrBadCredentials
	}
	if err != nil {
		return "", err
	}
	if !CheckPasswordHash(password, user.PasswordHash) {
		return "", ErrBadCredentials
	}
	return s.CreateToken(user.Username)
}
