package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/arnavshah/staff-scheduler-api/pkg/database"
)

var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrInvalidKeyFormat = errors.New("invalid key format")
	ErrInvalidSignature = errors.New("invalid signature")
)

// Claims represents the JWT claims of an admin session
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Authenticator signs and verifies admin tokens and API keys
type Authenticator struct {
	JWTSecret    []byte
	MasterSecret []byte
	TokenTTL     time.Duration
	BcryptCost   int
}

// HashPassword hashes a password using bcrypt
func (a *Authenticator) HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), a.BcryptCost)
	return string(bytes), err
}

// CheckPasswordHash compares a password with its hash
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// CreateToken creates a signed HS256 token for an admin user
func (a *Authenticator) CreateToken(username string, now time.Time) (string, error) {
	claims := &Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.TokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.JWTSecret)
}

// VerifyToken parses an admin token and checks its expiry against now
func (a *Authenticator) VerifyToken(tokenString string, now time.Time) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return a.JWTSecret, nil
	}, jwt.WithoutClaimsValidation())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	if !claims.VerifyExpiresAt(now, true) {
		return nil, fmt.Errorf("%w: token expired", ErrInvalidToken)
	}
	return claims, nil
}

// GenerateHMACKey creates an API key of the form "<userID>.<hex hmac-sha256>"
func (a *Authenticator) GenerateHMACKey(userID string) string {
	return userID + "." + a.sign(userID)
}

// VerifyHMACKey validates an HMAC-signed API key and returns its user ID
func (a *Authenticator) VerifyHMACKey(key string) (string, error) {
	userID, signature, ok := strings.Cut(key, ".")
	if !ok || userID == "" || strings.Contains(signature, ".") {
		return "", ErrInvalidKeyFormat
	}
	// constant-time comparison
	if !hmac.Equal([]byte(signature), []byte(a.sign(userID))) {
		return "", ErrInvalidSignature
	}
	return userID, nil
}

func (a *Authenticator) sign(userID string) string {
	h := hmac.New(sha256.New, a.MasterSecret)
	h.Write([]byte(userID))
	return hex.EncodeToString(h.Sum(nil))
}

// EnsureAdminExists creates the first admin user when the table is empty.
// It reports whether a user was created.
func (a *Authenticator) EnsureAdminExists(db *gorm.DB, username, password string) (bool, error) {
	var count int64
	if err := db.Model(&database.MasterUser{}).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	hash, err := a.HashPassword(password)
	if err != nil {
		return false, err
	}
	if err := db.Create(&database.MasterUser{Username: username, PasswordHash: hash}).Error; err != nil {
		return false, err
	}
	return true, nil
}

// BearerToken strips an optional "Bearer " prefix from an Authorization header
func BearerToken(header string) string {
	return strings.TrimPrefix(header, "Bearer ")
}
