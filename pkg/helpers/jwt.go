package helpers

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultAccessTTL applies when neither the caller nor the manager sets a TTL.
const DefaultAccessTTL = 15 * time.Minute

// ErrInvalidToken covers bad signatures, expiry and missing claims.
var ErrInvalidToken = errors.New("invalid token")

// JWTManager handles generation and validation of bearer access tokens
type JWTManager struct {
	AccessSecret []byte
	AccessTTL    time.Duration
	now          func() time.Time
}

func NewJWTManager(accessSecret string, accessTTL time.Duration) *JWTManager {
	return &JWTManager{
		AccessSecret: []byte(accessSecret),
		AccessTTL:    accessTTL,
		now:          time.Now,
	}
}

// Claims carries sub=username and id=user id.
type Claims struct {
	UserID int64 `json:"id"`
	jwt.RegisteredClaims
}

// Identity is what a verified token proves.
type Identity struct {
	Username string
	UserID   int64
	IssuedAt time.Time
}

// IssueAccessToken signs a token for the user. ttl <= 0 uses the manager TTL.
func (m *JWTManager) IssueAccessToken(username string, userID int64, ttl time.Duration) (string, time.Time, error) {
	if ttl <= 0 {
		ttl = m.AccessTTL
	}
	if ttl <= 0 {
		ttl = DefaultAccessTTL
	}
	now := m.now()
	exp := now.Add(ttl)
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(m.AccessSecret)
	return s, exp, err
}

func (m *JWTManager) ParseAccessToken(tokenStr string) (Identity, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.AccessSecret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !tkn.Valid {
		return Identity{}, ErrInvalidToken
	}
	if claims.Subject == "" || claims.UserID == 0 {
		return Identity{}, fmt.Errorf("%w: missing sub or id claim", ErrInvalidToken)
	}
	id := Identity{Username: claims.Subject, UserID: claims.UserID}
	if claims.IssuedAt != nil {
		id.IssuedAt = claims.IssuedAt.Time
	}
	return id, nil
}
