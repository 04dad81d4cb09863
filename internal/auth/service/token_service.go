package service

//go:generate mockgen -destination=../../mocks/mock_token_generator.go -package=mocks github.com/Tanimou/user-management-system-sub001/internal/auth/service TokenGenerator

import (
	"errors"
	"time"

	autherror "github.com/Tanimou/user-management-system-sub001/internal/errors"
	authconstant "github.com/Tanimou/user-management-system-sub001/pkg/constant"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type TokenGenerator interface {
	GenerateAccessToken(userID, email string, roles []string) (string, error)
	GenerateRefreshToken(userID string) (string, error)
	VerifyAccessToken(tokenString string) (*AccessClaims, error)
	VerifyRefreshToken(tokenString string) (*RefreshClaims, error)
	GetAccessTokenTTL() time.Duration
	GetRefreshTokenTTL() time.Duration
}

type TokenService struct {
	Secret          string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

// AccessClaims is the access-token payload: who the caller is and what
// they may do, valid for one short window.
type AccessClaims struct {
	jwt.RegisteredClaims
	Email string   `json:"email"`
	Roles []string `json:"roles"`
}

// RefreshClaims carries only the subject; everything else is re-fetched
// at redemption time.
type RefreshClaims struct {
	jwt.RegisteredClaims
}

func NewTokenService(secret string, accessTTL, refreshTTL time.Duration) *TokenService {
	return &TokenService{
		Secret:          secret,
		AccessTokenTTL:  accessTTL,
		RefreshTokenTTL: refreshTTL,
	}
}

func (ts *TokenService) GenerateAccessToken(userID, email string, roles []string) (string, error) {
	now := time.Now()

	claims := AccessClaims{
		Email: email,
		Roles: roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    authconstant.TokenIssuer,
			Audience:  jwt.ClaimStrings{authconstant.AccessTokenAudience},
			ExpiresAt: jwt.NewNumericDate(now.Add(ts.AccessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(ts.Secret))
}

func (ts *TokenService) GenerateRefreshToken(userID string) (string, error) {
	now := time.Now()

	claims := RefreshClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    authconstant.TokenIssuer,
			Audience:  jwt.ClaimStrings{authconstant.RefreshTokenAudience},
			ExpiresAt: jwt.NewNumericDate(now.Add(ts.RefreshTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(ts.Secret))
}

// VerifyAccessToken parses and validates an access token string.
func (ts *TokenService) VerifyAccessToken(tokenString string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	if err := ts.verify(tokenString, claims, authconstant.AccessTokenAudience); err != nil {
		return nil, err
	}

	return claims, nil
}

// VerifyRefreshToken parses and validates a refresh token string.
func (ts *TokenService) VerifyRefreshToken(tokenString string) (*RefreshClaims, error) {
	claims := &RefreshClaims{}
	if err := ts.verify(tokenString, claims, authconstant.RefreshTokenAudience); err != nil {
		return nil, err
	}

	return claims, nil
}

func (ts *TokenService) verify(tokenString string, claims jwt.Claims, audience string) error {
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(token *jwt.Token) (interface{}, error) {
			return []byte(ts.Secret), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(authconstant.TokenIssuer),
		jwt.WithAudience(audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return mapJWTError(err)
	}

	if !token.Valid {
		return autherror.ErrMalformedToken
	}

	return nil
}

// mapJWTError collapses library errors into the codec taxonomy so
// callers never interpret signing internals.
func mapJWTError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return autherror.ErrExpiredToken
	case errors.Is(err, jwt.ErrTokenInvalidAudience), errors.Is(err, jwt.ErrTokenInvalidIssuer):
		return autherror.ErrWrongAudience
	default:
		return autherror.ErrMalformedToken
	}
}

func (ts *TokenService) GetAccessTokenTTL() time.Duration {
	return ts.AccessTokenTTL
}

func (ts *TokenService) GetRefreshTokenTTL() time.Duration {
	return ts.RefreshTokenTTL
}
