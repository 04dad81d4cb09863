package service

import (
	"context"
	"fmt"
	"log"

	"github.com/Tanimou/user-management-system-sub001/internal/auth/blacklist"
	"github.com/Tanimou/user-management-system-sub001/internal/auth/domain"
	"github.com/Tanimou/user-management-system-sub001/internal/auth/dto"
	autherror "github.com/Tanimou/user-management-system-sub001/internal/errors"
	"github.com/Tanimou/user-management-system-sub001/internal/password"
)

type UserService struct {
	repo      domain.UserRepository
	tokens    TokenGenerator
	guard     blacklist.Store
	coalescer *RefreshCoalescer
}

func NewUserService(repo domain.UserRepository, tokens TokenGenerator, guard blacklist.Store) *UserService {
	return &UserService{
		repo:      repo,
		tokens:    tokens,
		guard:     guard,
		coalescer: NewRefreshCoalescer(),
	}
}

// Login verifies credentials and issues a fresh token pair. Unknown
// account, inactive account and wrong password all collapse into
// ErrInvalidCredentials; the response never reveals which check failed.
func (s *UserService) Login(ctx context.Context, input dto.LoginInput) (*dto.TokenPair, *domain.User, error) {
	user, err := s.repo.FindActiveByEmail(ctx, input.Email)
	if err != nil {
		return nil, nil, err
	}

	if user == nil || !password.Verify(user.PasswordHash, input.Password) {
		return nil, nil, autherror.ErrInvalidCredentials
	}

	pair, err := s.issuePair(user)
	if err != nil {
		return nil, nil, err
	}

	return pair, user, nil
}

// Refresh redeems a refresh token for a new pair. The presented token
// is single-use: it is blacklisted before the replacement pair is
// issued, so a crash in between leaves the session safely logged out
// rather than with two live refresh tokens.
func (s *UserService) Refresh(ctx context.Context, rawToken string) (*dto.TokenPair, error) {
	if rawToken == "" {
		return nil, autherror.ErrMissingRefreshToken
	}

	// Step 1: reject already-consumed tokens.
	revoked, err := s.guard.IsBlacklisted(ctx, rawToken)
	if err != nil {
		return nil, fmt.Errorf("failed to check replay guard: %w", err)
	}
	if revoked {
		return nil, autherror.ErrTokenRevoked
	}

	// Step 2: verify signature, expiry and audience.
	claims, err := s.tokens.VerifyRefreshToken(rawToken)
	if err != nil {
		return nil, autherror.ErrInvalidRefreshToken
	}

	// Step 3: coalesce concurrent redemptions for the same subject so
	// a racing duplicate shares this rotation instead of failing.
	return s.coalescer.Do(claims.Subject, func() (*dto.TokenPair, error) {
		user, err := s.repo.FindActiveByID(ctx, claims.Subject)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, autherror.ErrUserNotFound
		}

		// Step 4: consume the presented token. The entry expires with
		// the token itself, so it never outlives the window in which
		// the token could have been redeemed.
		if err := s.guard.Blacklist(ctx, rawToken, user.ID, claims.ExpiresAt.Time); err != nil {
			return nil, fmt.Errorf("failed to blacklist refresh token: %w", err)
		}

		// Step 5: issue the replacement pair.
		return s.issuePair(user)
	})
}

// Logout consumes the presented refresh token, if any. It never fails:
// an invalid or absent token is already as dead as a blacklisted one.
func (s *UserService) Logout(ctx context.Context, rawToken string) {
	if rawToken == "" {
		return
	}

	claims, err := s.tokens.VerifyRefreshToken(rawToken)
	if err != nil {
		return
	}

	if err := s.guard.Blacklist(ctx, rawToken, claims.Subject, claims.ExpiresAt.Time); err != nil {
		log.Printf("warn: failed to blacklist refresh token on logout for user %s: %v", claims.Subject, err)
	}
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.repo.FindActiveByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, autherror.ErrUserNotFound
	}

	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.repo.ListUsers(ctx)
}

func (s *UserService) UpdateUserRoles(ctx context.Context, actorID, targetID string, roles []string) error {
	if err := ValidateRoleChange(actorID, targetID, roles); err != nil {
		return err
	}

	return s.repo.UpdateUserRoles(ctx, targetID, roles)
}

func (s *UserService) SetUserActive(ctx context.Context, actorID, targetID string, active bool) error {
	if !active {
		if err := ValidateDeactivation(actorID, targetID); err != nil {
			return err
		}
	}

	return s.repo.SetUserActive(ctx, targetID, active)
}

func (s *UserService) issuePair(user *domain.User) (*dto.TokenPair, error) {
	accessToken, err := s.tokens.GenerateAccessToken(user.ID, user.Email, user.Roles)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.tokens.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &dto.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(s.tokens.GetAccessTokenTTL().Seconds()),
	}, nil
}
