package service

import (
	"context"

	"smartschedule-api/core/cache"
	"smartschedule-api/core/config"
	"smartschedule-api/core/constants"
	"smartschedule-api/core/errors"
	"smartschedule-api/core/logger"
	"smartschedule-api/core/utils"
	"smartschedule-api/modules/auth/dto"

	"golang.org/x/crypto/bcrypt"
)

// AuthService authenticates the single configured operator account.
type AuthService struct {
	cache cache.ICache
}

type AuthServiceInterface interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, *errors.AppError)
	Refresh(ctx context.Context, req *dto.RefreshRequest) (*dto.TokenResponse, *errors.AppError)
}

func NewAuthService(cache cache.ICache) *AuthService {
	return &AuthService{cache: cache}
}

func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, *errors.AppError) {
	authCfg := config.Get().Auth
	// the cache owns the login_attempts: prefix
	throttleKey := req.Username

	attempts, err := s.cache.LoginAttempts(ctx, throttleKey)
	if err != nil {
		logger.Error("AuthService:Login:LoginAttempts:Error:", err)
	}
	if attempts >= constants.MaxLoginAttempts {
		return nil, errors.NewAppError(errors.ErrForbidden, "Too many failed attempts, try again later", nil)
	}

	if req.Username != authCfg.Username ||
		bcrypt.CompareHashAndPassword([]byte(authCfg.PasswordHash), []byte(req.Password)) != nil {
		if err := s.cache.IncrementLoginAttempt(ctx, throttleKey); err == nil {
			_ = s.cache.Expire(ctx, throttleKey, constants.BlockDuration)
		}
		return nil, errors.NewAppError(errors.ErrUnauthorized, "Invalid credentials", nil)
	}

	return s.issueTokens(req.Username, true)
}

// Refresh exchanges a valid refresh token for a new access token.
func (s *AuthService) Refresh(ctx context.Context, req *dto.RefreshRequest) (*dto.TokenResponse, *errors.AppError) {
	tokenData, err := utils.ValidateAndParseToken(req.RefreshToken)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "Invalid refresh token", nil)
	}
	if tokenData.Scope != constants.ScopeTokenRefresh {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "Not a refresh token", nil)
	}
	return s.issueTokens(tokenData.Username, false)
}

func (s *AuthService) issueTokens(username string, withRefresh bool) (*dto.TokenResponse, *errors.AppError) {
	authCfg := config.Get().Auth

	access, err := utils.GenerateToken(username, constants.ScopeTokenAccess, authCfg.AccessTTL)
	if err != nil {
		logger.Error("AuthService:issueTokens:GenerateToken:Error:", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to generate token", nil)
	}

	resp := &dto.TokenResponse{AccessToken: access}
	if withRefresh {
		refresh, err := utils.GenerateToken(username, constants.ScopeTokenRefresh, authCfg.RefreshTTL)
		if err != nil {
			logger.Error("AuthService:issueTokens:GenerateRefreshToken:Error:", err)
			return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to generate token", nil)
		}
		resp.RefreshToken = refresh
	}
	return resp, nil
}
