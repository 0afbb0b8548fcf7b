package user

import (
	"context"
	"errors"
	"strings"

	"flynext/database"
	"flynext/models"
	"flynext/utils"

	"golang.org/x/crypto/bcrypt"
)

func issueTokens(u *models.User) (*AuthResponse, error) {
	access, err := utils.GenerateAccessToken(u.ID, u.Email, u.Role)
	if err != nil {
		return nil, utils.Internal("failed to sign access token", err)
	}
	refresh, err := utils.GenerateRefreshToken(u.ID, u.Email, u.Role)
	if err != nil {
		return nil, utils.Internal("failed to sign refresh token", err)
	}
	payload, err := utils.VerifyAccessToken(access)
	if err != nil {
		return nil, utils.Internal("failed to read back access token", err)
	}
	return &AuthResponse{User: u, AccessToken: access, RefreshToken: refresh, ExpiresAt: payload.ExpiresAt}, nil
}

// Login checks the credentials and issues an access/refresh token pair.
func (s *DefaultUserService) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, utils.BadRequest("Email and password are required")
	}

	u, err := s.Repo.GetByEmail(ctx, email)
	if errors.Is(err, database.ErrNotFound) {
		return nil, utils.Unauthorized("User with this email does not exist")
	}
	if err != nil {
		return nil, utils.Internal("login failed", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return nil, utils.Unauthorized("Password is invalid")
	}
	return issueTokens(u)
}

// Refresh trades a valid refresh token for a new access token.
// The user is re-read so a role change since login is picked up.
func (s *DefaultUserService) Refresh(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	if refreshToken == "" {
		return nil, utils.Unauthorized("Refresh Token Expired")
	}
	payload, err := utils.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, utils.Unauthorized("Refresh Token Expired")
	}

	u, err := s.Repo.GetByID(ctx, payload.ID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, utils.Unauthorized("Refresh Token Expired")
	}
	if err != nil {
		return nil, utils.Internal("refresh failed", err)
	}

	access, err := utils.GenerateAccessToken(u.ID, u.Email, u.Role)
	if err != nil {
		return nil, utils.Internal("failed to sign access token", err)
	}
	accessPayload, err := utils.VerifyAccessToken(access)
	if err != nil {
		return nil, utils.Internal("failed to read back access token", err)
	}
	return &AuthResponse{User: u, AccessToken: access, ExpiresAt: accessPayload.ExpiresAt}, nil
}
