package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"storefront/internal/hash"
	"storefront/internal/models"
	"storefront/internal/repo"
	"storefront/internal/transport"
)

const (
	AccessTokenTTL  = 15 * time.Minute
	RefreshTokenTTL = 7 * 24 * time.Hour
)

type AuthService struct {
	Store         *repo.Store
	JWTSecret     []byte
	RefreshSecret []byte
}

// Register creates the account and its customer profile together. Every
// authenticated account has exactly one customer record.
func (svc *AuthService) Register(ctx context.Context, req transport.RegisterRequest) (*models.User, error) {
	if req.Username == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: username and password are required", ErrValidation)
	}

	if _, err := svc.Store.GetUserByUsername(ctx, req.Username); err == nil {
		return nil, fmt.Errorf("%w: user already exists", ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	pwHash, err := hash.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     req.Username,
		PasswordHash: pwHash,
		Role:         models.RoleUser,
	}
	err = svc.Store.Tx(ctx, func(tx *repo.Store) error {
		if err := tx.CreateUser(ctx, user); err != nil {
			return err
		}
		return tx.CreateCustomer(ctx, &models.Customer{
			UserID:     user.ID,
			Membership: models.MembershipBronze,
		})
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

func (svc *AuthService) Login(ctx context.Context, req transport.LoginRequest) (*models.User, *TokenPair, error) {
	user, err := svc.Store.GetUserByUsername(ctx, req.Username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, fmt.Errorf("%w: invalid username or password", ErrUnauthorized)
	}
	if err != nil {
		return nil, nil, err
	}
	if !hash.CheckPassword(user.PasswordHash, req.Password) {
		return nil, nil, fmt.Errorf("%w: invalid username or password", ErrUnauthorized)
	}

	access, err := svc.SignAccessToken(user.ID, user.Role)
	if err != nil {
		return nil, nil, err
	}
	refresh, err := svc.signRefreshToken(user.ID, user.Role)
	if err != nil {
		return nil, nil, err
	}
	if err := svc.Store.CreateRefreshToken(ctx, &models.RefreshToken{
		Token:     refresh,
		UserID:    user.ID,
		Role:      user.Role,
		ExpiresAt: time.Now().Add(RefreshTokenTTL).Unix(),
	}); err != nil {
		return nil, nil, err
	}

	return user, &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (svc *AuthService) Logout(ctx context.Context, refreshToken string) error {
	return svc.Store.RevokeRefreshToken(ctx, refreshToken)
}

// Refresh rotates a valid refresh token into a fresh token pair.
func (svc *AuthService) Refresh(ctx context.Context, rawToken string) (*TokenPair, error) {
	claims, err := svc.validateRefresh(ctx, rawToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}

	userID := uint(claims["sub"].(float64))
	role, _ := claims["role"].(string)

	access, err := svc.SignAccessToken(userID, role)
	if err != nil {
		return nil, err
	}
	refresh, err := svc.signRefreshToken(userID, role)
	if err != nil {
		return nil, err
	}
	if err := svc.Store.RevokeRefreshToken(ctx, rawToken); err != nil {
		return nil, err
	}
	if err := svc.Store.CreateRefreshToken(ctx, &models.RefreshToken{
		Token:     refresh,
		UserID:    userID,
		Role:      role,
		ExpiresAt: time.Now().Add(RefreshTokenTTL).Unix(),
	}); err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (svc *AuthService) SignAccessToken(userID uint, role string) (string, error) {
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": role,
		"exp":  time.Now().Add(AccessTokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(svc.JWTSecret)
}

func (svc *AuthService) signRefreshToken(userID uint, role string) (string, error) {
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": role,
		"exp":  time.Now().Add(RefreshTokenTTL).Unix(),
		"typ":  "refresh",
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(svc.RefreshSecret)
}

func (svc *AuthService) validateRefresh(ctx context.Context, rawToken string) (jwt.MapClaims, error) {
	t, err := jwt.Parse(rawToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return svc.RefreshSecret, nil
	})
	if err != nil || !t.Valid {
		return nil, fmt.Errorf("invalid refresh token: %w", err)
	}

	claims, ok := t.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("cannot parse claims")
	}
	if typ, ok := claims["typ"]; !ok || typ != "refresh" {
		return nil, errors.New("not a refresh token")
	}

	stored, err := svc.Store.GetRefreshToken(ctx, rawToken)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.New("refresh token not found")
	}
	if err != nil {
		return nil, err
	}
	if stored.Revoked {
		return nil, errors.New("refresh token revoked")
	}
	if time.Now().Unix() > stored.ExpiresAt {
		return nil, errors.New("refresh token expired")
	}
	return claims, nil
}
