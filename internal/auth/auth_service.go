package auth

import (
	"context"
	"os"
	"time"

	autherrors "go-payroll/internal/auth/errors"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	accessTokenTTL  = time.Minute * 15
	refreshTokenTTL = time.Hour * 24 * 7
)

type Service interface {
	Login(ctx context.Context, username, password string) (accessToken, refreshToken string, resp AuthResponse, err error)
	RefreshToken(ctx context.Context, refreshToken string) (newAccessToken, newRefreshToken string, resp AuthResponse, err error)
	GetMe(ctx context.Context, employeeID string) (*AuthResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Login(ctx context.Context, username, password string) (string, string, AuthResponse, error) {
	cred, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		s.logger.Error("login credential lookup failed", zap.Error(err))
		return "", "", AuthResponse{}, err
	}
	if cred == nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(cred.Password), []byte(password)); err != nil {
		s.logger.Warn("login password mismatch", zap.String("employee_id", cred.EmployeeID))
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	role := cred.EffectiveRole()
	accessToken, err := generateToken(cred.EmployeeID, role, accessTokenTTL)
	if err != nil {
		return "", "", AuthResponse{}, err
	}
	refreshToken, err := generateToken(cred.EmployeeID, role, refreshTokenTTL)
	if err != nil {
		return "", "", AuthResponse{}, err
	}

	s.logger.Info("login success",
		zap.String("employee_id", cred.EmployeeID),
		zap.String("role", role),
	)
	return accessToken, refreshToken, mapToResponse(*cred), nil
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (string, string, AuthResponse, error) {
	token, err := jwt.Parse(refreshToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidToken
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return "", "", AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", AuthResponse{}, autherrors.ErrInvalidToken
	}
	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return "", "", AuthResponse{}, autherrors.ErrInvalidToken
	}

	cred, err := s.repo.FindByEmployeeID(ctx, employeeID)
	if err != nil {
		return "", "", AuthResponse{}, err
	}
	if cred == nil {
		return "", "", AuthResponse{}, autherrors.ErrCredentialNotFound
	}

	role := cred.EffectiveRole()
	newAccessToken, err := generateToken(employeeID, role, accessTokenTTL)
	if err != nil {
		return "", "", AuthResponse{}, err
	}
	newRefreshToken, err := generateToken(employeeID, role, refreshTokenTTL)
	if err != nil {
		return "", "", AuthResponse{}, err
	}

	return newAccessToken, newRefreshToken, mapToResponse(*cred), nil
}

func (s *service) GetMe(ctx context.Context, employeeID string) (*AuthResponse, error) {
	cred, err := s.repo.FindByEmployeeID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if cred == nil {
		return nil, autherrors.ErrCredentialNotFound
	}
	resp := mapToResponse(*cred)
	return &resp, nil
}

func generateToken(employeeID, role string, expiry time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"employee_id": employeeID,
		"role":        role,
		"exp":         time.Now().Add(expiry).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

func mapToResponse(c Credential) AuthResponse {
	return AuthResponse{
		EmployeeID: c.EmployeeID,
		Username:   c.Username,
		Email:      c.Email,
		Name:       c.Fullname,
		Role:       c.EffectiveRole(),
	}
}
