package auth

import (
	"context"
	"testing"

	autherrors "go-payroll/internal/auth/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeCredentialRepo struct {
	creds map[string]Credential
}

func (f *fakeCredentialRepo) FindByUsername(_ context.Context, username string) (*Credential, error) {
	for id, c := range f.creds {
		if c.Username == username || c.Email == username {
			if c.EmployeeID == "" {
				c.EmployeeID = id
			}
			return &c, nil
		}
	}
	return nil, nil
}

func (f *fakeCredentialRepo) FindByEmployeeID(_ context.Context, employeeID string) (*Credential, error) {
	c, ok := f.creds[employeeID]
	if !ok {
		return nil, nil
	}
	if c.EmployeeID == "" {
		c.EmployeeID = employeeID
	}
	return &c, nil
}

func (f *fakeCredentialRepo) Invalidate(string) {}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func newAuthFixture(t *testing.T) Service {
	t.Setenv("JWT_SECRET", "rahasia-test")
	repo := &fakeCredentialRepo{creds: map[string]Credential{
		"e1": {
			Username: "budi",
			Email:    "budi@example.com",
			Fullname: "Budi Santoso",
			Password: mustHash(t, "kata-sandi"),
		},
		"admin-1": {
			Username: "admin",
			Fullname: "Admin HRIS",
			Password: mustHash(t, "admin-pass"),
			Role:     RoleAdmin,
		},
	}}
	return NewService(repo)
}

func parseClaims(t *testing.T, tokenString string) jwt.MapClaims {
	t.Helper()
	token, err := jwt.Parse(tokenString, func(*jwt.Token) (interface{}, error) {
		return []byte("rahasia-test"), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)
	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	return claims
}

func TestLogin(t *testing.T) {
	svc := newAuthFixture(t)

	access, refresh, resp, err := svc.Login(context.Background(), "budi", "kata-sandi")

	require.NoError(t, err)
	assert.Equal(t, "e1", resp.EmployeeID)
	assert.Equal(t, "Budi Santoso", resp.Name)
	// Kredensial tanpa role eksplisit dianggap employee biasa
	assert.Equal(t, RoleEmployee, resp.Role)

	claims := parseClaims(t, access)
	assert.Equal(t, "e1", claims["employee_id"])
	assert.Equal(t, RoleEmployee, claims["role"])

	claims = parseClaims(t, refresh)
	assert.Equal(t, "e1", claims["employee_id"])
}

func TestLoginAdminRole(t *testing.T) {
	svc := newAuthFixture(t)

	access, _, resp, err := svc.Login(context.Background(), "admin", "admin-pass")

	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, resp.Role)
	assert.Equal(t, RoleAdmin, parseClaims(t, access)["role"])
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newAuthFixture(t)

	_, _, _, err := svc.Login(context.Background(), "budi", "salah")
	assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)

	_, _, _, err = svc.Login(context.Background(), "siapa", "kata-sandi")
	assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
}

func TestRefreshToken(t *testing.T) {
	svc := newAuthFixture(t)
	_, refresh, _, err := svc.Login(context.Background(), "budi", "kata-sandi")
	require.NoError(t, err)

	newAccess, newRefresh, resp, err := svc.RefreshToken(context.Background(), refresh)

	require.NoError(t, err)
	assert.Equal(t, "e1", resp.EmployeeID)
	assert.NotEmpty(t, newAccess)
	assert.NotEmpty(t, newRefresh)
	assert.Equal(t, "e1", parseClaims(t, newAccess)["employee_id"])
}

func TestRefreshTokenRejectsGarbage(t *testing.T) {
	svc := newAuthFixture(t)

	_, _, _, err := svc.RefreshToken(context.Background(), "bukan.token.jwt")

	assert.ErrorIs(t, err, autherrors.ErrInvalidRefreshToken)
}

func TestGetMe(t *testing.T) {
	svc := newAuthFixture(t)

	resp, err := svc.GetMe(context.Background(), "e1")

	require.NoError(t, err)
	assert.Equal(t, "budi", resp.Username)

	_, err = svc.GetMe(context.Background(), "ghost")
	assert.ErrorIs(t, err, autherrors.ErrCredentialNotFound)
}
