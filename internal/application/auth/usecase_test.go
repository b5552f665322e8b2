package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/supplychain-api/internal/application/auth"
	"github.com/jhoicas/supplychain-api/internal/application/dto"
	"github.com/jhoicas/supplychain-api/internal/domain"
	"github.com/jhoicas/supplychain-api/internal/domain/entity"
	"github.com/jhoicas/supplychain-api/internal/infrastructure/memory"
	"github.com/jhoicas/supplychain-api/pkg/jwt"
)

const secret = "test-secret"

func newAuth(t *testing.T) (*auth.AuthUseCase, string) {
	t.Helper()
	s := memory.NewStore()
	companies := memory.NewCompanyRepository(s)
	now := time.Now()
	require.NoError(t, companies.Create(context.Background(), &entity.Company{
		ID: "c1", Name: "Acme", TaxID: "900", Status: "active", CreatedAt: now, UpdatedAt: now,
	}))
	uc := auth.NewAuthUseCase(memory.NewUserRepository(s), companies, auth.JWTConfig{Secret: secret, ExpMinutes: 5, Issuer: "test"})
	return uc, "c1"
}

func TestRegisterYLogin(t *testing.T) {
	uc, companyID := newAuth(t)
	ctx := context.Background()

	u, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "ana@acme.example", Password: "secreto123", CompanyID: companyID})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, u.Role, "el primer usuario de la empresa la administra")
	assert.Equal(t, "ana@acme.example", u.Name)

	res, err := uc.Login(ctx, dto.LoginRequest{Email: "ana@acme.example", Password: "secreto123"})
	require.NoError(t, err)
	session, err := jwt.Parse(secret, res.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, session.UserID)
	assert.Equal(t, companyID, session.CompanyID)
	assert.Equal(t, entity.RoleAdmin, session.Role)
}

func TestRegister_SiguientesUsuariosEntranComoViewer(t *testing.T) {
	uc, companyID := newAuth(t)
	ctx := context.Background()
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "admin@acme.example", Password: "secreto123", CompanyID: companyID})
	require.NoError(t, err)

	u, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "otro@acme.example", Password: "secreto123", CompanyID: companyID})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleViewer, u.Role)
}

func TestRegister_Errores(t *testing.T) {
	uc, companyID := newAuth(t)
	ctx := context.Background()
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@b.co", Password: "secreto123", CompanyID: companyID})
	require.NoError(t, err)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@b.co", Password: "otro12345", CompanyID: companyID})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "x@b.co", Password: "secreto123", CompanyID: "nope"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLogin_Errores(t *testing.T) {
	uc, companyID := newAuth(t)
	ctx := context.Background()
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@b.co", Password: "secreto123", CompanyID: companyID})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "a@b.co", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@b.co", Password: "secreto123"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
