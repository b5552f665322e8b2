package jwt_test

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/supplychain-api/pkg/jwt"
)

const secret = "secret-de-pruebas-suficientemente-largo"

var session = jwt.Session{UserID: "user-1", CompanyID: "company-1", Role: "planner"}

func TestGenerateYParse(t *testing.T) {
	tok, err := jwt.Generate(secret, "supplychain", session, time.Hour)
	require.NoError(t, err)

	got, err := jwt.Parse(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, session, got)
}

func TestParse_Errores(t *testing.T) {
	expired, err := jwt.Generate(secret, "supplychain", session, -time.Minute)
	require.NoError(t, err)
	_, err = jwt.Parse(secret, expired)
	assert.ErrorIs(t, err, jwt.ErrExpiredToken)

	valid, err := jwt.Generate(secret, "supplychain", session, time.Hour)
	require.NoError(t, err)
	_, err = jwt.Parse("otro-secret", valid)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)

	_, err = jwt.Parse(secret, "no.es.jwt")
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)

	_, err = jwt.Parse("", valid)
	assert.ErrorIs(t, err, jwt.ErrEmptySecret)
}

func TestParse_RechazaAlgoritmoDistinto(t *testing.T) {
	claims := jwt.Claims{
		RegisteredClaims: gojwt.RegisteredClaims{Subject: "user-1", ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour))},
		CompanyID:        "company-1",
	}
	tok, err := gojwt.NewWithClaims(gojwt.SigningMethodHS512, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	_, err = jwt.Parse(secret, tok)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}

func TestParse_ExigeVencimientoYEmpresa(t *testing.T) {
	noExp := jwt.Claims{RegisteredClaims: gojwt.RegisteredClaims{Subject: "user-1"}, CompanyID: "company-1"}
	tok, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, noExp).SignedString([]byte(secret))
	require.NoError(t, err)
	_, err = jwt.Parse(secret, tok)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)

	noCompany := jwt.Claims{RegisteredClaims: gojwt.RegisteredClaims{
		Subject: "user-1", ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	tok, err = gojwt.NewWithClaims(gojwt.SigningMethodHS256, noCompany).SignedString([]byte(secret))
	require.NoError(t, err)
	_, err = jwt.Parse(secret, tok)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}

func TestGenerate_ValidaEntrada(t *testing.T) {
	_, err := jwt.Generate("", "supplychain", session, time.Hour)
	assert.ErrorIs(t, err, jwt.ErrEmptySecret)

	_, err = jwt.Generate(secret, "supplychain", jwt.Session{UserID: "user-1"}, time.Hour)
	assert.Error(t, err)
}
