package jwt_test

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/ophuaconnect-api/pkg/jwt"
)

const (
	testSecret    = "test-secret-key-for-unit-tests-0001"
	testAccountID = "00000000-0000-0000-0000-000000000001"
	testEmail     = "ana@ophua.io"
	testIssuer    = "ophuaconnect-test"
)

func TestGenerateAndParse_ConservaIdentidad(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testAccountID, testEmail, "PERSONAL", testIssuer, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, testAccountID, claims.AccountID)
	assert.Equal(t, testAccountID, claims.Subject)
	assert.Equal(t, testEmail, claims.Email)
	assert.Equal(t, "PERSONAL", claims.Role)
	assert.Equal(t, testIssuer, claims.Issuer)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := pkgjwt.Generate("", testAccountID, testEmail, "PERSONAL", testIssuer, time.Hour)
	assert.ErrorIs(t, err, pkgjwt.ErrEmptySecret)
}

func TestParse_TokenExpirado(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testAccountID, testEmail, "PERSONAL", testIssuer, -time.Minute)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, tok)
	assert.ErrorIs(t, err, pkgjwt.ErrTokenExpired)
	assert.NotErrorIs(t, err, pkgjwt.ErrTokenInvalid)
}

func TestParse_SecretIncorrecto(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testAccountID, testEmail, "PERSONAL", testIssuer, time.Hour)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.ErrorIs(t, err, pkgjwt.ErrTokenInvalid)
}

func TestParse_Malformado(t *testing.T) {
	_, err := pkgjwt.Parse(testSecret, "token.invalido.aqui")
	assert.ErrorIs(t, err, pkgjwt.ErrTokenInvalid)
}

func TestParse_AlgoritmoNone_Rechazado(t *testing.T) {
	claims := pkgjwt.Claims{
		RegisteredClaims: gojwt.RegisteredClaims{ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour))},
		AccountID:        testAccountID,
		Role:             "SUPER_ADMIN",
	}
	tok, err := gojwt.NewWithClaims(gojwt.SigningMethodNone, claims).SignedString(gojwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, tok)
	assert.ErrorIs(t, err, pkgjwt.ErrTokenInvalid)
}

func TestParse_SinRol_Invalido(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testAccountID, testEmail, "", testIssuer, time.Hour)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, tok)
	assert.ErrorIs(t, err, pkgjwt.ErrTokenInvalid)
}
