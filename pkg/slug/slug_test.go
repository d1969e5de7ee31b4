package slug_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/ophuaconnect-api/pkg/slug"
)

func TestMake(t *testing.T) {
	cases := map[string]string{
		"Compañía Óptima S.A.S.": "compania-optima-s-a-s",
		"  Ana   Pérez ":         "ana-perez",
		"Ophua Connect 2024":     "ophua-connect-2024",
		"---hola---mundo---":     "hola-mundo",
		"Ñandú & Cía":            "nandu-cia",
		"!!!":                    "",
		"":                       "",
	}
	for in, want := range cases {
		assert.Equal(t, want, slug.Make(in), "entrada %q", in)
	}
}

func TestMake_RespetaLongitudMaxima(t *testing.T) {
	s := slug.Make(strings.Repeat("abc ", 40))
	assert.LessOrEqual(t, len(s), slug.MaxLength)
	assert.False(t, strings.HasSuffix(s, "-"))
}

func TestWithSuffix(t *testing.T) {
	assert.Equal(t, "ana-perez-2", slug.WithSuffix("ana-perez", 2))

	long := strings.Repeat("a", slug.MaxLength)
	got := slug.WithSuffix(long, 12)
	assert.Len(t, got, slug.MaxLength)
	assert.True(t, strings.HasSuffix(got, "-12"))
}

func TestWithToken(t *testing.T) {
	assert.Equal(t, "perfil-3fa8c2d1", slug.WithToken("perfil", "3fa8c2d1"))
	assert.Equal(t, "3fa8c2d1", slug.WithToken("", "3fa8c2d1"))

	long := strings.Repeat("ab-", 30)
	got := slug.WithToken(long, "deadbeef")
	assert.LessOrEqual(t, len(got), slug.MaxLength)
	assert.True(t, strings.HasSuffix(got, "-deadbeef"))
	assert.NotContains(t, got, "--")
	assert.True(t, slug.Valid(got))
}

func TestValid(t *testing.T) {
	assert.True(t, slug.Valid("ophua-connect"))
	assert.False(t, slug.Valid("Ophua Connect"))
	assert.False(t, slug.Valid(""))
	assert.False(t, slug.Valid("-x"))
}
