package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateParse_RoundTrip(t *testing.T) {
	tok, err := Generate("s3cret", "user-1", "gestor", 5)
	require.NoError(t, err)

	sub, err := Parse("s3cret", "gestor", tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", sub)

	sub, err = Parse("s3cret", "", tok)
	require.NoError(t, err, "issuer vacío no se comprueba")
	assert.Equal(t, "user-1", sub)
}

func TestParse_Rejects(t *testing.T) {
	tok, err := Generate("s3cret", "user-1", "gestor", 5)
	require.NoError(t, err)
	expired, err := Generate("s3cret", "user-1", "gestor", -1)
	require.NoError(t, err)
	noSub, err := Generate("s3cret", "", "gestor", 5)
	require.NoError(t, err)

	cases := []struct {
		name, secret, issuer, token string
	}{
		{"otro secreto", "otro", "gestor", tok},
		{"otro emisor", "s3cret", "otro", tok},
		{"expirado", "s3cret", "gestor", expired},
		{"sin subject", "s3cret", "gestor", noSub},
		{"basura", "s3cret", "gestor", "a.b.c"},
		{"secreto vacío", "", "gestor", tok},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.secret, tc.issuer, tc.token)
			assert.Error(t, err)
		})
	}

	_, err = Generate("", "user-1", "gestor", 5)
	assert.Error(t, err)
}
