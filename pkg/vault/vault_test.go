package vault

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCipher_EncryptDecrypt(t *testing.T) {
	c, err := NewCipher("segredo")
	require.NoError(t, err)

	sealed, err := c.Encrypt("EAAB-token")
	require.NoError(t, err)
	assert.NotContains(t, sealed, "EAAB-token")

	plain, err := c.Decrypt(sealed)
	require.NoError(t, err)
	assert.Equal(t, "EAAB-token", plain)
}

func TestCipher_ChaveDiferenteFalha(t *testing.T) {
	a, _ := NewCipher("a")
	b, _ := NewCipher("b")

	sealed, err := a.Encrypt("token")
	require.NoError(t, err)

	_, err = b.Decrypt(sealed)
	assert.ErrorIs(t, err, ErrDecrypt)
}

func TestCipher_ValorLegadoSemPrefixo(t *testing.T) {
	c, _ := NewCipher("a")

	plain, err := c.Decrypt("token-antigo")
	require.NoError(t, err)
	assert.Equal(t, "token-antigo", plain)
}

func TestNewCipher_SemSegredo(t *testing.T) {
	_, err := NewCipher("")
	assert.Error(t, err)
}
