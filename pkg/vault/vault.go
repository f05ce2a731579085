// Package vault cifra tokens de acesso antes de gravá-los no banco.
package vault

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/nacl/secretbox"
)

const (
	prefix    = "sb1:"
	nonceSize = 24
)

var ErrDecrypt = errors.New("vault: não foi possível decifrar o valor")

// Cipher usa secretbox (XSalsa20-Poly1305) com chave derivada do SECRET_KEY
type Cipher struct {
	key [32]byte
}

func NewCipher(secret string) (*Cipher, error) {
	if secret == "" {
		return nil, errors.New("vault: SECRET_KEY não configurada")
	}
	return &Cipher{key: sha256.Sum256([]byte(secret))}, nil
}

func (c *Cipher) Encrypt(plain string) (string, error) {
	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return "", fmt.Errorf("vault: erro ao gerar nonce: %w", err)
	}

	sealed := secretbox.Seal(nonce[:], []byte(plain), &nonce, &c.key)
	return prefix + base64.RawStdEncoding.EncodeToString(sealed), nil
}

// Decrypt devolve valores sem prefixo como estão (linhas gravadas antes da cifragem)
func (c *Cipher) Decrypt(value string) (string, error) {
	if !strings.HasPrefix(value, prefix) {
		return value, nil
	}

	sealed, err := base64.RawStdEncoding.DecodeString(strings.TrimPrefix(value, prefix))
	if err != nil || len(sealed) < nonceSize+secretbox.Overhead {
		return "", ErrDecrypt
	}

	var nonce [nonceSize]byte
	copy(nonce[:], sealed[:nonceSize])

	plain, ok := secretbox.Open(nil, sealed[nonceSize:], &nonce, &c.key)
	if !ok {
		return "", ErrDecrypt
	}
	return string(plain), nil
}
