package session

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/nacl/secretbox"
)

const nonceSize = 24

// ErrDecrypt 密文无法解开，密钥变更或数据被篡改
var ErrDecrypt = errors.New("session: cannot decrypt token")

// Box 加密保存在数据库里的后端 token
type Box struct {
	key [32]byte
}

// NewBox 用 HKDF-SHA256 从配置密钥派生加密密钥
func NewBox(secret string) (*Box, error) {
	if secret == "" {
		return nil, errors.New("session: empty secret")
	}
	b := &Box{}
	r := hkdf.New(sha256.New, []byte(secret), nil, []byte("tania session token"))
	if _, err := io.ReadFull(r, b.key[:]); err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}
	return b, nil
}

// Seal 加密，输出 base64(nonce || box)
func (b *Box) Seal(plaintext string) (string, error) {
	var nonce [nonceSize]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return "", fmt.Errorf("read nonce: %w", err)
	}
	sealed := secretbox.Seal(nonce[:], []byte(plaintext), &nonce, &b.key)
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

// Open 解密 Seal 的输出
func (b *Box) Open(ciphertext string) (string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(ciphertext)
	if err != nil || len(raw) < nonceSize+secretbox.Overhead {
		return "", ErrDecrypt
	}
	var nonce [nonceSize]byte
	copy(nonce[:], raw[:nonceSize])
	out, ok := secretbox.Open(nil, raw[nonceSize:], &nonce, &b.key)
	if !ok {
		return "", ErrDecrypt
	}
	return string(out), nil
}
