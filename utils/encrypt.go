package utils

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"io"

	"VendorHub/config"
)

var errInvalidCipherText = errors.New("invalid ciphertext payload")

// EncryptField AES-256-GCM 加密敏感字段（证件号等），返回 base64(nonce + ciphertext)
func EncryptField(plain string) (string, error) {
	return encryptWithKey([]byte(config.Cfg.EncryptionKey), plain)
}

// DecryptField EncryptField 的逆操作
func DecryptField(encoded string) (string, error) {
	return decryptWithKey([]byte(config.Cfg.EncryptionKey), encoded)
}

func encryptWithKey(key []byte, plain string) (string, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return "", err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err = io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	raw := gcm.Seal(nonce, nonce, []byte(plain), nil)
	return base64.StdEncoding.EncodeToString(raw), nil
}

func decryptWithKey(key []byte, encoded string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", errInvalidCipherText
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	nonceSize := gcm.NonceSize()
	if len(raw) < nonceSize {
		return "", errInvalidCipherText
	}

	plain, err := gcm.Open(nil, raw[:nonceSize], raw[nonceSize:], nil)
	if err != nil {
		return "", err
	}

	return string(plain), nil
}

// MaskTail 只保留末尾 n 位，用于响应中展示证件号
func MaskTail(value string, n int) string {
	if len(value) <= n {
		return value
	}
	masked := make([]byte, len(value))
	for i := range masked {
		if i < len(value)-n {
			masked[i] = '*'
		} else {
			masked[i] = value[i]
		}
	}
	return string(masked)
}
