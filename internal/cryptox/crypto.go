// Package cryptox implements the payload envelope used when a request or
// response body travels encrypted: AES-256-CBC over the whole serialized
// body, PKCS#7 padded, wrapped in standard Base64.
//
// The key and IV are process constants shared with the server. A fixed
// key/IV pair provides no real confidentiality against anyone who can
// extract the constants from a client binary; the scheme is kept as-is for
// wire compatibility with the existing backend, not as a security
// recommendation. Swap the Codec implementation to move to per-session keys.
package cryptox

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"
	"errors"
	"fmt"
)

// ErrDecode is returned (wrapped) for any envelope that cannot be reversed:
// invalid Base64, ciphertext not a multiple of the block size, or bad padding.
var ErrDecode = errors.New("decode error")

// Codec is a reversible whole-body transform. The request executor applies
// it to the entire serialized body, never to individual fields.
type Codec interface {
	Encrypt(plaintext []byte) (string, error)
	Decrypt(envelope string) ([]byte, error)
}

// Shared with the server; changing either breaks the wire format.
var (
	secretKey = []byte("hospitalapp-aes-256-secret-key!!")
	iv        = []byte("hospitalapp-iv16")
)

// AESCodec is the fixed-key AES-256-CBC Codec used by the live backend.
type AESCodec struct {
	key []byte
	iv  []byte
}

// NewAESCodec returns the codec bound to the process-constant key and IV.
func NewAESCodec() *AESCodec {
	return &AESCodec{key: secretKey, iv: iv}
}

// Encrypt pads the plaintext to the AES block size, encrypts it in CBC mode
// and returns the Base64-encoded ciphertext.
func (c *AESCodec) Encrypt(plaintext []byte) (string, error) {
	block, err := aes.NewCipher(c.key)
	if err != nil {
		return "", err
	}

	padded := pad(plaintext, block.BlockSize())
	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, c.iv).CryptBlocks(ciphertext, padded)

	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// Decrypt reverses Encrypt. Any malformed input is reported as ErrDecode.
func (c *AESCodec) Decrypt(envelope string) ([]byte, error) {
	ciphertext, err := base64.StdEncoding.DecodeString(envelope)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid base64: %v", ErrDecode, err)
	}

	block, err := aes.NewCipher(c.key)
	if err != nil {
		return nil, err
	}

	if len(ciphertext) == 0 || len(ciphertext)%block.BlockSize() != 0 {
		return nil, fmt.Errorf("%w: ciphertext length %d is not a multiple of the block size", ErrDecode, len(ciphertext))
	}

	padded := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, c.iv).CryptBlocks(padded, ciphertext)

	plaintext, err := unpad(padded, block.BlockSize())
	if err != nil {
		return nil, err
	}
	return plaintext, nil
}

func pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	return append(data, bytes.Repeat([]byte{byte(n)}, n)...)
}

func unpad(data []byte, blockSize int) ([]byte, error) {
	n := int(data[len(data)-1])
	if n == 0 || n > blockSize || n > len(data) {
		return nil, fmt.Errorf("%w: invalid padding", ErrDecode)
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, fmt.Errorf("%w: invalid padding", ErrDecode)
		}
	}
	return data[:len(data)-n], nil
}
