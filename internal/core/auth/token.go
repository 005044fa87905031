package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
)

const tokenBytes = 32

// GenerateToken возвращает случайный токен и его хэш для хранения в БД
func GenerateToken() (token, digest string, err error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", "", fmt.Errorf("failed to generate token: %w", err)
	}

	token = base64.RawURLEncoding.EncodeToString(buf)
	return token, Digest(token), nil
}

// Digest хэширует токен. SHA-256 детерминирован, поэтому по нему можно искать.
func Digest(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// MatchDigest сравнивает токен с сохраненным хэшем за постоянное время
func MatchDigest(token, digest string) bool {
	if token == "" || digest == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(Digest(token)), []byte(digest)) == 1
}
