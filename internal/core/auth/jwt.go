package auth

import (
	"crypto/subtle"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"gitlab.com/s.izotov81/eventapi/internal/core/entity"
)

// tokenClaim хранит хэш токена пользователя, действовавшего на момент выдачи JWT
const tokenClaim = "tkn"

// JWTResolver аутентификация по подписанному JWT (HS256)
type JWTResolver struct {
	users     UserFinder
	tokenAuth *jwtauth.JWTAuth
	ttl       time.Duration
}

func NewJWTResolver(users UserFinder, secret string, ttl time.Duration) *JWTResolver {
	return &JWTResolver{
		users:     users,
		tokenAuth: jwtauth.New("HS256", []byte(secret), nil),
		ttl:       ttl,
	}
}

func (j *JWTResolver) Resolve(r *http.Request) (entity.User, error) {
	token, err := jwtauth.VerifyRequest(j.tokenAuth, r, jwtauth.TokenFromHeader)
	if err != nil || token == nil {
		return entity.User{}, ErrUnauthorized
	}

	userID, err := strconv.ParseInt(token.Subject(), 10, 64)
	if err != nil {
		return entity.User{}, ErrUnauthorized
	}

	raw, ok := token.Get(tokenClaim)
	if !ok {
		return entity.User{}, ErrUnauthorized
	}
	digest, ok := raw.(string)
	if !ok || digest == "" {
		return entity.User{}, ErrUnauthorized
	}

	user, err := j.users.GetByID(r.Context(), userID)
	if err != nil {
		return entity.User{}, notFoundAsUnauthorized(err)
	}

	// после ротации токена ранее выданные JWT перестают действовать
	if subtle.ConstantTimeCompare([]byte(digest), []byte(user.TokenDigest)) != 1 {
		return entity.User{}, ErrUnauthorized
	}
	return user, nil
}

// Issue подписывает JWT, привязанный к текущему токену пользователя
func (j *JWTResolver) Issue(_ http.ResponseWriter, user entity.User, token string) (string, error) {
	claims := map[string]interface{}{
		"sub":      strconv.FormatInt(user.ID, 10),
		tokenClaim: Digest(token),
	}
	jwtauth.SetIssuedNow(claims)
	jwtauth.SetExpiryIn(claims, j.ttl)

	_, signed, err := j.tokenAuth.Encode(claims)
	if err != nil {
		return "", fmt.Errorf("failed to sign jwt: %w", err)
	}
	return signed, nil
}

func (j *JWTResolver) Revoke(http.ResponseWriter, *http.Request) error {
	return nil
}
