package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type TokenCmd struct {
	User   string        `help:"Customer id placed in the sub claim." required:""`
	TTL    time.Duration `help:"Token lifetime." default:"24h"`
	Secret string        `help:"HMAC signing key." env:"SECRET_KEY"`
}

func (cmd *TokenCmd) Run(ctx *Context) error {
	token, err := signCustomerToken(cmd.Secret, cmd.User, ctx.now(), cmd.TTL)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(ctx.Out, token)
	return err
}

func signCustomerToken(secret string, userID string, now time.Time, ttl time.Duration) (string, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return "", errors.New("SECRET_KEY is required to sign tokens")
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return "", errors.New("user is required")
	}
	if ttl <= 0 {
		return "", errors.New("ttl must be positive")
	}

	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
