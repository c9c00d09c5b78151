package api

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

type customerClaims struct {
	jwt.RegisteredClaims
}

func (handler *Handler) authenticateRequest(c *fiber.Ctx) (string, error) {
	if tokenValue, ok := bearerToken(c); ok {
		claims, err := handler.parseCustomerToken(tokenValue)
		if err != nil {
			return "", err
		}
		return claims.Subject, nil
	}

	rawCookie := strings.TrimSpace(c.Cookies(sessionCookieName))
	if rawCookie == "" {
		return "", errors.New("missing credentials")
	}
	tokenValue, err := handler.cookies.open(sessionPurpose, rawCookie)
	if err != nil {
		return "", errors.New("invalid session cookie")
	}
	claims, err := handler.parseCustomerToken(string(tokenValue))
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

func (handler *Handler) parseCustomerToken(tokenValue string) (*customerClaims, error) {
	claims := &customerClaims{}
	token, err := jwt.ParseWithClaims(tokenValue, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return handler.secretKey, nil
	}, jwt.WithExpirationRequired(), jwt.WithTimeFunc(handler.now))
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	if claims.ExpiresAt == nil || claims.ExpiresAt.Time.Before(handler.now()) {
		return nil, errors.New("token expired")
	}
	claims.Subject = strings.TrimSpace(claims.Subject)
	if claims.Subject == "" {
		return nil, errors.New("token subject is required")
	}
	return claims, nil
}

func bearerToken(c *fiber.Ctx) (string, bool) {
	header := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	scheme, value, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	value = strings.TrimSpace(value)
	return value, value != ""
}

func sessionExpiry(claims *customerClaims, fallback time.Time) time.Time {
	if claims == nil || claims.ExpiresAt == nil {
		return fallback
	}
	return claims.ExpiresAt.Time
}
