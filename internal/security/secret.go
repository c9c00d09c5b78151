package security

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
)

const MinSecretLength = 32

const secretAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"

var errEmptyAlphabet = errors.New("alphabet must not be empty")

func GenerateSecret(length int) (string, error) {
	if length < MinSecretLength {
		return "", fmt.Errorf("secret length must be at least %d", MinSecretLength)
	}
	return randomString(length, secretAlphabet)
}

func randomString(length int, alphabet string) (string, error) {
	if length <= 0 {
		return "", nil
	}
	if len(alphabet) == 0 {
		return "", errEmptyAlphabet
	}

	limit := big.NewInt(int64(len(alphabet)))
	value := make([]byte, length)
	for index := range value {
		position, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		value[index] = alphabet[position.Int64()]
	}
	return string(value), nil
}
