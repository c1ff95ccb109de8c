package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/rocketscienceinc/tictactoe-escrow/internal/apperror"
)

const accountClaim = "account_id"

type AuthService interface {
	GenerateToken(accountID string) (string, error)
	ParseToken(token string) (string, error)
}

type authServiceImpl struct {
	secretKey []byte
	ttl       time.Duration
}

func NewAuthService(secretKey string, ttl time.Duration) AuthService {
	return &authServiceImpl{
		secretKey: []byte(secretKey),
		ttl:       ttl,
	}
}

func (that *authServiceImpl) GenerateToken(accountID string) (string, error) {
	claims := jwt.MapClaims{}
	claims[accountClaim] = accountID
	claims["exp"] = time.Now().Add(that.ttl).Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(that.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// ParseToken verifies the signature and expiry and returns the account id it carries.
func (that *authServiceImpl) ParseToken(tokenString string) (string, error) {
	claims := jwt.MapClaims{}

	_, err := jwt.ParseWithClaims(tokenString, claims, func(_ *jwt.Token) (interface{}, error) {
		return that.secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return "", fmt.Errorf("%w: %w", apperror.ErrUnauthorized, err)
	}

	accountID, ok := claims[accountClaim].(string)
	if !ok || accountID == "" {
		return "", fmt.Errorf("%w: %w", apperror.ErrUnauthorized, errMissingAccount)
	}

	return accountID, nil
}

var errMissingAccount = errors.New("token carries no account")
