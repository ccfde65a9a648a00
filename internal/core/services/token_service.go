package services

import (
	"context"
	"fmt"
	"time"

	"github.com/bloomcare/bloom-practice-engine/internal/core/domain"
	"github.com/golang-jwt/jwt/v5"
)

type TokenService struct {
	secretKey        []byte
	issuer           string
	tokenDuration    time.Duration
	practitionerRepo domain.PractitionerRepository
}

func NewTokenService(secretKey string, issuer string, tokenDuration time.Duration, practitionerRepo domain.PractitionerRepository) *TokenService {
	return &TokenService{
		secretKey:        []byte(secretKey),
		issuer:           issuer,
		tokenDuration:    tokenDuration,
		practitionerRepo: practitionerRepo,
	}
}

func (s *TokenService) GenerateToken(practitionerID string) (string, error) {
	claims := jwt.MapClaims{
		"sub": practitionerID,
		"exp": time.Now().Add(s.tokenDuration).Unix(),
		"iat": time.Now().Unix(),
		"iss": s.issuer,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedToken, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("token service: failed to sign token: %w", err)
	}

	return signedToken, nil
}

func (s *TokenService) ValidateToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	})

	if err != nil {
		return "", fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		if iss, ok := claims["iss"].(string); !ok || iss != s.issuer {
			return "", fmt.Errorf("invalid token issuer")
		}

		practitionerID, ok := claims["sub"].(string)
		if !ok {
			return "", fmt.Errorf("invalid token subject")
		}

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		_, err := s.practitionerRepo.GetByID(ctx, practitionerID)
		if err != nil {
			return "", fmt.Errorf("practitioner no longer exists or db error: %w", err)
		}

		return practitionerID, nil
	}

	return "", fmt.Errorf("invalid token claims")
}
