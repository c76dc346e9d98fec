package backend

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/target/gradebook/internal/ports"
)

// rlsTokenTTL is the lifetime of a standard client's token. Tokens are minted per
// client and never refreshed.
const rlsTokenTTL = time.Minute

// rlsClaims are the claims the backend's row policies read.
type rlsClaims struct {
	Role    string `json:"role"`
	Email   string `json:"email,omitempty"`
	AppRole string `json:"app_role,omitempty"`
	jwt.RegisteredClaims
}

func mintRLSToken(secret string, p ports.Principal, now time.Time) (string, error) {
	claims := rlsClaims{
		Role:    "authenticated",
		Email:   p.Email,
		AppRole: p.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.UserID,
			Audience:  jwt.ClaimStrings{"authenticated"},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(rlsTokenTTL)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign row-level security token: %w", err)
	}
	return signed, nil
}
