package auth

import (
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is what an Azure AD access token says about its holder.
type Identity struct {
	User     string
	TenantID string
	AppID    string
	Audience []string
	Scopes   []string
}

type azureClaims struct {
	UPN               string `json:"upn"`
	UniqueName        string `json:"unique_name"`
	PreferredUsername string `json:"preferred_username"`
	TenantID          string `json:"tid"`
	AppID             string `json:"appid"`
	Scope             string `json:"scp"`
	jwt.RegisteredClaims
}

// DecodeIdentity reads the claims of an access token without verifying its
// signature. The result is for display only and must not be trusted.
func DecodeIdentity(accessToken string) (Identity, error) {
	var claims azureClaims
	if _, _, err := jwt.NewParser().ParseUnverified(accessToken, &claims); err != nil {
		return Identity{}, fmt.Errorf("decoding access token: %w", err)
	}

	return Identity{
		User:     firstNonEmpty(claims.UPN, claims.UniqueName, claims.PreferredUsername, claims.Subject),
		TenantID: claims.TenantID,
		AppID:    claims.AppID,
		Audience: claims.Audience,
		Scopes:   strings.Fields(claims.Scope),
	}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
