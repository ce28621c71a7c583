package iceberg

import (
	"context"
	"fmt"
	"os"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const cloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"

// fallback when the token source reports no expiry
const gcsTokenExpiryFallback = 10000 * time.Second

// fetchGCSToken is a seam for tests; production always points at
// gcsAccessToken.
var fetchGCSToken = gcsAccessToken

// gcsAccessToken exchanges a service-account key file for a short-lived
// OAuth access token.
func gcsAccessToken(ctx context.Context, secretFilePath string, scopes []string) (*oauth2.Token, error) {
	if len(scopes) == 0 {
		scopes = []string{cloudPlatformScope}
	}

	data, err := os.ReadFile(secretFilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read service account file: %s", err)
	}

	creds, err := google.CredentialsFromJSON(ctx, data, scopes...)
	if err != nil {
		return nil, fmt.Errorf("failed to load service account credentials: %s", err)
	}

	// Token forces a refresh when no valid cached token exists
	token, err := creds.TokenSource.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to refresh access token: %s", err)
	}
	return token, nil
}
