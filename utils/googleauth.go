package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const googleTokenInfoURL = "https://oauth2.googleapis.com/tokeninfo"

type googleTokenInfo struct {
	Aud           string `json:"aud"`
	Email         string `json:"email"`
	EmailVerified string `json:"email_verified"`
}

// VerifyGoogleIDToken validates a Google ID token against the tokeninfo
// endpoint and returns the verified email address.
func VerifyGoogleIDToken(idToken, clientID string) (string, error) {
	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Get(googleTokenInfoURL + "?id_token=" + url.QueryEscape(idToken))
	if err != nil {
		return "", fmt.Errorf("tokeninfo request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("invalid google token: %s", resp.Status)
	}

	var info googleTokenInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return "", fmt.Errorf("could not decode tokeninfo response: %v", err)
	}

	if info.Aud != clientID {
		return "", fmt.Errorf("google token audience mismatch")
	}
	if info.EmailVerified != "true" {
		return "", fmt.Errorf("google account email not verified")
	}

	return info.Email, nil
}
