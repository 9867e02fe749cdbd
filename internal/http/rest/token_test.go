package rest

import (
	"testing"

	"github.com/google/uuid"
	"github.com/peakfolk/peakfolk_api/config"
)

func testAPI() *API {
	return &API{
		Config: &config.Config{
			JwtSecret:     "test-access-secret",
			JwtExpires:    "1h",
			RefreshSecret: "test-refresh-secret",
			RefreshExpiry: "168h",
		},
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	api := testAPI()
	userID := uuid.New().String()

	token, _, err := api.createToken(userID)
	if err != nil {
		t.Fatalf("createToken returned error: %v", err)
	}

	claims, err := api.verifyToken(token, false)
	if err != nil {
		t.Fatalf("verifyToken returned error: %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("claims.UserID = %q; want %q", claims.UserID, userID)
	}
	if claims.Type != "access" {
		t.Errorf("claims.Type = %q; want access", claims.Type)
	}
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	api := testAPI()
	userID := uuid.New().String()

	token, _, err := api.createRefreshToken(userID)
	if err != nil {
		t.Fatalf("createRefreshToken returned error: %v", err)
	}

	claims, err := api.verifyToken(token, true)
	if err != nil {
		t.Fatalf("verifyToken returned error: %v", err)
	}
	if claims.Type != "refresh" {
		t.Errorf("claims.Type = %q; want refresh", claims.Type)
	}
}

func TestVerifyTokenRejections(t *testing.T) {
	api := testAPI()
	userID := uuid.New().String()

	accessToken, _, err := api.createToken(userID)
	if err != nil {
		t.Fatalf("createToken returned error: %v", err)
	}
	refreshToken, _, err := api.createRefreshToken(userID)
	if err != nil {
		t.Fatalf("createRefreshToken returned error: %v", err)
	}

	testCases := []struct {
		name      string
		token     string
		isRefresh bool
	}{
		{"access token as refresh", accessToken, true},
		{"refresh token as access", refreshToken, false},
		{"garbage token", "not.a.token", false},
		{"empty token", "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := api.verifyToken(tc.token, tc.isRefresh); err == nil {
				t.Error("verifyToken accepted an invalid token")
			}
		})
	}
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	api := testAPI()
	token, _, err := api.createToken(uuid.New().String())
	if err != nil {
		t.Fatalf("createToken returned error: %v", err)
	}

	other := testAPI()
	other.Config.JwtSecret = "a-different-secret"
	if _, err := other.verifyToken(token, false); err == nil {
		t.Error("verifyToken accepted a token signed with another secret")
	}
}
