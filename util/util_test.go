package util

import (
	"net/http"
	"testing"
	"time"

	"github.com/peakfolk/peakfolk_api/util/values"
)

func TestFormatTime(t *testing.T) {
	testTime := time.Date(2025, 4, 5, 14, 30, 45, 0, time.UTC)

	// Test cases with different formats
	testCases := []struct {
		name           string
		format         string
		expectedResult string
	}{
		{"RFC3339", time.RFC3339, "2025-04-05T14:30:45Z"},
		{"Simple Date", "2006-01-02", "2025-04-05"},
		{"Time Only", "15:04:05", "14:30:45"},
		{"Date and Time", "2006-01-02 15:04:05", "2025-04-05 14:30:45"},
		{"Kitchen Time", time.Kitchen, "2:30PM"},
		{"Empty Format", "", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := formatTime(tc.format, testTime)

			if result != tc.expectedResult {
				t.Errorf("formatTime(%q, %v) = %q; want %q",
					tc.format, testTime, result, tc.expectedResult)
			}
		})
	}
}

func TestStatusCode(t *testing.T) {
	testCases := []struct {
		status string
		want   int
	}{
		{values.Success, http.StatusOK},
		{values.Created, http.StatusCreated},
		{values.BadRequestBody, http.StatusBadRequest},
		{values.NotAuthorised, http.StatusUnauthorized},
		{values.TokenExpired, http.StatusUnauthorized},
		{values.NotAllowed, http.StatusForbidden},
		{values.NotFound, http.StatusNotFound},
		{values.Conflict, http.StatusConflict},
		{values.Unprocessable, http.StatusUnprocessableEntity},
		{values.Error, http.StatusInternalServerError},
		{"something-else", http.StatusOK},
	}

	for _, tc := range testCases {
		t.Run(tc.status, func(t *testing.T) {
			if got := StatusCode(tc.status); got != tc.want {
				t.Errorf("StatusCode(%q) = %d; want %d", tc.status, got, tc.want)
			}
		})
	}
}

func TestGenerateVerificationCode(t *testing.T) {
	for i := 0; i < 20; i++ {
		code := GenerateVerificationCode()
		if len(code) != 4 {
			t.Fatalf("GenerateVerificationCode() = %q; want 4 digits", code)
		}
		for _, r := range code {
			if r < '0' || r > '9' {
				t.Fatalf("GenerateVerificationCode() = %q; contains non-digit %q", code, r)
			}
		}
	}
}

func TestNotBlank(t *testing.T) {
	testCases := []struct {
		name  string
		value string
		want  bool
	}{
		{"plain text", "hello", true},
		{"padded text", "  hello  ", true},
		{"empty", "", false},
		{"spaces only", "   ", false},
		{"tabs and newlines", "\t\n", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NotBlank(tc.value); got != tc.want {
				t.Errorf("NotBlank(%q) = %v; want %v", tc.value, got, tc.want)
			}
		})
	}
}

func TestIsEmail(t *testing.T) {
	testCases := []struct {
		name  string
		value string
		want  bool
	}{
		{"plain address", "alice@example.com", true},
		{"with plus tag", "alice+tag@example.com", true},
		{"missing domain", "alice@", false},
		{"missing local part", "@example.com", false},
		{"no at sign", "alice.example.com", false},
		{"blank", "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsEmail(tc.value); got != tc.want {
				t.Errorf("IsEmail(%q) = %v; want %v", tc.value, got, tc.want)
			}
		})
	}
}

func TestValidateStructFutureTime(t *testing.T) {
	type payload struct {
		DateTime time.Time `validate:"required,futuretime"`
	}

	if err := ValidateStruct(payload{DateTime: time.Now().Add(time.Hour)}); err != nil {
		t.Errorf("future time failed validation: %v", err)
	}
	if err := ValidateStruct(payload{DateTime: time.Now().Add(-time.Hour)}); err == nil {
		t.Error("past time passed validation")
	}
}

func TestValidateStructCurrency(t *testing.T) {
	type payload struct {
		Currency string `validate:"required,currency"`
	}

	testCases := []struct {
		name    string
		code    string
		wantErr bool
	}{
		{"valid upper", "USD", false},
		{"valid upper other", "TRY", false},
		{"lowercase", "usd", true},
		{"too short", "US", true},
		{"too long", "USDT", true},
		{"digits", "U5D", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateStruct(payload{Currency: tc.code})
			if (err != nil) != tc.wantErr {
				t.Errorf("ValidateStruct(currency=%q) error = %v; wantErr %v", tc.code, err, tc.wantErr)
			}
		})
	}
}
