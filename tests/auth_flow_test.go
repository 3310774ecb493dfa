package tests

import (
	"fmt"
	"net/http"
	"testing"
	"time"
)

func uniqueEmail(prefix string) string {
	return fmt.Sprintf("%s+%d@example.com", prefix, time.Now().UnixNano())
}

func TestAuthGenerateThenWrongCode(t *testing.T) {
	email := uniqueEmail("wrongcode")

	status, body := doJSON(t, http.MethodPost, "/api/auth", map[string]any{
		"type":     "generate",
		"email":    email,
		"userName": "Test User",
	})
	if status != http.StatusOK {
		t.Fatalf("generate status = %d body = %s", status, string(body))
	}
	env := decodeEnvelope(t, body)
	if !env.Success {
		t.Fatalf("generate success = false: %s", env.Message)
	}
	if env.Message != "OTP sent to your email" {
		t.Fatalf("generate message = %q", env.Message)
	}

	// the real code went to the mailbox; a wrong guess must not consume it
	status, body = doJSON(t, http.MethodPost, "/api/auth", map[string]any{
		"type":     "verify",
		"email":    email,
		"otp":      "000000",
		"userName": "Test User",
	})
	if status != http.StatusUnauthorized {
		t.Fatalf("verify status = %d body = %s", status, string(body))
	}
	env = decodeEnvelope(t, body)
	if env.Success {
		t.Fatal("verify with wrong code reported success")
	}
	if env.Message != "Invalid OTP" {
		t.Fatalf("verify message = %q", env.Message)
	}
}

func TestAuthVerifyWithoutChallenge(t *testing.T) {
	status, body := doJSON(t, http.MethodPost, "/api/auth", map[string]any{
		"type":     "verify",
		"email":    uniqueEmail("nochallenge"),
		"otp":      "123456",
		"userName": "No Challenge",
	})
	if status != http.StatusUnauthorized {
		t.Fatalf("status = %d body = %s", status, string(body))
	}
	env := decodeEnvelope(t, body)
	if env.Success || env.Message != "Invalid or expired OTP" {
		t.Fatalf("unexpected envelope: success=%v message=%q", env.Success, env.Message)
	}
}

func TestAuthSessionUnknownEmail(t *testing.T) {
	status, body := doJSON(t, http.MethodGet, "/api/auth?email="+uniqueEmail("ghost"), nil)
	if status != http.StatusNotFound {
		t.Fatalf("status = %d body = %s", status, string(body))
	}
	env := decodeEnvelope(t, body)
	if env.Success {
		t.Fatal("unknown email reported success")
	}
}

func TestAuthLogoutUnknownEmail(t *testing.T) {
	status, body := doJSON(t, http.MethodPost, "/api/auth", map[string]any{
		"type":  "logout",
		"email": uniqueEmail("ghost"),
	})
	if status != http.StatusNotFound {
		t.Fatalf("status = %d body = %s", status, string(body))
	}
}

func TestAuthUnknownRequestType(t *testing.T) {
	status, body := doJSON(t, http.MethodPost, "/api/auth", map[string]any{
		"type":  "destroy",
		"email": "a@example.com",
	})
	if status != http.StatusBadRequest {
		t.Fatalf("status = %d body = %s", status, string(body))
	}
	env := decodeEnvelope(t, body)
	if env.Success || env.Message != "Invalid request type" {
		t.Fatalf("unexpected envelope: success=%v message=%q", env.Success, env.Message)
	}
}

func TestAuthGenerateValidation(t *testing.T) {
	status, body := doJSON(t, http.MethodPost, "/api/auth", map[string]any{
		"type":     "generate",
		"email":    "not-an-email",
		"userName": "Test User",
	})
	if status != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d body = %s", status, string(body))
	}
	env := decodeEnvelope(t, body)
	if env.Success {
		t.Fatal("invalid email reported success")
	}
	if len(env.Error) == 0 {
		t.Fatal("expected field errors for invalid email")
	}
}
