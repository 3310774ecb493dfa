package tests

import (
	"encoding/json"
	"net/http"
	"testing"
)

type schoolData struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	City    string `json:"city"`
	EmailID string `json:"email_id"`
}

func listSchools(t *testing.T) []schoolData {
	t.Helper()

	status, body := doJSON(t, http.MethodGet, "/api/schools", nil)
	if status != http.StatusOK {
		t.Fatalf("list status = %d body = %s", status, string(body))
	}
	env := decodeEnvelope(t, body)
	if !env.Success {
		t.Fatalf("list success = false: %s", env.Message)
	}

	var schools []schoolData
	if err := json.Unmarshal(env.Schools, &schools); err != nil {
		t.Fatalf("decode schools: %v", err)
	}
	return schools
}

func TestSchoolListSeedsWhenEmpty(t *testing.T) {
	schools := listSchools(t)
	if len(schools) == 0 {
		t.Fatal("expected at least the starter schools")
	}
}

func TestSchoolAddListDelete(t *testing.T) {
	status, body := doJSON(t, http.MethodPost, "/api/schools", map[string]any{
		"name":     "Integration Test School",
		"address":  "1 Test Lane",
		"city":     "Testville",
		"state":    "Teststate",
		"contact":  "9876501234",
		"email":    uniqueEmail("school"),
	})
	if status != http.StatusOK {
		t.Fatalf("add status = %d body = %s", status, string(body))
	}
	env := decodeEnvelope(t, body)
	if !env.Success || env.Message != "School added successfully" {
		t.Fatalf("unexpected envelope: success=%v message=%q", env.Success, env.Message)
	}
	if env.ID == 0 {
		t.Fatal("expected new school id")
	}

	found := false
	for _, sc := range listSchools(t) {
		if sc.ID == env.ID {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("school %d missing from listing", env.ID)
	}

	status, body = doJSON(t, http.MethodDelete, "/api/schools", map[string]any{"id": env.ID})
	if status != http.StatusOK {
		t.Fatalf("delete status = %d body = %s", status, string(body))
	}
	delEnv := decodeEnvelope(t, body)
	if !delEnv.Success || delEnv.Message != "School deleted successfully" {
		t.Fatalf("unexpected envelope: success=%v message=%q", delEnv.Success, delEnv.Message)
	}

	status, body = doJSON(t, http.MethodDelete, "/api/schools", map[string]any{"id": env.ID})
	if status != http.StatusNotFound {
		t.Fatalf("second delete status = %d body = %s", status, string(body))
	}
}

func TestSchoolAddValidation(t *testing.T) {
	status, body := doJSON(t, http.MethodPost, "/api/schools", map[string]any{
		"name":     "Bad Contact School",
		"address":  "1 Test Lane",
		"city":     "Testville",
		"state":    "Teststate",
		"contact":  "12345", // must be 10 digits
		"email":    uniqueEmail("badcontact"),
	})
	if status != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d body = %s", status, string(body))
	}
	env := decodeEnvelope(t, body)
	if env.Success || len(env.Error) == 0 {
		t.Fatalf("expected validation errors, got success=%v", env.Success)
	}
}

// minimal valid PNG header so content-type detection accepts the upload
var pngBytes = []byte{
	0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A,
	0x00, 0x00, 0x00, 0x0D, 0x49, 0x48, 0x44, 0x52,
	0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x02, 0x00, 0x00, 0x00, 0x90, 0x77, 0x53,
	0xDE,
}

func TestSchoolImageUpload(t *testing.T) {
	status, body := doMultipart(t, "/api/schools/image", "image", "school.png", pngBytes)
	if status != http.StatusOK {
		t.Fatalf("upload status = %d body = %s", status, string(body))
	}
	env := decodeEnvelope(t, body)
	if !env.Success {
		t.Fatalf("upload success = false: %s", env.Message)
	}
	if env.Image == "" {
		t.Fatal("expected object key in response")
	}
}
