// ABOUTME: Tests for the call placement and history CLI commands
// ABOUTME: Runs commands against an httptest backend and checks blocking rules
package cli

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/harperreed/vishnet/client"
	"github.com/harperreed/vishnet/models"
)

func newTestBackend(t *testing.T) (*httptest.Server, *[]map[string]any) {
	t.Helper()
	var placed []map[string]any

	mux := http.NewServeMux()
	mux.HandleFunc("/personas", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"personas": map[string]any{
				"normal":        []string{"Agent Smith"},
				"impersonation": []string{},
			},
		})
	})
	mux.HandleFunc("/call", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		placed = append(placed, body)
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "callSid": "CA1"})
	})
	mux.HandleFunc("/calls", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"calls": []any{}})
	})

	return httptest.NewServer(mux), &placed
}

func TestCallCommand(t *testing.T) {
	server, placed := newTestBackend(t)
	defer server.Close()

	c := client.New(server.URL)
	err := CallCommand(c, []string{
		"--ph", "+15551234567",
		"--name", "Jane Doe",
		"--persona", "Agent Smith",
		"--yes",
	})
	if err != nil {
		t.Fatalf("CallCommand failed: %v", err)
	}

	if len(*placed) != 1 {
		t.Fatalf("expected 1 placed call, got %d", len(*placed))
	}
	body := (*placed)[0]
	if body["ph"] != "+15551234567" || body["mode"] != "normal" {
		t.Errorf("unexpected payload: %v", body)
	}
	if body["voice_id"] != models.DefaultVoiceID {
		t.Errorf("normal-mode CLI call should carry the default voice, got %v", body["voice_id"])
	}
}

func TestCallCommand_RequiresConsent(t *testing.T) {
	server, placed := newTestBackend(t)
	defer server.Close()

	c := client.New(server.URL)
	err := CallCommand(c, []string{
		"--ph", "+15551234567",
		"--name", "Jane Doe",
		"--persona", "Agent Smith",
	})
	if err == nil || err.Error() != models.MsgConsentRequired {
		t.Fatalf("expected consent error, got %v", err)
	}
	if len(*placed) != 0 {
		t.Error("no request should be issued without consent")
	}
}

func TestCallCommand_InvalidPhoneBlocksRequest(t *testing.T) {
	server, placed := newTestBackend(t)
	defer server.Close()

	c := client.New(server.URL)
	err := CallCommand(c, []string{
		"--ph", "5551234",
		"--name", "Jane Doe",
		"--persona", "Agent Smith",
		"--yes",
	})
	if err == nil || err.Error() != models.MsgPhoneInvalid {
		t.Fatalf("expected phone validation error, got %v", err)
	}
	if len(*placed) != 0 {
		t.Error("invalid phone must not reach the backend")
	}
}

func TestCallCommand_NoPersonasForMode(t *testing.T) {
	server, _ := newTestBackend(t)
	defer server.Close()

	c := client.New(server.URL)
	err := CallCommand(c, []string{
		"--ph", "+15551234567",
		"--name", "Jane Doe",
		"--persona", "Anyone",
		"--mode", "impersonation",
		"--yes",
	})
	if err == nil || err.Error() != models.MsgNoPersonas {
		t.Fatalf("expected empty-persona error, got %v", err)
	}
}

func TestCallsCommand_EmptyHistory(t *testing.T) {
	server, _ := newTestBackend(t)
	defer server.Close()

	c := client.New(server.URL)
	if err := CallsCommand(c, []string{}); err != nil {
		t.Fatalf("CallsCommand failed: %v", err)
	}
}

func TestPersonasCommand(t *testing.T) {
	server, _ := newTestBackend(t)
	defer server.Close()

	c := client.New(server.URL)
	if err := PersonasCommand(c, []string{}); err != nil {
		t.Fatalf("PersonasCommand failed: %v", err)
	}
}
