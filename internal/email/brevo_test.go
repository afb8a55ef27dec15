package email

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestClientSendSuccess(t *testing.T) {
	var gotBody map[string]any
	var gotKey, gotContentType string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("api-key")
		gotContentType = r.Header.Get("content-type")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"messageId":"<202608310001.abc@smtp-relay>"}`))
	}))
	defer srv.Close()

	c := NewClient("key-123", "Smart Academic Task Planner", "noreply@planner.test")
	c.baseURL = srv.URL
	c.http = srv.Client()

	msgID, err := c.Send(context.Background(), "ada@uni.test", "Ada Lovelace", "subject line", "<p>hello</p>")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if msgID != "<202608310001.abc@smtp-relay>" {
		t.Errorf("messageId = %q", msgID)
	}
	if gotKey != "key-123" {
		t.Errorf("api-key header = %q", gotKey)
	}
	if gotContentType != "application/json" {
		t.Errorf("content-type header = %q", gotContentType)
	}

	sender, _ := gotBody["sender"].(map[string]any)
	if sender["email"] != "noreply@planner.test" || sender["name"] != "Smart Academic Task Planner" {
		t.Errorf("sender = %v", sender)
	}
	to, _ := gotBody["to"].([]any)
	if len(to) != 1 {
		t.Fatalf("to = %v, want one recipient", to)
	}
	rcpt := to[0].(map[string]any)
	if rcpt["email"] != "ada@uni.test" || rcpt["name"] != "Ada Lovelace" {
		t.Errorf("recipient = %v", rcpt)
	}
	if gotBody["subject"] != "subject line" || gotBody["htmlContent"] != "<p>hello</p>" {
		t.Errorf("subject/htmlContent = %v / %v", gotBody["subject"], gotBody["htmlContent"])
	}
}

func TestClientSendProviderError(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{
			name:    "structured error",
			status:  http.StatusUnauthorized,
			body:    `{"code":"unauthorized","message":"Key not found"}`,
			wantErr: "brevo: Key not found",
		},
		{
			name:    "opaque error body",
			status:  http.StatusBadGateway,
			body:    `upstream exploded`,
			wantErr: "brevo: unexpected status 502",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewClient("key-123", "n", "s@x.test")
			c.baseURL = srv.URL
			c.http = srv.Client()

			_, err := c.Send(context.Background(), "a@x.test", "A", "s", "<p>b</p>")
			if err == nil {
				t.Fatal("Send returned nil error")
			}
			if err.Error() != tt.wantErr {
				t.Errorf("err = %q, want %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestClientSendMissingKey(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	c := NewClient("", "n", "s@x.test")
	c.baseURL = srv.URL
	c.http = srv.Client()

	_, err := c.Send(context.Background(), "a@x.test", "A", "s", "<p>b</p>")
	if err != ErrNoAPIKey {
		t.Fatalf("err = %v, want ErrNoAPIKey", err)
	}
	if !strings.Contains(err.Error(), "BREVO_API_KEY is not configured") {
		t.Errorf("error message = %q", err.Error())
	}
	if calls != 0 {
		t.Errorf("server hit %d times, want 0", calls)
	}
}
