package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestTelegramClient_SendMessage(t *testing.T) {
	t.Run("nil_client", func(t *testing.T) {
		var c *TelegramClient
		err := c.SendMessage(context.Background(), "msg")
		if err == nil || err.Error() != "telegram client is nil" {
			t.Errorf("expected nil client error, got %v", err)
		}
	})

	t.Run("missing_config", func(t *testing.T) {
		c := NewTelegramClient("", 0, "")
		err := c.SendMessage(context.Background(), "msg")
		if err == nil || err.Error() != "telegram token or chat_id missing" {
			t.Error("expected missing config error")
		}
	})

	t.Run("success", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"ok":true}`))
		}))
		defer ts.Close()

		c := NewTelegramClient("tok", 123, "PROD")
		c.baseURL = ts.URL
		err := c.SendMessage(context.Background(), "hello")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("prefix_applied", func(t *testing.T) {
		var payload struct {
			Text string `json:"text"`
		}
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewDecoder(r.Body).Decode(&payload)
			_, _ = w.Write([]byte(`{"ok":true}`))
		}))
		defer ts.Close()

		c := NewTelegramClient("tok", 123, "digest")
		c.baseURL = ts.URL
		if err := c.SendMessage(context.Background(), "hello"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if payload.Text != "[digest] hello" {
			t.Errorf("prefix not applied: %q", payload.Text)
		}
	})

	t.Run("server_error", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"bad"}`))
		}))
		defer ts.Close()

		c := NewTelegramClient("tok", 123, "")
		c.baseURL = ts.URL
		err := c.SendMessage(context.Background(), "hello")
		if err == nil {
			t.Error("expected error for 400 status")
		}
	})
}

func TestTelegramClient_SendAlerts(t *testing.T) {
	t.Run("empty_list_is_noop", func(t *testing.T) {
		c := NewTelegramClient("", 0, "")
		if err := c.SendAlerts(context.Background(), nil); err != nil {
			t.Errorf("empty alerts must not send: %v", err)
		}
	})

	t.Run("joined_lines", func(t *testing.T) {
		var payload struct {
			Text string `json:"text"`
		}
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewDecoder(r.Body).Decode(&payload)
			_, _ = w.Write([]byte(`{"ok":true}`))
		}))
		defer ts.Close()

		c := NewTelegramClient("tok", 123, "")
		c.baseURL = ts.URL
		alerts := []string{"ALERT: one", "ALERT: two"}
		if err := c.SendAlerts(context.Background(), alerts); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(payload.Text, "ALERT: one\nALERT: two") {
			t.Errorf("alerts not joined: %q", payload.Text)
		}
	})
}
