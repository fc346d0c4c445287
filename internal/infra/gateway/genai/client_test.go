package genai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hieutran/moneykeeper/pkg/logger"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient("test-key", srv.URL, logger.NewDefault("test"))
	return c
}

func respond(w http.ResponseWriter, text string) {
	var resp generateResponse
	resp.Result.Text = text
	_ = json.NewEncoder(w).Encode(resp)
}

func TestClient_Generate(t *testing.T) {
	t.Run("sends bearer auth and task", func(t *testing.T) {
		var gotAuth, gotTask string
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			var req generateRequest
			_ = json.NewDecoder(r.Body).Decode(&req)
			gotTask = req.Task
			respond(w, "ok")
		})

		text, err := c.generate(context.Background(), generateRequest{Task: taskChat, Text: "hi"})

		require.NoError(t, err)
		assert.Equal(t, "ok", text)
		assert.Equal(t, "Bearer test-key", gotAuth)
		assert.Equal(t, taskChat, gotTask)
	})

	t.Run("retries on 429 then succeeds", func(t *testing.T) {
		calls := 0
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			calls++
			if calls == 1 {
				w.WriteHeader(http.StatusTooManyRequests)
				return
			}
			respond(w, "after retry")
		})

		text, err := c.generate(context.Background(), generateRequest{Task: taskChat})

		require.NoError(t, err)
		assert.Equal(t, "after retry", text)
		assert.Equal(t, 2, calls)
	})

	t.Run("maps server errors to ErrUnavailable", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})

		_, err := c.generate(context.Background(), generateRequest{Task: taskChat})

		assert.ErrorIs(t, err, ErrUnavailable)
	})
}

func TestAdapter_StructuredTasks(t *testing.T) {
	t.Run("decodes receipt fields", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			respond(w, `{"merchant":"Coopmart","amount":"450000","date":"05/03/2025","category":"Ăn uống"}`)
		})
		a := NewAdapter(c)

		fields, err := a.ScanReceipt(context.Background(), []byte{0x01})

		require.NoError(t, err)
		assert.Equal(t, "Coopmart", fields.Merchant)
		assert.Equal(t, "Ăn uống", fields.Category)
	})

	t.Run("rejects malformed structured result", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			respond(w, "not json at all")
		})
		a := NewAdapter(c)

		_, err := a.ParseVoiceEntry(context.Background(), "mua cà phê 50 nghìn")

		assert.ErrorIs(t, err, ErrUnavailable)
	})
}
