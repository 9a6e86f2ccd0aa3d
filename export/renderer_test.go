package export

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alex-pricope/eurovision-scoreboard/logging"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPRenderer(t *testing.T) {
	logging.Log = logrus.New()
	unit := Unit{Target: RenderTarget{Path: "/scoreboard/1?phase=main"}, Filename: "scoreboard1.png"}

	t.Run("Happy path - retries transient failures", func(t *testing.T) {
		attempts := 0
		var got screenshotRequest
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			attempts++
			if attempts < 3 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			_ = json.NewDecoder(r.Body).Decode(&got)
			w.Header().Set("Content-Type", "image/png")
			_, _ = w.Write([]byte("png-bytes"))
		}))
		defer srv.Close()

		r := &HTTPRenderer{
			Endpoint:   srv.URL,
			ServerURL:  "http://scoreboard.local",
			Layout:     DefaultLayout(),
			Viewport:   DefaultViewport(),
			MaxRetries: 3,
			Client:     srv.Client(),
		}
		data, err := r.Render(context.Background(), unit)

		require.NoError(t, err)
		assert.Equal(t, "png-bytes", string(data))
		assert.Equal(t, 3, attempts)
		assert.Equal(t, "http://scoreboard.local/scoreboard/1?panelPosition=left&phase=main&showFlags=true&variant=compact&voterPanel=true", got.URL)
		assert.Equal(t, 1920, got.Viewport.Width)
		assert.True(t, got.Options.FullPage)
	})

	t.Run("Unhappy path - client errors are not retried", func(t *testing.T) {
		attempts := 0
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			attempts++
			http.Error(w, "bad url", http.StatusBadRequest)
		}))
		defer srv.Close()

		r := &HTTPRenderer{Endpoint: srv.URL, MaxRetries: 5, Client: srv.Client()}
		_, err := r.Render(context.Background(), unit)

		assert.ErrorIs(t, err, ErrRenderFailed)
		assert.Contains(t, err.Error(), "bad url")
		assert.Equal(t, 1, attempts)
	})

	t.Run("Unhappy path - gives up after the retry budget", func(t *testing.T) {
		attempts := 0
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			attempts++
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		r := &HTTPRenderer{Endpoint: srv.URL, MaxRetries: 1, Client: srv.Client()}
		_, err := r.Render(context.Background(), unit)

		assert.ErrorIs(t, err, ErrRenderFailed)
		assert.Equal(t, 2, attempts)
	})
}
