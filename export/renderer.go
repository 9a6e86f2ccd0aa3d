package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/alex-pricope/eurovision-scoreboard/logging"
	"github.com/cenkalti/backoff/v4"
)

// Renderer turns a unit into PNG bytes. Implementations own a single render surface,
// so Render is never called concurrently.
type Renderer interface {
	Render(ctx context.Context, unit Unit) ([]byte, error)
}

type RendererFunc func(ctx context.Context, unit Unit) ([]byte, error)

func (f RendererFunc) Render(ctx context.Context, unit Unit) ([]byte, error) {
	return f(ctx, unit)
}

type Viewport struct {
	Width  int `json:"width" mapstructure:"width"`
	Height int `json:"height" mapstructure:"height"`
}

func DefaultViewport() Viewport {
	return Viewport{Width: 1920, Height: 1080}
}

// HTTPRenderer asks a headless browser screenshot service to capture pages served by
// the scoreboard UI at ServerURL.
type HTTPRenderer struct {
	Endpoint   string
	ServerURL  string
	Layout     LayoutSettings
	Viewport   Viewport
	MaxRetries uint64
	Client     *http.Client
}

type screenshotRequest struct {
	URL         string            `json:"url"`
	Options     screenshotOptions `json:"options"`
	GotoOptions gotoOptions       `json:"gotoOptions"`
	Viewport    Viewport          `json:"viewport"`
}

type screenshotOptions struct {
	FullPage bool   `json:"fullPage"`
	Type     string `json:"type"`
}

type gotoOptions struct {
	WaitUntil string `json:"waitUntil"`
}

func (r *HTTPRenderer) Render(ctx context.Context, unit Unit) ([]byte, error) {
	target := unit.Target.URL(r.ServerURL, r.Layout)
	body, err := json.Marshal(screenshotRequest{
		URL:         target,
		Options:     screenshotOptions{FullPage: true, Type: "png"},
		GotoOptions: gotoOptions{WaitUntil: "networkidle2"},
		Viewport:    r.Viewport,
	})
	if err != nil {
		return nil, err
	}

	var png []byte
	attempt := 0
	op := func() error {
		attempt++
		data, err := r.capture(ctx, body)
		if err != nil {
			logging.Log.Warnf("EXPORT: capture of %s failed (attempt %d): %v", unit.Filename, attempt, err)
			return err
		}
		png = data
		return nil
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 200 * time.Millisecond
	if err := backoff.Retry(op, backoff.WithContext(backoff.WithMaxRetries(policy, r.MaxRetries), ctx)); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrRenderFailed, unit.Filename, err)
	}
	logging.Log.Debugf("EXPORT: captured %s from %s", unit.Filename, target)
	return png, nil
}

func (r *HTTPRenderer) capture(ctx context.Context, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, backoff.Permanent(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "image/png")

	client := r.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	switch {
	case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
		return nil, fmt.Errorf("screenshot service returned %d", resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return nil, backoff.Permanent(fmt.Errorf("screenshot service returned %d: %s", resp.StatusCode, bytes.TrimSpace(data)))
	}
	return data, nil
}
