package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/asim/chatd/internal/wire"
)

// HTTPClient is a Client backed by a plain JSON HTTP relay service,
// following the same http.Get/json.Unmarshal shape bots/quotes/quotes.go
// uses to talk to third-party APIs, generalized into a reusable client
// struct.
type HTTPClient struct {
	BaseURL string
	HTTP    *http.Client
}

// NewHTTPClient wraps baseURL with sane request timeouts.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

type wireComponent struct {
	Generator uint32 `json:"generator"`
	Sequence  uint32 `json:"sequence"`
	Text      string `json:"text"`
	Time      int64  `json:"time"`
}

type wireBundle struct {
	Generator    uint32        `json:"generator"`
	Sequence     uint32        `json:"sequence"`
	User         wireComponent `json:"user"`
	Conversation wireComponent `json:"conversation"`
	Message      wireComponent `json:"message"`
}

func toComponent(c wireComponent) Component {
	return Component{ID: wire.UUID{Generator: c.Generator, Sequence: c.Sequence}, Text: c.Text, Time: wire.Time(c.Time)}
}

func fromComponent(c Component) wireComponent {
	return wireComponent{Generator: c.ID.Generator, Sequence: c.ID.Sequence, Text: c.Text, Time: int64(c.Time)}
}

func (c *HTTPClient) Read(ctx context.Context, serverID, secret string, sinceBundleID wire.UUID, max int) ([]Bundle, error) {
	u := fmt.Sprintf("%s/bundles?%s", c.BaseURL, url.Values{
		"server": {serverID},
		"secret": {secret},
		"since":  {sinceBundleID.String()},
		"max":    {fmt.Sprint(max)},
	}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("relay: read: status %d: %s", resp.StatusCode, b)
	}

	var wireBundles []wireBundle
	if err := json.NewDecoder(resp.Body).Decode(&wireBundles); err != nil {
		return nil, fmt.Errorf("relay: read: decode: %w", err)
	}

	bundles := make([]Bundle, len(wireBundles))
	for i, wb := range wireBundles {
		bundles[i] = Bundle{
			ID:           wire.UUID{Generator: wb.Generator, Sequence: wb.Sequence},
			User:         toComponent(wb.User),
			Conversation: toComponent(wb.Conversation),
			Message:      toComponent(wb.Message),
		}
	}
	return bundles, nil
}

func (c *HTTPClient) Write(ctx context.Context, serverID, secret string, user, conversation, message Component) error {
	body, err := json.Marshal(map[string]interface{}{
		"server":       serverID,
		"secret":       secret,
		"user":         fromComponent(user),
		"conversation": fromComponent(conversation),
		"message":      fromComponent(message),
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/bundles", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("relay: write: status %d: %s", resp.StatusCode, b)
	}
	return nil
}
