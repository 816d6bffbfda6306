package notify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const pushoverEndpoint = "https://api.pushover.net/1/messages.json"

// Pushover sends alerts through the Pushover message API.
type Pushover struct {
	APIKey   string
	UserKey  string
	Endpoint string
	Client   *http.Client
}

func NewPushover(apiKey, userKey string) *Pushover {
	if apiKey == "" || userKey == "" {
		return nil
	}
	return &Pushover{
		APIKey:   apiKey,
		UserKey:  userKey,
		Endpoint: pushoverEndpoint,
		Client:   &http.Client{Timeout: 10 * time.Second},
	}
}

func (p *Pushover) Send(ctx context.Context, title, text string) error {
	if p == nil || p.APIKey == "" {
		return errors.New("pushover disabled")
	}
	form := url.Values{
		"token":   {p.APIKey},
		"user":    {p.UserKey},
		"title":   {title},
		"message": {text},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.Endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("pushover status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}
