// Package amazonads is a thin client for the Amazon Advertising API
// (Sponsored Products), authenticated through the LWA refresh-token flow.
package amazonads

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/oauth2"
)

type Config struct {
	Endpoint     string
	TokenURL     string
	ClientID     string
	ClientSecret string
	RefreshToken string
	ProfileID    string
	Timeout      time.Duration
}

type Client struct {
	http *resty.Client
}

// New builds a client whose underlying transport refreshes the LWA access
// token automatically via the oauth2 token source.
func New(cfg Config) *Client {
	oc := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint: oauth2.Endpoint{
			TokenURL:  cfg.TokenURL,
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
	ts := oc.TokenSource(context.Background(), &oauth2.Token{RefreshToken: cfg.RefreshToken})

	rc := resty.NewWithClient(oauth2.NewClient(context.Background(), ts)).
		SetBaseURL(strings.TrimRight(cfg.Endpoint, "/")).
		SetHeader("Content-Type", "application/json").
		SetHeader("Amazon-Advertising-API-ClientId", cfg.ClientID).
		SetHeader("Amazon-Advertising-API-Scope", cfg.ProfileID)
	if cfg.Timeout > 0 {
		rc.SetTimeout(cfg.Timeout)
	}
	return &Client{http: rc}
}

// apiError surfaces the platform's failure text unchanged; callers record it
// verbatim into the audit trail.
func apiError(resp *resty.Response, err error) error {
	if err != nil {
		return err
	}
	if resp == nil {
		return fmt.Errorf("empty response")
	}
	if resp.IsError() {
		body := strings.TrimSpace(resp.String())
		if body == "" {
			return fmt.Errorf("http %d", resp.StatusCode())
		}
		return fmt.Errorf("%s", body)
	}
	return nil
}
