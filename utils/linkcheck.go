package utils

import (
	"context"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

type LinkStatus struct {
	URL        string `json:"url"`
	Reachable  bool   `json:"reachable"`
	StatusCode int    `json:"statusCode,omitempty"`
	Error      string `json:"error,omitempty"`
}

type LinkChecker struct {
	client *resty.Client
}

func NewLinkChecker(timeout time.Duration) *LinkChecker {
	client := resty.New().
		SetTimeout(timeout).
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(5)).
		SetHeader("User-Agent", "fireguard-link-check/1.0")
	return &LinkChecker{client: client}
}

// Check issues a HEAD request and falls back to GET for servers that refuse
// HEAD. It never returns an error; failures are reported in the status.
func (c *LinkChecker) Check(ctx context.Context, url string) LinkStatus {
	status := LinkStatus{URL: url}

	resp, err := c.client.R().SetContext(ctx).Head(url)
	if err == nil && resp.StatusCode() == http.StatusMethodNotAllowed {
		resp, err = c.client.R().SetContext(ctx).SetDoNotParseResponse(true).Get(url)
		if err == nil {
			resp.RawBody().Close()
		}
	}
	if err != nil {
		status.Error = err.Error()
		return status
	}

	status.StatusCode = resp.StatusCode()
	status.Reachable = status.StatusCode < 400
	return status
}
