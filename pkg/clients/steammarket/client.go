package steammarket

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"

	"github.com/mamadbah2/skinledger/internal/config"
)

// Client exposes the Steam community market operations used by the
// application.
type Client interface {
	LowestPrice(ctx context.Context, marketHashName string) (decimal.Decimal, error)
}

// APIClient is a resty-backed implementation of Client.
type APIClient struct {
	httpClient *resty.Client
	appID      string
	currency   string
}

// NewClient builds a Steam market API client using the provided
// configuration values.
func NewClient(cfg config.SteamConfig) *APIClient {
	restyClient := resty.New()
	restyClient.
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetHeader("Accept", "application/json").
		SetTimeout(15 * time.Second)

	return &APIClient{
		httpClient: restyClient,
		appID:      cfg.AppID,
		currency:   cfg.Currency,
	}
}

// priceOverview mirrors the response of /market/priceoverview/. Prices come
// back as decorated display strings.
type priceOverview struct {
	Success     bool   `json:"success"`
	LowestPrice string `json:"lowest_price"`
	MedianPrice string `json:"median_price"`
	Volume      string `json:"volume"`
}

// LowestPrice fetches the lowest listed price for a market hash name.
func (c *APIClient) LowestPrice(ctx context.Context, marketHashName string) (decimal.Decimal, error) {
	result := new(priceOverview)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"appid":            c.appID,
			"currency":         c.currency,
			"market_hash_name": marketHashName,
		}).
		SetResult(result).
		Get("/market/priceoverview/")
	if err != nil {
		return decimal.Zero, fmt.Errorf("fetch price overview: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		return decimal.Zero, fmt.Errorf("steam market api error: status=%d", resp.StatusCode())
	}

	if !result.Success || result.LowestPrice == "" {
		return decimal.Zero, fmt.Errorf("no listing found for %q", marketHashName)
	}

	price, err := parsePrice(result.LowestPrice)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse lowest price for %q: %w", marketHashName, err)
	}

	return price, nil
}

// parsePrice strips currency decoration from a market price string.
func parsePrice(raw string) (decimal.Decimal, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case '$', ',', ' ', '\u00a0': // NBSP shows up in some locales
			return -1
		}
		return r
	}, strings.TrimSpace(raw))

	price, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("unparseable price %q", raw)
	}
	if price.IsNegative() {
		return decimal.Zero, fmt.Errorf("negative price %q", raw)
	}
	return price, nil
}

// HashNameFromLink extracts the URL-decoded market hash name from a market
// listing URL (…/market/listings/<appid>/<market_hash_name>). It returns ""
// when the link does not point at a market listing.
func HashNameFromLink(link string) string {
	u, err := url.Parse(strings.TrimSpace(link))
	if err != nil {
		return ""
	}

	segments := strings.Split(strings.Trim(u.EscapedPath(), "/"), "/")
	if len(segments) < 4 || segments[0] != "market" || segments[1] != "listings" {
		return ""
	}

	name, err := url.PathUnescape(segments[len(segments)-1])
	if err != nil {
		return ""
	}
	return name
}
