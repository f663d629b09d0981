package openfda

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"medtracker/internal/platform/httpclient"
	"medtracker/internal/ports/druginfo"
)

const (
	DefaultBaseURL = "https://api.fda.gov/drug/label.json"

	unknown = "Unknown"
)

// Config del cliente openFDA. Normalmente viene de internal/config.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client implementa druginfo.Fetcher contra el endpoint de etiquetas de openFDA.
type Client struct {
	http *httpclient.Client
}

func NewClient(cfg Config) (*Client, error) {
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		base = DefaultBaseURL
	}
	hc, err := httpclient.NewWithBaseURL(base, cfg.Timeout)
	if err != nil {
		return nil, fmt.Errorf("openfda: %w", err)
	}
	return &Client{http: hc}, nil
}

// labelResponse es el subconjunto de la respuesta de /drug/label.json que usamos.
type labelResponse struct {
	Results []struct {
		OpenFDA struct {
			GenericName      []string `json:"generic_name"`
			ManufacturerName []string `json:"manufacturer_name"`
		} `json:"openfda"`
		Warnings []string `json:"warnings"`
		Purpose  []string `json:"purpose"`
	} `json:"results"`
}

// Fetch hace un único GET; cualquier fallo es terminal (sin reintentos).
// Solo 200 cuenta como éxito.
func (c *Client) Fetch(ctx context.Context, drugName string) (druginfo.Info, error) {
	drugName = strings.TrimSpace(drugName)
	if drugName == "" {
		return druginfo.Info{}, druginfo.ErrInvalidArgument
	}

	q := url.Values{}
	q.Set("search", fmt.Sprintf("openfda.generic_name:%q", drugName))
	q.Set("limit", "1")

	var out labelResponse
	if err := c.http.GetJSONExpect(ctx, "", q, http.StatusOK, &out); err != nil {
		if status := httpclient.StatusCode(err); status != 0 {
			return druginfo.Info{}, fmt.Errorf("%w: status=%d", druginfo.ErrLookup, status)
		}
		return druginfo.Info{}, fmt.Errorf("%w: %v", druginfo.ErrLookup, err)
	}
	if len(out.Results) == 0 {
		return druginfo.Info{}, fmt.Errorf("%w: no results for %q", druginfo.ErrLookup, drugName)
	}

	first := out.Results[0]
	info := druginfo.Info{
		Name:         firstOr(first.OpenFDA.GenericName, unknown),
		Manufacturer: firstOr(first.OpenFDA.ManufacturerName, unknown),
		Warnings:     first.Warnings,
		Purpose:      first.Purpose,
	}
	if info.Warnings == nil {
		info.Warnings = []string{}
	}
	if info.Purpose == nil {
		info.Purpose = []string{}
	}
	return info, nil
}

func firstOr(values []string, fallback string) string {
	if len(values) == 0 || strings.TrimSpace(values[0]) == "" {
		return fallback
	}
	return values[0]
}
