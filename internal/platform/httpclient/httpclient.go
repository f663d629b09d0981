package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultTimeout = 10 * time.Second

	// Límite de lectura del body (errores y JSON).
	maxBodyBytes = 1 << 20
)

// Client envuelve *http.Client para los adapters que consumen APIs JSON externas.
type Client struct {
	HTTP      *http.Client
	BaseURL   string // opcional; si se define, GetJSON acepta paths relativos
	UserAgent string
}

// New crea un Client con timeout; <= 0 usa DefaultTimeout.
func New(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		HTTP:      &http.Client{Timeout: timeout},
		UserAgent: "medtracker",
	}
}

// NewWithBaseURL valida baseURL (absoluta) y la deja sin "/" final.
func NewWithBaseURL(baseURL string, timeout time.Duration) (*Client, error) {
	c := New(timeout)
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return c, nil
	}
	u, err := url.ParseRequestURI(baseURL)
	if err != nil || u.Host == "" {
		return nil, fmt.Errorf("invalid base url %q", baseURL)
	}
	c.BaseURL = strings.TrimRight(baseURL, "/")
	return c, nil
}

// HTTPError representa una respuesta no-2xx.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("http error: status=%d", e.StatusCode)
	}
	return fmt.Sprintf("http error: status=%d body=%s", e.StatusCode, e.Body)
}

// StatusCode devuelve el status si err es (o envuelve) un *HTTPError; 0 si no.
func StatusCode(err error) int {
	var he *HTTPError
	if errors.As(err, &he) {
		return he.StatusCode
	}
	return 0
}

// GetJSON hace un GET y decodifica el JSON de respuesta en out.
// - pathOrURL: URL absoluta o path relativo a BaseURL ("" = BaseURL tal cual)
// - query: se agrega a la query existente (puede ser nil)
// Devuelve *HTTPError si el status no es 2xx.
func (c *Client) GetJSON(ctx context.Context, pathOrURL string, query url.Values, out any) error {
	return c.getJSON(ctx, pathOrURL, query, http.StatusOK, out, false)
}

// GetJSONExpect es GetJSON pero solo acepta exactamente el status want
// (cualquier otro, aunque sea 2xx, devuelve *HTTPError).
func (c *Client) GetJSONExpect(ctx context.Context, pathOrURL string, query url.Values, want int, out any) error {
	return c.getJSON(ctx, pathOrURL, query, want, out, true)
}

func (c *Client) getJSON(ctx context.Context, pathOrURL string, query url.Values, want int, out any, exact bool) error {
	if c == nil || c.HTTP == nil {
		return errors.New("httpclient: nil client")
	}

	fullURL, err := c.resolveURL(pathOrURL, query)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("httpclient: new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("httpclient: do request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("httpclient: read body: %w", err)
	}

	ok := resp.StatusCode >= 200 && resp.StatusCode < 300
	if exact {
		ok = resp.StatusCode == want
	}
	if !ok {
		return &HTTPError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(raw)),
		}
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("httpclient: unmarshal json: %w", err)
	}
	return nil
}

func (c *Client) resolveURL(pathOrURL string, query url.Values) (string, error) {
	pathOrURL = strings.TrimSpace(pathOrURL)

	var full string
	switch {
	case strings.HasPrefix(pathOrURL, "http://") || strings.HasPrefix(pathOrURL, "https://"):
		full = pathOrURL
	case c.BaseURL == "":
		return "", errors.New("httpclient: relative path requires BaseURL")
	case pathOrURL == "":
		full = c.BaseURL
	default:
		if !strings.HasPrefix(pathOrURL, "/") {
			pathOrURL = "/" + pathOrURL
		}
		full = c.BaseURL + pathOrURL
	}

	if len(query) == 0 {
		return full, nil
	}

	u, err := url.Parse(full)
	if err != nil {
		return "", fmt.Errorf("httpclient: parse url: %w", err)
	}
	q := u.Query()
	for k, vs := range query {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}
