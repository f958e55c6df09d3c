// Package weather looks up current conditions from the OpenWeatherMap API.
package weather

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"go.trai.ch/zerr"
)

const (
	// DefaultEndpoint is the current-weather endpoint.
	DefaultEndpoint = "http://api.openweathermap.org/data/2.5/weather"

	// DefaultCountry restricts city lookups to Australia.
	DefaultCountry = "AU"

	// DefaultUnits requests Celsius temperatures.
	DefaultUnits = "metric"

	// DefaultAPIKeyEnv names the environment variable holding the path of
	// the API key file.
	DefaultAPIKeyEnv = "JD_OPENWEATHER_API_KEY"

	// DefaultTimeout bounds a single lookup.
	DefaultTimeout = 10 * time.Second

	// NotFoundMessage is rendered when the API reports an unknown city.
	NotFoundMessage = "City not found."

	maxBody = 1 << 20
)

var (
	// ErrCityNotFound is returned when the payload carries cod "404".
	ErrCityNotFound = zerr.New("city not found")

	// ErrMissingAPIKey is returned when the API key cannot be read.
	ErrMissingAPIKey = zerr.New("missing API key")

	// ErrUnauthorized is returned when the API rejects the key.
	ErrUnauthorized = zerr.New("API key rejected")

	// ErrUpstream is returned for any other non-2xx response.
	ErrUpstream = zerr.New("weather service error")

	// ErrMalformedResponse is returned when a successful response lacks
	// the fields needed for a report.
	ErrMalformedResponse = zerr.New("malformed weather response")
)

// Options configures a Client.
type Options struct {
	Endpoint string
	Country  string
	Units    string
	Timeout  time.Duration
}

// Client performs lookups against the weather endpoint.
type Client struct {
	http   *http.Client
	opts   Options
	apiKey string
	logger *slog.Logger
}

// New creates a Client. A nil httpClient uses http.DefaultClient; zero
// options fall back to the defaults.
func New(opts Options, apiKey string, httpClient *http.Client, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if opts.Endpoint == "" {
		opts.Endpoint = DefaultEndpoint
	}
	if opts.Country == "" {
		opts.Country = DefaultCountry
	}
	if opts.Units == "" {
		opts.Units = DefaultUnits
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	return &Client{http: httpClient, opts: opts, apiKey: apiKey, logger: logger}
}

// LoadAPIKey reads the API key from the file named by the environment
// variable env. The key is the first line of that file.
func LoadAPIKey(env string) (string, error) {
	path := os.Getenv(env)
	if path == "" {
		return "", zerr.With(zerr.Wrap(ErrMissingAPIKey, "environment variable not set"), "env", env)
	}
	f, err := os.Open(path)
	if err != nil {
		return "", zerr.With(zerr.Wrap(ErrMissingAPIKey, err.Error()), "env", env)
	}
	defer func() { _ = f.Close() }()

	line, err := bufio.NewReader(f).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", zerr.With(zerr.Wrap(ErrMissingAPIKey, err.Error()), "path", path)
	}
	key := strings.TrimSpace(line)
	if key == "" {
		return "", zerr.With(zerr.Wrap(ErrMissingAPIKey, "key file is empty"), "path", path)
	}
	return key, nil
}

// Lookup fetches the weather for city and renders it. An unknown city
// renders as NotFoundMessage rather than an error.
func (c *Client) Lookup(ctx context.Context, city string) (string, error) {
	report, err := c.Fetch(ctx, city)
	if errors.Is(err, ErrCityNotFound) {
		return NotFoundMessage, nil
	}
	if err != nil {
		return "", err
	}
	return report.String(), nil
}

// Fetch performs one request for city.
func (c *Client) Fetch(ctx context.Context, city string) (Report, error) {
	ctx, cancel := context.WithTimeout(ctx, c.opts.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.queryURL(city), nil)
	if err != nil {
		return Report{}, zerr.Wrap(err, "build weather request")
	}

	c.logger.DebugContext(ctx, "weather request", "city", city, "country", c.opts.Country)
	res, err := c.http.Do(req)
	if err != nil {
		return Report{}, zerr.With(zerr.Wrap(err, "weather request"), "city", city)
	}
	defer func() { _ = res.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(res.Body, maxBody))
	if err != nil {
		return Report{}, zerr.Wrap(err, "read weather response")
	}
	c.logger.DebugContext(ctx, "weather response", "status", res.StatusCode, "bytes", len(body))

	// cod decides not-found on its own; other fields may have any shape.
	var head struct {
		Cod code `json:"cod"`
	}
	if json.Unmarshal(body, &head) == nil && head.Cod == "404" {
		return Report{}, zerr.With(zerr.Wrap(ErrCityNotFound, "weather lookup"), "city", city)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return Report{}, classify(res.StatusCode, body)
	}

	var p payload
	if err := json.Unmarshal(body, &p); err != nil {
		return Report{}, zerr.Wrap(ErrMalformedResponse, err.Error())
	}
	if p.Main == nil || len(p.Weather) == 0 {
		return Report{}, zerr.With(zerr.Wrap(ErrMalformedResponse, "missing main or weather"), "city", city)
	}

	return Report{
		City:        p.Name,
		Temperature: p.Main.Temp,
		Pressure:    p.Main.Pressure,
		Humidity:    p.Main.Humidity,
		Description: p.Weather[0].Description,
	}, nil
}

func (c *Client) queryURL(city string) string {
	q := url.Values{}
	q.Set("q", city+","+c.opts.Country)
	q.Set("appid", c.apiKey)
	q.Set("units", c.opts.Units)
	return c.opts.Endpoint + "?" + q.Encode()
}

// classify turns a non-2xx response into ErrUnauthorized or ErrUpstream,
// carrying the API's message when the body has a string one.
func classify(status int, body []byte) error {
	var msg struct {
		Message string `json:"message"`
	}
	_ = json.Unmarshal(body, &msg)
	message := msg.Message
	if message == "" {
		message = http.StatusText(status)
	}

	sentinel := ErrUpstream
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		sentinel = ErrUnauthorized
	}
	return zerr.With(zerr.Wrap(sentinel, message), "status", status)
}
