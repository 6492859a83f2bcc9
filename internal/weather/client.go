// Package weather looks up current conditions via the OpenWeather API.
package weather

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

// DefaultBaseURL is the OpenWeather current-weather endpoint root.
const DefaultBaseURL = "https://api.openweathermap.org/data/2.5"

// requestTimeout bounds a single lookup so a slow provider cannot stall a
// command handler.
const requestTimeout = 10 * time.Second

var (
	// ErrNotConfigured means no API key is available; the feature is
	// disabled rather than broken.
	ErrNotConfigured = errors.New("weather: api key not configured")

	// ErrTimeout means the provider did not answer within the deadline.
	ErrTimeout = errors.New("weather: provider timed out")
)

// CityNotFoundError is returned when the provider does not know the city.
type CityNotFoundError struct {
	City string
}

func (e *CityNotFoundError) Error() string {
	return fmt.Sprintf("weather: city %q not found", e.City)
}

// ProviderError is any non-success answer other than an unknown city.
type ProviderError struct {
	Status int
	Body   string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("weather: provider returned http %d: %s", e.Status, e.Body)
}

// Report holds the fields shown to users.
type Report struct {
	City        string
	Country     string
	Description string
	Temp        float64
	FeelsLike   float64
	Humidity    int
	WindSpeed   float64
}

// Format renders the report the way it is posted to chat and cached.
func (r *Report) Format() string {
	return fmt.Sprintf(
		"Weather in %s, %s: %s\nTemperature: %.1f°C (Feels like: %.1f°C)\nHumidity: %d%%\nWind Speed: %.1f m/s",
		r.City, r.Country, capitalize(r.Description), r.Temp, r.FeelsLike, r.Humidity, r.WindSpeed,
	)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Client performs lookups against the provider.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewClient returns a client for the given API key. An empty key yields a
// client whose lookups fail with ErrNotConfigured.
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		http:    &http.Client{Timeout: requestTimeout},
	}
}

// Configured reports whether an API key is present.
func (c *Client) Configured() bool { return c.apiKey != "" }

// Current fetches the current weather for a city.
func (c *Client) Current(ctx context.Context, city string) (*Report, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	endpoint := fmt.Sprintf("%s/weather?q=%s&appid=%s&units=metric",
		c.baseURL, url.QueryEscape(city), url.QueryEscape(c.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, ErrTimeout
		}
		return nil, fmt.Errorf("weather: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("weather: read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, &CityNotFoundError{City: city}
	case resp.StatusCode != http.StatusOK:
		return nil, &ProviderError{Status: resp.StatusCode, Body: truncate(string(body), 200)}
	}

	var payload struct {
		Name string `json:"name"`
		Sys  struct {
			Country string `json:"country"`
		} `json:"sys"`
		Weather []struct {
			Description string `json:"description"`
		} `json:"weather"`
		Main struct {
			Temp      float64 `json:"temp"`
			FeelsLike float64 `json:"feels_like"`
			Humidity  int     `json:"humidity"`
		} `json:"main"`
		Wind struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("weather: decode response: %w", err)
	}

	report := &Report{
		City:      payload.Name,
		Country:   payload.Sys.Country,
		Temp:      payload.Main.Temp,
		FeelsLike: payload.Main.FeelsLike,
		Humidity:  payload.Main.Humidity,
		WindSpeed: payload.Wind.Speed,
	}
	if len(payload.Weather) > 0 {
		report.Description = payload.Weather[0].Description
	}
	return report, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
