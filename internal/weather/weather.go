// Package weather fetches current conditions from the Open-Meteo API.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/patrickmn/go-cache"
)

// DefaultBaseURL is the Open-Meteo forecast endpoint.
const DefaultBaseURL = "https://api.open-meteo.com/v1/forecast"

// DefaultTimeout bounds a single weather request.
const DefaultTimeout = 5 * time.Second

// cacheTTL is how long a reading is reused for the same coordinates.
const cacheTTL = 10 * time.Minute

// Current is a simplified current-conditions reading.
type Current struct {
	Temp      int    `json:"temp"`
	Condition string `json:"condition"`
}

// conditionNames maps WMO weather interpretation codes to display strings.
var conditionNames = map[int]string{
	0:  "Sunny",
	1:  "Mainly Clear",
	2:  "Partly Cloudy",
	3:  "Overcast",
	61: "Rainy",
	80: "Showers",
}

// conditionName returns the display string for a WMO code, defaulting to
// "Clear" for codes outside the table.
func conditionName(code int) string {
	if name, ok := conditionNames[code]; ok {
		return name
	}
	return "Clear"
}

// Client queries Open-Meteo for current conditions, caching readings briefly
// per coordinate pair.
type Client struct {
	baseURL string
	http    *http.Client
	cache   *cache.Cache
}

// New creates a weather client. Empty baseURL and zero timeout use defaults.
func New(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		cache:   cache.New(cacheTTL, 2*cacheTTL),
	}
}

type forecastResponse struct {
	Current struct {
		Temperature float64 `json:"temperature_2m"`
		WeatherCode int     `json:"weather_code"`
	} `json:"current"`
}

// Fetch returns the current conditions at the given coordinates. The
// temperature is rounded to the nearest whole degree Celsius.
func (c *Client) Fetch(ctx context.Context, lat, lon float64) (*Current, error) {
	key := fmt.Sprintf("%.3f,%.3f", lat, lon)
	if cached, ok := c.cache.Get(key); ok {
		reading := cached.(Current)
		return &reading, nil
	}

	params := url.Values{}
	params.Set("latitude", fmt.Sprintf("%g", lat))
	params.Set("longitude", fmt.Sprintf("%g", lon))
	params.Set("current", "temperature_2m,weather_code")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("building weather request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching weather: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("weather provider returned status %d", resp.StatusCode)
	}

	var forecast forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&forecast); err != nil {
		return nil, fmt.Errorf("decoding weather response: %w", err)
	}

	reading := Current{
		Temp:      int(math.Round(forecast.Current.Temperature)),
		Condition: conditionName(forecast.Current.WeatherCode),
	}
	c.cache.Set(key, reading, cache.DefaultExpiration)

	return &reading, nil
}
