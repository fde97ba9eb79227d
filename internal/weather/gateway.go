package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"

	"github.com/Tanmayee006/Demo-Task-Social-Booster-Media/internal/models"
)

// ErrUpstream marks failures of the external weather provider so handlers
// can map them to a gateway error instead of a generic 500.
var ErrUpstream = errors.New("weather provider unavailable")

// Gateway abstracts the external weather provider. Given a city it returns
// current conditions as an unsaved snapshot, or fails.
type Gateway interface {
	Current(ctx context.Context, city string) (models.WeatherSnapshot, error)
}

// BackoffConfig controls retry behaviour of the OpenWeather client.
type BackoffConfig struct {
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// OpenWeatherClient implements Gateway against the OpenWeatherMap current
// weather API, with retries and a circuit breaker around the call.
type OpenWeatherClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
	backoff BackoffConfig
	circuit *gobreaker.CircuitBreaker
}

func NewOpenWeatherClient(client *http.Client, apiKey, baseURL string) *OpenWeatherClient {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openweather",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})
	return &OpenWeatherClient{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  client,
		backoff: BackoffConfig{
			MaxRetries:      2,
			InitialInterval: 500 * time.Millisecond,
			MaxInterval:     5 * time.Second,
		},
		circuit: cb,
	}
}

func (c *OpenWeatherClient) Current(ctx context.Context, city string) (models.WeatherSnapshot, error) {
	if c.apiKey == "" {
		return models.WeatherSnapshot{}, fmt.Errorf("%w: api key not configured", ErrUpstream)
	}

	values := url.Values{}
	values.Set("q", city)
	values.Set("appid", c.apiKey)
	values.Set("units", "metric")
	endpoint := c.baseURL + "?" + values.Encode()

	resp, err := c.doWithResilience(ctx, endpoint)
	if err != nil {
		return models.WeatherSnapshot{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	var payload struct {
		Name string `json:"name"`
		Main struct {
			Temp     float64 `json:"temp"`
			Humidity int     `json:"humidity"`
			Pressure float64 `json:"pressure"`
		} `json:"main"`
		Weather []struct {
			Description string `json:"description"`
		} `json:"weather"`
		Wind struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
		Visibility *float64 `json:"visibility"` // meters, not always present
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return models.WeatherSnapshot{}, fmt.Errorf("%w: decode: %v", ErrUpstream, err)
	}

	snap := models.WeatherSnapshot{
		City:        city,
		Temperature: payload.Main.Temp,
		Humidity:    payload.Main.Humidity,
		Pressure:    payload.Main.Pressure,
		WindSpeed:   payload.Wind.Speed,
	}
	if payload.Name != "" {
		snap.City = payload.Name
	}
	if len(payload.Weather) > 0 {
		snap.Description = payload.Weather[0].Description
	}
	if payload.Visibility != nil {
		km := *payload.Visibility / 1000
		snap.Visibility = &km
	}
	return snap, nil
}

// doWithResilience executes the GET with exponential backoff behind the
// circuit breaker. Non-2xx responses count as failures.
func (c *OpenWeatherClient) doWithResilience(ctx context.Context, endpoint string) (*http.Response, error) {
	var lastErr error
	for attempt := 0; ; attempt++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		result, err := c.circuit.Execute(func() (interface{}, error) {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
			if err != nil {
				return nil, err
			}
			resp, err := c.client.Do(req)
			if err != nil {
				return nil, err
			}
			if resp.StatusCode < 200 || resp.StatusCode >= 300 {
				resp.Body.Close()
				return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
			}
			return resp, nil
		})
		if err == nil {
			return result.(*http.Response), nil
		}
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, err
		}

		lastErr = err
		if attempt >= c.backoff.MaxRetries {
			return nil, lastErr
		}
		delay := c.backoff.InitialInterval << attempt
		if c.backoff.MaxInterval > 0 && delay > c.backoff.MaxInterval {
			delay = c.backoff.MaxInterval
		}
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}
