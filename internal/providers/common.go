package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

// BackoffConfig controls retry behaviour for outbound provider calls.
type BackoffConfig struct {
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

func defaultBackoff() BackoffConfig {
	return BackoffConfig{
		MaxRetries:      2,
		InitialInterval: 500 * time.Millisecond,
		MaxInterval:     5 * time.Second,
	}
}

func newCircuitBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})
}

var (
	errServerError = errors.New("upstream server error")
	errCircuitOpen = errors.New("circuit breaker open")
)

// getJSON performs a GET with retries, exponential backoff and a circuit
// breaker, decoding a 2xx body into out. Non-2xx statuses are errors; 5xx
// responses are retried, everything else fails fast.
func getJSON(ctx context.Context, client *http.Client, cb *gobreaker.CircuitBreaker, backoff BackoffConfig, url string, out any) error {
	var attempt int

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
		if err != nil {
			return err
		}

		_, err = cb.Execute(func() (interface{}, error) {
			resp, execErr := client.Do(req)
			if execErr != nil {
				return nil, execErr
			}
			defer resp.Body.Close()

			if resp.StatusCode >= 500 {
				return nil, fmt.Errorf("%w: status %d", errServerError, resp.StatusCode)
			}
			if resp.StatusCode < 200 || resp.StatusCode >= 300 {
				return nil, &statusError{code: resp.StatusCode}
			}

			if decodeErr := json.NewDecoder(resp.Body).Decode(out); decodeErr != nil {
				return nil, &decodeError{err: decodeErr}
			}
			return nil, nil
		})

		if err == nil {
			return nil
		}

		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return fmt.Errorf("%w: %v", errCircuitOpen, err)
		}

		// Client-side statuses and malformed payloads will not improve on
		// retry.
		var se *statusError
		var de *decodeError
		if errors.As(err, &se) || errors.As(err, &de) {
			return err
		}

		if attempt >= backoff.MaxRetries {
			return err
		}

		delay := backoff.InitialInterval * time.Duration(math.Pow(2, float64(attempt)))
		if backoff.MaxInterval > 0 && delay > backoff.MaxInterval {
			delay = backoff.MaxInterval
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		attempt++
	}
}

type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("request failed with status %d", e.code)
}

type decodeError struct {
	err error
}

func (e *decodeError) Error() string {
	return fmt.Sprintf("malformed response payload: %v", e.err)
}

func (e *decodeError) Unwrap() error {
	return e.err
}
