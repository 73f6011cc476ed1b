package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/i474232898/city-forecast/internal/weather"
)

// HTTPClientConfig bundles HTTP client and throttling settings.
type HTTPClientConfig struct {
	Client *http.Client
	// Limiter throttles outbound calls; nil means unlimited.
	Limiter *rate.Limiter
}

// maxErrorBody bounds how much of a failed response is read for its message.
const maxErrorBody = 4 << 10

var (
	errServerError  = errors.New("server error")
	errNoHTTPClient = errors.New("http client not configured")
	errMissingKey   = errors.New("api key is not configured")
)

var validate = validator.New()

// newCircuitBreaker returns the breaker shared by every call of one provider.
// Only transport failures and 5xx responses count as breaker failures.
func newCircuitBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})
}

// doRequest executes a single request through the rate limiter and circuit
// breaker. There is no retry. A response is returned only for a 2xx status;
// everything else is mapped onto the weather error taxonomy.
func doRequest(
	ctx context.Context,
	op string,
	cfg HTTPClientConfig,
	cb *gobreaker.CircuitBreaker,
	req *http.Request,
) (*http.Response, error) {
	if cfg.Client == nil {
		return nil, &weather.NetworkError{Op: op, Err: errNoHTTPClient}
	}

	if cfg.Limiter != nil {
		if err := cfg.Limiter.Wait(ctx); err != nil {
			return nil, &weather.NetworkError{Op: op, Err: fmt.Errorf("rate limit wait canceled: %w", err)}
		}
	}

	// Ensure the request obeys context cancellation.
	req = req.WithContext(ctx)

	result, err := cb.Execute(func() (interface{}, error) {
		resp, execErr := cfg.Client.Do(req)
		if execErr != nil {
			return nil, execErr
		}

		if resp.StatusCode >= 500 {
			msg := readErrorMessage(resp.Body)
			resp.Body.Close()
			return nil, &weather.ProviderError{
				Op:         op,
				StatusCode: resp.StatusCode,
				Err:        fmt.Errorf("%w: %s", errServerError, msg),
			}
		}

		return resp, nil
	})
	if err != nil {
		var perr *weather.ProviderError
		if errors.As(err, &perr) {
			return nil, perr
		}
		// Anything else, including an open circuit, means no response.
		return nil, &weather.NetworkError{Op: op, Err: err}
	}

	resp, ok := result.(*http.Response)
	if !ok {
		return nil, &weather.NetworkError{Op: op, Err: fmt.Errorf("unexpected result type from circuit breaker")}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := readErrorMessage(resp.Body)
		resp.Body.Close()
		return nil, &weather.ProviderError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Err:        errors.New(msg),
		}
	}

	return resp, nil
}

// readErrorMessage extracts the provider's "message" field from an error
// body, falling back to the raw text.
func readErrorMessage(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, maxErrorBody))
	if err != nil || len(raw) == 0 {
		return "empty response body"
	}

	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return strings.TrimSpace(string(raw))
}

// readBody reads a whole response body. A failure while reading means the
// response never fully arrived, so it is a NetworkError.
func readBody(op string, body io.Reader) ([]byte, error) {
	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, &weather.NetworkError{Op: op, Err: fmt.Errorf("read response: %w", err)}
	}
	return raw, nil
}

// decodePayload decodes a JSON body into target and validates the required
// fields of check, which is usually target itself. Unknown fields are
// ignored. Any failure is a ProviderError.
func decodePayload(op string, raw []byte, target, check interface{}) error {
	if err := json.Unmarshal(raw, target); err != nil {
		return &weather.ProviderError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	if err := validate.Struct(check); err != nil {
		return &weather.ProviderError{Op: op, Err: fmt.Errorf("unexpected response shape: %w", err)}
	}
	return nil
}
