package directory

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

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/venta/backend/internal/domain/seller"
	"github.com/venta/backend/internal/infrastructure/config"
)

// maxEmployeeResponseSize limits the response body read from the HR service
const maxEmployeeResponseSize = 64 * 1024

// errUnexpectedStatus marks a non-2xx, non-404 response from the HR service
var errUnexpectedStatus = errors.New("directory: unexpected HTTP status")

// errDocumentMismatch marks an employee record returned for another document
var errDocumentMismatch = errors.New("directory: employee document does not match request")

// HTTPDirectory queries a remote HR service at GET {baseURL}/employees/{dni}.
// Calls go through a circuit breaker; every failure is reported to the caller
// as an employee-not-found error.
type HTTPDirectory struct {
	baseURL    string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	logger     *zap.Logger
}

// NewHTTPDirectory creates an HTTP directory client from configuration
func NewHTTPDirectory(cfg config.DirectoryConfig, logger *zap.Logger) (*HTTPDirectory, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("directory: base URL is required")
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("directory: invalid base URL: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	threshold := cfg.BreakerFailureThreshold
	if threshold == 0 {
		threshold = 5
	}

	d := &HTTPDirectory{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
	d.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "hr-directory",
		MaxRequests: cfg.BreakerMaxRequests,
		Interval:    cfg.BreakerInterval,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})
	return d, nil
}

// Lookup fetches the employee for dni from the HR service
func (d *HTTPDirectory) Lookup(ctx context.Context, dni string) (*seller.Employee, error) {
	result, err := d.breaker.Execute(func() (interface{}, error) {
		return d.fetch(ctx, dni)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			d.logger.Warn("HR directory circuit open, treating employee as not found",
				zap.String("dni", dni), zap.Error(err))
		} else {
			d.logger.Error("HR directory lookup failed, treating employee as not found",
				zap.String("dni", dni), zap.Error(err))
		}
		return nil, seller.NewEmployeeNotFoundError(dni)
	}

	employee, _ := result.(*seller.Employee)
	if employee == nil {
		return nil, seller.NewEmployeeNotFoundError(dni)
	}
	return employee, nil
}

// State returns the current circuit breaker state
func (d *HTTPDirectory) State() gobreaker.State {
	return d.breaker.State()
}

// fetch performs one request. A 404 yields (nil, nil) so that an unknown
// employee does not count as a breaker failure.
func (d *HTTPDirectory) fetch(ctx context.Context, dni string) (*seller.Employee, error) {
	endpoint := fmt.Sprintf("%s/employees/%s", d.baseURL, url.PathEscape(dni))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("directory: failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("directory: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		d.logger.Debug("employee not found in HR directory", zap.String("dni", dni))
		return nil, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: %d", errUnexpectedStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxEmployeeResponseSize))
	if err != nil {
		return nil, fmt.Errorf("directory: failed to read response: %w", err)
	}

	var employee seller.Employee
	if err := json.Unmarshal(body, &employee); err != nil {
		return nil, fmt.Errorf("directory: failed to decode employee: %w", err)
	}
	switch employee.DNI {
	case "":
		employee.DNI = dni
	case dni:
	default:
		return nil, fmt.Errorf("%w: got %s", errDocumentMismatch, employee.DNI)
	}
	return &employee, nil
}

var _ seller.EmployeeDirectory = (*HTTPDirectory)(nil)
