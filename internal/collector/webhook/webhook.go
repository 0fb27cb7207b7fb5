// Package webhook is implementation of collector interface over an HTTP webhook.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/failsafe-go/failsafe-go"
	"github.com/failsafe-go/failsafe-go/retrypolicy"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sirupsen/logrus"

	"github.com/Decentr-net/argus/internal/collector"
)

var log = logrus.WithField("layer", "collector").WithField("package", "webhook")

const (
	startAction        = "start_scraping"
	notRegisteredToken = "webhook is not registered"
	maxBodySize        = 1 << 20
)

// nolint:gochecknoglobals
var triggersCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "argus",
	Subsystem: "collector",
	Name:      "triggers_total",
	Help:      "Collection triggers by result.",
}, []string{"result"})

// Config ...
type Config struct {
	URL string
	// Timeout bounds a single attempt.
	Timeout    time.Duration
	MaxRetries int
	BaseDelay  time.Duration
	MaxDelay   time.Duration
	// Interval of periodic triggers. Zero disables them.
	Interval time.Duration
}

type request struct {
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
}

type errorResponse struct {
	Message string `json:"message"`
}

type status struct {
	LastTrigger *time.Time `json:"last_trigger,omitempty"`
	LastError   string     `json:"last_error,omitempty"`
}

type webhook struct {
	url      string
	interval time.Duration
	client   *http.Client
	executor failsafe.Executor[*http.Response]
	now      func() time.Time

	mu   sync.Mutex
	last status
}

// New creates new instance of webhook collector.
func New(c Config) collector.Collector {
	if c.BaseDelay <= 0 {
		c.BaseDelay = 100 * time.Millisecond
	}
	if c.MaxDelay < c.BaseDelay {
		c.MaxDelay = c.BaseDelay
	}
	if c.MaxRetries < 0 {
		c.MaxRetries = 0
	}

	// nolint:bodyclose
	retry := retrypolicy.NewBuilder[*http.Response]().
		WithBackoff(c.BaseDelay, c.MaxDelay).
		WithMaxRetries(c.MaxRetries).
		HandleIf(func(resp *http.Response, err error) bool {
			return err != nil || resp.StatusCode >= http.StatusInternalServerError
		}).
		Build()

	return &webhook{
		url:      c.URL,
		interval: c.Interval,
		client:   &http.Client{Timeout: c.Timeout},
		executor: failsafe.With[*http.Response](retry),
		now:      time.Now,
	}
}

func (w *webhook) Name() string {
	return "collector"
}

// Ping reports the outcome of the latest trigger. Collector outage doesn't make the service unhealthy.
func (w *webhook) Ping(_ context.Context) (interface{}, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.last, nil
}

func (w *webhook) Run(ctx context.Context) error {
	if w.interval <= 0 {
		<-ctx.Done()
		return nil
	}

	t := time.NewTicker(w.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			if _, err := w.Trigger(ctx); err != nil {
				log.WithError(err).Error("failed to trigger collection")
			}
		}
	}
}

func (w *webhook) Trigger(ctx context.Context) (*collector.Result, error) {
	res, err := w.trigger(ctx)

	w.mu.Lock()
	now := w.now()
	w.last.LastTrigger = &now
	w.last.LastError = ""
	if err != nil {
		w.last.LastError = err.Error()
	}
	w.mu.Unlock()

	if err != nil {
		triggersCounter.WithLabelValues("error").Inc()
		return nil, err
	}

	triggersCounter.WithLabelValues("ok").Inc()
	return res, nil
}

func (w *webhook) trigger(ctx context.Context) (*collector.Result, error) {
	if w.url == "" {
		return nil, &collector.Error{
			StatusCode: http.StatusServiceUnavailable,
			Message:    collector.ErrNotConfigured.Error(),
			Err:        collector.ErrNotConfigured,
		}
	}

	body, err := json.Marshal(request{Action: startAction, Timestamp: w.now().UTC()})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	// nolint:bodyclose
	resp, err := w.executor.WithContext(ctx).Get(func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := w.client.Do(req)
		if err != nil {
			return nil, err
		}

		return bufferBody(resp)
	})
	if resp == nil {
		return nil, fmt.Errorf("failed to do request: %w", err)
	}

	data, _ := ioutil.ReadAll(resp.Body)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, responseError(resp.StatusCode, data)
	}

	if !json.Valid(data) {
		// plain text acknowledgements are passed as json strings
		data, _ = json.Marshal(strings.TrimSpace(string(data)))
	}

	return &collector.Result{Payload: data}, nil
}

// bufferBody reads the body in memory so retried responses can be dropped without leaks.
func bufferBody(resp *http.Response) (*http.Response, error) {
	defer resp.Body.Close()

	data, err := ioutil.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}

	resp.Body = ioutil.NopCloser(bytes.NewReader(data))
	return resp, nil
}

func responseError(code int, data []byte) error {
	text := strings.TrimSpace(string(data))

	var e errorResponse
	if err := json.Unmarshal(data, &e); err == nil && e.Message != "" {
		if strings.Contains(e.Message, notRegisteredToken) {
			return &collector.Error{
				StatusCode: code,
				Message:    collector.NotRegisteredMessage,
				Err:        collector.ErrNotRegistered,
			}
		}

		text = e.Message
	}

	if text == "" {
		text = http.StatusText(code)
	}

	return &collector.Error{StatusCode: code, Message: text}
}
