// Package ner calls the named entity recognition sidecar and converts its
// entities into PERSON and LOCATION spans.
package ner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/NeuralTrust/TrustMask/pkg/detection"
	"github.com/NeuralTrust/TrustMask/pkg/domain"
	"github.com/NeuralTrust/TrustMask/pkg/infra/httpx"
	"github.com/NeuralTrust/TrustMask/pkg/pii_entities"
	"github.com/sirupsen/logrus"
	"github.com/valyala/fastjson"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const nerPath = "/ner"

// labelEntities maps recognizer labels (English and Turkish model label
// sets) to entity types. Other labels are ignored.
var labelEntities = map[string]pii_entities.Entity{
	"PERSON": pii_entities.Person,
	"PER":    pii_entities.Person,
	"KİŞİ":   pii_entities.Person,
	"KISI":   pii_entities.Person,
	"GPE":    pii_entities.Location,
	"LOC":    pii_entities.Location,
	"YER":    pii_entities.Location,
}

var entityConfidence = map[pii_entities.Entity]float64{
	pii_entities.Person:   pii_entities.ConfidencePerson,
	pii_entities.Location: pii_entities.ConfidenceLow,
}

type Config struct {
	BaseURL string
	Timeout time.Duration
}

type Client struct {
	logger   *logrus.Logger
	http     httpx.Client
	breaker  httpx.CircuitBreaker
	endpoint string
	timeout  time.Duration
	parsers  fastjson.ParserPool
}

func NewClient(logger *logrus.Logger, client httpx.Client, breaker httpx.CircuitBreaker, cfg Config) *Client {
	return &Client{
		logger:   logger,
		http:     client,
		breaker:  breaker,
		endpoint: strings.TrimRight(cfg.BaseURL, "/") + nerPath,
		timeout:  cfg.Timeout,
	}
}

func (c *Client) Source() detection.Source { return detection.SourceNER }

// Status reports the circuit breaker state.
func (c *Client) Status() string {
	return c.breaker.State()
}

// Detect sends text to the sidecar. Offsets in the response are code point
// offsets; entities whose range does not fit the text are dropped and span
// text is always taken from the request text.
func (c *Client) Detect(ctx context.Context, text string) (detection.Spans, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	payload, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return nil, fmt.Errorf("ner: marshal: %w", err)
	}

	var body []byte
	err = c.breaker.Execute(func() error {
		body, err = c.call(ctx, payload)
		return err
	})
	if err != nil {
		c.logger.WithError(err).Warn("entity recognizer call failed")
		return nil, err
	}
	return c.parse(text, body)
}

func (c *Client) call(ctx context.Context, payload []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("ner: request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRecognizerUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("ner: read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", domain.ErrRecognizerUnavailable, resp.StatusCode)
	}
	return body, nil
}

func (c *Client) parse(text string, body []byte) (detection.Spans, error) {
	p := c.parsers.Get()
	defer c.parsers.Put(p)

	v, err := p.ParseBytes(body)
	if err != nil {
		return nil, fmt.Errorf("ner: decode: %w", err)
	}

	runes := []rune(text)
	upper := cases.Upper(language.Turkish)
	spans := detection.Spans{}
	dropped := 0
	for _, e := range v.GetArray("entities") {
		label := upper.String(strings.TrimSpace(string(e.GetStringBytes("label"))))
		entity, ok := labelEntities[label]
		if !ok {
			continue
		}
		start, end := e.GetInt("start"), e.GetInt("end")
		if !e.Exists("start") || !e.Exists("end") || start < 0 || end > len(runes) || start >= end {
			dropped++
			continue
		}
		spans = append(spans, detection.Span{
			EntityType: entity,
			Start:      start,
			End:        end,
			Text:       string(runes[start:end]),
			Confidence: entityConfidence[entity],
		})
	}
	if dropped > 0 {
		c.logger.WithField("dropped", dropped).Warn("entity recognizer returned out of range offsets")
	}
	return spans, nil
}

// NoopRecognizer stands in for the sidecar when recognition is disabled.
type NoopRecognizer struct{}

func (NoopRecognizer) Source() detection.Source { return detection.SourceNER }

func (NoopRecognizer) Detect(context.Context, string) (detection.Spans, error) {
	return detection.Spans{}, nil
}

func (NoopRecognizer) Status() string { return "disabled" }
