package redaction

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/NeuralTrust/TrustMask/pkg/detection"
	"github.com/NeuralTrust/TrustMask/pkg/domain"
	"github.com/NeuralTrust/TrustMask/pkg/infra/prometheus"
	"github.com/NeuralTrust/TrustMask/pkg/masking"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

//go:generate mockery --name=Service --dir=. --output=./mocks --filename=service_mock.go --case=underscore --with-expecter
type Service interface {
	Analyze(ctx context.Context, text string) (*AnalysisResult, error)
	AnalyzeAndMask(ctx context.Context, text string) (*MaskResult, error)
}

// Detectors are the independent span producers of one analysis. A nil
// detector contributes no spans.
type Detectors struct {
	Regex    detection.Detector
	NER      detection.Detector
	Location detection.Detector
	Medical  detection.Detector
}

type Options struct {
	// FailOpenNER drops NER spans instead of failing the call when the
	// recognizer errors.
	FailOpenNER bool
}

type service struct {
	logger    *logrus.Logger
	detectors [4]detection.Detector
	options   Options
}

func NewService(logger *logrus.Logger, detectors Detectors, options Options) Service {
	return &service{
		logger: logger,
		// slot order is the union order used by AnalyzeAndMask
		detectors: [4]detection.Detector{
			detectors.Regex,
			detectors.NER,
			detectors.Location,
			detectors.Medical,
		},
		options: options,
	}
}

// Analyze returns the raw output of every detector, without merging or
// resolving overlaps.
func (s *service) Analyze(ctx context.Context, text string) (*AnalysisResult, error) {
	start := time.Now()
	raw, err := s.detect(ctx, text)
	if err != nil {
		return nil, err
	}

	result := &AnalysisResult{
		RegexDetections:    raw[0],
		NERDetections:      raw[1],
		LocationDetections: raw[2],
		MedicalDetections:  raw[3],
	}
	result.TotalDetections = len(raw[0]) + len(raw[1]) + len(raw[2]) + len(raw[3])

	s.observe("analyze", start)
	s.logger.WithFields(logrus.Fields{
		"text_length": utf8.RuneCountInString(text),
		"detections":  result.TotalDetections,
	}).Debug("text analyzed")
	return result, nil
}

// AnalyzeAndMask detects, reconciles and masks text.
func (s *service) AnalyzeAndMask(ctx context.Context, text string) (*MaskResult, error) {
	start := time.Now()
	raw, err := s.detect(ctx, text)
	if err != nil {
		return nil, err
	}

	merged := detection.Merge(text, raw[0])

	union := make(detection.Spans, 0, len(merged)+len(raw[1])+len(raw[2])+len(raw[3]))
	union = append(union, merged...)
	union = append(union, raw[1]...)
	union = append(union, raw[2]...)
	union = append(union, raw[3]...)

	final := detection.Resolve(union)
	result := &MaskResult{
		OriginalText:   text,
		MaskedText:     masking.Mask(text, final),
		Detections:     final,
		DetectionCount: len(final),
		DetectionTypes: DetectionCounts{
			Regex:    len(merged),
			NLP:      len(raw[1]),
			Location: len(raw[2]),
			Medical:  len(raw[3]),
		},
	}

	s.observe("mask", start)
	s.logger.WithFields(logrus.Fields{
		"text_length": utf8.RuneCountInString(text),
		"detections":  result.DetectionCount,
		"regex":       result.DetectionTypes.Regex,
		"nlp":         result.DetectionTypes.NLP,
		"location":    result.DetectionTypes.Location,
		"medical":     result.DetectionTypes.Medical,
	}).Debug("text masked")
	return result, nil
}

// detect runs every detector concurrently. Results land in fixed slots so
// the output does not depend on scheduling.
func (s *service) detect(ctx context.Context, text string) ([4]detection.Spans, error) {
	var results [4]detection.Spans
	if strings.TrimSpace(text) == "" {
		return results, domain.ErrInvalidInput
	}

	g, gctx := errgroup.WithContext(ctx)
	for i, d := range s.detectors {
		i, d := i, d
		if d == nil {
			results[i] = detection.Spans{}
			continue
		}
		g.Go(func() error {
			spans, err := d.Detect(gctx, text)
			if err != nil {
				source := d.Source()
				prometheus.DetectorErrors.WithLabelValues(string(source)).Inc()
				if source == detection.SourceNER && s.options.FailOpenNER {
					s.logger.WithError(err).Warn("entity recognizer failed, continuing without NER spans")
					results[i] = detection.Spans{}
					return nil
				}
				return domain.NewDetectorError(string(source), err)
			}
			if spans == nil {
				spans = detection.Spans{}
			}
			results[i] = spans
			s.countDetections(d.Source(), spans)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.logger.WithError(err).Error("detection failed")
		return results, fmt.Errorf("failed to detect sensitive data: %w", err)
	}
	return results, nil
}

func (s *service) countDetections(source detection.Source, spans detection.Spans) {
	if !prometheus.Config.EnableDetections {
		return
	}
	for _, span := range spans {
		prometheus.DetectionsTotal.WithLabelValues(string(source), string(span.EntityType)).Inc()
	}
}

func (s *service) observe(operation string, start time.Time) {
	if !prometheus.Config.EnableLatency {
		return
	}
	prometheus.AnalysisLatency.WithLabelValues(operation).Observe(float64(time.Since(start).Milliseconds()))
}
