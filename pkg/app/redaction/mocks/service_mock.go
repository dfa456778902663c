package mocks

import (
	"context"
	"fmt"

	"github.com/NeuralTrust/TrustMask/pkg/app/redaction"
	"github.com/stretchr/testify/mock"
)

type Service struct {
	mock.Mock
}

func (m *Service) Analyze(ctx context.Context, text string) (*redaction.AnalysisResult, error) {
	args := m.Called(ctx, text)
	result, ok := args.Get(0).(*redaction.AnalysisResult)
	if !ok && args.Get(0) != nil {
		return nil, fmt.Errorf("expected *redaction.AnalysisResult, got %T", args.Get(0))
	}
	return result, args.Error(1)
}

func (m *Service) AnalyzeAndMask(ctx context.Context, text string) (*redaction.MaskResult, error) {
	args := m.Called(ctx, text)
	result, ok := args.Get(0).(*redaction.MaskResult)
	if !ok && args.Get(0) != nil {
		return nil, fmt.Errorf("expected *redaction.MaskResult, got %T", args.Get(0))
	}
	return result, args.Error(1)
}
