package services

import (
	"context"
	"fmt"
	"time"

	"github.com/amiable-anand/Whatsapp-Chat-Analyzer/internal/domain"
)

func textMessage(ts time.Time, user, text string) domain.Message {
	return domain.Message{Timestamp: ts, User: user, Text: text, Category: domain.CategoryText}
}

func messageAt(day int, hour int) time.Time {
	return time.Date(2023, time.December, day, hour, 30, 0, 0, time.UTC)
}

// mockClassifier returns canned predictions keyed by input text.
type mockClassifier struct {
	predictions map[string]domain.Prediction
	defaultPred domain.Prediction
	failBatches bool
	failAll     bool
	calls       int
}

func (m *mockClassifier) Classify(_ context.Context, text string) (domain.Prediction, error) {
	m.calls++
	if m.failAll {
		return domain.Prediction{}, fmt.Errorf("classifier unavailable")
	}
	if prediction, ok := m.predictions[text]; ok {
		return prediction, nil
	}
	return m.defaultPred, nil
}

func (m *mockClassifier) ClassifyBatch(ctx context.Context, texts []string) ([]domain.Prediction, error) {
	m.calls++
	if m.failBatches || m.failAll {
		return nil, fmt.Errorf("classifier unavailable")
	}
	predictions := make([]domain.Prediction, len(texts))
	for i, text := range texts {
		if prediction, ok := m.predictions[text]; ok {
			predictions[i] = prediction
		} else {
			predictions[i] = m.defaultPred
		}
	}
	return predictions, nil
}
