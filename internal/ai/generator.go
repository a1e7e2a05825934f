package ai

import (
	"context"
	"time"

	"go.uber.org/zap"

	"mandalart/internal/model"
	"mandalart/pkg/metrics"
)

// TextGenerator is the raw-text generation contract Client fulfils.
// Tests substitute a canned implementation.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Generator runs the full prompt -> completion -> normalize pipeline.
type Generator struct {
	client TextGenerator
	locale string
	logger *zap.Logger
}

func NewGenerator(client TextGenerator, locale string, logger *zap.Logger) *Generator {
	return &Generator{client: client, locale: locale, logger: logger}
}

// Questions produces the 3 interview questions for a goal.
func (g *Generator) Questions(ctx context.Context, mainGoal string) ([]model.Question, error) {
	start := time.Now()
	raw, err := g.client.Generate(ctx, QuestionPrompt(mainGoal))
	metrics.RecordGenerationLatency("questions", time.Since(start))
	if err != nil {
		metrics.IncrementGeneration("questions", "error")
		return nil, err
	}

	questions, err := ParseQuestions(raw)
	if err != nil {
		// Raw output is logged for diagnosis, never shown to the user.
		g.logger.Debug("unusable questions response", zap.String("raw", raw), zap.Error(err))
		metrics.IncrementGeneration("questions", "invalid")
		return nil, err
	}

	metrics.IncrementGeneration("questions", "ok")
	return questions, nil
}

// Mandalart produces a normalized 8x8 grid for a goal and its
// interview answers.
func (g *Generator) Mandalart(ctx context.Context, mainGoal string, answers []model.InterviewAnswer) (*model.MandalartData, error) {
	start := time.Now()
	raw, err := g.client.Generate(ctx, GenerationPrompt(mainGoal, answers))
	metrics.RecordGenerationLatency("mandalart", time.Since(start))
	if err != nil {
		metrics.IncrementGeneration("mandalart", "error")
		return nil, err
	}

	data, err := ParseMandalart(raw, g.locale)
	if err != nil {
		g.logger.Debug("unusable mandalart response", zap.String("raw", raw), zap.Error(err))
		metrics.IncrementGeneration("mandalart", "invalid")
		return nil, err
	}

	metrics.IncrementGeneration("mandalart", "ok")
	return data, nil
}
