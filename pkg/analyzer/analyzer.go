package analyzer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/helmcode/flowchart-explainer/pkg/llm"
	"github.com/helmcode/flowchart-explainer/pkg/model"
	"github.com/helmcode/flowchart-explainer/pkg/parser"
	"github.com/helmcode/flowchart-explainer/pkg/prompts"
)

// ErrInvalidInput and ErrEmptyResponse are returned verbatim as the gateway's error
// field, so their text is the user-facing message and stays capitalized.
var (
	ErrInvalidInput  = errors.New("No image data provided")
	ErrConfig        = errors.New("configuration error")
	ErrEmptyResponse = errors.New("No content in AI response")
)

// ClientSource yields the vision client for one analysis. llm.Factory satisfies it.
type ClientSource interface {
	Create() (llm.Vision, error)
}

// Result carries the explanations together with whether the reply had to be
// wrapped as raw text.
type Result struct {
	Explanations []model.Explanation
	Fallback     bool
}

type Analyzer struct {
	source ClientSource
	prompt prompts.Prompt
	logger zerolog.Logger
}

func New(source ClientSource, logger zerolog.Logger) *Analyzer {
	return &Analyzer{source: source, prompt: prompts.Flowchart(), logger: logger}
}

// NewWithLLM always uses the given client.
func NewWithLLM(v llm.Vision, logger zerolog.Logger) *Analyzer {
	return New(staticSource{v}, logger)
}

// Analyze asks the model to explain the flowchart in imageBase64, a data URL.
func (a *Analyzer) Analyze(ctx context.Context, imageBase64 string) ([]model.Explanation, error) {
	res, err := a.AnalyzeDetailed(ctx, imageBase64)
	if err != nil {
		return nil, err
	}
	return res.Explanations, nil
}

func (a *Analyzer) AnalyzeDetailed(ctx context.Context, imageBase64 string) (*Result, error) {
	if strings.TrimSpace(imageBase64) == "" {
		return nil, ErrInvalidInput
	}

	client, err := a.source.Create()
	if err != nil {
		if errors.Is(err, llm.ErrMissingCredential) {
			return nil, fmt.Errorf("%w: %w", ErrConfig, err)
		}
		return nil, err
	}

	a.logger.Info().Msg("analyzing flowchart with AI")

	raw, err := client.DescribeImage(ctx, a.prompt.System, a.prompt.Instruction, imageBase64)
	if err != nil {
		if errors.Is(err, llm.ErrEmptyResponse) {
			return nil, ErrEmptyResponse
		}
		var upErr *llm.UpstreamError
		if errors.As(err, &upErr) {
			return nil, upErr
		}
		return nil, fmt.Errorf("AI request failed: %w", err)
	}

	parsed := parser.Parse(raw)
	if parsed.Fallback {
		a.logger.Warn().Int("chars", len(raw)).Msg("AI response is not a JSON list, returning raw text")
	} else {
		a.logger.Info().Int("explanations", len(parsed.Explanations)).Msg("AI response parsed")
	}
	return &Result{Explanations: parsed.Explanations, Fallback: parsed.Fallback}, nil
}

type staticSource struct{ v llm.Vision }

func (s staticSource) Create() (llm.Vision, error) { return s.v, nil }
