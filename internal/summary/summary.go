package summary

import (
	"context"
	"errors"
	"strings"

	"github.com/ndewijer/Dollar-Trade-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Dollar-Trade-Tracker-Backend/internal/logger"
	"github.com/ndewijer/Dollar-Trade-Tracker-Backend/internal/model"
)

// Fallback texts returned in place of generated prose.
const (
	MissingCredentialText = "API Key configuration error. Please check your settings."
	FailureText           = "Analysis failed due to a technical issue. Please try again later."
	EmptyText             = "No analysis available."
)

// Summarizer produces the narrative summary. It never fails: every problem
// degrades to one of the fallback texts.
type Summarizer struct {
	generator Generator
}

// NewSummarizer creates a Summarizer. A nil generator means no credential is
// configured.
func NewSummarizer(generator Generator) *Summarizer {
	return &Summarizer{generator: generator}
}

// Analyze builds the prompt for txs and stats and asks the generator for an
// analysis. Available is false whenever a fallback text is returned.
func (s *Summarizer) Analyze(ctx context.Context, txs []model.Transaction, stats model.PortfolioStats) model.Summary {
	if s.generator == nil {
		logger.L.Warn("summary requested without an API key")
		return model.Summary{Text: MissingCredentialText}
	}

	text, err := s.generator.Generate(ctx, BuildPrompt(txs, stats))
	switch {
	case errors.Is(err, apperrors.ErrMissingCredential):
		return model.Summary{Text: MissingCredentialText}
	case err != nil:
		logger.L.Error("summary generation failed", "error", err)
		return model.Summary{Text: FailureText}
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return model.Summary{Text: EmptyText}
	}
	return model.Summary{Text: text, Available: true}
}
