// Package assistant answers questions with a language model, grounded on the
// local library and an optional vector knowledge base.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/verte-zerg/komorebi/internal/model"
	"github.com/verte-zerg/komorebi/internal/protocol"
)

// ErrMissingAPIKey is returned when no model credential is configured.
var ErrMissingAPIKey = errors.New("API key missing, set it with `komorebi key set`")

// Document is a knowledge base hit.
type Document struct {
	ID        string  `json:"id"`
	Content   string  `json:"content"`
	Title     string  `json:"title,omitempty"`
	Certainty float64 `json:"certainty,omitempty"`
}

// SourceTitle is the title, or "Unknown" when the document has none.
func (d Document) SourceTitle() string {
	if strings.TrimSpace(d.Title) == "" {
		return "Unknown"
	}
	return d.Title
}

// Answer is the model reply with the documents it was given.
type Answer struct {
	Text    string
	Sources []Document
}

// Embedder turns text into a query vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// KnowledgeBase finds documents near a vector.
type KnowledgeBase interface {
	Search(ctx context.Context, vector []float32, threshold float64, limit int) ([]Document, error)
}

// Generator produces text from a system instruction and a prompt.
type Generator interface {
	Generate(ctx context.Context, system, prompt string) (string, error)
}

// Options tune retrieval.
type Options struct {
	MatchThreshold float64
	MatchCount     int
}

// DefaultOptions matches the documented retrieval settings.
func DefaultOptions() Options {
	return Options{MatchThreshold: 0.3, MatchCount: 5}
}

// Assistant runs the ask pipeline.
type Assistant struct {
	gen   Generator
	embed Embedder
	kb    KnowledgeBase
	opts  Options
	log   *zap.Logger
}

// New builds an assistant. embed and kb may be nil, in which case no
// documents are retrieved.
func New(gen Generator, embed Embedder, kb KnowledgeBase, opts Options, log *zap.Logger) *Assistant {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.MatchCount <= 0 {
		opts.MatchCount = DefaultOptions().MatchCount
	}
	return &Assistant{gen: gen, embed: embed, kb: kb, opts: opts, log: log}
}

// Ask answers query with the given library context. Retrieval failures
// degrade to an answer without documents; generation failures are returned.
func (a *Assistant) Ask(ctx context.Context, query string, items []model.LibraryItem, quotes []string, persona model.PersonaConfig) (Answer, error) {
	if a.gen == nil {
		return Answer{}, ErrMissingAPIKey
	}
	persona = protocol.WithPersonaDefaults(persona)
	docs := a.retrieve(ctx, query)

	prompt := UserPrompt(BuildContext(items, quotes, docs), query)
	text, err := a.gen.Generate(ctx, SystemInstruction(persona), prompt)
	if err != nil {
		return Answer{}, fmt.Errorf("generate answer: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		text = SilentAnswer(persona)
	}
	return Answer{Text: text, Sources: docs}, nil
}

func (a *Assistant) retrieve(ctx context.Context, query string) []Document {
	if a.embed == nil || a.kb == nil {
		return nil
	}
	vec, err := a.embed.Embed(ctx, query)
	if err != nil {
		a.log.Warn("embedding failed, answering without documents", zap.Error(err))
		return nil
	}
	if len(vec) == 0 {
		return nil
	}
	docs, err := a.kb.Search(ctx, vec, a.opts.MatchThreshold, a.opts.MatchCount)
	if err != nil {
		a.log.Warn("vector search failed, answering without documents", zap.Error(err))
		return nil
	}
	a.log.Debug("documents retrieved", zap.Int("count", len(docs)))
	return docs
}
