package process

import (
	"context"
	"strings"
	"unicode/utf8"

	"ewintr.nl/yt2blog/apperr"
	"ewintr.nl/yt2blog/model"
	"golang.org/x/exp/slog"
)

const MinTranscriptLength = 50

type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

type Generator struct {
	completer Completer
	logger    *slog.Logger
}

func NewGenerator(completer Completer, logger *slog.Logger) *Generator {
	return &Generator{
		completer: completer,
		logger:    logger,
	}
}

func (g *Generator) Generate(ctx context.Context, transcript string, opts model.GenerationOptions) (*model.BlogDocument, error) {
	if utf8.RuneCountInString(strings.TrimSpace(transcript)) < MinTranscriptLength {
		return nil, apperr.NewInvalidInput("Transcript is too short or empty.")
	}

	truncated := TruncateTranscript(transcript)
	if len(truncated) != len(transcript) {
		g.logger.Info("truncated transcript for prompt", slog.Int("max", MaxTranscriptLength))
	}

	prompt := ComposePrompt(truncated, opts)
	g.logger.Info("generating blog post", slog.String("length", string(opts.Length)), slog.String("style", opts.Style), slog.Int("keywords", len(opts.Keywords)))

	raw, err := g.completer.Complete(ctx, prompt)
	if err != nil {
		g.logger.Error("failed to generate blog post", slog.String("error", err.Error()))
		return nil, err
	}

	return ParseBlog(raw, opts.Metadata), nil
}
