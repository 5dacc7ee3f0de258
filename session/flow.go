package session

import (
	"context"
	"time"

	"ewintr.nl/yt2blog/apperr"
	"ewintr.nl/yt2blog/model"
	"golang.org/x/exp/slog"
)

const PreviewLength = 500

type Resolver interface {
	Resolve(ctx context.Context, url string) (model.YoutubeVideoID, error)
}

type TranscriptFetcher interface {
	Fetch(ctx context.Context, ytID model.YoutubeVideoID, language string) (*model.Transcript, error)
}

type MetadataFetcher interface {
	FetchMetadata(ctx context.Context, ytID model.YoutubeVideoID) (*model.VideoMetadata, error)
}

type Generator interface {
	Generate(ctx context.Context, transcript string, opts model.GenerationOptions) (*model.BlogDocument, error)
}

type Extraction struct {
	VideoID  model.YoutubeVideoID
	Language string
	Preview  string
	Metadata *model.VideoMetadata
}

// Flow drives a session from a video url to an exportable blog post.
type Flow struct {
	resolver  Resolver
	fetcher   TranscriptFetcher
	metadata  MetadataFetcher
	generator Generator
	logger    *slog.Logger
}

// NewFlow creates the session flow. metadata may be nil, in which case posts
// are generated without video context.
func NewFlow(resolver Resolver, fetcher TranscriptFetcher, metadata MetadataFetcher, generator Generator, logger *slog.Logger) *Flow {
	return &Flow{
		resolver:  resolver,
		fetcher:   fetcher,
		metadata:  metadata,
		generator: generator,
		logger:    logger,
	}
}

// Extract fetches the transcript of the video and stores it in the session.
// A previously generated document is discarded.
func (f *Flow) Extract(ctx context.Context, sess *State, url, language string) (*Extraction, error) {
	ytID, err := f.resolver.Resolve(ctx, url)
	if err != nil {
		return nil, err
	}

	transcript, err := f.fetcher.Fetch(ctx, ytID, language)
	if err != nil {
		return nil, err
	}

	var md *model.VideoMetadata
	if f.metadata != nil {
		md, err = f.metadata.FetchMetadata(ctx, ytID)
		if err != nil {
			f.logger.Warn("could not fetch video metadata", slog.String("video", string(ytID)), slog.String("error", err.Error()))
			md = nil
		}
	}

	sess.Transcript = transcript
	sess.Metadata = md
	sess.Document = nil
	sess.UpdatedAt = time.Now()
	f.logger.Info("stored transcript", slog.String("session", sess.ID.String()), slog.String("video", string(ytID)), slog.String("language", transcript.LanguageCode))

	return &Extraction{
		VideoID:  ytID,
		Language: transcript.LanguageCode,
		Preview:  transcript.Preview(PreviewLength),
		Metadata: md,
	}, nil
}

// Generate writes a blog post from the transcript in the session.
func (f *Flow) Generate(ctx context.Context, sess *State, opts model.GenerationOptions) (*model.BlogDocument, error) {
	if sess.Transcript == nil {
		return nil, apperr.NewInvalidInput("No transcript found. Please extract a transcript first.")
	}
	opts.Metadata = sess.Metadata

	doc, err := f.generator.Generate(ctx, sess.Transcript.Text, opts)
	if err != nil {
		return nil, err
	}

	sess.Document = doc
	sess.UpdatedAt = time.Now()
	f.logger.Info("stored blog post", slog.String("session", sess.ID.String()), slog.String("title", doc.Title))

	return doc, nil
}
