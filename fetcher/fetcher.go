package fetcher

import (
	"context"
	"fmt"
	"strings"

	"ewintr.nl/yt2blog/apperr"
	"ewintr.nl/yt2blog/model"
	"golang.org/x/exp/slog"
)

type Fetcher struct {
	source   TrackSource
	captions CaptionLister
	logger   *slog.Logger
}

// NewFetcher creates a transcript fetcher. captions is optional and only used
// to report on the official caption listing.
func NewFetcher(source TrackSource, captions CaptionLister, logger *slog.Logger) *Fetcher {
	return &Fetcher{
		source:   source,
		captions: captions,
		logger:   logger,
	}
}

// Fetch retrieves the transcript in the requested language, or in the
// default language of the video when that one is not available.
func (f *Fetcher) Fetch(ctx context.Context, ytID model.YoutubeVideoID, language string) (*model.Transcript, error) {
	language = strings.TrimSpace(language)
	if f.captions != nil && language != "" {
		f.checkCaptions(ctx, ytID, language)
	}

	tracks, err := f.source.ListTracks(ctx, ytID)
	if err != nil {
		return nil, err
	}
	if len(tracks) == 0 {
		return nil, apperr.NewNoTranscript(string(ytID), "")
	}

	track, found := SelectTrack(tracks, language)
	switch {
	case language == "":
		f.logger.Info("using default transcript", slog.String("video", string(ytID)), slog.String("language", track.LanguageCode))
	case !found:
		f.logger.Warn("requested language not available, using default transcript", slog.String("video", string(ytID)), slog.String("requested", language), slog.String("language", track.LanguageCode))
	default:
		f.logger.Info("found transcript in requested language", slog.String("video", string(ytID)), slog.String("language", track.LanguageCode))
	}

	segments, err := f.source.FetchSegments(ctx, track)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transcript segments: %w", err)
	}

	transcript, err := model.NewTranscript(ytID, track.LanguageCode, Normalize(segments))
	if err != nil {
		f.logger.Warn("transcript is empty after processing", slog.String("video", string(ytID)))
		return nil, apperr.NewEmptyTranscript(string(ytID))
	}

	return transcript, nil
}

func (f *Fetcher) checkCaptions(ctx context.Context, ytID model.YoutubeVideoID, language string) {
	tracks, err := f.captions.CaptionTracks(ctx, ytID)
	if err != nil {
		f.logger.Warn("could not list caption tracks", slog.String("video", string(ytID)), slog.String("error", err.Error()))
		return
	}
	f.logger.Info("found caption tracks", slog.String("video", string(ytID)), slog.Int("count", len(tracks)))

	available := make([]string, 0, len(tracks))
	for _, t := range tracks {
		if strings.EqualFold(t.Language, language) {
			return
		}
		available = append(available, t.Language)
	}
	f.logger.Warn("requested language not in caption tracks", slog.String("video", string(ytID)), slog.String("requested", language), slog.String("available", strings.Join(available, ",")))
}

// SelectTrack picks the track for the language. If there is none, the first
// manually created track is the default, otherwise the first generated one.
// The boolean reports whether the requested language was found.
func SelectTrack(tracks []model.TranscriptTrack, language string) (model.TranscriptTrack, bool) {
	if language != "" {
		for _, t := range tracks {
			if t.LanguageCode == language {
				return t, true
			}
		}
		for _, t := range tracks {
			if strings.EqualFold(t.LanguageCode, language) {
				return t, true
			}
		}
	}

	for _, t := range tracks {
		if !t.AutoGenerated {
			return t, false
		}
	}

	return tracks[0], false
}
