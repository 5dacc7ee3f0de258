package fetcher

import (
	"context"

	"ewintr.nl/yt2blog/model"
)

type CaptionLister interface {
	CaptionTracks(ctx context.Context, ytID model.YoutubeVideoID) ([]model.CaptionTrack, error)
}

// TrackSource is the place the timed captions are read from.
type TrackSource interface {
	ListTracks(ctx context.Context, ytID model.YoutubeVideoID) ([]model.TranscriptTrack, error)
	FetchSegments(ctx context.Context, track model.TranscriptTrack) ([]model.TranscriptSegment, error)
}
