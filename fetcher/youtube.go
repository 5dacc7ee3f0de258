package fetcher

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ewintr.nl/yt2blog/apperr"
	"ewintr.nl/yt2blog/model"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/youtube/v3"
)

type Youtube struct {
	Client  *youtube.Service
	timeout time.Duration
}

func NewYoutube(client *youtube.Service, timeout time.Duration) *Youtube {
	return &Youtube{
		Client:  client,
		timeout: timeout,
	}
}

func (y *Youtube) FetchMetadata(ctx context.Context, ytID model.YoutubeVideoID) (*model.VideoMetadata, error) {
	ctx, cancel := context.WithTimeout(ctx, y.timeout)
	defer cancel()

	response, err := y.Client.Videos.
		List([]string{"snippet", "contentDetails", "statistics"}).
		Id(string(ytID)).
		Context(ctx).
		Do()
	if err != nil {
		return nil, apiError(err)
	}
	if len(response.Items) == 0 || response.Items[0].Snippet == nil {
		return nil, fmt.Errorf("video with id %s not found", ytID)
	}

	item := response.Items[0]
	md := &model.VideoMetadata{
		YoutubeID:    ytID,
		Title:        item.Snippet.Title,
		Description:  item.Snippet.Description,
		ChannelTitle: item.Snippet.ChannelTitle,
		PublishedAt:  item.Snippet.PublishedAt,
		Tags:         item.Snippet.Tags,
		CategoryID:   item.Snippet.CategoryId,
	}
	if item.Snippet.Thumbnails != nil && item.Snippet.Thumbnails.High != nil {
		md.ThumbnailURL = item.Snippet.Thumbnails.High.Url
	}
	if item.ContentDetails != nil {
		md.Duration = item.ContentDetails.Duration
	}
	if item.Statistics != nil {
		md.ViewCount = item.Statistics.ViewCount
		md.LikeCount = item.Statistics.LikeCount
		md.CommentCount = item.Statistics.CommentCount
	}

	return md, nil
}

func (y *Youtube) VideoExists(ctx context.Context, ytID model.YoutubeVideoID) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, y.timeout)
	defer cancel()

	response, err := y.Client.Videos.
		List([]string{"id"}).
		Id(string(ytID)).
		Context(ctx).
		Do()
	if err != nil {
		return false, apiError(err)
	}

	return len(response.Items) > 0, nil
}

func (y *Youtube) CaptionTracks(ctx context.Context, ytID model.YoutubeVideoID) ([]model.CaptionTrack, error) {
	ctx, cancel := context.WithTimeout(ctx, y.timeout)
	defer cancel()

	response, err := y.Client.Captions.
		List([]string{"snippet"}, string(ytID)).
		Context(ctx).
		Do()
	if err != nil {
		return nil, apiError(err)
	}

	tracks := make([]model.CaptionTrack, 0, len(response.Items))
	for _, item := range response.Items {
		if item.Snippet == nil {
			continue
		}
		tracks = append(tracks, model.CaptionTrack{
			ID:            item.Id,
			Language:      item.Snippet.Language,
			Name:          item.Snippet.Name,
			AutoGenerated: strings.EqualFold(item.Snippet.TrackKind, "asr"),
		})
	}

	return tracks, nil
}

func apiError(err error) error {
	var gErr *googleapi.Error
	if errors.As(err, &gErr) {
		return apperr.NewUpstream(gErr.Code, "youtube api request failed", err)
	}

	return apperr.NewTransport("youtube api", err)
}
