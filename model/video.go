package model

import "regexp"

var videoIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

type YoutubeVideoID string

func (id YoutubeVideoID) Valid() bool {
	return videoIDPattern.MatchString(string(id))
}

func (id YoutubeVideoID) URL() string {
	return "https://www.youtube.com/watch?v=" + string(id)
}

type VideoMetadata struct {
	YoutubeID    YoutubeVideoID `json:"video_id"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	ChannelTitle string         `json:"channel_title"`
	PublishedAt  string         `json:"published_at"`
	Tags         []string       `json:"tags"`
	CategoryID   string         `json:"category_id"`
	Duration     string         `json:"duration"`
	ThumbnailURL string         `json:"thumbnail_url"`
	ViewCount    uint64         `json:"view_count"`
	LikeCount    uint64         `json:"like_count"`
	CommentCount uint64         `json:"comment_count"`
}

// PublishedDate returns the date portion of PublishedAt, e.g. 2023-04-01.
func (md *VideoMetadata) PublishedDate() string {
	if len(md.PublishedAt) > 10 {
		return md.PublishedAt[:10]
	}
	return md.PublishedAt
}

// Attachment is the subset of the metadata that travels with a generated post.
func (md *VideoMetadata) Attachment() *AttachedVideo {
	if md == nil {
		return nil
	}
	return &AttachedVideo{
		Title:        md.Title,
		ChannelTitle: md.ChannelTitle,
		PublishedAt:  md.PublishedAt,
		ThumbnailURL: md.ThumbnailURL,
	}
}

type CaptionTrack struct {
	ID            string
	Language      string
	Name          string
	AutoGenerated bool
}
