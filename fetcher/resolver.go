package fetcher

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"ewintr.nl/yt2blog/apperr"
	"ewintr.nl/yt2blog/model"
	"golang.org/x/exp/slog"
)

// urlPatterns are tried in order, the first valid capture wins.
var urlPatterns = []*regexp.Regexp{
	regexp.MustCompile(`youtube\.com/watch\?(?:[^#]*&)?v=([^&\n?#]+)`),
	regexp.MustCompile(`youtu\.be/([^&\n?#]+)`),
	regexp.MustCompile(`youtube\.com/embed/([^&\n?#]+)`),
	regexp.MustCompile(`youtube\.com/v/([^&\n?#]+)`),
	regexp.MustCompile(`youtube\.com/shorts/([^&\n?#]+)`),
	regexp.MustCompile(`youtube\.com/playlist\?.*\blist=([^&\n?#]+)`),
}

type CheckMode string

const (
	CheckOff     CheckMode = "off"
	CheckLenient CheckMode = "lenient"
	CheckStrict  CheckMode = "strict"
)

func ParseCheckMode(s string) (CheckMode, error) {
	switch m := CheckMode(strings.ToLower(strings.TrimSpace(s))); m {
	case CheckOff, CheckLenient, CheckStrict:
		return m, nil
	case "":
		return CheckLenient, nil
	default:
		return "", fmt.Errorf("unknown video check mode %q", s)
	}
}

type VideoChecker interface {
	VideoExists(ctx context.Context, ytID model.YoutubeVideoID) (bool, error)
}

type Resolver struct {
	checker VideoChecker
	mode    CheckMode
	logger  *slog.Logger
}

// NewResolver creates a resolver. checker may be nil, in which case the
// existence of a video is never verified.
func NewResolver(checker VideoChecker, mode CheckMode, logger *slog.Logger) *Resolver {
	return &Resolver{
		checker: checker,
		mode:    mode,
		logger:  logger,
	}
}

// ExtractVideoID returns the video id embedded in a youtube url.
func ExtractVideoID(rawURL string) (model.YoutubeVideoID, bool) {
	rawURL = strings.TrimSpace(rawURL)
	for _, pattern := range urlPatterns {
		match := pattern.FindStringSubmatch(rawURL)
		if match == nil {
			continue
		}
		if ytID := model.YoutubeVideoID(match[1]); ytID.Valid() {
			return ytID, true
		}
	}

	return "", false
}

func (r *Resolver) Resolve(ctx context.Context, rawURL string) (model.YoutubeVideoID, error) {
	ytID, ok := ExtractVideoID(rawURL)
	if !ok {
		return "", apperr.NewInvalidInput("Invalid YouTube URL format or video ID not found.")
	}
	if r.checker == nil || r.mode == CheckOff {
		return ytID, nil
	}

	exists, err := r.checker.VideoExists(ctx, ytID)
	switch {
	case err != nil && r.mode == CheckStrict:
		return "", fmt.Errorf("could not verify video: %w", err)
	case err != nil:
		r.logger.Warn("could not verify video, continuing", slog.String("video", string(ytID)), slog.String("error", err.Error()))
	case !exists && r.mode == CheckStrict:
		return "", apperr.NewInvalidInput(fmt.Sprintf("Video %s does not exist.", ytID))
	case !exists:
		r.logger.Warn("video not found by youtube api, continuing", slog.String("video", string(ytID)))
	}

	return ytID, nil
}
