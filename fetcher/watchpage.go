package fetcher

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"ewintr.nl/yt2blog/apperr"
	"ewintr.nl/yt2blog/model"
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/exp/slog"
)

const (
	defaultWatchBaseURL = "https://www.youtube.com"
	playerResponseVar   = "ytInitialPlayerResponse"
	userAgent           = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
)

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// WatchPage reads the caption tracks that the watch page of a video offers
// to the player.
type WatchPage struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

type WatchPageOption func(*WatchPage)

func WithWatchBaseURL(baseURL string) WatchPageOption {
	return func(w *WatchPage) {
		w.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

func WithWatchHTTPClient(client *http.Client) WatchPageOption {
	return func(w *WatchPage) {
		w.http = client
	}
}

func NewWatchPage(timeout time.Duration, logger *slog.Logger, opts ...WatchPageOption) *WatchPage {
	w := &WatchPage{
		baseURL: defaultWatchBaseURL,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
	for _, opt := range opts {
		opt(w)
	}

	return w
}

type playerResponse struct {
	PlayabilityStatus struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	} `json:"playabilityStatus"`
	Captions *struct {
		Renderer *struct {
			CaptionTracks []playerCaptionTrack `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
}

type playerCaptionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"`
	Name         struct {
		SimpleText string `json:"simpleText"`
		Runs       []struct {
			Text string `json:"text"`
		} `json:"runs"`
	} `json:"name"`
}

func (t playerCaptionTrack) name() string {
	if t.Name.SimpleText != "" {
		return t.Name.SimpleText
	}
	parts := make([]string, 0, len(t.Name.Runs))
	for _, r := range t.Name.Runs {
		parts = append(parts, r.Text)
	}
	return strings.Join(parts, "")
}

func (w *WatchPage) ListTracks(ctx context.Context, ytID model.YoutubeVideoID) ([]model.TranscriptTrack, error) {
	body, err := w.get(ctx, fmt.Sprintf("%s/watch?v=%s", w.baseURL, url.QueryEscape(string(ytID))))
	if err != nil {
		return nil, err
	}

	resp, err := extractPlayerResponse(body)
	if err != nil {
		return nil, apperr.NewUpstream(0, "could not read youtube watch page", err)
	}

	if status := resp.PlayabilityStatus.Status; status != "" && status != "OK" {
		return nil, apperr.NewNoTranscript(string(ytID), strings.ToLower(resp.PlayabilityStatus.Reason))
	}
	if resp.Captions == nil || resp.Captions.Renderer == nil {
		return nil, apperr.NewTranscriptsDisabled(string(ytID))
	}

	tracks := make([]model.TranscriptTrack, 0, len(resp.Captions.Renderer.CaptionTracks))
	for _, ct := range resp.Captions.Renderer.CaptionTracks {
		tracks = append(tracks, model.TranscriptTrack{
			LanguageCode:  ct.LanguageCode,
			Name:          ct.name(),
			AutoGenerated: ct.Kind == "asr",
			URL:           ct.BaseURL,
		})
	}
	w.logger.Info("listed transcript tracks", slog.String("video", string(ytID)), slog.Int("count", len(tracks)))

	return tracks, nil
}

type timedText struct {
	Texts []struct {
		Start float64 `xml:"start,attr"`
		Dur   float64 `xml:"dur,attr"`
		Text  string  `xml:",chardata"`
	} `xml:"text"`
}

func (w *WatchPage) FetchSegments(ctx context.Context, track model.TranscriptTrack) ([]model.TranscriptSegment, error) {
	u, err := url.Parse(track.URL)
	if err != nil {
		return nil, apperr.NewUpstream(0, "invalid transcript track url", err)
	}
	q := u.Query()
	q.Del("fmt")
	u.RawQuery = q.Encode()

	body, err := w.get(ctx, u.String())
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return []model.TranscriptSegment{}, nil
	}

	var tt timedText
	if err := xml.Unmarshal(body, &tt); err != nil {
		return nil, apperr.NewUpstream(0, "could not decode transcript", err)
	}

	segments := make([]model.TranscriptSegment, 0, len(tt.Texts))
	for _, t := range tt.Texts {
		segments = append(segments, model.TranscriptSegment{
			Start:    t.Start,
			Duration: t.Dur,
			Text:     tagPattern.ReplaceAllString(html.UnescapeString(t.Text), ""),
		})
	}

	return segments, nil
}

func (w *WatchPage) get(ctx context.Context, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept-Language", "en-US")
	req.Header.Set("User-Agent", userAgent)

	resp, err := w.http.Do(req)
	if err != nil {
		return nil, apperr.NewTransport("youtube", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperr.NewTransport("youtube", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apperr.NewUpstream(resp.StatusCode, "youtube request failed", nil)
	}

	return body, nil
}

func extractPlayerResponse(page []byte) (*playerResponse, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return nil, err
	}

	var (
		resp  *playerResponse
		dcErr error
	)
	doc.Find("script").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		script := sel.Text()
		idx := strings.Index(script, playerResponseVar)
		if idx < 0 {
			return true
		}
		start := strings.Index(script[idx:], "{")
		if start < 0 {
			return true
		}

		var pr playerResponse
		if err := json.NewDecoder(strings.NewReader(script[idx+start:])).Decode(&pr); err != nil {
			dcErr = err
			return true
		}
		resp = &pr
		return false
	})

	if resp == nil {
		if dcErr != nil {
			return nil, fmt.Errorf("could not decode player response: %w", dcErr)
		}
		return nil, errors.New("player response not found")
	}

	return resp, nil
}
