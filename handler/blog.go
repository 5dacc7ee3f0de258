package handler

import (
	"fmt"
	"net/http"
	"strings"

	"ewintr.nl/yt2blog/apperr"
	"ewintr.nl/yt2blog/model"
	"ewintr.nl/yt2blog/session"
	"golang.org/x/exp/slog"
)

type TranscriptAPI struct {
	flow   *session.Flow
	logger *slog.Logger
}

func NewTranscriptAPI(flow *session.Flow, logger *slog.Logger) *TranscriptAPI {
	return &TranscriptAPI{
		flow:   flow,
		logger: logger,
	}
}

func (t *TranscriptAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	subPath, _ := ShiftPath(r.URL.Path)

	switch {
	case r.Method == http.MethodPost && subPath == "":
		t.Extract(w, r)
	default:
		Message(w, http.StatusNotFound, "not found", fmt.Sprintf("method %s with subpath %q was not registered in the transcript api", r.Method, subPath))
	}
}

func (t *TranscriptAPI) Extract(w http.ResponseWriter, r *http.Request) {
	var req struct {
		YoutubeURL string `json:"youtube_url"`
		Language   string `json:"language"`
	}
	if err := decodeBody(r, &req); err != nil {
		returnErr(t.logger, w, "could not decode request", err)
		return
	}
	youtubeURL := strings.TrimSpace(req.YoutubeURL)
	if youtubeURL == "" {
		returnErr(t.logger, w, "missing url", apperr.NewInvalidInput("YouTube URL is required."))
		return
	}

	ext, err := t.flow.Extract(r.Context(), stateFrom(r.Context()), youtubeURL, req.Language)
	if err != nil {
		returnErr(t.logger, w, "transcript extraction failed", err)
		return
	}

	resp := struct {
		Success    bool   `json:"success"`
		Transcript string `json:"transcript"`
		VideoID    string `json:"video_id"`
		Language   string `json:"language"`
		VideoTitle string `json:"video_title,omitempty"`
		Channel    string `json:"channel,omitempty"`
	}{
		Success:    true,
		Transcript: ext.Preview,
		VideoID:    string(ext.VideoID),
		Language:   ext.Language,
	}
	if ext.Metadata != nil {
		resp.VideoTitle = ext.Metadata.Title
		resp.Channel = ext.Metadata.ChannelTitle
	}

	JSON(w, http.StatusOK, resp)
}

type BlogAPI struct {
	flow   *session.Flow
	logger *slog.Logger
}

func NewBlogAPI(flow *session.Flow, logger *slog.Logger) *BlogAPI {
	return &BlogAPI{
		flow:   flow,
		logger: logger,
	}
}

func (b *BlogAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	subPath, _ := ShiftPath(r.URL.Path)

	switch {
	case r.Method == http.MethodPost && subPath == "":
		b.Generate(w, r)
	case r.Method == http.MethodGet && subPath == "":
		b.Show(w, r)
	default:
		Message(w, http.StatusNotFound, "not found", fmt.Sprintf("method %s with subpath %q was not registered in the blog api", r.Method, subPath))
	}
}

func (b *BlogAPI) Generate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Length   string `json:"length"`
		Style    string `json:"style"`
		Keywords string `json:"keywords"`
		Title    string `json:"title"`
	}
	if err := decodeBody(r, &req); err != nil {
		returnErr(b.logger, w, "could not decode request", err)
		return
	}

	opts := model.NewGenerationOptions(req.Length, req.Style, model.ParseKeywords(req.Keywords), req.Title)
	if _, err := b.flow.Generate(r.Context(), stateFrom(r.Context()), opts); err != nil {
		returnErr(b.logger, w, "blog generation failed", err)
		return
	}

	JSON(w, http.StatusOK, struct {
		Success       bool `json:"success"`
		DocumentReady bool `json:"document_ready"`
	}{
		Success:       true,
		DocumentReady: true,
	})
}

func (b *BlogAPI) Show(w http.ResponseWriter, r *http.Request) {
	state := stateFrom(r.Context())
	if state.Document == nil {
		returnErr(b.logger, w, "no document in session", apperr.NewInvalidInput("No blog content found. Please generate a blog post first."))
		return
	}

	html, err := session.HTMLContent(state.Document)
	if err != nil {
		returnErr(b.logger, w, "could not render document", err)
		return
	}

	JSON(w, http.StatusOK, struct {
		*model.BlogDocument
		HTMLContent string `json:"html_content"`
		VideoID     string `json:"video_id,omitempty"`
	}{
		BlogDocument: state.Document,
		HTMLContent:  html,
		VideoID:      videoID(state),
	})
}

type ExportAPI struct {
	flow   *session.Flow
	logger *slog.Logger
}

func NewExportAPI(flow *session.Flow, logger *slog.Logger) *ExportAPI {
	return &ExportAPI{
		flow:   flow,
		logger: logger,
	}
}

func (e *ExportAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	subPath, _ := ShiftPath(r.URL.Path)

	switch {
	case r.Method == http.MethodPost && subPath == "":
		e.Export(w, r)
	default:
		Message(w, http.StatusNotFound, "not found", fmt.Sprintf("method %s with subpath %q was not registered in the export api", r.Method, subPath))
	}
}

func (e *ExportAPI) Export(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Format string `json:"format"`
	}
	if err := decodeBody(r, &req); err != nil {
		returnErr(e.logger, w, "could not decode request", err)
		return
	}
	format, err := session.ParseFormat(req.Format)
	if err != nil {
		returnErr(e.logger, w, "invalid export format", err)
		return
	}

	content, err := e.flow.Export(stateFrom(r.Context()), format)
	if err != nil {
		returnErr(e.logger, w, "export failed", err)
		return
	}

	JSON(w, http.StatusOK, struct {
		Success bool   `json:"success"`
		Format  string `json:"format"`
		Content string `json:"content"`
	}{
		Success: true,
		Format:  string(format),
		Content: content,
	})
}

func videoID(state *session.State) string {
	if state.Transcript == nil {
		return ""
	}
	return string(state.Transcript.YoutubeID)
}
