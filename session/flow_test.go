package session

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"ewintr.nl/yt2blog/apperr"
	"ewintr.nl/yt2blog/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

type fakeResolver struct{}

func (fakeResolver) Resolve(_ context.Context, url string) (model.YoutubeVideoID, error) {
	if !strings.Contains(url, "youtu") {
		return "", apperr.NewInvalidInput("Invalid YouTube URL.")
	}
	return "dQw4w9WgXcQ", nil
}

type fakeFetcher struct {
	text string
	err  error
}

func (ff *fakeFetcher) Fetch(_ context.Context, ytID model.YoutubeVideoID, language string) (*model.Transcript, error) {
	if ff.err != nil {
		return nil, ff.err
	}
	if language == "" {
		language = "en"
	}
	return model.NewTranscript(ytID, language, ff.text)
}

type fakeMetadata struct {
	md  *model.VideoMetadata
	err error
}

func (fm *fakeMetadata) FetchMetadata(_ context.Context, _ model.YoutubeVideoID) (*model.VideoMetadata, error) {
	return fm.md, fm.err
}

type fakeGenerator struct {
	doc  *model.BlogDocument
	err  error
	opts []model.GenerationOptions
}

func (fg *fakeGenerator) Generate(_ context.Context, _ string, opts model.GenerationOptions) (*model.BlogDocument, error) {
	fg.opts = append(fg.opts, opts)
	return fg.doc, fg.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFlow_Extract(t *testing.T) {
	ctx := context.Background()
	long := strings.Repeat("a", 600)
	md := &model.VideoMetadata{Title: "Video", ChannelTitle: "Gophers"}

	t.Run("success", func(t *testing.T) {
		flow := NewFlow(fakeResolver{}, &fakeFetcher{text: long}, &fakeMetadata{md: md}, &fakeGenerator{}, testLogger())
		sess := NewState()
		sess.Document = &model.BlogDocument{Title: "old"}

		ext, err := flow.Extract(ctx, sess, "https://youtu.be/dQw4w9WgXcQ", "de")
		require.NoError(t, err)
		assert.Equal(t, model.YoutubeVideoID("dQw4w9WgXcQ"), ext.VideoID)
		assert.Equal(t, "de", ext.Language)
		assert.Equal(t, strings.Repeat("a", 500)+"...", ext.Preview)
		assert.Equal(t, md, ext.Metadata)

		assert.Equal(t, StageTranscriptReady, sess.Stage())
		assert.Equal(t, long, sess.Transcript.Text)
		assert.Equal(t, md, sess.Metadata)
		assert.Nil(t, sess.Document)
	})

	t.Run("short preview", func(t *testing.T) {
		flow := NewFlow(fakeResolver{}, &fakeFetcher{text: "short text"}, nil, &fakeGenerator{}, testLogger())
		ext, err := flow.Extract(ctx, NewState(), "https://youtu.be/dQw4w9WgXcQ", "")
		require.NoError(t, err)
		assert.Equal(t, "short text", ext.Preview)
		assert.Nil(t, ext.Metadata)
	})

	t.Run("metadata failure is ignored", func(t *testing.T) {
		flow := NewFlow(fakeResolver{}, &fakeFetcher{text: long}, &fakeMetadata{err: errors.New("quota")}, &fakeGenerator{}, testLogger())
		sess := NewState()
		_, err := flow.Extract(ctx, sess, "https://youtu.be/dQw4w9WgXcQ", "")
		require.NoError(t, err)
		assert.NotNil(t, sess.Transcript)
		assert.Nil(t, sess.Metadata)
	})

	for _, tc := range []struct {
		name    string
		url     string
		fetcher *fakeFetcher
		expKind apperr.Kind
	}{
		{name: "invalid url", url: "https://vimeo.com/1", fetcher: &fakeFetcher{text: long}, expKind: apperr.KindInvalidInput},
		{name: "disabled", url: "https://youtu.be/dQw4w9WgXcQ", fetcher: &fakeFetcher{err: apperr.NewTranscriptsDisabled("dQw4w9WgXcQ")}, expKind: apperr.KindTranscriptsDisabled},
		{name: "timeout", url: "https://youtu.be/dQw4w9WgXcQ", fetcher: &fakeFetcher{err: apperr.NewTimeout("timed out", nil)}, expKind: apperr.KindTimeout},
	} {
		t.Run(tc.name, func(t *testing.T) {
			flow := NewFlow(fakeResolver{}, tc.fetcher, &fakeMetadata{md: md}, &fakeGenerator{}, testLogger())
			sess := NewState()
			prev := &model.Transcript{YoutubeID: "aaaaaaaaaaa", LanguageCode: "en", Text: "previous"}
			sess.Transcript = prev
			before := *sess

			_, err := flow.Extract(ctx, sess, tc.url, "")
			require.Error(t, err)
			assert.Equal(t, tc.expKind, apperr.KindOf(err))
			assert.Equal(t, before, *sess)
		})
	}
}

func TestFlow_Generate(t *testing.T) {
	ctx := context.Background()
	md := &model.VideoMetadata{Title: "Video"}

	t.Run("without transcript", func(t *testing.T) {
		gen := &fakeGenerator{doc: &model.BlogDocument{Title: "T"}}
		flow := NewFlow(fakeResolver{}, &fakeFetcher{}, nil, gen, testLogger())
		sess := NewState()
		_, err := flow.Generate(ctx, sess, model.NewGenerationOptions("", "", nil, ""))
		assert.True(t, apperr.Is(err, apperr.KindInvalidInput))
		assert.Empty(t, gen.opts)
		assert.Equal(t, StageEmpty, sess.Stage())
	})

	t.Run("success", func(t *testing.T) {
		gen := &fakeGenerator{doc: &model.BlogDocument{Title: "T", Content: "C"}}
		flow := NewFlow(fakeResolver{}, &fakeFetcher{}, nil, gen, testLogger())
		sess := NewState()
		sess.Transcript = &model.Transcript{Text: "text"}
		sess.Metadata = md

		doc, err := flow.Generate(ctx, sess, model.NewGenerationOptions("long", "", nil, ""))
		require.NoError(t, err)
		assert.Equal(t, "T", doc.Title)
		assert.Equal(t, StageBlogReady, sess.Stage())
		require.Len(t, gen.opts, 1)
		assert.Equal(t, md, gen.opts[0].Metadata)
		assert.Equal(t, model.LengthLong, gen.opts[0].Length)
	})

	t.Run("failure keeps state", func(t *testing.T) {
		gen := &fakeGenerator{err: apperr.NewUpstream(500, "generation service error", nil)}
		flow := NewFlow(fakeResolver{}, &fakeFetcher{}, nil, gen, testLogger())
		sess := NewState()
		sess.Transcript = &model.Transcript{Text: "text"}
		sess.Document = &model.BlogDocument{Title: "previous"}
		before := *sess

		_, err := flow.Generate(ctx, sess, model.NewGenerationOptions("", "", nil, ""))
		assert.True(t, apperr.Is(err, apperr.KindUpstream))
		assert.Equal(t, before, *sess)
	})
}
