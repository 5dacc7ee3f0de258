package fetcher

import (
	"context"
	"errors"
	"io"
	"testing"

	"ewintr.nl/yt2blog/apperr"
	"ewintr.nl/yt2blog/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeChecker struct {
	exists bool
	err    error
	calls  int
}

func (fc *fakeChecker) VideoExists(_ context.Context, _ model.YoutubeVideoID) (bool, error) {
	fc.calls++
	return fc.exists, fc.err
}

func TestExtractVideoID(t *testing.T) {
	for _, tc := range []struct {
		name  string
		url   string
		expID model.YoutubeVideoID
		expOK bool
	}{
		{name: "watch", url: "https://www.youtube.com/watch?v=dQw4w9WgXcQ", expID: "dQw4w9WgXcQ", expOK: true},
		{name: "watch with params", url: "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s", expID: "dQw4w9WgXcQ", expOK: true},
		{name: "watch v not first", url: "https://www.youtube.com/watch?feature=share&v=dQw4w9WgXcQ", expID: "dQw4w9WgXcQ", expOK: true},
		{name: "mobile", url: "https://m.youtube.com/watch?v=a-b_c1234Z9", expID: "a-b_c1234Z9", expOK: true},
		{name: "short", url: "https://youtu.be/dQw4w9WgXcQ?si=abc", expID: "dQw4w9WgXcQ", expOK: true},
		{name: "embed", url: "https://www.youtube.com/embed/dQw4w9WgXcQ", expID: "dQw4w9WgXcQ", expOK: true},
		{name: "legacy", url: "http://youtube.com/v/dQw4w9WgXcQ", expID: "dQw4w9WgXcQ", expOK: true},
		{name: "shorts", url: "https://www.youtube.com/shorts/dQw4w9WgXcQ", expID: "dQw4w9WgXcQ", expOK: true},
		{name: "playlist", url: "https://www.youtube.com/playlist?feature=x&list=PLabcdefghi", expID: "PLabcdefghi", expOK: true},
		{name: "surrounding whitespace", url: "  https://youtu.be/dQw4w9WgXcQ \n", expID: "dQw4w9WgXcQ", expOK: true},
		{name: "too short", url: "https://www.youtube.com/watch?v=dQw4w9", expOK: false},
		{name: "too long", url: "https://youtu.be/dQw4w9WgXcQX", expOK: false},
		{name: "bad characters", url: "https://www.youtube.com/embed/dQw4w9WgX!Q", expOK: false},
		{name: "long playlist id", url: "https://www.youtube.com/playlist?list=PLrAXtmErZgOeiKm4sgNOknGvNjby9efdf", expOK: false},
		{name: "other site", url: "https://vimeo.com/123456789", expOK: false},
		{name: "empty", url: "", expOK: false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			ytID, ok := ExtractVideoID(tc.url)
			assert.Equal(t, tc.expOK, ok)
			assert.Equal(t, tc.expID, ytID)
		})
	}
}

func TestResolver_Resolve(t *testing.T) {
	ctx := context.Background()
	url := "https://youtu.be/dQw4w9WgXcQ"

	t.Run("invalid url", func(t *testing.T) {
		r := NewResolver(nil, CheckStrict, testLogger())
		_, err := r.Resolve(ctx, "not a url")
		require.Error(t, err)
		assert.True(t, apperr.Is(err, apperr.KindInvalidInput))
	})

	t.Run("no checker", func(t *testing.T) {
		r := NewResolver(nil, CheckStrict, testLogger())
		ytID, err := r.Resolve(ctx, url)
		require.NoError(t, err)
		assert.Equal(t, model.YoutubeVideoID("dQw4w9WgXcQ"), ytID)
	})

	t.Run("check off", func(t *testing.T) {
		checker := &fakeChecker{exists: false}
		r := NewResolver(checker, CheckOff, testLogger())
		_, err := r.Resolve(ctx, url)
		require.NoError(t, err)
		assert.Zero(t, checker.calls)
	})

	t.Run("lenient passes unknown video", func(t *testing.T) {
		checker := &fakeChecker{exists: false}
		r := NewResolver(checker, CheckLenient, testLogger())
		ytID, err := r.Resolve(ctx, url)
		require.NoError(t, err)
		assert.Equal(t, model.YoutubeVideoID("dQw4w9WgXcQ"), ytID)
		assert.Equal(t, 1, checker.calls)
	})

	t.Run("lenient passes lookup failure", func(t *testing.T) {
		r := NewResolver(&fakeChecker{err: errors.New("quota exceeded")}, CheckLenient, testLogger())
		_, err := r.Resolve(ctx, url)
		require.NoError(t, err)
	})

	t.Run("strict rejects unknown video", func(t *testing.T) {
		r := NewResolver(&fakeChecker{exists: false}, CheckStrict, testLogger())
		_, err := r.Resolve(ctx, url)
		require.Error(t, err)
		assert.True(t, apperr.Is(err, apperr.KindInvalidInput))
	})

	t.Run("strict reports lookup failure", func(t *testing.T) {
		r := NewResolver(&fakeChecker{err: apperr.NewConnectivity("could not reach youtube api", nil)}, CheckStrict, testLogger())
		_, err := r.Resolve(ctx, url)
		require.Error(t, err)
		assert.True(t, apperr.Is(err, apperr.KindConnectivity))
	})

	t.Run("strict accepts existing video", func(t *testing.T) {
		r := NewResolver(&fakeChecker{exists: true}, CheckStrict, testLogger())
		ytID, err := r.Resolve(ctx, url)
		require.NoError(t, err)
		assert.Equal(t, model.YoutubeVideoID("dQw4w9WgXcQ"), ytID)
	})
}

func TestParseCheckMode(t *testing.T) {
	mode, err := ParseCheckMode("")
	require.NoError(t, err)
	assert.Equal(t, CheckLenient, mode)

	mode, err = ParseCheckMode(" Strict ")
	require.NoError(t, err)
	assert.Equal(t, CheckStrict, mode)

	_, err = ParseCheckMode("sometimes")
	assert.Error(t, err)
}
