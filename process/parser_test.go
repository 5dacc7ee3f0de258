package process

import (
	"testing"

	"ewintr.nl/yt2blog/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBlog(t *testing.T) {
	for _, tc := range []struct {
		name string
		raw  string
		exp  *model.BlogDocument
	}{
		{
			name: "surrounding text",
			raw:  `Here you go: {"title":"T","content":"C"} thanks`,
			exp:  &model.BlogDocument{Title: "T", Content: "C"},
		},
		{
			name: "code fence",
			raw:  "```json\n{\"title\": \"T\", \"content\": \"C\", \"tags\": [\"a\", \"b\"]}\n```",
			exp:  &model.BlogDocument{Title: "T", Content: "C", Tags: []string{"a", "b"}},
		},
		{
			name: "no braces",
			raw:  "Just some prose.",
			exp: &model.BlogDocument{
				Title:    "Generated Blog Post",
				Content:  "Just some prose.",
				Sections: []model.Section{{Type: model.SectionParagraph, Content: "Just some prose."}},
			},
		},
		{
			name: "invalid json",
			raw:  `{"title": "T", "content": }`,
			exp: &model.BlogDocument{
				Title:    "Generated Blog Post",
				Content:  `{"title": "T", "content": }`,
				Sections: []model.Section{{Type: model.SectionParagraph, Content: `{"title": "T", "content": }`}},
			},
		},
		{
			name: "missing title",
			raw:  `{"content":"C"}`,
			exp:  &model.BlogDocument{Title: "Generated Title", Content: "C"},
		},
		{
			name: "missing content",
			raw:  `{"title":"T","content":"  "}`,
			exp:  &model.BlogDocument{Title: "T", Content: "Generated Content"},
		},
		{
			name: "tags as string",
			raw:  `{"title":"T","content":"C","tags":"go, testing ,"}`,
			exp:  &model.BlogDocument{Title: "T", Content: "C", Tags: []string{"go", "testing"}},
		},
		{
			name: "wrong types are dropped",
			raw:  `{"title":"T","content":"C","seo_title":42,"tags":{"a":1},"sections":"none","faq":[1,{"question":"Q?","answer":"A."}]}`,
			exp:  &model.BlogDocument{Title: "T", Content: "C", FAQ: []model.FAQ{{Question: "Q?", Answer: "A."}}},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.exp, ParseBlog(tc.raw, nil))
		})
	}
}

func TestParseBlog_Complete(t *testing.T) {
	raw := `{
  "title": "Learning Go",
  "meta_description": "Everything about Go.",
  "seo_title": "Learn Go Fast",
  "tags": ["go", "programming"],
  "content": "<h1>Learning Go</h1><p>Go is fun.</p>",
  "sections": [
    {"type": "introduction", "content": "Intro"},
    {"type": "heading", "level": 2, "content": "Why Go"},
    {"type": "list", "style": "numbered", "items": ["one", "two"]},
    {"type": "image_suggestion", "description": "A gopher", "placement": "top"},
    {"content": "untyped"}
  ],
  "faq": [{"question": "Is Go fast?", "answer": "Yes."}]
}`
	md := &model.VideoMetadata{
		YoutubeID:    "dQw4w9WgXcQ",
		Title:        "Video",
		ChannelTitle: "Gophers",
		PublishedAt:  "2023-05-17T09:30:00Z",
		ThumbnailURL: "https://i.ytimg.com/vi/dQw4w9WgXcQ/hqdefault.jpg",
		ViewCount:    10,
	}

	doc := ParseBlog(raw, md)
	assert.Equal(t, "Learning Go", doc.Title)
	assert.Equal(t, "Everything about Go.", doc.MetaDescription)
	assert.Equal(t, "Learn Go Fast", doc.SEOTitle)
	assert.Equal(t, []string{"go", "programming"}, doc.Tags)
	require.Len(t, doc.Sections, 5)
	assert.Equal(t, model.Section{Type: model.SectionHeading, Level: 2, Content: "Why Go"}, doc.Sections[1])
	assert.Equal(t, model.Section{Type: model.SectionList, Style: "numbered", Items: []string{"one", "two"}}, doc.Sections[2])
	assert.Equal(t, model.Section{Type: model.SectionImageSuggestion, Description: "A gopher", Placement: "top"}, doc.Sections[3])
	assert.Equal(t, model.SectionParagraph, doc.Sections[4].Type)
	assert.Equal(t, []model.FAQ{{Question: "Is Go fast?", Answer: "Yes."}}, doc.FAQ)
	assert.Equal(t, &model.AttachedVideo{
		Title:        "Video",
		ChannelTitle: "Gophers",
		PublishedAt:  "2023-05-17T09:30:00Z",
		ThumbnailURL: "https://i.ytimg.com/vi/dQw4w9WgXcQ/hqdefault.jpg",
	}, doc.VideoMetadata)

	fallback := ParseBlog("no json here", md)
	assert.Equal(t, "Generated Blog Post", fallback.Title)
	assert.NotNil(t, fallback.VideoMetadata)
}
