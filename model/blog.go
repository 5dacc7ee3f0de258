package model

type SectionType string

const (
	SectionIntroduction    SectionType = "introduction"
	SectionHeading         SectionType = "heading"
	SectionParagraph       SectionType = "paragraph"
	SectionList            SectionType = "list"
	SectionImageSuggestion SectionType = "image_suggestion"
)

type Section struct {
	Type        SectionType `json:"type"`
	Level       int         `json:"level,omitempty"`
	Content     string      `json:"content,omitempty"`
	Style       string      `json:"style,omitempty"`
	Items       []string    `json:"items,omitempty"`
	Description string      `json:"description,omitempty"`
	Placement   string      `json:"placement,omitempty"`
}

type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type AttachedVideo struct {
	Title        string `json:"title"`
	ChannelTitle string `json:"channel_title"`
	PublishedAt  string `json:"published_at"`
	ThumbnailURL string `json:"thumbnail_url"`
}

type BlogDocument struct {
	Title           string         `json:"title"`
	MetaDescription string         `json:"meta_description,omitempty"`
	SEOTitle        string         `json:"seo_title,omitempty"`
	Tags            []string       `json:"tags,omitempty"`
	Content         string         `json:"content"`
	Sections        []Section      `json:"sections,omitempty"`
	FAQ             []FAQ          `json:"faq,omitempty"`
	VideoMetadata   *AttachedVideo `json:"video_metadata,omitempty"`
}
