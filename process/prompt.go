package process

import (
	"fmt"
	"strings"

	"ewintr.nl/yt2blog/model"
)

const (
	SystemMessage = "You are an expert content writer specializing in converting video transcripts into engaging blog posts."

	MaxTranscriptLength = 10000
	truncationMarker    = "... [transcript truncated]"
	maxContextTags      = 10
)

const outputContract = `Format the output as JSON with the following structure:
{
  "title": "Blog Title",
  "meta_description": "SEO-optimized meta description",
  "seo_title": "SEO Title",
  "tags": ["tag1", "tag2", "tag3", "tag4", "tag5"],
  "content": "Full blog content with HTML formatting",
  "sections": [
    {"type": "introduction", "content": "Intro text"},
    {"type": "heading", "level": 2, "content": "First H2 Heading"},
    {"type": "paragraph", "content": "Paragraph text"},
    {"type": "list", "style": "bullet", "items": ["First item", "Second item"]},
    {"type": "image_suggestion", "description": "What the image shows", "placement": "after introduction"}
  ],
  "faq": [
    {"question": "First question?", "answer": "Answer to first question"}
  ]
}
Respond with the JSON object only.`

// TruncateTranscript caps the transcript at MaxTranscriptLength characters
// and marks the cut.
func TruncateTranscript(text string) string {
	runes := []rune(text)
	if len(runes) <= MaxTranscriptLength {
		return text
	}

	return string(runes[:MaxTranscriptLength]) + truncationMarker
}

// ComposePrompt builds the instruction for the language model. The
// transcript is expected to be truncated already.
func ComposePrompt(transcript string, opts model.GenerationOptions) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are an expert content writer. Transform the following YouTube video transcript into a well-structured, SEO-optimized blog post of approximately %d words.\n\n", opts.Length.WordCount())

	if vc := videoContext(opts.Metadata); vc != "" {
		b.WriteString(vc)
		b.WriteString("\n")
	}

	style := opts.Style
	if style == "" {
		style = model.DefaultStyle
	}
	keywords := "relevant keywords"
	if len(opts.Keywords) > 0 {
		keywords = strings.Join(opts.Keywords, ", ")
	}
	fmt.Fprintf(&b, "Write in a %s style and include the following keywords where appropriate: %s.\n\n", style, keywords)

	b.WriteString("Also include:\n")
	b.WriteString("- Meta description (150-160 characters)\n")
	b.WriteString("- SEO title (50-60 characters)\n")
	b.WriteString("- 5 relevant tags\n\n")

	b.WriteString("Structure the blog post with:\n")
	if opts.CustomTitle != "" {
		fmt.Fprintf(&b, "1. An engaging title (using the suggestion: %s)\n", opts.CustomTitle)
	} else {
		b.WriteString("1. An engaging title\n")
	}
	b.WriteString("2. A compelling introduction that hooks the reader\n")
	b.WriteString("3. Main content with appropriate H2 and H3 headings\n")
	b.WriteString("4. Bullet points or numbered lists where appropriate\n")
	b.WriteString("5. Practical examples taken from the video\n")
	b.WriteString("6. A conclusion with a call-to-action\n")
	b.WriteString("7. A FAQ section with 3-5 relevant questions and answers\n\n")

	b.WriteString(outputContract)
	b.WriteString("\n\nHere's the transcript:\n")
	b.WriteString(transcript)

	return b.String()
}

func videoContext(md *model.VideoMetadata) string {
	if md == nil {
		return ""
	}

	lines := []string{}
	if md.Title != "" {
		lines = append(lines, fmt.Sprintf("- Title: %s", md.Title))
	}
	if md.ChannelTitle != "" {
		lines = append(lines, fmt.Sprintf("- Channel: %s", md.ChannelTitle))
	}
	if date := md.PublishedDate(); date != "" {
		lines = append(lines, fmt.Sprintf("- Published: %s", date))
	}
	if len(md.Tags) > 0 {
		tags := md.Tags
		if len(tags) > maxContextTags {
			tags = tags[:maxContextTags]
		}
		lines = append(lines, fmt.Sprintf("- Tags: %s", strings.Join(tags, ", ")))
	}
	if md.CategoryID != "" {
		lines = append(lines, fmt.Sprintf("- Category: %s", md.CategoryID))
	}
	if len(lines) == 0 {
		return ""
	}

	return "Video context:\n" + strings.Join(lines, "\n") + "\n"
}
