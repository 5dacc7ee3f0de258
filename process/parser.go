package process

import (
	"encoding/json"
	"strings"

	"ewintr.nl/yt2blog/apperr"
	"ewintr.nl/yt2blog/model"
)

const (
	FallbackTitle      = "Generated Blog Post"
	PlaceholderTitle   = "Generated Title"
	PlaceholderContent = "Generated Content"
)

// ParseBlog turns the raw model output into a document. It never fails: when
// no JSON object can be found the raw text becomes the content.
func ParseBlog(raw string, md *model.VideoMetadata) *model.BlogDocument {
	fields, err := extractObject(raw)
	if err != nil {
		doc := &model.BlogDocument{
			Title:    FallbackTitle,
			Content:  raw,
			Sections: []model.Section{{Type: model.SectionParagraph, Content: raw}},
		}
		doc.VideoMetadata = md.Attachment()
		return doc
	}

	doc := &model.BlogDocument{
		Title:           stringField(fields, "title"),
		MetaDescription: stringField(fields, "meta_description"),
		SEOTitle:        stringField(fields, "seo_title"),
		Tags:            stringList(fields["tags"]),
		Content:         stringField(fields, "content"),
		Sections:        sections(fields["sections"]),
		FAQ:             faq(fields["faq"]),
		VideoMetadata:   md.Attachment(),
	}
	if strings.TrimSpace(doc.Title) == "" {
		doc.Title = PlaceholderTitle
	}
	if strings.TrimSpace(doc.Content) == "" {
		doc.Content = PlaceholderContent
	}

	return doc
}

// extractObject decodes the text between the first opening and the last
// closing brace.
func extractObject(raw string) (map[string]any, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return nil, apperr.NewParse("no json object in response", nil)
	}

	fields := map[string]any{}
	if err := json.Unmarshal([]byte(raw[start:end+1]), &fields); err != nil {
		return nil, apperr.NewParse("could not decode json object in response", err)
	}

	return fields, nil
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func stringList(v any) []string {
	switch val := v.(type) {
	case string:
		return model.ParseKeywords(val)
	case []any:
		list := []string{}
		for _, item := range val {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				list = append(list, strings.TrimSpace(s))
			}
		}
		return list
	default:
		return nil
	}
}

func sections(v any) []model.Section {
	items, ok := v.([]any)
	if !ok {
		return nil
	}

	result := []model.Section{}
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		s := model.Section{
			Type:        model.SectionType(stringField(m, "type")),
			Content:     stringField(m, "content"),
			Style:       stringField(m, "style"),
			Items:       stringList(m["items"]),
			Description: stringField(m, "description"),
			Placement:   stringField(m, "placement"),
		}
		if level, ok := m["level"].(float64); ok {
			s.Level = int(level)
		}
		if s.Type == "" {
			s.Type = model.SectionParagraph
		}
		result = append(result, s)
	}

	return result
}

func faq(v any) []model.FAQ {
	items, ok := v.([]any)
	if !ok {
		return nil
	}

	result := []model.FAQ{}
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		q, a := stringField(m, "question"), stringField(m, "answer")
		if q == "" && a == "" {
			continue
		}
		result = append(result, model.FAQ{Question: q, Answer: a})
	}

	return result
}
