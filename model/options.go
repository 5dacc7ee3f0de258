package model

import "strings"

type Length string

const (
	LengthShort  Length = "short"
	LengthMedium Length = "medium"
	LengthLong   Length = "long"
)

const DefaultStyle = "professional"

var wordCounts = map[Length]int{
	LengthShort:  500,
	LengthMedium: 800,
	LengthLong:   1200,
}

// WordCount maps the length to a target number of words. Unknown lengths
// count as medium.
func (l Length) WordCount() int {
	if wc, ok := wordCounts[l]; ok {
		return wc
	}
	return wordCounts[LengthMedium]
}

type GenerationOptions struct {
	Length      Length
	Style       string
	Keywords    []string
	CustomTitle string
	Metadata    *VideoMetadata
}

func NewGenerationOptions(length, style string, keywords []string, customTitle string) GenerationOptions {
	l := Length(strings.ToLower(strings.TrimSpace(length)))
	if _, ok := wordCounts[l]; !ok {
		l = LengthMedium
	}
	style = strings.TrimSpace(style)
	if style == "" {
		style = DefaultStyle
	}

	kws := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if kw = strings.TrimSpace(kw); kw != "" {
			kws = append(kws, kw)
		}
	}

	return GenerationOptions{
		Length:      l,
		Style:       style,
		Keywords:    kws,
		CustomTitle: strings.TrimSpace(customTitle),
	}
}

// ParseKeywords splits a comma separated keyword list.
func ParseKeywords(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	kws := []string{}
	for _, kw := range strings.Split(s, ",") {
		if kw = strings.TrimSpace(kw); kw != "" {
			kws = append(kws, kw)
		}
	}
	return kws
}
