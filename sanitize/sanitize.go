// Package sanitize turns the free-text reply of a completion model into a
// keyword extraction result.
//
// The reply is untrusted. The model is asked for JSON only, but it may wrap
// the JSON in a markdown code fence, add prose around it, or return fields of
// the wrong type. Sanitize unwraps one code fence, takes the widest
// brace-delimited span, and keeps only the parts of the parsed object that
// have the expected shape.
//
// The brace span runs from the first '{' to the last '}'. It is a heuristic,
// not a parser: a stray brace in prose before or after the object widens the
// span, and parsing then fails with a MalformedJSONError.
package sanitize

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/a-h/kwextract/models"
)

const (
	DefaultTitle = "Untitled"
	fence        = "```"
)

// NoJSONError is returned when the reply contains no brace-delimited span.
// Raw is the reply after whitespace trimming and fence removal.
type NoJSONError struct {
	Raw string
}

func (e *NoJSONError) Error() string {
	return "sanitize: no JSON object found in model output"
}

// MalformedJSONError is returned when the brace-delimited span is not valid JSON.
type MalformedJSONError struct {
	Span string
	Err  error
}

func (e *MalformedJSONError) Error() string {
	return fmt.Sprintf("sanitize: failed to parse model output: %v", e.Err)
}

func (e *MalformedJSONError) Unwrap() error {
	return e.Err
}

func Sanitize(raw string) (result models.ExtractResponse, err error) {
	text := Unfence(strings.TrimSpace(raw))
	span, ok := BraceSpan(text)
	if !ok {
		return result, &NoJSONError{Raw: text}
	}
	var parsed any
	if err = json.Unmarshal([]byte(span), &parsed); err != nil {
		return result, &MalformedJSONError{Span: span, Err: err}
	}
	return Normalize(parsed), nil
}

// Unfence removes a markdown code fence by dropping the first and last lines
// of text. It only unwraps once: text inside the fence is left alone.
// The input is expected to be trimmed already.
func Unfence(text string) string {
	if !strings.HasPrefix(text, fence) {
		return text
	}
	lines := strings.Split(text, "\n")
	if len(lines) < 3 {
		return ""
	}
	return strings.TrimSpace(strings.Join(lines[1:len(lines)-1], "\n"))
}

// BraceSpan returns the text from the first '{' to the last '}', inclusive.
func BraceSpan(text string) (span string, ok bool) {
	start := strings.Index(text, "{")
	if start < 0 {
		return "", false
	}
	end := strings.LastIndex(text, "}")
	if end < start {
		return "", false
	}
	return text[start : end+1], true
}

// Normalize builds a result from a parsed JSON value, dropping anything that
// doesn't have the expected shape. A level2 list that is missing is treated
// as empty; one that is present but not a list drops the whole group.
func Normalize(parsed any) models.ExtractResponse {
	result := models.ExtractResponse{
		Title:    DefaultTitle,
		Keywords: []models.KeywordGroup{},
	}
	obj, ok := parsed.(map[string]any)
	if !ok {
		return result
	}
	if title, ok := obj["title"].(string); ok {
		result.Title = title
	}
	items, _ := obj["keywords"].([]any)
	for _, item := range items {
		if group, ok := normalizeGroup(item); ok {
			result.Keywords = append(result.Keywords, group)
		}
	}
	return result
}

func normalizeGroup(item any) (group models.KeywordGroup, ok bool) {
	obj, ok := item.(map[string]any)
	if !ok {
		return group, false
	}
	level1, ok := obj["level1"].(string)
	if !ok || level1 == "" {
		return group, false
	}
	var level2 []any
	if v, present := obj["level2"]; present {
		if level2, ok = v.([]any); !ok {
			return group, false
		}
	}
	group = models.KeywordGroup{
		Level1: level1,
		Level2: make([]string, 0, len(level2)),
	}
	for _, v := range level2 {
		if s, isString := v.(string); isString {
			group.Level2 = append(group.Level2, s)
		}
	}
	return group, true
}
