// Package prompt holds the system prompts sent to the completion API.
//
// The prompts carry the content rules (stopwords, keyword counts, title
// length, JSON-only output). Nothing in this module enforces them; the
// sanitize package only checks the structure of what comes back.
package prompt

import (
	_ "embed"
	"fmt"
	"os"
)

//go:embed tamil.txt
var tamil string

//go:embed english.txt
var english string

type Templates struct {
	Tamil   string
	English string
}

func Default() Templates {
	return Templates{
		Tamil:   tamil,
		English: english,
	}
}

// For returns the Tamil template if isTamil is set, otherwise the English one.
func (t Templates) For(isTamil bool) string {
	if isTamil {
		return t.Tamil
	}
	return t.English
}

// Load returns the default templates, replacing each one with the contents of
// the named file if the file name is not empty.
func Load(tamilFile, englishFile string) (t Templates, err error) {
	t = Default()
	if t.Tamil, err = readFileOrDefault(tamilFile, t.Tamil); err != nil {
		return t, err
	}
	if t.English, err = readFileOrDefault(englishFile, t.English); err != nil {
		return t, err
	}
	return t, nil
}

func readFileOrDefault(filename, defaultContent string) (string, error) {
	if filename == "" {
		return defaultContent, nil
	}
	contents, err := os.ReadFile(filename)
	if err != nil {
		return "", fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	if len(contents) == 0 {
		return "", fmt.Errorf("prompt file %s is empty", filename)
	}
	return string(contents), nil
}
