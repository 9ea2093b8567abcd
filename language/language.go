// Package language classifies input text by script.
package language

type Language string

const (
	English Language = "en"
	Tamil   Language = "ta"
)

// The Tamil Unicode block. unicode.Tamil only covers the assigned code
// points, so the whole block is checked explicitly.
const (
	tamilBlockStart = '\u0B80'
	tamilBlockEnd   = '\u0BFF'
)

// IsTamil returns true if any rune of text is in the Tamil Unicode block.
// Mixed-script text is Tamil as soon as a single Tamil rune is present.
func IsTamil(text string) bool {
	for _, r := range text {
		if r >= tamilBlockStart && r <= tamilBlockEnd {
			return true
		}
	}
	return false
}

func Detect(text string) Language {
	if IsTamil(text) {
		return Tamil
	}
	return English
}
