package language

import "testing"

func TestIsTamil(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected bool
	}{
		{
			name:     "empty text is not Tamil",
			text:     "",
			expected: false,
		},
		{
			name:     "ASCII text is not Tamil",
			text:     "Hello world",
			expected: false,
		},
		{
			name:     "Tamil text is Tamil",
			text:     "தமிழ் உலகம்",
			expected: true,
		},
		{
			name:     "a single Tamil rune in English text is Tamil",
			text:     "The word த appears here.",
			expected: true,
		},
		{
			name:     "the first code point of the block is Tamil",
			text:     "\u0B80",
			expected: true,
		},
		{
			name:     "the last code point of the block is Tamil",
			text:     "\u0BFF",
			expected: true,
		},
		{
			name:     "the code point before the block is not Tamil",
			text:     "\u0B7F",
			expected: false,
		},
		{
			name:     "the code point after the block is not Tamil",
			text:     "\u0C00",
			expected: false,
		},
		{
			name:     "other Indic scripts are not Tamil",
			text:     "हिन्दी",
			expected: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if actual := IsTamil(tt.text); actual != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, actual)
			}
		})
	}
}

func TestIsTamilASCII(t *testing.T) {
	for r := rune(0); r < 128; r++ {
		if IsTamil(string(r)) {
			t.Fatalf("expected ASCII rune %q not to be Tamil", r)
		}
	}
}

func TestDetect(t *testing.T) {
	if l := Detect("Hello world"); l != English {
		t.Errorf("expected %q, got %q", English, l)
	}
	if l := Detect("தமிழ் உலகம்"); l != Tamil {
		t.Errorf("expected %q, got %q", Tamil, l)
	}
}
