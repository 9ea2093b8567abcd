package models

type ExtractRequest struct {
	// Text of the paragraph to extract keywords from.
	Text string `json:"text,omitempty"`

	// Paragraph is accepted as an alias of Text. Text takes precedence.
	Paragraph string `json:"paragraph,omitempty"`
}

type ExtractResponse struct {
	Title    string         `json:"title" yaml:"title"`
	Keywords []KeywordGroup `json:"keywords" yaml:"keywords"`
}

type KeywordGroup struct {
	Level1 string   `json:"level1" yaml:"level1"`
	Level2 []string `json:"level2" yaml:"level2"`
}

type ErrorResponse struct {
	Error     string `json:"error"`
	Details   string `json:"details,omitempty"`
	RawOutput string `json:"raw_output,omitempty"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
