package models

// FieldAnalysis holds the soft checks of one free-text reflection field.
type FieldAnalysis struct {
	WordCount      int      `json:"word_count"`
	CharacterCount int      `json:"character_count"`
	MinWords       int      `json:"min_words"`
	MeetsMinimum   bool     `json:"meets_minimum"`
	IsRushed       bool     `json:"is_rushed"`
	IsMeaningful   bool     `json:"is_meaningful"`
	Issues         []string `json:"issues,omitempty"`
}

// ValidationDetails is the structured result of reflection validation.
// MissingFields lists hard failures; everything else is advisory.
type ValidationDetails struct {
	MissingFields  []string                 `json:"missing_fields,omitempty"`
	Fields         map[string]FieldAnalysis `json:"fields,omitempty"`
	TotalWordCount int                      `json:"total_word_count"`
	Warnings       []string                 `json:"warnings,omitempty"`
}
