package types

// BlankMarker is the placeholder substituted for the extracted answer.
const BlankMarker = "_____"

// FillBlankQuestion is the derived, transient fill-in-the-blank shape.
// Owned by the caller; no shared mutable state.
type FillBlankQuestion struct {
	Question      string   `json:"question"`
	CorrectAnswer string   `json:"correct_answer"`
	Template      string   `json:"template"`
	Blanks        []Blank  `json:"blanks"`
	Variants      []string `json:"variants"`
	Hint          string   `json:"hint,omitempty"`
}

// Blank describes one gap in the question template.
type Blank struct {
	Position int    `json:"position"`
	Answer   string `json:"answer"`
	Strategy string `json:"strategy"`
}
