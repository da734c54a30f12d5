package agent

import "strings"

// Vocabulary is an ordered list of allowed action names. Order matters: the
// parser returns the first member found in the model's reply, and the last
// member is the fallback when nothing matches.
type Vocabulary []string

// DefaultPromptOrder is the vocabulary embedded in decision prompts.
func DefaultPromptOrder() Vocabulary {
	return Vocabulary{"UP", "DOWN", "LEFT", "RIGHT", "A", "B", "START"}
}

// DefaultParseOrder is the vocabulary scanned when parsing replies. It
// differs from the prompt order: the confirm action sits last so it doubles
// as the safe fallback. The asymmetry is inherited behavior; callers who
// want one canonical order pass explicit options to both phases.
func DefaultParseOrder() Vocabulary {
	return Vocabulary{"START", "DOWN", "UP", "LEFT", "RIGHT", "B", "A"}
}

// Join renders the vocabulary for prompt embedding.
func (v Vocabulary) Join() string {
	return strings.Join(v, ", ")
}

// Last returns the fallback member, or empty for an empty vocabulary.
func (v Vocabulary) Last() string {
	if len(v) == 0 {
		return ""
	}
	return v[len(v)-1]
}
