// Package textmatch performs rule-based binary skill detection over
// normalized text. Matching is intentionally exact: either the skill name is
// present on a word boundary or it is not. There are no confidence scores and
// no semantic inference.
package textmatch

import (
	"regexp"

	"github.com/google/uuid"

	"skill-ready/internal/domain/skill"
)

// minSkillLen guards against single-character names matching everywhere.
const minSkillLen = 2

type VocabularyEntry struct {
	SkillID uuid.UUID
	Name    string
}

// Present reports whether normalizedSkill occurs in normalizedText on word
// boundaries. Both arguments are expected to already be in skill.Normalize
// form; the search itself is still case-insensitive so matching stays
// symmetric if a caller passes raw text.
//
// Word boundaries follow regexp \b semantics. A skill name can therefore still
// match inside a longer compound when the neighboring runes are non-word
// characters ("java" inside "java.util"). That behavior is pinned by tests and
// must not change without a product decision.
func Present(normalizedText, normalizedSkill string) bool {
	if len(normalizedSkill) < minSkillLen {
		return false
	}
	if normalizedText == "" {
		return false
	}

	re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(normalizedSkill) + `\b`)
	if err != nil {
		return false
	}
	return re.MatchString(normalizedText)
}

// MatchAll normalizes rawText once, then tests every vocabulary entry against
// it. Pure and deterministic: ids come back in vocabulary order, deduplicated.
// Cost is one regexp scan per entry.
func MatchAll(rawText string, vocabulary []VocabularyEntry) []uuid.UUID {
	text := skill.Normalize(rawText)
	if text == "" || len(vocabulary) == 0 {
		return nil
	}

	seen := make(map[uuid.UUID]struct{}, len(vocabulary))
	matched := make([]uuid.UUID, 0, len(vocabulary))
	for _, entry := range vocabulary {
		if entry.SkillID == uuid.Nil {
			continue
		}
		if _, dup := seen[entry.SkillID]; dup {
			continue
		}
		if Present(text, skill.Normalize(entry.Name)) {
			seen[entry.SkillID] = struct{}{}
			matched = append(matched, entry.SkillID)
		}
	}
	if len(matched) == 0 {
		return nil
	}
	return matched
}
