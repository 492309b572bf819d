package reservation

import "tourbook/models"

// MergeAnswers combines answer sources into one submission list with at
// most one answer per question id. Sources are given highest-priority
// first; a later source's answer for an already-claimed id is dropped
// silently, so inferred identity answers cannot be overridden by stray
// client-submitted values for the same question. Input order is preserved.
func MergeAnswers(sources ...[]models.Answer) []models.Answer {
	merged := []models.Answer{}
	seen := make(map[string]struct{})
	for _, source := range sources {
		for _, a := range source {
			if _, ok := seen[a.QuestionID]; ok {
				continue
			}
			seen[a.QuestionID] = struct{}{}
			merged = append(merged, a)
		}
	}
	return merged
}
