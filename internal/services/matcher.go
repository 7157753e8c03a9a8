package services

import (
	"strings"

	"clinicBack/internal/models"
)

// MatchCasesByTitle returns the cases whose trimmed title is exactly equal to
// the trimmed treatment title. Case-sensitive, whitespace-insensitive, no
// substring or fuzzy matching. Gallery data older than the link tables relied
// on title equality as an implicit link; this keeps that data resolving
// without a migration, and is only consulted when the explicit relations
// yield nothing.
func MatchCasesByTitle(cases []models.Case, treatmentTitle string) []models.Case {
	want := strings.TrimSpace(treatmentTitle)
	if want == "" {
		return nil
	}

	var matched []models.Case
	for _, c := range cases {
		if strings.TrimSpace(c.Title) == want {
			matched = append(matched, c)
		}
	}
	return matched
}
