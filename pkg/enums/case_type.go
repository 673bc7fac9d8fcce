package enums

// CaseType distinguishes at-need cases (a death has occurred) from pre-need
// arrangements made in advance. Values match the wire format the dashboard
// and the hosted store already use.
type CaseType string

const (
	CaseTypeAtNeed  CaseType = "At-Need"
	CaseTypePreNeed CaseType = "Pre-Need"
)

// preNeedSpellings lists the exact variants seen in historical rows. The
// match is deliberately case sensitive: anything outside this set has always
// been treated as at-need.
var preNeedSpellings = map[string]struct{}{
	"Pre-Need": {},
	"PreNeed":  {},
	"pre-need": {},
}

// NormalizeCaseType folds raw case_type values into the canonical pair.
// Unrecognized values, including the empty string, are at-need cases.
func NormalizeCaseType(raw string) CaseType {
	if _, ok := preNeedSpellings[raw]; ok {
		return CaseTypePreNeed
	}
	return CaseTypeAtNeed
}

// IsValid checks whether the given type matches the canonical enum.
func (c CaseType) IsValid() bool {
	return c == CaseTypeAtNeed || c == CaseTypePreNeed
}
