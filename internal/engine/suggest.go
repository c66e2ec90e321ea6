package engine

// Remediation texts. One fixed string per deficient metric so repeated
// evaluations of the same input produce identical suggestions.
const (
	suggestFaithfulness  = "Align the test case with the user story: some steps or expectations are not grounded in the stated requirements."
	suggestRelevancy     = "Broaden the test case to address what the user story actually asks for; parts of the requirement are not covered."
	suggestHallucination = "Remove or rework steps that assume behavior the user story does not describe."
	suggestCompleteness  = "Add steps or assertions so the test case covers all of the acceptance criteria."
	suggestPIILeakage    = "Replace realistic personal data in the test data with anonymized placeholder values."
	suggestGeneric       = "Review the test case against the user story and tighten its steps and expected results."
)

// Suggest maps deficient metrics to remediation text. High-quality test
// cases get no suggestions. Triggers are checked in fixed order
// (faithfulness, relevancy, hallucination, completeness, pii_leakage);
// when the quality is not high but nothing triggers, one generic
// suggestion is emitted.
func Suggest(metrics map[Kind]MetricResult, quality QualityLevel) []string {
	if quality == QualityHigh {
		return nil
	}

	var out []string
	if r, ok := metrics[KindFaithfulness]; ok && r.Score < 0.7 {
		out = append(out, suggestFaithfulness)
	}
	if r, ok := metrics[KindRelevancy]; ok && r.Score < 0.7 {
		out = append(out, suggestRelevancy)
	}
	if r, ok := metrics[KindHallucination]; ok && r.Score > 0.3 {
		out = append(out, suggestHallucination)
	}
	if r, ok := metrics[KindCompleteness]; ok && r.Score < 0.7 {
		out = append(out, suggestCompleteness)
	}
	if r, ok := metrics[KindPIILeakage]; ok && r.Score > 0.2 {
		out = append(out, suggestPIILeakage)
	}

	if len(out) == 0 {
		out = append(out, suggestGeneric)
	}
	return out
}
