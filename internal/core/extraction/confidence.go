package extraction

import "strings"

const confidenceSuffix = "_confidence"

// ConfidenceMap flattens per-field confidence out of the extraction payload.
// Explicit <field>_confidence entries win; otherwise a sentinel value maps to
// "not_found" and anything present maps to "high".
func ConfidenceMap(ex Extraction) map[string]string {
	confidence := make(map[string]string)
	for _, sectionRaw := range ex {
		section, ok := sectionRaw.(map[string]any)
		if !ok {
			continue
		}
		for field, value := range section {
			if strings.HasSuffix(field, confidenceSuffix) {
				continue
			}
			if isSentinel(value) {
				confidence[field] = "not_found"
			} else {
				confidence[field] = "high"
			}
		}
		// Explicit per-field labels override the derived ones.
		for field, value := range section {
			if !strings.HasSuffix(field, confidenceSuffix) {
				continue
			}
			if label, ok := value.(string); ok {
				confidence[strings.TrimSuffix(field, confidenceSuffix)] = label
			}
		}
	}
	return confidence
}
