package domain

// RiskCondition is one entry of the fixed lease risk catalog. The detection
// itself is delegated to the LLM collaborator; the catalog pins the flag ids
// and default severities it must use.
type RiskCondition struct {
	ID        int
	Name      string
	Condition string
	Severity  Severity
}

var RiskCatalog = []RiskCondition{
	{ID: 1, Name: "No lessor lock-in", Condition: "Lessor can terminate but lessee is locked in", Severity: SeverityHigh},
	{ID: 2, Name: "High escalation", Condition: "Escalation > 15% per cycle", Severity: SeverityHigh},
	{ID: 3, Name: "No rent-free fit-out", Condition: "Fit-out period is 0 days or not mentioned", Severity: SeverityMedium},
	{ID: 4, Name: "Excessive security deposit", Condition: "Deposit > 6 months of rent", Severity: SeverityMedium},
	{ID: 5, Name: "Predatory late interest", Condition: "Late payment interest > 18% p.a.", Severity: SeverityMedium},
	{ID: 6, Name: "Unilateral relocation", Condition: "Lessor can relocate lessee without consent", Severity: SeverityHigh},
	{ID: 7, Name: "No renewal option", Condition: "No renewal clause or at sole discretion of lessor", Severity: SeverityMedium},
	{ID: 8, Name: "Uncapped revenue share", Condition: "Revenue share with no maximum cap", Severity: SeverityMedium},
}
