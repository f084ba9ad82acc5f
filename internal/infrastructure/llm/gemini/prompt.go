package gemini

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/grospace/lease-engine/internal/core/domain"
)

const (
	classifySnippetChars = 2000
	riskTextChars        = 8000
	answerTextChars      = 12000
	answerSummaryChars   = 4000
)

// leaseSchema mirrors the lease/LOI abstraction schema the extractor is asked
// to fill. Enum fields spell out their closed sets inline so the model stays
// inside them.
const leaseSchema = `{
  "parties": {
    "lessor_name": "string",
    "lessor_address": "string",
    "lessee_name": "string",
    "lessee_address": "string",
    "lessee_cin": "string",
    "leasing_consultant": "string",
    "brand_name": "string"
  },
  "premises": {
    "property_name": "string",
    "full_address": "string",
    "city": "string",
    "state": "string",
    "pincode": "string",
    "property_type": "enum: mall/high_street/cloud_kitchen/metro/transit/cyber_park/hospital/college",
    "floor": "string",
    "unit_number": "string",
    "super_area_sqft": "number",
    "covered_area_sqft": "number",
    "carpet_area_sqft": "number",
    "loading_factor": "string"
  },
  "lease_term": {
    "loi_date": "date",
    "lease_term_years": "number",
    "lease_term_structure": "string",
    "renewal_terms": "string",
    "lock_in_months": "number",
    "notice_period_months": "number",
    "fit_out_period_days": "number",
    "fit_out_rent_free": "boolean",
    "lease_commencement_date": "date/formula",
    "rent_commencement_date": "date/formula",
    "lease_expiry_date": "date/calculated"
  },
  "rent": {
    "rent_model": "enum: fixed/revenue_share/hybrid_mglr/percentage_only",
    "rent_schedule": "json array of yearly rent details",
    "escalation_percentage": "number",
    "escalation_frequency_years": "number",
    "escalation_basis": "string",
    "mglr_payment_day": "number",
    "revenue_reconciliation_day": "number"
  },
  "charges": {
    "cam_rate_per_sqft": "number",
    "cam_area_basis": "enum: super_area/covered_area",
    "cam_monthly": "number",
    "cam_escalation_pct": "number",
    "hvac_rate_per_sqft": "number",
    "electricity_load_kw": "number",
    "electricity_metering": "enum: prepaid/actual/sub_meter",
    "operating_hours": "string"
  },
  "deposits": {
    "security_deposit_amount": "number",
    "security_deposit_months": "number",
    "security_deposit_basis": "string",
    "security_deposit_refund_days": "number",
    "cam_deposit_amount": "number",
    "utility_deposit_per_kw": "number"
  },
  "legal": {
    "usage_restriction": "string",
    "brand_change_allowed": "boolean",
    "structural_alterations_allowed": "boolean",
    "subletting_allowed": "boolean",
    "signage_approval_required": "boolean",
    "jurisdiction_city": "string",
    "arbitration": "boolean",
    "late_payment_interest_pct": "number",
    "tds_obligations": "boolean",
    "relocation_clause": "boolean"
  },
  "franchise": {
    "franchise_model": "enum: FOFO/FOCO/COCO/direct_lease",
    "profit_split": "string",
    "operator_entity": "string",
    "investor_entity": "string"
  }
}`

const licenseSchema = `{
  "certificate_type": "enum: CTO/CTE/FSSAI/trade_license/fire_noc/liquor_license/health_license/signage_permit",
  "issuing_authority": "string",
  "certificate_number": "string",
  "consent_order_number": "string",
  "entity_name": "string",
  "entity_address": "string",
  "activity_category": "string",
  "compliance_category": "string",
  "date_of_issue": "date",
  "valid_from": "date",
  "valid_to": "date",
  "key_conditions_summary": "string (3-5 line summary)",
  "signatory_name": "string",
  "signatory_designation": "string"
}`

func buildClassificationPrompt(text string) string {
	return "Classify this document as one of: lease_loi, license_certificate, franchise_agreement. " +
		"Return only the classification label, nothing else.\n\n" +
		"Document text (first 2000 characters):\n" + truncate(text, classifySnippetChars)
}

func buildExtractionPrompt(text string, docType domain.DocumentType) string {
	schema := leaseSchema
	if docType == domain.DocLicenseCertificate {
		schema = licenseSchema
	}

	return "You are a lease abstraction specialist for Indian commercial real estate. " +
		"Extract the following fields from this lease/LOI document. " +
		"Return valid JSON matching the schema below. " +
		"For each field, also return a confidence score: 'high', 'medium', 'low', or 'not_found'. " +
		"If a field's value is calculated from a formula (e.g., '60 days from handover'), " +
		"return the formula as a string rather than guessing a date.\n\n" +
		"Schema:\n" + schema + "\n\n" +
		"Document text:\n" + text
}

func buildRiskPrompt(text string, extracted map[string]any) string {
	var catalog strings.Builder
	for _, cond := range domain.RiskCatalog {
		fmt.Fprintf(&catalog, "%d. %s: %s\n", cond.ID, cond.Name, cond.Condition)
	}

	extractedJSON, err := json.MarshalIndent(extracted, "", "  ")
	if err != nil {
		extractedJSON = []byte("{}")
	}

	return "You are a commercial lease risk analyst specializing in Indian F&B and retail leases. " +
		"Analyze this lease for the following risk conditions and return flags for any that apply:\n\n" +
		catalog.String() + "\n" +
		"For each flag found, return a JSON object with a top-level key 'flags' containing an array of objects with: " +
		"flag_id (1-8), severity ('high' or 'medium'), explanation (one-line summary), " +
		"clause_text (relevant text from document)\n\n" +
		"Extracted lease data:\n" + string(extractedJSON) + "\n\n" +
		"Full document text:\n" + truncate(text, riskTextChars)
}

func buildAnswerPrompt(question, documentText, extractionSummary string) string {
	return "You are an AI assistant helping users understand their commercial lease documents. " +
		"You have access to the full text of a specific lease/agreement document.\n\n" +
		"Rules:\n" +
		"- Only answer based on the document provided. Do not make assumptions.\n" +
		"- Quote relevant clause text when answering.\n" +
		"- If the answer is not in the document, say so clearly.\n" +
		"- Keep answers concise but complete.\n" +
		"- Use simple language, avoid unnecessary legal jargon.\n\n" +
		"Document text:\n" + truncate(documentText, answerTextChars) + "\n\n" +
		"Extracted data summary:\n" + truncate(extractionSummary, answerSummaryChars) + "\n\n" +
		"User question: " + question
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
