package models

// FieldError is a single field-level validation failure reported to the caller.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// NormalizedContext is the validated, flag-enriched view of a RawInput.
// It is built once by the intake normalizer and never mutated afterwards;
// every downstream stage reads from the same instance.
type NormalizedContext struct {
	Input RawInput `json:"input"`

	IsValid          bool         `json:"is_valid"`
	ValidationErrors []FieldError `json:"validation_errors,omitempty"`

	// Validated copies of the vitals, nil preserved for absent measurements.
	BPSystolic    *int     `json:"bp_systolic,omitempty"`
	BPDiastolic   *int     `json:"bp_diastolic,omitempty"`
	RandomGlucose *int     `json:"random_glucose,omitempty"`
	TemperatureC  *float64 `json:"temperature_c,omitempty"`
	HeartRate     *int     `json:"heart_rate,omitempty"`
	SpO2          *int     `json:"spo2,omitempty"`

	SymptomFlags map[string]bool `json:"symptom_flags"`

	HasImages              bool `json:"has_images"`
	HasMaternalRiskFactors bool `json:"has_maternal_risk_factors"`
	HasAnemiaSymptoms      bool `json:"has_anemia_symptoms"`
	RequiresUrgentCare     bool `json:"requires_urgent_care"`
	IsOffline              bool `json:"is_offline"`
}

// HasSymptom reports whether a normalized symptom flag is set.
func (c *NormalizedContext) HasSymptom(name string) bool {
	return c.SymptomFlags[name]
}

// EvidenceFinding is the typed outcome of analyzing one photo slot.
// A slot with no photo produces no finding at all, so "evidence says no"
// (Detected=false) is distinguishable from "no evidence".
type EvidenceFinding struct {
	Detected   bool    `json:"detected"`
	Confidence float64 `json:"confidence"`
}
