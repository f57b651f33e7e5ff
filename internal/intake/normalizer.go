package intake

import (
	"fmt"
	"strings"

	"triage-backend/internal/models"
)

// KnownSymptoms is the fixed symptom vocabulary accepted from the frontend.
// Unknown strings are ignored rather than rejected.
var KnownSymptoms = []string{
	"fatigue",
	"dizziness",
	"breathlessness",
	"fever",
	"cough",
	"headache",
	"swelling",
	"abdominal_pain",
	"decreased_fetal_movement",
	"nausea",
	"vomiting",
	"chest_pain",
	"palpitations",
	"blurred_vision",
}

// Physiologically plausible vital ranges. A provided value outside its range
// fails validation; an absent value is always acceptable.
const (
	minSystolic  = 60
	maxSystolic  = 250
	minDiastolic = 40
	maxDiastolic = 150
	minGlucose   = 50
	maxGlucose   = 600
	minTempC     = 35.0
	maxTempC     = 42.0
	minHeartRate = 40
	maxHeartRate = 200
	minSpO2      = 70
	maxSpO2      = 100

	minGestationalWeeks = 1
	maxGestationalWeeks = 45
)

// Normalize validates a raw report and derives the boolean flags the scoring
// engine consumes. It is a pure function: same input, same context. On
// validation failure it returns a nil context and the field-level errors.
func Normalize(raw models.RawInput) (*models.NormalizedContext, []models.FieldError) {
	errs := validate(raw)
	if len(errs) > 0 {
		return nil, errs
	}

	symptomFlags := normalizeSymptoms(raw.Symptoms)

	ctx := &models.NormalizedContext{
		Input:   raw,
		IsValid: true,

		BPSystolic:    raw.Vitals.BPSystolic,
		BPDiastolic:   raw.Vitals.BPDiastolic,
		RandomGlucose: raw.Vitals.RandomGlucose,
		TemperatureC:  raw.Vitals.TemperatureC,
		HeartRate:     raw.Vitals.HeartRate,
		SpO2:          raw.Vitals.SpO2,

		SymptomFlags: symptomFlags,
		IsOffline:    raw.OfflineMode,
	}

	ctx.HasImages = hasImages(raw.CameraInputs)
	ctx.HasMaternalRiskFactors = raw.Pregnant && (intAtLeast(raw.Vitals.BPSystolic, 140) ||
		intAtLeast(raw.Vitals.BPDiastolic, 90) ||
		symptomFlags["headache"] ||
		symptomFlags["swelling"] ||
		symptomFlags["decreased_fetal_movement"])
	ctx.HasAnemiaSymptoms = symptomFlags["fatigue"] || symptomFlags["dizziness"] || symptomFlags["breathlessness"]
	ctx.RequiresUrgentCare = intAtLeast(raw.Vitals.BPSystolic, 160) ||
		intAtLeast(raw.Vitals.BPDiastolic, 100) ||
		symptomFlags["chest_pain"] ||
		symptomFlags["decreased_fetal_movement"]

	return ctx, nil
}

func validate(raw models.RawInput) []models.FieldError {
	var errs []models.FieldError
	add := func(field, format string, args ...interface{}) {
		errs = append(errs, models.FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if raw.Age == nil {
		add("age", "age is required")
	} else if *raw.Age < 0 {
		add("age", "age %d must be non-negative", *raw.Age)
	}

	switch raw.Sex {
	case models.SexMale, models.SexFemale, models.SexOther:
	case "":
		add("sex", "sex is required")
	default:
		add("sex", "sex %q must be one of male, female, other", raw.Sex)
	}

	if raw.WorkerID == "" {
		add("worker_id", "worker_id is required")
	}
	if raw.PatientID == "" {
		add("patient_id", "patient_id is required")
	}

	// Pregnancy invariants are validation errors, never silent corrections.
	if raw.GestationalWeeks != nil && !raw.Pregnant {
		add("gestational_weeks", "gestational_weeks provided but pregnant is false")
	}
	if raw.Pregnant {
		if raw.Sex != "" && raw.Sex != models.SexFemale {
			add("pregnant", "pregnant is true but sex is %q", raw.Sex)
		}
		if raw.GestationalWeeks == nil {
			add("gestational_weeks", "gestational_weeks is required for pregnant patients")
		} else if *raw.GestationalWeeks < minGestationalWeeks || *raw.GestationalWeeks > maxGestationalWeeks {
			add("gestational_weeks", "gestational_weeks %d out of range (%d-%d)",
				*raw.GestationalWeeks, minGestationalWeeks, maxGestationalWeeks)
		}
	}

	v := raw.Vitals
	if v.BPSystolic != nil && (*v.BPSystolic < minSystolic || *v.BPSystolic > maxSystolic) {
		add("vitals.bp_systolic", "systolic BP %d out of range (%d-%d)", *v.BPSystolic, minSystolic, maxSystolic)
	}
	if v.BPDiastolic != nil && (*v.BPDiastolic < minDiastolic || *v.BPDiastolic > maxDiastolic) {
		add("vitals.bp_diastolic", "diastolic BP %d out of range (%d-%d)", *v.BPDiastolic, minDiastolic, maxDiastolic)
	}
	if v.BPSystolic != nil && v.BPDiastolic != nil && *v.BPSystolic <= *v.BPDiastolic {
		add("vitals.bp_systolic", "systolic BP must be greater than diastolic BP")
	}
	if v.RandomGlucose != nil && (*v.RandomGlucose < minGlucose || *v.RandomGlucose > maxGlucose) {
		add("vitals.random_glucose", "glucose %d out of range (%d-%d mg/dL)", *v.RandomGlucose, minGlucose, maxGlucose)
	}
	if v.TemperatureC != nil && (*v.TemperatureC < minTempC || *v.TemperatureC > maxTempC) {
		add("vitals.temperature_c", "temperature %.1f°C out of range (%.0f-%.0f°C)", *v.TemperatureC, minTempC, maxTempC)
	}
	if v.HeartRate != nil && (*v.HeartRate < minHeartRate || *v.HeartRate > maxHeartRate) {
		add("vitals.heart_rate", "heart rate %d out of range (%d-%d bpm)", *v.HeartRate, minHeartRate, maxHeartRate)
	}
	if v.SpO2 != nil && (*v.SpO2 < minSpO2 || *v.SpO2 > maxSpO2) {
		add("vitals.spo2", "SpO2 %d%% out of range (%d-%d%%)", *v.SpO2, minSpO2, maxSpO2)
	}

	return errs
}

// normalizeSymptoms lowercases and underscores reported symptoms and maps
// them onto the known vocabulary.
func normalizeSymptoms(symptoms []string) map[string]bool {
	reported := make(map[string]bool, len(symptoms))
	for _, s := range symptoms {
		s = strings.ReplaceAll(strings.TrimSpace(strings.ToLower(s)), " ", "_")
		reported[s] = true
	}

	flags := make(map[string]bool, len(KnownSymptoms))
	for _, name := range KnownSymptoms {
		flags[name] = reported[name]
	}
	return flags
}

func hasImages(c *models.CameraInputs) bool {
	if c == nil {
		return false
	}
	for _, slot := range models.ImageSlots {
		if c.BySlot(slot) != "" {
			return true
		}
	}
	return false
}

func intAtLeast(v *int, threshold int) bool {
	return v != nil && *v >= threshold
}
