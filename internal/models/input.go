package models

// Sex is the patient sex recorded by the health worker.
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
	SexOther  Sex = "other"
)

// Language is the requested output language for the action plan.
type Language string

const (
	LanguageEnglish Language = "english"
	LanguageHindi   Language = "hindi"
	LanguageTamil   Language = "tamil"
	LanguageTelugu  Language = "telugu"
	LanguageBengali Language = "bengali"
)

// ImageSlot identifies one of the supported photo inputs.
type ImageSlot string

const (
	SlotConjunctiva ImageSlot = "conjunctiva"
	SlotSwelling    ImageSlot = "swelling"
	SlotChildArm    ImageSlot = "child_arm"
	SlotSkin        ImageSlot = "skin"
)

// ImageSlots lists all supported slots in evaluation order.
var ImageSlots = []ImageSlot{SlotConjunctiva, SlotSwelling, SlotChildArm, SlotSkin}

// Vitals holds optional vital sign measurements. A nil field means the
// measurement was not taken, which is different from a normal reading.
type Vitals struct {
	BPSystolic    *int     `json:"bp_systolic,omitempty"`
	BPDiastolic   *int     `json:"bp_diastolic,omitempty"`
	RandomGlucose *int     `json:"random_glucose,omitempty"`
	TemperatureC  *float64 `json:"temperature_c,omitempty"`
	HeartRate     *int     `json:"heart_rate,omitempty"`
	SpO2          *int     `json:"spo2,omitempty"`
}

// CameraInputs carries optional base64-encoded photos, one per slot.
type CameraInputs struct {
	ConjunctivaPhoto string `json:"conjunctiva_photo,omitempty"`
	SwellingPhoto    string `json:"swelling_photo,omitempty"`
	ChildArmPhoto    string `json:"child_arm_photo,omitempty"`
	SkinPhoto        string `json:"skin_photo,omitempty"`
}

// BySlot returns the encoded photo for a slot, empty if not provided.
func (c *CameraInputs) BySlot(slot ImageSlot) string {
	if c == nil {
		return ""
	}
	switch slot {
	case SlotConjunctiva:
		return c.ConjunctivaPhoto
	case SlotSwelling:
		return c.SwellingPhoto
	case SlotChildArm:
		return c.ChildArmPhoto
	case SlotSkin:
		return c.SkinPhoto
	}
	return ""
}

// RawInput is the complete report submitted by a frontline health worker.
type RawInput struct {
	Vitals           Vitals        `json:"vitals"`
	Symptoms         []string      `json:"symptoms"`
	CameraInputs     *CameraInputs `json:"camera_inputs,omitempty"`
	Age              *int          `json:"age"`
	Sex              Sex           `json:"sex"`
	Pregnant         bool          `json:"pregnant"`
	GestationalWeeks *int          `json:"gestational_weeks,omitempty"`
	WorkerID         string        `json:"worker_id"`
	PatientID        string        `json:"patient_id"`
	Language         Language      `json:"language"`
	OfflineMode      bool          `json:"offline_mode"`
}
