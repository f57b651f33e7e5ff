package models

// RiskLevel classifies a single clinical domain or the overall visit.
type RiskLevel string

const (
	LevelLow      RiskLevel = "low"
	LevelModerate RiskLevel = "moderate"
	LevelHigh     RiskLevel = "high"
	LevelUrgent   RiskLevel = "urgent"
)

// rank orders levels for max comparisons. Urgent outranks high.
func (l RiskLevel) rank() int {
	switch l {
	case LevelUrgent:
		return 3
	case LevelHigh:
		return 2
	case LevelModerate:
		return 1
	default:
		return 0
	}
}

// AtLeast reports whether l is at or above other in severity.
func (l RiskLevel) AtLeast(other RiskLevel) bool {
	return l.rank() >= other.rank()
}

// MaxLevel returns the more severe of two levels.
func MaxLevel(a, b RiskLevel) RiskLevel {
	if b.rank() > a.rank() {
		return b
	}
	return a
}

// Domain is one of the five independently scored clinical risk categories.
type Domain string

const (
	DomainAnemia    Domain = "anemia"
	DomainMaternal  Domain = "maternal"
	DomainGlycemic  Domain = "glycemic"
	DomainNutrition Domain = "nutrition"
	DomainInfection Domain = "infection"
)

// ConcernGeneral is reported as primary concern when no domain reaches
// moderate severity.
const ConcernGeneral = "general_health"

// ReasoningFact records one fired rule for the explainability trace.
type ReasoningFact struct {
	Description string  `json:"description"`
	Weight      int     `json:"weight"`
	Confidence  float64 `json:"confidence"`
}

// DomainScore is the scored outcome for a single clinical domain.
type DomainScore struct {
	Score int       `json:"score"`
	Level RiskLevel `json:"level"`
}

// ScoringResult is the complete output of the risk scoring engine for one
// visit. Immutable once built.
type ScoringResult struct {
	Anemia    DomainScore `json:"anemia"`
	Maternal  DomainScore `json:"maternal"`
	Glycemic  DomainScore `json:"glycemic"`
	Nutrition DomainScore `json:"nutrition"`
	Infection DomainScore `json:"infection"`

	// GlycemicAssessed is false when no glucose measurement was provided:
	// the glycemic domain was not assessed, as opposed to assessed normal.
	GlycemicAssessed bool `json:"glycemic_assessed"`

	TriageLevel    RiskLevel       `json:"triage_level"`
	PrimaryConcern string          `json:"primary_concern"`
	ReasoningTrace []ReasoningFact `json:"reasoning_trace"`

	// OfflineProcessed marks results computed by the reduced offline rule
	// subset; callers must treat these as lower fidelity.
	OfflineProcessed bool `json:"offline_processed"`
}

// ByDomain returns the score for a named domain.
func (r *ScoringResult) ByDomain(d Domain) DomainScore {
	switch d {
	case DomainAnemia:
		return r.Anemia
	case DomainMaternal:
		return r.Maternal
	case DomainGlycemic:
		return r.Glycemic
	case DomainNutrition:
		return r.Nutrition
	case DomainInfection:
		return r.Infection
	}
	return DomainScore{Level: LevelLow}
}

// ActionPlan is the localized communication generated for a scoring result.
type ActionPlan struct {
	Summary          string   `json:"summary_text"`
	Checklist        []string `json:"action_checklist"`
	EmergencySigns   []string `json:"emergency_signs"`
	VoiceText        string   `json:"voice_text"`
	Language         Language `json:"language"`
	LanguageFallback bool     `json:"language_fallback,omitempty"`
}
