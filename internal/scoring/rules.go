package scoring

import "triage-backend/internal/models"

// Rule weights and thresholds, WHO/NRHM-derived. Built once at process start
// and never mutated; treat every table in this file as read-only.

const (
	weightPallor         = 40
	weightTachycardia    = 10
	weightFatigue        = 10
	weightDizziness      = 5
	weightBreathlessness = 10

	weightHypertension  = 60
	weightEdema         = 20
	weightHeadache      = 10
	weightFetalMovement = 30
	weightAbdominalPain = 15

	weightHighTemp      = 30
	weightSkinInfection = 30
	weightFeverSymptom  = 15
	weightCoughSymptom  = 10

	tachycardiaBPM      = 100
	hypertensionSys     = 140
	hypertensionDia     = 90
	severeHypertSys     = 160
	severeHypertDia     = 110
	glucoseHighMgDL     = 200
	glucoseElevatedMgDL = 140
	feverTempC          = 38.0

	scoreGlucoseHigh     = 80
	scoreGlucoseElevated = 50
	scoreGlucoseNormal   = 10

	scoreMalnutritionHigh     = 70
	scoreMalnutritionModerate = 45
	scoreNutritionBaseline    = 10

	// Malnutrition finding at or above this confidence escalates the
	// nutrition domain from moderate to high.
	malnutritionHighConfidence = 0.7

	// Applied once to the anemia sum after all additive rules, round half up.
	pregnancyMultiplier = 1.2

	maxDomainScore = 100
)

// bucket maps an accumulated sum onto a level via inclusive upper bounds.
type bucket struct {
	lowMax      int
	moderateMax int
	top         models.RiskLevel // level above moderateMax
}

var (
	anemiaBuckets    = bucket{lowMax: 30, moderateMax: 60, top: models.LevelHigh}
	maternalBuckets  = bucket{lowMax: 40, moderateMax: 70, top: models.LevelUrgent}
	infectionBuckets = bucket{lowMax: 30, moderateMax: 60, top: models.LevelHigh}
)

func (b bucket) level(score int) models.RiskLevel {
	switch {
	case score <= b.lowMax:
		return models.LevelLow
	case score <= b.moderateMax:
		return models.LevelModerate
	default:
		return b.top
	}
}

// triagePrecedence is the fixed cross-domain tie-break order. The overall
// triage level comes from the highest-precedence domain at or above moderate,
// never from comparing numeric scores across domains.
var triagePrecedence = []models.Domain{
	models.DomainMaternal,
	models.DomainAnemia,
	models.DomainInfection,
	models.DomainGlycemic,
	models.DomainNutrition,
}
