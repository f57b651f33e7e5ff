package scoring

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"triage-backend/internal/models"
)

// Engine evaluates the per-domain clinical rules over a normalized context
// plus image evidence and resolves the overall triage level. It is total:
// every rule is defined over optional fields, so a valid context always
// produces a result and no step can fail.
type Engine struct {
	logger *zap.Logger
}

func NewEngine(logger *zap.Logger) *Engine {
	return &Engine{logger: logger}
}

// trace accumulates reasoning facts in firing order for one run.
type trace struct {
	facts []models.ReasoningFact
}

func (t *trace) add(description string, weight int, confidence float64) {
	t.facts = append(t.facts, models.ReasoningFact{
		Description: description,
		Weight:      weight,
		Confidence:  confidence,
	})
}

// Score runs all five domains and resolves the triage level. The context
// must have passed validation; the controller never calls Score otherwise.
func (e *Engine) Score(ctx *models.NormalizedContext, evidence map[models.ImageSlot]models.EvidenceFinding) *models.ScoringResult {
	if ctx.IsOffline {
		return e.scoreOffline(ctx)
	}

	tr := &trace{}

	result := &models.ScoringResult{
		Anemia:    e.scoreAnemia(ctx, evidence, tr),
		Maternal:  e.scoreMaternal(ctx, evidence, tr),
		Nutrition: e.scoreNutrition(evidence, tr),
		Infection: e.scoreInfection(ctx, evidence, tr),
	}
	result.Glycemic, result.GlycemicAssessed = e.scoreGlycemic(ctx, tr)
	result.ReasoningTrace = tr.facts

	result.TriageLevel, result.PrimaryConcern = resolveTriage(result)

	e.logger.Info("Risk scoring completed",
		zap.String("triage_level", string(result.TriageLevel)),
		zap.String("primary_concern", result.PrimaryConcern),
		zap.Int("facts", len(result.ReasoningTrace)),
	)
	return result
}

// scoreAnemia accumulates additive rules, then applies the pregnancy
// multiplier once to the sum (not per rule), rounding half up.
func (e *Engine) scoreAnemia(ctx *models.NormalizedContext, evidence map[models.ImageSlot]models.EvidenceFinding, tr *trace) models.DomainScore {
	score := 0

	if finding, ok := evidence[models.SlotConjunctiva]; ok && finding.Detected {
		score += weightPallor
		tr.add("Pallor detected in conjunctiva", weightPallor, finding.Confidence)
	}
	if ctx.HeartRate != nil && *ctx.HeartRate > tachycardiaBPM {
		score += weightTachycardia
		tr.add(fmt.Sprintf("Elevated heart rate: %d bpm", *ctx.HeartRate), weightTachycardia, 1.0)
	}
	if ctx.HasSymptom("fatigue") {
		score += weightFatigue
		tr.add("Fatigue reported", weightFatigue, 1.0)
	}
	if ctx.HasSymptom("dizziness") {
		score += weightDizziness
		tr.add("Dizziness reported", weightDizziness, 1.0)
	}
	if ctx.HasSymptom("breathlessness") {
		score += weightBreathlessness
		tr.add("Breathlessness reported", weightBreathlessness, 1.0)
	}

	if ctx.Input.Pregnant && score > 0 {
		boosted := roundHalfUp(float64(score) * pregnancyMultiplier)
		tr.add(fmt.Sprintf("Pregnancy risk multiplier applied (x%.1f): %d -> %d", pregnancyMultiplier, score, boosted),
			boosted-score, 1.0)
		score = boosted
	}

	return finishDomain(score, anemiaBuckets)
}

// scoreMaternal only fires for pregnant patients; everyone else gets a fixed
// {0, low} with no facts.
func (e *Engine) scoreMaternal(ctx *models.NormalizedContext, evidence map[models.ImageSlot]models.EvidenceFinding, tr *trace) models.DomainScore {
	if !ctx.Input.Pregnant {
		return models.DomainScore{Score: 0, Level: models.LevelLow}
	}

	score := 0

	highSys := ctx.BPSystolic != nil && *ctx.BPSystolic >= hypertensionSys
	highDia := ctx.BPDiastolic != nil && *ctx.BPDiastolic >= hypertensionDia
	if highSys || highDia {
		score += weightHypertension
		tr.add(fmt.Sprintf("Elevated BP: %s mmHg", formatBP(ctx.BPSystolic, ctx.BPDiastolic)), weightHypertension, 0.98)
	}

	// The edema rule fires on photographic evidence or on the reported
	// swelling symptom; workers in the field often have only one of the two.
	if finding, ok := evidence[models.SlotSwelling]; ok && finding.Detected {
		score += weightEdema
		tr.add("Edema/swelling detected", weightEdema, finding.Confidence)
	} else if ctx.HasSymptom("swelling") {
		score += weightEdema
		tr.add("Swelling reported", weightEdema, 1.0)
	}

	if ctx.HasSymptom("headache") {
		score += weightHeadache
		tr.add("Headache reported", weightHeadache, 1.0)
	}
	if ctx.HasSymptom("decreased_fetal_movement") {
		score += weightFetalMovement
		tr.add("Decreased fetal movement reported", weightFetalMovement, 0.95)
	}
	if ctx.HasSymptom("abdominal_pain") {
		score += weightAbdominalPain
		tr.add("Abdominal pain reported", weightAbdominalPain, 1.0)
	}

	return finishDomain(score, maternalBuckets)
}

// scoreGlycemic is a fixed-score ladder, not additive. An absent glucose
// measurement means the domain was not assessed at all: no fact is emitted
// and the domain is skipped during triage resolution.
func (e *Engine) scoreGlycemic(ctx *models.NormalizedContext, tr *trace) (models.DomainScore, bool) {
	if ctx.RandomGlucose == nil {
		return models.DomainScore{Score: 0, Level: models.LevelLow}, false
	}

	glucose := *ctx.RandomGlucose
	switch {
	case glucose >= glucoseHighMgDL:
		tr.add(fmt.Sprintf("High random glucose: %d mg/dL", glucose), scoreGlucoseHigh, 0.98)
		return models.DomainScore{Score: scoreGlucoseHigh, Level: models.LevelHigh}, true
	case glucose >= glucoseElevatedMgDL:
		tr.add(fmt.Sprintf("Elevated random glucose: %d mg/dL", glucose), scoreGlucoseElevated, 0.95)
		return models.DomainScore{Score: scoreGlucoseElevated, Level: models.LevelModerate}, true
	default:
		// Informational fact: the measurement happened and was fine. It carries
		// no weight; the baseline score records the assessment itself.
		tr.add(fmt.Sprintf("Normal random glucose: %d mg/dL", glucose), 0, 0.98)
		return models.DomainScore{Score: scoreGlucoseNormal, Level: models.LevelLow}, true
	}
}

// scoreNutrition escalates on the child-arm (MUAC proxy) finding only; the
// confidence threshold decides moderate versus high.
func (e *Engine) scoreNutrition(evidence map[models.ImageSlot]models.EvidenceFinding, tr *trace) models.DomainScore {
	finding, ok := evidence[models.SlotChildArm]
	if !ok || !finding.Detected {
		return models.DomainScore{Score: scoreNutritionBaseline, Level: models.LevelLow}
	}

	if finding.Confidence >= malnutritionHighConfidence {
		tr.add("Malnutrition indicators detected in arm circumference", scoreMalnutritionHigh, finding.Confidence)
		return models.DomainScore{Score: scoreMalnutritionHigh, Level: models.LevelHigh}
	}
	tr.add("Possible malnutrition indicators in arm circumference", scoreMalnutritionModerate, finding.Confidence)
	return models.DomainScore{Score: scoreMalnutritionModerate, Level: models.LevelModerate}
}

func (e *Engine) scoreInfection(ctx *models.NormalizedContext, evidence map[models.ImageSlot]models.EvidenceFinding, tr *trace) models.DomainScore {
	score := 0

	if ctx.TemperatureC != nil && *ctx.TemperatureC >= feverTempC {
		score += weightHighTemp
		tr.add(fmt.Sprintf("High temperature: %.1f°C", *ctx.TemperatureC), weightHighTemp, 1.0)
	}
	if finding, ok := evidence[models.SlotSkin]; ok && finding.Detected {
		score += weightSkinInfection
		tr.add("Skin infection detected", weightSkinInfection, finding.Confidence)
	}
	if ctx.HasSymptom("fever") {
		score += weightFeverSymptom
		tr.add("Fever reported", weightFeverSymptom, 1.0)
	}
	if ctx.HasSymptom("cough") {
		score += weightCoughSymptom
		tr.add("Cough reported", weightCoughSymptom, 1.0)
	}

	return finishDomain(score, infectionBuckets)
}

// resolveTriage applies the fixed precedence order: the first domain at or
// above moderate wins, regardless of raw score magnitude in other domains.
// A not-assessed glycemic domain is excluded entirely. When nothing reaches
// moderate, the overall level is the maximum across domains and the primary
// concern is reported as general health.
func resolveTriage(result *models.ScoringResult) (models.RiskLevel, string) {
	for _, domain := range triagePrecedence {
		if domain == models.DomainGlycemic && !result.GlycemicAssessed {
			continue
		}
		score := result.ByDomain(domain)
		if score.Level.AtLeast(models.LevelModerate) {
			return score.Level, string(domain)
		}
	}

	overall := models.LevelLow
	for _, domain := range triagePrecedence {
		if domain == models.DomainGlycemic && !result.GlycemicAssessed {
			continue
		}
		overall = models.MaxLevel(overall, result.ByDomain(domain).Level)
	}
	return overall, models.ConcernGeneral
}

// finishDomain buckets the accumulated sum into a level, then clamps the
// numeric score to 100. Bucketing happens before the clamp.
func finishDomain(score int, b bucket) models.DomainScore {
	level := b.level(score)
	if score > maxDomainScore {
		score = maxDomainScore
	}
	return models.DomainScore{Score: score, Level: level}
}

func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

func formatBP(sys, dia *int) string {
	s, d := "?", "?"
	if sys != nil {
		s = fmt.Sprintf("%d", *sys)
	}
	if dia != nil {
		d = fmt.Sprintf("%d", *dia)
	}
	return s + "/" + d
}
