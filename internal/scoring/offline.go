package scoring

import (
	"fmt"

	"go.uber.org/zap"

	"triage-backend/internal/models"
)

// scoreOffline is the reduced rule subset for visits recorded without
// connectivity: a handful of hard thresholds instead of the full engine.
// Results carry OfflineProcessed=true so callers know fidelity is reduced.
func (e *Engine) scoreOffline(ctx *models.NormalizedContext) *models.ScoringResult {
	tr := &trace{}

	result := &models.ScoringResult{
		Anemia:           models.DomainScore{Score: 0, Level: models.LevelLow},
		Maternal:         models.DomainScore{Score: 0, Level: models.LevelLow},
		Glycemic:         models.DomainScore{Score: 0, Level: models.LevelLow},
		Nutrition:        models.DomainScore{Score: 0, Level: models.LevelLow},
		Infection:        models.DomainScore{Score: 0, Level: models.LevelLow},
		OfflineProcessed: true,
	}

	if ctx.Input.Pregnant {
		severe := intAtLeast(ctx.BPSystolic, severeHypertSys) || intAtLeast(ctx.BPDiastolic, severeHypertDia)
		elevated := intAtLeast(ctx.BPSystolic, hypertensionSys) || intAtLeast(ctx.BPDiastolic, hypertensionDia)
		switch {
		case severe:
			result.Maternal = models.DomainScore{Score: maxDomainScore, Level: models.LevelUrgent}
			tr.add(fmt.Sprintf("Severe hypertension in pregnancy: %s mmHg", formatBP(ctx.BPSystolic, ctx.BPDiastolic)),
				maxDomainScore, 0.98)
		case elevated:
			result.Maternal = models.DomainScore{Score: 80, Level: models.LevelHigh}
			tr.add(fmt.Sprintf("Elevated BP in pregnancy: %s mmHg", formatBP(ctx.BPSystolic, ctx.BPDiastolic)),
				80, 0.98)
		}
	}

	if ctx.RandomGlucose != nil {
		result.GlycemicAssessed = true
		if *ctx.RandomGlucose >= glucoseHighMgDL {
			result.Glycemic = models.DomainScore{Score: scoreGlucoseHigh, Level: models.LevelHigh}
			tr.add(fmt.Sprintf("High random glucose: %d mg/dL", *ctx.RandomGlucose), scoreGlucoseHigh, 0.98)
		}
	}

	if (ctx.TemperatureC != nil && *ctx.TemperatureC >= feverTempC) || ctx.HasSymptom("fever") {
		result.Infection = models.DomainScore{Score: 40, Level: models.LevelModerate}
		tr.add("Fever indicators present", 40, 0.9)
	}

	result.ReasoningTrace = tr.facts
	result.TriageLevel, result.PrimaryConcern = resolveTriage(result)

	e.logger.Info("Offline scoring completed (reduced rule subset)",
		zap.String("triage_level", string(result.TriageLevel)),
		zap.Int("facts", len(result.ReasoningTrace)),
	)
	return result
}

func intAtLeast(v *int, threshold int) bool {
	return v != nil && *v >= threshold
}
