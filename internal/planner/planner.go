package planner

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"triage-backend/internal/models"
)

// Planner maps a scoring result and requested language to a localized
// action plan. Pure templating: no model calls, no state. Output is always
// non-empty for a valid scoring result.
type Planner struct {
	logger *zap.Logger
}

func NewPlanner(logger *zap.Logger) *Planner {
	return &Planner{logger: logger}
}

// Plan builds the localized communication for a scoring result. Unsupported
// languages fall back to the default with a warning flag, never an error.
func (p *Planner) Plan(ctx *models.NormalizedContext, result *models.ScoringResult, language models.Language) *models.ActionPlan {
	lang, fallback := resolveLanguage(language)
	if fallback {
		p.logger.Warn("Unsupported language, falling back to default",
			zap.String("requested", string(language)),
			zap.String("fallback", string(lang)),
		)
	}

	summaryKey := summaryKeyFor(result)
	summary := substitute(summaryTemplates[summaryKey][lang], ctx)
	checklist := actionChecklists[result.TriageLevel][lang]
	signs := emergencySigns[signsKeyFor(result)][lang]
	voice := voiceTemplates[result.TriageLevel][lang]

	return &models.ActionPlan{
		Summary:          summary,
		Checklist:        append([]string(nil), checklist...),
		EmergencySigns:   append([]string(nil), signs...),
		VoiceText:        voice,
		Language:         lang,
		LanguageFallback: fallback,
	}
}

// resolveLanguage returns the effective language and whether fallback occurred.
func resolveLanguage(language models.Language) (models.Language, bool) {
	switch language {
	case models.LanguageEnglish, models.LanguageHindi, models.LanguageTamil:
		return language, false
	case "":
		return DefaultLanguage, false
	default:
		return DefaultLanguage, true
	}
}

// summaryKeyFor selects the summary template from the primary concern and
// the overall triage level. Urgent maternal cases have a dedicated template.
func summaryKeyFor(result *models.ScoringResult) string {
	if result.PrimaryConcern == string(models.DomainMaternal) && result.TriageLevel == models.LevelUrgent {
		return "maternal_urgent"
	}
	if _, ok := summaryTemplates[result.PrimaryConcern]; ok {
		return result.PrimaryConcern
	}
	return models.ConcernGeneral
}

func signsKeyFor(result *models.ScoringResult) string {
	switch result.PrimaryConcern {
	case string(models.DomainMaternal):
		return "maternal"
	case string(models.DomainAnemia):
		return "anemia"
	default:
		return "general"
	}
}

// substitute fills {bp} and {glucose} placeholders with measured values.
func substitute(template string, ctx *models.NormalizedContext) string {
	out := template
	if strings.Contains(out, "{bp}") {
		out = strings.ReplaceAll(out, "{bp}", formatBP(ctx))
	}
	if strings.Contains(out, "{glucose}") {
		glucose := "?"
		if ctx.RandomGlucose != nil {
			glucose = fmt.Sprintf("%d", *ctx.RandomGlucose)
		}
		out = strings.ReplaceAll(out, "{glucose}", glucose)
	}
	return out
}

func formatBP(ctx *models.NormalizedContext) string {
	if ctx.BPSystolic == nil || ctx.BPDiastolic == nil {
		return "not measured"
	}
	return fmt.Sprintf("%d/%d", *ctx.BPSystolic, *ctx.BPDiastolic)
}
