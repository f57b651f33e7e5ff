package evidence

import (
	"context"
	"encoding/base64"
	"strings"

	"go.uber.org/zap"

	"triage-backend/internal/models"
)

// Analyzer turns raw image bytes into a typed detection. Implementations are
// swappable (heuristic stub, remote model service) without touching the
// pipeline; the extractor treats them as black boxes.
type Analyzer interface {
	Analyze(ctx context.Context, slot models.ImageSlot, image []byte) (detected bool, confidence float64, err error)
}

// Extractor runs the configured analyzer over every populated photo slot.
type Extractor struct {
	analyzer Analyzer
	logger   *zap.Logger
}

func NewExtractor(analyzer Analyzer, logger *zap.Logger) *Extractor {
	return &Extractor{analyzer: analyzer, logger: logger}
}

// Extract produces one finding per populated slot. Absent slots yield no map
// entry at all. Analyzer failures are downgraded to "no finding" with a
// warning; image trouble must never fail the triage run.
func (e *Extractor) Extract(ctx context.Context, inputs *models.CameraInputs) map[models.ImageSlot]models.EvidenceFinding {
	findings := make(map[models.ImageSlot]models.EvidenceFinding)
	if inputs == nil {
		return findings
	}

	for _, slot := range models.ImageSlots {
		encoded := inputs.BySlot(slot)
		if encoded == "" {
			continue
		}

		image, err := decodeImage(encoded)
		if err != nil {
			e.logger.Warn("Failed to decode image, skipping slot",
				zap.String("slot", string(slot)), zap.Error(err))
			continue
		}

		detected, confidence, err := e.analyzer.Analyze(ctx, slot, image)
		if err != nil {
			e.logger.Warn("Image analyzer failed, proceeding without finding",
				zap.String("slot", string(slot)), zap.Error(err))
			continue
		}

		findings[slot] = models.EvidenceFinding{Detected: detected, Confidence: clamp01(confidence)}
	}
	return findings
}

// decodeImage decodes a base64 payload, tolerating a data-URL prefix
// ("data:image/jpeg;base64,...") as sent by some frontends.
func decodeImage(encoded string) ([]byte, error) {
	if idx := strings.Index(encoded, ","); idx >= 0 && strings.Contains(encoded[:idx], "base64") {
		encoded = encoded[idx+1:]
	}
	return base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
