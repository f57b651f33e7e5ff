package evidence

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"math"

	"triage-backend/internal/models"
)

// StubAnalyzer is a deterministic pixel heuristic used when no trained model
// service is configured. It exists so the pipeline can run end to end in
// development and offline deployments; its detections are crude by intent.
type StubAnalyzer struct{}

func NewStubAnalyzer() *StubAnalyzer {
	return &StubAnalyzer{}
}

// Analyze applies a per-slot channel heuristic over the decoded image.
func (a *StubAnalyzer) Analyze(_ context.Context, slot models.ImageSlot, imageBytes []byte) (bool, float64, error) {
	img, _, err := image.Decode(bytes.NewReader(imageBytes))
	if err != nil {
		return false, 0, fmt.Errorf("decode image: %w", err)
	}

	meanRed, meanGray, stdGray := channelStats(img)

	switch slot {
	case models.SlotConjunctiva:
		// Pale conjunctiva carries less red than healthy tissue.
		detected := meanRed < 120
		confidence := math.Min(math.Abs(120-meanRed)/120, 1.0)
		return detected, math.Max(confidence, 0.5), nil
	case models.SlotSwelling:
		// Pitting edema flattens skin texture, lowering local contrast.
		detected := stdGray < 30
		if detected {
			return true, 0.75, nil
		}
		return false, 0.25, nil
	case models.SlotChildArm:
		// MUAC proxy: a thin arm against background shows low mid-tone mass.
		detected := meanGray < 90
		if detected {
			return true, 0.7, nil
		}
		return false, 0.3, nil
	case models.SlotSkin:
		// Inflamed skin skews strongly red relative to overall brightness.
		detected := meanGray > 0 && meanRed/meanGray > 1.25
		if detected {
			return true, 0.65, nil
		}
		return false, 0.3, nil
	}
	return false, 0, fmt.Errorf("unsupported image slot %q", slot)
}

// channelStats returns the mean red channel, mean grayscale, and grayscale
// standard deviation over the image, all in 0-255 space.
func channelStats(img image.Image) (meanRed, meanGray, stdGray float64) {
	bounds := img.Bounds()
	n := float64(bounds.Dx() * bounds.Dy())
	if n == 0 {
		return 0, 0, 0
	}

	var sumRed, sumGray, sumGraySq float64
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			red := float64(r >> 8)
			gray := (float64(r>>8) + float64(g>>8) + float64(b>>8)) / 3
			sumRed += red
			sumGray += gray
			sumGraySq += gray * gray
		}
	}

	meanRed = sumRed / n
	meanGray = sumGray / n
	variance := sumGraySq/n - meanGray*meanGray
	if variance > 0 {
		stdGray = math.Sqrt(variance)
	}
	return meanRed, meanGray, stdGray
}
