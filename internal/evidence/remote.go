package evidence

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"triage-backend/internal/models"
)

// RemoteAnalyzer calls an external vision model service. The service exposes
// one endpoint per slot type and answers with a detection plus confidence.
type RemoteAnalyzer struct {
	client *resty.Client
}

type analyzeRequest struct {
	Slot  string `json:"slot"`
	Image string `json:"image"` // base64
}

type analyzeResponse struct {
	Detected   bool    `json:"detected"`
	Confidence float64 `json:"confidence"`
}

func NewRemoteAnalyzer(baseURL string) *RemoteAnalyzer {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30 * time.Second).
		SetRetryCount(1)
	return &RemoteAnalyzer{client: client}
}

// Analyze posts the image to the model service for the given slot.
func (a *RemoteAnalyzer) Analyze(ctx context.Context, slot models.ImageSlot, image []byte) (bool, float64, error) {
	var result analyzeResponse

	resp, err := a.client.R().
		SetContext(ctx).
		SetBody(analyzeRequest{
			Slot:  string(slot),
			Image: base64.StdEncoding.EncodeToString(image),
		}).
		SetResult(&result).
		Post("/api/v1/analyze")
	if err != nil {
		return false, 0, fmt.Errorf("analyzer request failed: %w", err)
	}
	if resp.IsError() {
		return false, 0, fmt.Errorf("analyzer returned status %d: %s", resp.StatusCode(), resp.String())
	}
	if result.Confidence < 0 || result.Confidence > 1 {
		return false, 0, fmt.Errorf("analyzer returned malformed confidence %f", result.Confidence)
	}

	return result.Detected, result.Confidence, nil
}
