package generator

import (
	"context"
	"log"
	"time"

	"floorplan-studio/internal/planner/models"
	"floorplan-studio/internal/planner/web"
)

// ============================================================
// Generator
// ============================================================

// DefaultDelay is how long a simulated generation takes.
const DefaultDelay = 2000 * time.Millisecond

// Generator turns validated form inputs into a floor plan image.
type Generator interface {
	Generate(ctx context.Context, in models.FormInputs) (models.ImageRef, error)
}

// PlaceholderImage is the reference every simulated generation returns.
func PlaceholderImage() models.ImageRef {
	return models.ImageRef{
		Name:        web.PlaceholderName,
		ContentType: web.PlaceholderContentType,
		URL:         web.PlaceholderURL,
	}
}

// ============================================================
// Simulated Generator
// ============================================================

// Simulated waits a fixed delay and always succeeds with the bundled
// placeholder image. It only fails when ctx ends first.
type Simulated struct {
	delay time.Duration
}

func NewSimulated(delay time.Duration) *Simulated {
	if delay < 0 {
		delay = 0
	}
	return &Simulated{delay: delay}
}

func (g *Simulated) Generate(ctx context.Context, in models.FormInputs) (models.ImageRef, error) {
	log.Printf("[GENERATOR] Simulating %s sq ft plan, ready in %s", in.SquareFeet, g.delay)

	timer := time.NewTimer(g.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return models.ImageRef{}, ctx.Err()
	case <-timer.C:
	}

	return PlaceholderImage(), nil
}
