package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"floorplan-studio/internal/common/metrics"
	"floorplan-studio/internal/planner/generator"
	"floorplan-studio/internal/planner/models"
	"floorplan-studio/internal/planner/presenter"
	"floorplan-studio/internal/planner/validator"
)

// ============================================================
// Studio
// ============================================================

var (
	ErrBusy         = errors.New("generation already in progress")
	ErrNotGenerated = errors.New("no floor plan generated yet")
)

// Studio is one form instance: the field values, the generation state and
// the notifications the page has not picked up yet.
type Studio struct {
	ID string

	base    context.Context
	gen     generator.Generator
	metrics *metrics.Metrics
	now     func() time.Time

	mu            sync.Mutex
	form          models.FormInputs
	seqs          map[models.Field]uint64 // last numbered keystroke applied per field
	state         models.GenerationState
	notifications []models.Notification
	lastSeen      time.Time
	running       sync.WaitGroup
}

// View is a snapshot of a studio for rendering.
type View struct {
	ID            string                `json:"id"`
	Form          models.FormInputs     `json:"form"`
	Phase         models.Phase          `json:"phase"`
	Busy          bool                  `json:"busy"`
	Image         *models.ImageRef      `json:"image,omitempty"`
	Summary       string                `json:"summary,omitempty"`
	Filename      string                `json:"filename,omitempty"`
	Notifications []models.Notification `json:"notifications"`
}

// SetField applies one keystroke. It returns the value the field holds
// afterwards, which is the previous value when the keystroke was rejected.
func (s *Studio) SetField(field models.Field, value string) (string, bool) {
	value, accepted, _ := s.SetFieldAt(field, value, 0)
	return value, accepted
}

// SetFieldAt is SetField for clients that number their keystrokes per field.
// A seq at or below the last one applied to the field is stale: the form is
// left untouched and stale is reported. Seq 0 is unnumbered and always
// applied.
func (s *Studio) SetFieldAt(field models.Field, value string, seq uint64) (current string, accepted, stale bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.touch()
	if seq > 0 {
		if seq <= s.seqs[field] {
			return s.form.Get(field), false, true
		}
		if s.seqs == nil {
			s.seqs = make(map[models.Field]uint64, len(models.Fields))
		}
		s.seqs[field] = seq
	}

	next, accepted := s.form.With(field, value)
	s.form = next
	s.metrics.FieldEdit(string(field), accepted)
	return s.form.Get(field), accepted, false
}

// Submit validates the form and, when it passes, starts a generation in the
// background. A *validator.Error or ErrBusy means nothing was started.
func (s *Studio) Submit() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.touch()
	if s.state.Busy {
		return ErrBusy
	}

	if verr := validator.Validate(s.form); verr != nil {
		s.metrics.ValidationFailed(verr.Title)
		s.notify(verr.Title, verr.Description, models.VariantDestructive)
		return verr
	}

	s.state.Busy = true
	inputs := s.form
	s.running.Add(1)
	go s.generate(inputs)

	log.Printf("[STUDIO] %s: generating %s", s.ID, presenter.Summary(inputs))
	return nil
}

func (s *Studio) generate(inputs models.FormInputs) {
	defer s.running.Done()

	var (
		img models.ImageRef
		err error
	)
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("generator panic: %v", r)
		}

		s.mu.Lock()
		defer s.mu.Unlock()

		s.state.Busy = false
		s.metrics.Generated(err == nil)
		if err != nil {
			log.Printf("[STUDIO] %s: generation failed: %v", s.ID, err)
			s.notify("Generation Failed", "There was an error generating your floor plan. Please try again.", models.VariantDestructive)
			return
		}
		s.state.Image = &img
		s.notify("Floor Plan Generated!", presenter.GeneratedDescription(inputs), models.VariantDefault)
	}()

	img, err = s.gen.Generate(s.base, inputs)
}

// Wait blocks until no generation is in flight.
func (s *Studio) Wait() {
	s.running.Wait()
}

// Download prepares the generated image for saving and returns the name it
// should be saved under.
func (s *Studio) Download() (models.ImageRef, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.touch()
	if s.state.Image == nil {
		return models.ImageRef{}, "", ErrNotGenerated
	}

	s.metrics.Downloaded()
	s.notify("Download Started", "Your floor plan is being downloaded.", models.VariantDefault)
	return *s.state.Image, presenter.DownloadFilename(s.form), nil
}

// Snapshot returns the current view. With drain set, pending notifications
// are handed over and cleared.
func (s *Studio) Snapshot(drain bool) View {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.touch()
	v := View{
		ID:            s.ID,
		Form:          s.form,
		Phase:         s.state.Phase(),
		Busy:          s.state.Busy,
		Notifications: []models.Notification{},
	}
	if s.state.Image != nil {
		img := *s.state.Image
		v.Image = &img
		v.Summary = presenter.Summary(s.form)
		v.Filename = presenter.DownloadFilename(s.form)
	}
	if drain {
		v.Notifications = append(v.Notifications, s.notifications...)
		s.notifications = nil
	}
	return v
}

func (s *Studio) idleSince() (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen, s.state.Busy
}

func (s *Studio) notify(title, description string, variant models.Variant) {
	s.notifications = append(s.notifications, models.Notification{
		Title:       title,
		Description: description,
		Variant:     variant,
		CreatedAt:   s.now(),
	})
}

func (s *Studio) touch() {
	s.lastSeen = s.now()
}
