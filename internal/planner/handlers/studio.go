package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"floorplan-studio/internal/planner/models"
	"floorplan-studio/internal/planner/service"
	"floorplan-studio/internal/planner/validator"
	"floorplan-studio/internal/planner/web"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Studio Handler
// ============================================================

type StudioHandler struct {
	sessions *service.SessionManager
}

func NewStudioHandler(sessions *service.SessionManager) *StudioHandler {
	return &StudioHandler{sessions: sessions}
}

// fieldRequest carries one keystroke. Seq is optional and numbers the
// keystrokes of a field so that writes overtaken in flight are ignored.
type fieldRequest struct {
	Value *string `json:"value"`
	Seq   uint64  `json:"seq,omitempty"`
}

type fieldResponse struct {
	Field    models.Field `json:"field"`
	Value    string       `json:"value"`
	Accepted bool         `json:"accepted"`
	Seq      uint64       `json:"seq,omitempty"`
	Stale    bool         `json:"stale,omitempty"`
}

// Index отдаёт страницу формы. Каждая загрузка страницы начинает новую сессию.
func (h *StudioHandler) Index(c fiber.Ctx) error {
	st := h.sessions.Create()
	log.Printf("[STUDIO] New session %s", st.ID)

	var buf bytes.Buffer
	err := web.RenderIndex(&buf, web.PageData{
		SessionID:     st.ID,
		MinSquareFeet: validator.MinSquareFeet,
		MaxSquareFeet: validator.MaxSquareFeet,
	})
	if err != nil {
		log.Printf("[STUDIO] render index error: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to render page"})
	}

	c.Set("Cache-Control", "no-store")
	c.Type("html")
	return c.Send(buf.Bytes())
}

// CreateSession открывает сессию без страницы, для API-клиентов.
func (h *StudioHandler) CreateSession(c fiber.Ctx) error {
	st := h.sessions.Create()
	return c.Status(http.StatusCreated).JSON(st.Snapshot(false))
}

// GetState возвращает состояние формы и забирает накопившиеся уведомления.
func (h *StudioHandler) GetState(c fiber.Ctx) error {
	st, err := h.studio(c)
	if err != nil {
		return err
	}
	return c.JSON(st.Snapshot(true))
}

// SetField применяет ввод в одно поле формы.
func (h *StudioHandler) SetField(c fiber.Ctx) error {
	st, err := h.studio(c)
	if err != nil {
		return err
	}

	field, err := models.ParseField(c.Params("field"))
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "unknown field")
	}

	if len(c.Body()) == 0 {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "empty body"})
	}

	var req fieldRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}
	if req.Value == nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "value is required"})
	}

	value, accepted, stale := st.SetFieldAt(field, *req.Value, req.Seq)
	return c.JSON(fieldResponse{
		Field:    field,
		Value:    value,
		Accepted: accepted,
		Seq:      req.Seq,
		Stale:    stale,
	})
}

// Generate запускает генерацию, если форма прошла проверку.
func (h *StudioHandler) Generate(c fiber.Ctx) error {
	st, err := h.studio(c)
	if err != nil {
		return err
	}

	err = st.Submit()
	var verr *validator.Error
	switch {
	case err == nil:
		return c.Status(http.StatusAccepted).JSON(st.Snapshot(false))
	case errors.As(err, &verr):
		// The notification goes out in this response, so drop it from the queue.
		view := st.Snapshot(true)
		return c.Status(http.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":         verr.Title,
			"notifications": view.Notifications,
		})
	case errors.Is(err, service.ErrBusy):
		return c.Status(http.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	default:
		log.Printf("[STUDIO] submit error: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "generation failed"})
	}
}

// Download отдаёт сгенерированный план как вложение с говорящим именем.
func (h *StudioHandler) Download(c fiber.Ctx) error {
	st, err := h.studio(c)
	if err != nil {
		return err
	}

	img, filename, err := st.Download()
	if errors.Is(err, service.ErrNotGenerated) {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		return err
	}

	log.Printf("[STUDIO] %s: download %s", st.ID, filename)
	c.Attachment(filename)
	c.Set("Content-Type", img.ContentType)
	return c.Send(web.Placeholder())
}

// Placeholder отдаёт встроенное изображение плана.
func (h *StudioHandler) Placeholder(c fiber.Ctx) error {
	c.Set("Content-Type", web.PlaceholderContentType)
	c.Set("Cache-Control", "public, max-age=86400")
	return c.Send(web.Placeholder())
}

// ============================================================
// Helpers
// ============================================================

func (h *StudioHandler) studio(c fiber.Ctx) (*service.Studio, error) {
	st, err := h.sessions.Get(c.Params("id"))
	if err != nil {
		return nil, fiber.NewError(http.StatusNotFound, "session not found")
	}
	return st, nil
}

// ErrorHandler приводит ошибки к общему виду {"error": "..."}.
func ErrorHandler(c fiber.Ctx, err error) error {
	code := http.StatusInternalServerError
	msg := "internal error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		msg = fe.Message
	} else {
		log.Printf("[STUDIO] unhandled error: %v", err)
	}

	return c.Status(code).JSON(fiber.Map{"error": msg})
}
