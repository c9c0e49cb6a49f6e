package deck

import (
	"bytes"
	"encoding/json"
	"errors"

	"card-manager/core/card"
	"card-manager/core/event"
	"card-manager/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the card deck.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// AddRequest asks for a card to be created.
type AddRequest struct {
	Symbol string    `json:"symbol"`
	Type   card.Type `json:"type"`
	// After is the id of the card the new card is placed behind.
	After string `json:"after,omitempty"`
}

// MoveRequest moves a card to a new position.
type MoveRequest struct {
	Index int `json:"index"`
}

// SlotResult summarizes one reconciled slot of an event.
type SlotResult struct {
	Symbol  string     `json:"symbol"`
	Type    card.Type  `json:"type"`
	Changed bool       `json:"changed"`
	Created bool       `json:"created"`
	Card    *card.Card `json:"card,omitempty"`
}

// EventResponse is the outcome of posting an event.
type EventResponse struct {
	Changed bool         `json:"changed"`
	Results []SlotResult `json:"results"`
}

// TypeInfo describes a registered card type.
type TypeInfo struct {
	Type    card.Type      `json:"type"`
	Reasons []event.Reason `json:"reasons"`
}

// RegisterRoutes registers the deck routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/types", h.HandleListTypes)
	app.Get("/notifications", h.HandleListNotifications)
	app.Delete("/notifications", h.HandleClearNotifications)
	app.Post("/events", h.HandlePostEvent)

	group := app.Group("/cards")
	group.Get("/", h.HandleListCards)
	group.Post("/", h.HandleAddCard)
	group.Delete("/", h.HandleClearCards)
	group.Delete("/:id", h.HandleDeleteCard)
	group.Post("/:id/flip", h.HandleFlipCard)
	group.Put("/:id/position", h.HandleMoveCard)
}

func errorJSON(c *fiber.Ctx, status int, err error) error {
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	var unknown *card.UnknownTypeError
	switch {
	case errors.Is(err, ErrCardNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrSymbolLimit):
		return fiber.StatusForbidden
	case errors.Is(err, ErrInvalidSymbol), errors.Is(err, event.ErrInvalidEvent), errors.As(err, &unknown):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusBadGateway
	}
}

// HandleListCards returns the deck in display order.
// @Summary List Cards
// @Description Get every card of the workspace in display order.
// @Tags cards
// @Produce json
// @Success 200 {object} map[string]any "Cards"
// @Router /cards [get]
func (h *Handler) HandleListCards(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"cards": h.service.Cards()})
}

// HandleAddCard creates the card for a symbol and type.
// @Summary Add Card
// @Description Initialize a card from the data backend. Returns the existing card when the slot is taken.
// @Tags cards
// @Accept json
// @Produce json
// @Param request body AddRequest true "Card to add"
// @Success 201 {object} map[string]any "Created card"
// @Success 200 {object} map[string]any "Existing card"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 403 {object} map[string]string "Symbol limit reached"
// @Failure 502 {object} map[string]string "Backend failure"
// @Router /cards [post]
func (h *Handler) HandleAddCard(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req AddRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err)
	}

	added, created, err := h.service.Add(c.Context(), req.Symbol, req.Type, req.After)
	if err != nil {
		l.Warn("Add card failed", zap.String("symbol", req.Symbol), zap.String("type", string(req.Type)), zap.Error(err))
		return errorJSON(c, statusFor(err), err)
	}

	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(fiber.Map{"card": added, "created": created})
}

// HandleClearCards removes every card.
// @Summary Clear Cards
// @Tags cards
// @Produce json
// @Success 200 {object} map[string]int "Removed count"
// @Router /cards [delete]
func (h *Handler) HandleClearCards(c *fiber.Ctx) error {
	n := h.service.Clear(c.Context())
	return c.JSON(fiber.Map{"removed": n})
}

// HandleDeleteCard removes one card.
// @Summary Delete Card
// @Tags cards
// @Param id path string true "Card ID"
// @Success 204
// @Failure 404 {object} map[string]string "Card not found"
// @Router /cards/{id} [delete]
func (h *Handler) HandleDeleteCard(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Context(), c.Params("id")); err != nil {
		return errorJSON(c, statusFor(err), err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleFlipCard turns a card over.
// @Summary Flip Card
// @Tags cards
// @Produce json
// @Param id path string true "Card ID"
// @Success 200 {object} map[string]any "Flipped card"
// @Failure 404 {object} map[string]string "Card not found"
// @Router /cards/{id}/flip [post]
func (h *Handler) HandleFlipCard(c *fiber.Ctx) error {
	flipped, err := h.service.Flip(c.Context(), c.Params("id"))
	if err != nil {
		return errorJSON(c, statusFor(err), err)
	}
	return c.JSON(fiber.Map{"card": flipped})
}

// HandleMoveCard moves a card to a new position.
// @Summary Move Card
// @Tags cards
// @Accept json
// @Produce json
// @Param id path string true "Card ID"
// @Param request body MoveRequest true "Target position"
// @Success 200 {object} map[string]any "Reordered cards"
// @Failure 404 {object} map[string]string "Card not found"
// @Router /cards/{id}/position [put]
func (h *Handler) HandleMoveCard(c *fiber.Ctx) error {
	var req MoveRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err)
	}
	moved, err := h.service.Move(c.Context(), c.Params("id"), req.Index)
	if err != nil {
		return errorJSON(c, statusFor(err), err)
	}
	return c.JSON(fiber.Map{"cards": moved})
}

// HandlePostEvent applies an external event to the deck.
// @Summary Post Event
// @Description Apply a fetch, realtime or static-patch event. Events without a type fan out to every card type.
// @Tags events
// @Accept json
// @Produce json
// @Param request body event.Event true "Event"
// @Success 200 {object} EventResponse "Outcome"
// @Failure 400 {object} map[string]string "Invalid event"
// @Router /events [post]
func (h *Handler) HandlePostEvent(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	// Numbers stay json.Number so millisecond timestamps keep full precision.
	dec := json.NewDecoder(bytes.NewReader(c.Body()))
	dec.UseNumber()
	var ev event.Event
	if err := dec.Decode(&ev); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err)
	}

	out, err := h.service.Handle(c.Context(), ev)
	if err != nil {
		l.Debug("Event rejected", zap.Error(err))
		return errorJSON(c, statusFor(err), err)
	}

	resp := EventResponse{Changed: out.Changed, Results: make([]SlotResult, 0, len(out.Results))}
	for _, res := range out.Results {
		resp.Results = append(resp.Results, SlotResult{
			Symbol:  res.Key.Symbol,
			Type:    res.Key.Type,
			Changed: res.Changed,
			Created: res.Created,
			Card:    res.Card,
		})
	}
	return c.JSON(resp)
}

// HandleListNotifications returns the notification inbox.
// @Summary List Notifications
// @Tags notifications
// @Produce json
// @Success 200 {object} map[string]any "Notifications"
// @Router /notifications [get]
func (h *Handler) HandleListNotifications(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"notifications": h.service.Notifications()})
}

// HandleClearNotifications empties the notification inbox.
// @Summary Clear Notifications
// @Tags notifications
// @Produce json
// @Success 200 {object} map[string]int "Removed count"
// @Router /notifications [delete]
func (h *Handler) HandleClearNotifications(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"removed": h.service.ClearNotifications()})
}

// HandleListTypes lists the registered card types and the reasons each handles.
// @Summary List Card Types
// @Tags cards
// @Produce json
// @Success 200 {object} map[string]any "Types"
// @Router /types [get]
func (h *Handler) HandleListTypes(c *fiber.Ctx) error {
	reg := h.service.Engine().Registry()
	types := make([]TypeInfo, 0)
	for _, t := range reg.Types() {
		info := TypeInfo{Type: t, Reasons: []event.Reason{}}
		for _, r := range event.Reasons() {
			if _, ok := reg.Handler(t, r); ok {
				info.Reasons = append(info.Reasons, r)
			}
		}
		types = append(types, info)
	}
	return c.JSON(fiber.Map{"types": types})
}
