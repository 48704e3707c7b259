package trigger

import (
	"time"

	"shopify-sync/core/logger"
	"shopify-sync/core/pipeline"
	"shopify-sync/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for pipeline runs.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the trigger routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Post("/sync", h.HandleSync)
	app.Get("/runs", h.HandleRuns)
}

// StageResponse is the JSON form of a stage result.
type StageResponse struct {
	Name       string           `json:"name"`
	Discipline string           `json:"discipline"`
	OK         bool             `json:"ok"`
	Error      string           `json:"error,omitempty"`
	Report     reconcile.Report `json:"report"`
}

// SyncResponse is the JSON form of a run summary.
type SyncResponse struct {
	RunID    string          `json:"run_id"`
	OK       bool            `json:"ok"`
	Shared   bool            `json:"shared"`
	Started  time.Time       `json:"started"`
	Finished time.Time       `json:"finished"`
	Stages   []StageResponse `json:"stages"`
}

func newSyncResponse(s pipeline.Summary, shared bool) SyncResponse {
	resp := SyncResponse{
		RunID:    s.RunID,
		OK:       s.OK(),
		Shared:   shared,
		Started:  s.Started,
		Finished: s.Finished,
		Stages:   make([]StageResponse, 0, len(s.Stages)),
	}
	for _, st := range s.Stages {
		resp.Stages = append(resp.Stages, StageResponse{
			Name:       st.Name,
			Discipline: st.Discipline,
			OK:         st.OK(),
			Error:      st.Error(),
			Report:     st.Report,
		})
	}
	return resp
}

// HandleSync runs the pipeline and returns its summary. A failed run
// answers 500 with the same body.
func (h *Handler) HandleSync(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Sync triggered")

	summary, shared := h.service.Sync(c.UserContext())
	resp := newSyncResponse(summary, shared)
	l.Info("Sync request finished",
		zap.String("run_id", resp.RunID),
		zap.Bool("ok", resp.OK),
		zap.Bool("shared", shared),
	)

	if !resp.OK {
		return c.Status(fiber.StatusInternalServerError).JSON(resp)
	}
	return c.JSON(resp)
}

// HandleRuns lists recent runs (?limit=N).
func (h *Handler) HandleRuns(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	runs, ok, err := h.service.Runs(c.UserContext(), c.QueryInt("limit", 0))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "run history is disabled"})
	}
	if err != nil {
		l.Error("Failed to list runs", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(runs)
}
