// Package save реализует HTTP-обработчик загрузки аналитического отчёта.
package save

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/cod-analytics/backend/internal/http/middlewarectx"
	"github.com/cod-analytics/backend/internal/http/response"
	"github.com/cod-analytics/backend/internal/lib/sl"
	"github.com/cod-analytics/backend/internal/models"
)

// Request — входные данные отчёта. Поля cod_data и all_data сервер
// не разбирает и сохраняет как есть.
type Request struct {
	Timestamp string          `json:"timestamp" validate:"required"`
	CodData   json.RawMessage `json:"cod_data" validate:"required"`
	AllData   json.RawMessage `json:"all_data" validate:"required"`
	HubName   string          `json:"hub_name" validate:"required"`
}

// Service описывает интерфейс сохранения отчётов.
type Service interface {
	Save(ctx context.Context, report models.Report) (int64, error)
}

// Handler обрабатывает HTTP-запросы загрузки отчётов.
type Handler struct {
	log      *slog.Logger
	reports  Service
	validate *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, reports Service) *Handler {
	return &Handler{
		log:      log,
		reports:  reports,
		validate: validator.New(),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.reports.save"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	email, _ := r.Context().Value(middlewarectx.UserEmail).(string)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	timestamp, err := time.Parse(time.RFC3339, req.Timestamp)
	if err != nil {
		log.Error("failed to convert, field: timestamp", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to convert, field: timestamp"))
		return
	}

	id, err := h.reports.Save(r.Context(), models.Report{
		UserEmail: email,
		Timestamp: timestamp,
		CodData:   req.CodData,
		AllData:   req.AllData,
		HubName:   req.HubName,
	})
	if err != nil {
		log.Error("failed to save report", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to save report"))
		return
	}

	log.Info("report saved", slog.Int64("id", id), slog.String("email", email))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"id": id,
	}))
}
