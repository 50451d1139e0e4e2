package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"github.com/sagarc03/facerelay"
)

type Service interface {
	Upload(ctx context.Context, sub facerelay.Submission) (facerelay.UploadRecord, error)
	LatestData(ctx context.Context) (facerelay.LatestData, error)
	LatestFile(ctx context.Context) (facerelay.UploadRecord, io.ReadSeekCloser, error)
	Records(ctx context.Context) (int, error)

	SetUpdateName(ctx context.Context, name string) error
	UpdateName(ctx context.Context) (string, error)
	ClearUpdateName(ctx context.Context) error

	SetUploadInterval(ctx context.Context, seconds int) error
	SetRecognitionInterval(ctx context.Context, seconds int) error
	Intervals(ctx context.Context) (facerelay.Intervals, error)
}

type CORSConfig struct {
	Enabled          bool
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

type HandlerConfig struct {
	CORS CORSConfig
	// MaxUploadSize caps request bodies in bytes. Zero disables the cap.
	MaxUploadSize int64
	// MaxMemory is the multipart in-memory threshold; larger parts spool to disk.
	MaxMemory int64
	// Logger receives one line per request. Nil uses slog.Default().
	Logger *slog.Logger
}

const defaultMaxMemory = 32 << 20

// Handler serves the upload relay endpoints.
type Handler struct {
	config   HandlerConfig
	service  Service
	validate *validator.Validate
}

// NewHandler creates a new Handler with the given configuration and service.
func NewHandler(config *HandlerConfig, service Service) *Handler {
	cfg := *config
	if cfg.MaxMemory <= 0 {
		cfg.MaxMemory = defaultMaxMemory
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.CORS.Enabled && len(cfg.CORS.AllowedMethods) == 0 {
		cfg.CORS.AllowedMethods = []string{"GET", "POST", "OPTIONS"}
	}
	if cfg.CORS.Enabled && len(cfg.CORS.AllowedHeaders) == 0 {
		cfg.CORS.AllowedHeaders = []string{"*"}
	}

	return &Handler{
		config:   cfg,
		service:  service,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Router returns an http.Handler with every endpoint mounted. Routes answer
// with and without a trailing slash.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(RequestLogger(h.config.Logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)

	if h.config.CORS.Enabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   h.config.CORS.AllowedOrigins,
			AllowedMethods:   h.config.CORS.AllowedMethods,
			AllowedHeaders:   h.config.CORS.AllowedHeaders,
			ExposedHeaders:   h.config.CORS.ExposedHeaders,
			AllowCredentials: h.config.CORS.AllowCredentials,
			MaxAge:           h.config.CORS.MaxAge,
		}))
	}

	r.NotFound(handleNotFound)
	r.MethodNotAllowed(handleMethodNotAllowed)

	r.Get("/", h.handleHealth)

	r.Group(func(r chi.Router) {
		r.Use(MaxBodySize(h.config.MaxUploadSize))
		r.Post("/upload", h.handleUpload)
	})

	r.Get("/data", h.handleData)
	r.Get("/file", h.handleFile)

	r.Post("/update-name", h.handleUpdateName)
	r.Post("/updatename", h.handleUpdateName)
	r.Get("/getupdatename", h.handleGetUpdateName)
	r.Post("/clearupdatename", h.handleClearUpdateName)

	r.Post("/set-interval", h.handleSetInterval(h.service.SetUploadInterval))
	r.Post("/set-recognition-interval", h.handleSetInterval(h.service.SetRecognitionInterval))
	r.Get("/intervals", h.handleIntervals)

	return r
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	n, err := h.service.Records(r.Context())
	if err != nil {
		HandleError(w, err)
		return
	}

	_ = WriteJSON(w, http.StatusOK, HealthResponse{Status: "ok", Records: n})
}

func (h *Handler) handleUpload(w http.ResponseWriter, r *http.Request) {
	sub, cleanup, err := parseSubmission(r, h.config.MaxMemory)
	if err != nil {
		HandleError(w, err)
		return
	}
	defer cleanup()

	rec, err := h.service.Upload(r.Context(), sub)
	if err != nil {
		HandleError(w, err)
		return
	}

	_ = WriteJSON(w, http.StatusOK, rec)
}

func (h *Handler) handleData(w http.ResponseWriter, r *http.Request) {
	data, err := h.service.LatestData(r.Context())
	if err != nil {
		HandleError(w, err)
		return
	}

	_ = WriteJSON(w, http.StatusOK, data)
}

func (h *Handler) handleFile(w http.ResponseWriter, r *http.Request) {
	rec, content, err := h.service.LatestFile(r.Context())
	if err != nil {
		HandleError(w, err)
		return
	}
	defer func() { _ = content.Close() }()

	contentType := rec.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": rec.FileName}))
	if rec.Etag != "" {
		w.Header().Set("ETag", `"`+rec.Etag+`"`)
	}

	http.ServeContent(w, r, rec.FileName, rec.UploadedAt, content)
}

func (h *Handler) handleUpdateName(w http.ResponseWriter, r *http.Request) {
	values, cleanup, err := parseForm(r, h.config.MaxMemory)
	if err != nil {
		HandleError(w, err)
		return
	}
	defer cleanup()

	name, err := requiredField(values, "name")
	if err != nil {
		HandleError(w, err)
		return
	}

	if err := h.service.SetUpdateName(r.Context(), name); err != nil {
		HandleError(w, err)
		return
	}

	_ = WriteJSON(w, http.StatusOK, MessageResponse{Message: "Name updated successfully"})
}

func (h *Handler) handleGetUpdateName(w http.ResponseWriter, r *http.Request) {
	name, err := h.service.UpdateName(r.Context())
	if errors.Is(err, facerelay.ErrNotFound) {
		name = facerelay.UpdateNameUnset
	} else if err != nil {
		HandleError(w, err)
		return
	}

	_ = WriteJSON(w, http.StatusOK, UpdateNameResponse{UpdateName: name})
}

func (h *Handler) handleClearUpdateName(w http.ResponseWriter, r *http.Request) {
	if err := h.service.ClearUpdateName(r.Context()); err != nil {
		HandleError(w, err)
		return
	}

	_ = WriteJSON(w, http.StatusOK, MessageResponse{Message: "Data cleared successfully"})
}

type intervalRequest struct {
	Interval int `json:"interval" validate:"required,gt=0"`
}

func (h *Handler) handleSetInterval(set func(context.Context, int) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req intervalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusUnprocessableEntity, "invalid_body", "Request body must be JSON with an integer interval")
			return
		}

		if err := h.validate.Struct(req); err != nil {
			WriteError(w, http.StatusUnprocessableEntity, "invalid_body", "Interval must be a positive number of seconds")
			return
		}

		if err := set(r.Context(), req.Interval); err != nil {
			HandleError(w, err)
			return
		}

		_ = WriteJSON(w, http.StatusOK, IntervalResponse{
			Message:  "Interval updated successfully",
			Interval: req.Interval,
		})
	}
}

func (h *Handler) handleIntervals(w http.ResponseWriter, r *http.Request) {
	intervals, err := h.service.Intervals(r.Context())
	if err != nil {
		HandleError(w, err)
		return
	}

	_ = WriteJSON(w, http.StatusOK, intervals)
}
