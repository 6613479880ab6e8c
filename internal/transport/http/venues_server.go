package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"openhours/internal/domain"
	"openhours/internal/service/venues"
	"openhours/internal/store"
)

type venuesService interface {
	Create(ctx context.Context, in venues.CreateInput) (domain.Venue, error)
	List(ctx context.Context) ([]domain.Venue, error)
	Delete(ctx context.Context, venueID uuid.UUID) error
	OpenAt(ctx context.Context, at venues.Instant) ([]string, error)
}

type VenuesServer struct {
	svc venuesService
	log *slog.Logger
}

func NewVenuesServer(svc venuesService, log *slog.Logger) *VenuesServer {
	if log == nil {
		log = slog.Default()
	}
	return &VenuesServer{
		svc: svc,
		log: log.With(slog.String("component", "http.venues")),
	}
}

// NewRouter builds the service router: venue CRUD plus the open-at query
// under /v1/venues, and a health probe.
func NewRouter(srv *VenuesServer, requestTimeout time.Duration) chi.Router {
	if requestTimeout <= 0 {
		requestTimeout = 10 * time.Second
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/v1/venues", func(r chi.Router) {
		r.Get("/", srv.listVenues)
		r.Post("/", srv.createVenue)
		r.Get("/open", srv.openVenues)
		r.Delete("/{venue_id}", srv.deleteVenue)
	})

	return r
}

type venuePayload struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	OpeningHours string    `json:"opening_hours"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type createVenueRequest struct {
	Name         string `json:"name"`
	OpeningHours string `json:"opening_hours"`
}

type openVenuesResponse struct {
	Open []string `json:"open"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *VenuesServer) createVenue(w http.ResponseWriter, r *http.Request) {
	log := s.log.With(slog.String("handler", "createVenue"))

	var req createVenueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("invalid request", slog.String("reason", "bad_json"))
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "request body must be JSON"})
		return
	}

	venue, err := s.svc.Create(r.Context(), venues.CreateInput{
		Name:         req.Name,
		OpeningHours: req.OpeningHours,
	})
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			log.Info("venue name conflict", slog.String("name", req.Name))
			writeJSON(w, http.StatusConflict, errorResponse{Error: "a venue with that name already exists"})
			return
		}
		var vErr *venues.ValidationError
		if errors.As(err, &vErr) {
			log.Warn("invalid request", slog.Any("err", err))
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: vErr.Error()})
			return
		}
		log.Error("venue create failed", slog.Any("err", err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}

	log.Info(
		"venue created",
		slog.String("venue_id", venue.ID.String()),
		slog.String("name", venue.Name),
	)
	writeJSON(w, http.StatusCreated, toVenuePayload(venue))
}

func (s *VenuesServer) listVenues(w http.ResponseWriter, r *http.Request) {
	log := s.log.With(slog.String("handler", "listVenues"))

	rows, err := s.svc.List(r.Context())
	if err != nil {
		log.Error("venue list failed", slog.Any("err", err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}

	out := make([]venuePayload, 0, len(rows))
	for _, v := range rows {
		out = append(out, toVenuePayload(v))
	}

	log.Debug("venues listed", slog.Int("count", len(out)))
	writeJSON(w, http.StatusOK, out)
}

func (s *VenuesServer) deleteVenue(w http.ResponseWriter, r *http.Request) {
	log := s.log.With(slog.String("handler", "deleteVenue"))

	id, err := uuid.Parse(chi.URLParam(r, "venue_id"))
	if err != nil {
		log.Warn("invalid request", slog.String("reason", "invalid_uuid"))
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "venue_id must be a UUID"})
		return
	}

	if err := s.svc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Info("venue not found", slog.String("venue_id", id.String()))
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "venue not found"})
			return
		}
		var vErr *venues.ValidationError
		if errors.As(err, &vErr) {
			log.Warn("invalid request", slog.Any("err", err), slog.String("venue_id", id.String()))
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: vErr.Error()})
			return
		}
		log.Error("venue delete failed", slog.Any("err", err), slog.String("venue_id", id.String()))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}

	log.Info("venue deleted", slog.String("venue_id", id.String()))
	w.WriteHeader(http.StatusNoContent)
}

func (s *VenuesServer) openVenues(w http.ResponseWriter, r *http.Request) {
	log := s.log.With(slog.String("handler", "openVenues"))

	at, err := instantFromQuery(r)
	if err != nil {
		log.Warn("invalid request", slog.Any("err", err))
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	open, err := s.svc.OpenAt(r.Context(), at)
	if err != nil {
		var vErr *venues.ValidationError
		if errors.As(err, &vErr) {
			log.Warn("invalid request", slog.Any("err", err))
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: vErr.Error()})
			return
		}
		log.Error("open query failed", slog.Any("err", err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}

	log.Debug(
		"open venues queried",
		slog.Int("weekday", at.Weekday),
		slog.Int("hour", at.Hour),
		slog.Int("minute", at.Minute),
		slog.Int("count", len(open)),
	)
	writeJSON(w, http.StatusOK, openVenuesResponse{Open: open})
}

// instantFromQuery accepts either an RFC 3339 "at" parameter or an explicit
// weekday/hour/minute triple, weekday 1-based with Monday = 1. Converting a
// calendar timestamp to the triple happens here; the core only ever sees
// the triple.
func instantFromQuery(r *http.Request) (venues.Instant, error) {
	q := r.URL.Query()

	if raw := q.Get("at"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return venues.Instant{}, errors.New("at must be an RFC 3339 timestamp")
		}
		return instantFromTime(t), nil
	}

	weekday, err := queryInt(q.Get("weekday"))
	if err != nil {
		return venues.Instant{}, errors.New("weekday must be an integer between 1 and 7")
	}
	hour, err := queryInt(q.Get("hour"))
	if err != nil {
		return venues.Instant{}, errors.New("hour must be an integer between 0 and 23")
	}
	minute, err := queryInt(q.Get("minute"))
	if err != nil {
		return venues.Instant{}, errors.New("minute must be an integer between 0 and 59")
	}

	return venues.Instant{Weekday: weekday, Hour: hour, Minute: minute}, nil
}

func instantFromTime(t time.Time) venues.Instant {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	return venues.Instant{Weekday: weekday, Hour: t.Hour(), Minute: t.Minute()}
}

func queryInt(raw string) (int, error) {
	if raw == "" {
		return 0, errors.New("missing")
	}
	return strconv.Atoi(raw)
}

func toVenuePayload(v domain.Venue) venuePayload {
	return venuePayload{
		ID:           v.ID.String(),
		Name:         v.Name,
		OpeningHours: v.OpeningHours,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
