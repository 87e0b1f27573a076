package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/lintang-b-s/navtraffic/pkg/congestion"
	"github.com/lintang-b-s/navtraffic/pkg/datastructure"
	"github.com/lintang-b-s/navtraffic/pkg/ehorizon"
	"github.com/lintang-b-s/navtraffic/pkg/server/rest/service"
	"github.com/lintang-b-s/navtraffic/pkg/slowtraffic"
)

type TrafficService interface {
	CreateSession(ctx context.Context, route datastructure.Route) (datastructure.Session, error)
	ImportSessions(ctx context.Context, routes []datastructure.Route) ([]datastructure.Session, error)
	GetSession(ctx context.Context, id string) (datastructure.Session, error)
	DeleteSession(ctx context.Context, id string) error
	ApplyAction(ctx context.Context, id string, req service.ActionRequest) (datastructure.Session, bool, error)
	Locate(ctx context.Context, id string, legIndex int, location datastructure.Coordinate) (service.LocateResult, error)
	RefreshSession(ctx context.Context, id string, refreshed []*datastructure.LegAnnotation, legIndex, legGeometryIndex int) (datastructure.Session, error)
	SlowSegments(ctx context.Context, id string, legIndex, geometryIndex int, ranges []congestion.CongestionRange,
		opts ...slowtraffic.Option) ([]slowtraffic.SlowTrafficSegment, error)
	SlowSegmentSummaries(ctx context.Context, id string, legIndex, geometryIndex int, ranges []congestion.CongestionRange,
		opts ...slowtraffic.Option) ([]slowtraffic.SlowTrafficSegmentSummary, error)
	EHorizon(horizon ehorizon.Horizon, position ehorizon.GraphPosition) (service.EHorizonResult, error)
	Overview(leg datastructure.RouteLeg) (string, error)
}

type TrafficHandler struct {
	svc      TrafficService
	metrics  *Metrics
	validate *validator.Validate
	trans    ut.Translator
}

func NewTrafficHandler(svc TrafficService, m *Metrics) *TrafficHandler {
	validate := validator.New()
	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	_ = enTranslations.RegisterDefaultTranslations(validate, trans)
	return &TrafficHandler{svc: svc, metrics: m, validate: validate, trans: trans}
}

func TrafficRouter(r *chi.Mux, svc TrafficService, m *Metrics) {
	handler := NewTrafficHandler(svc, m)

	r.Group(func(r chi.Router) {
		r.Route("/api", func(r chi.Router) {
			r.Route("/sessions", func(r chi.Router) {
				r.Post("/", handler.CreateSession)
				r.Post("/import", handler.ImportSessions)
				r.Route("/{sessionID}", func(r chi.Router) {
					r.Get("/", handler.GetSession)
					r.Delete("/", handler.DeleteSession)
					r.Post("/traffic", handler.ApplyTrafficAction)
					r.Post("/locate", handler.Locate)
					r.Post("/refresh", handler.RefreshSession)
					r.Get("/slow-segments", handler.SlowSegments)
				})
			})
			r.Post("/ehorizon/mpp", handler.EHorizon)
		})
	})
}

// validateRequest renders the translated validation errors and returns false when data is invalid.
func (h *TrafficHandler) validateRequest(w http.ResponseWriter, r *http.Request, data interface{}) bool {
	if err := h.validate.Struct(data); err != nil {
		vv := translateError(err, h.trans)
		render.Render(w, r, ErrValidation(err, vv))
		return false
	}
	return true
}

// CreateSessionRequest model info
//
//	@Description	request body to start navigating a route
type CreateSessionRequest struct {
	Route *datastructure.Route `json:"route" validate:"required"`
}

func (s *CreateSessionRequest) Bind(r *http.Request) error {
	if s.Route == nil || len(s.Route.Legs) == 0 {
		return errors.New("route with at least one leg is required")
	}
	return nil
}

// SessionResponse model info
//
//	@Description	navigation session with its traffic override state
type SessionResponse struct {
	Session datastructure.Session `json:"session"`
	// Overviews holds one simplified polyline per leg.
	Overviews []string `json:"overviews,omitempty"`
	Changed   *bool    `json:"changed,omitempty"`
}

func (h *TrafficHandler) renderSession(session datastructure.Session) *SessionResponse {
	overviews := make([]string, 0, len(session.Route.Legs))
	for _, leg := range session.Route.Legs {
		overview, err := h.svc.Overview(leg)
		if err != nil {
			overview = ""
		}
		overviews = append(overviews, overview)
	}
	return &SessionResponse{Session: session, Overviews: overviews}
}

// CreateSession
//
//	@Summary		start a navigation session for a route
//	@Description	stores the route together with its leg annotations, returns the session id
//	@Tags			sessions
//	@Param			body	body	CreateSessionRequest	true	"route to navigate"
//	@Accept			application/json
//	@Produce		application/json
//	@Router			/sessions [post]
//	@Success		201	{object}	SessionResponse
//	@Failure		400	{object}	ErrResponse
//	@Failure		500	{object}	ErrResponse
func (h *TrafficHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	data := &CreateSessionRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if !h.validateRequest(w, r, data) {
		return
	}

	session, err := h.svc.CreateSession(r.Context(), *data.Route)
	if err != nil {
		render.Render(w, r, ErrServer(err))
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, h.renderSession(session))
}

// ImportSessionsRequest model info
//
//	@Description	request body to start many navigation sessions at once
type ImportSessionsRequest struct {
	Routes []datastructure.Route `json:"routes" validate:"required,min=1,max=1000"`
}

func (s *ImportSessionsRequest) Bind(r *http.Request) error {
	if len(s.Routes) == 0 {
		return errors.New("invalid request")
	}
	return nil
}

// ImportSessionsResponse model info
//
//	@Description	ids of the created sessions, in request order
type ImportSessionsResponse struct {
	SessionIDs []string `json:"session_ids"`
}

// ImportSessions
//
//	@Summary		start one navigation session per route
//	@Tags			sessions
//	@Param			body	body	ImportSessionsRequest	true	"routes to navigate"
//	@Accept			application/json
//	@Produce		application/json
//	@Router			/sessions/import [post]
//	@Success		201	{object}	ImportSessionsResponse
//	@Failure		400	{object}	ErrResponse
//	@Failure		500	{object}	ErrResponse
func (h *TrafficHandler) ImportSessions(w http.ResponseWriter, r *http.Request) {
	data := &ImportSessionsRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if !h.validateRequest(w, r, data) {
		return
	}

	sessions, err := h.svc.ImportSessions(r.Context(), data.Routes)
	if err != nil {
		render.Render(w, r, ErrServer(err))
		return
	}
	ids := make([]string, 0, len(sessions))
	for _, s := range sessions {
		ids = append(ids, s.ID)
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, &ImportSessionsResponse{SessionIDs: ids})
}

// GetSession
//
//	@Summary		get a navigation session
//	@Tags			sessions
//	@Param			sessionID	path	string	true	"session id"
//	@Produce		application/json
//	@Router			/sessions/{sessionID} [get]
//	@Success		200	{object}	SessionResponse
//	@Failure		404	{object}	ErrResponse
//	@Failure		500	{object}	ErrResponse
func (h *TrafficHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.svc.GetSession(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		render.Render(w, r, ErrServer(err))
		return
	}
	render.Status(r, http.StatusOK)
	render.JSON(w, r, h.renderSession(session))
}

// DeleteSession
//
//	@Summary		end a navigation session
//	@Tags			sessions
//	@Param			sessionID	path	string	true	"session id"
//	@Router			/sessions/{sessionID} [delete]
//	@Success		204
//	@Failure		404	{object}	ErrResponse
//	@Failure		500	{object}	ErrResponse
func (h *TrafficHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteSession(r.Context(), chi.URLParam(r, "sessionID")); err != nil {
		render.Render(w, r, ErrServer(err))
		return
	}
	render.NoContent(w, r)
}

// TrafficActionRequest model info
//
//	@Description	traffic update action observed at a position of the route
type TrafficActionRequest struct {
	Action        string  `json:"action" validate:"required,oneof=increase decrease restore"`
	LegIndex      int     `json:"leg_index" validate:"gte=0"`
	GeometryIndex int     `json:"geometry_index" validate:"gte=0"`
	SpeedKmh      float64 `json:"speed_kmh" validate:"required_unless=Action restore,gte=0,lte=400"`
}

func (s *TrafficActionRequest) Bind(r *http.Request) error {
	s.Action = strings.ToLower(strings.TrimSpace(s.Action))
	return nil
}

// ApplyTrafficAction
//
//	@Summary		apply a traffic update action to the session route
//	@Description	decrease or increase the congestion ahead of the position, or restore the values replaced by the last decrease
//	@Tags			traffic
//	@Param			sessionID	path	string					true	"session id"
//	@Param			body		body	TrafficActionRequest	true	"traffic update action"
//	@Accept			application/json
//	@Produce		application/json
//	@Router			/sessions/{sessionID}/traffic [post]
//	@Success		200	{object}	SessionResponse
//	@Failure		400	{object}	ErrResponse
//	@Failure		404	{object}	ErrResponse
//	@Failure		409	{object}	ErrResponse
//	@Failure		500	{object}	ErrResponse
func (h *TrafficHandler) ApplyTrafficAction(w http.ResponseWriter, r *http.Request) {
	data := &TrafficActionRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if !h.validateRequest(w, r, data) {
		return
	}

	session, changed, err := h.svc.ApplyAction(r.Context(), chi.URLParam(r, "sessionID"), service.ActionRequest{
		Kind:          service.ActionKind(data.Action),
		LegIndex:      data.LegIndex,
		GeometryIndex: data.GeometryIndex,
		SpeedKmh:      data.SpeedKmh,
	})
	if err != nil {
		h.metrics.ObserveTrafficAction(data.Action, "error")
		render.Render(w, r, ErrServer(err))
		return
	}
	result := "unchanged"
	if changed {
		result = "changed"
	}
	h.metrics.ObserveTrafficAction(data.Action, result)

	resp := h.renderSession(session)
	resp.Changed = &changed
	render.Status(r, http.StatusOK)
	render.JSON(w, r, resp)
}

// LocateRequest model info
//
//	@Description	driver location to snap onto a leg of the route
type LocateRequest struct {
	LegIndex int     `json:"leg_index" validate:"gte=0"`
	Lat      float64 `json:"lat" validate:"lt=90,gt=-90"`
	Lon      float64 `json:"lon" validate:"lt=180,gt=-180"`
}

func (s *LocateRequest) Bind(r *http.Request) error {
	return nil
}

// LocateResponse model info
//
//	@Description	location snapped onto the leg geometry
type LocateResponse struct {
	LegIndex          int                      `json:"leg_index"`
	GeometryIndex     int                      `json:"geometry_index"`
	StepIndex         int                      `json:"step_index"`
	IntersectionIndex int                      `json:"intersection_index"`
	Projection        datastructure.Coordinate `json:"projection"`
	DistanceMeters    float64                  `json:"distance_meters"`
}

// Locate
//
//	@Summary		snap a location onto a leg of the session route
//	@Tags			traffic
//	@Param			sessionID	path	string			true	"session id"
//	@Param			body		body	LocateRequest	true	"driver location"
//	@Accept			application/json
//	@Produce		application/json
//	@Router			/sessions/{sessionID}/locate [post]
//	@Success		200	{object}	LocateResponse
//	@Failure		400	{object}	ErrResponse
//	@Failure		404	{object}	ErrResponse
//	@Failure		500	{object}	ErrResponse
func (h *TrafficHandler) Locate(w http.ResponseWriter, r *http.Request) {
	data := &LocateRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if !h.validateRequest(w, r, data) {
		return
	}

	located, err := h.svc.Locate(r.Context(), chi.URLParam(r, "sessionID"), data.LegIndex,
		datastructure.NewCoordinate(data.Lat, data.Lon))
	if err != nil {
		render.Render(w, r, ErrServer(err))
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, &LocateResponse{
		LegIndex:          located.LegIndex,
		GeometryIndex:     located.GeometryIndex,
		StepIndex:         located.StepIndex,
		IntersectionIndex: located.IntersectionIndex,
		Projection:        located.Projection,
		DistanceMeters:    located.DistanceMeters,
	})
}

// RefreshRequest model info
//
//	@Description	refreshed annotations, one per leg from leg_index on
type RefreshRequest struct {
	LegIndex      int                            `json:"leg_index" validate:"gte=0"`
	GeometryIndex int                            `json:"geometry_index" validate:"gte=0"`
	Legs          []*datastructure.LegAnnotation `json:"legs" validate:"required,min=1"`
}

func (s *RefreshRequest) Bind(r *http.Request) error {
	return nil
}

// RefreshSession
//
//	@Summary		merge refreshed annotations into the session route
//	@Description	congestion values inside the active override window are kept
//	@Tags			traffic
//	@Param			sessionID	path	string			true	"session id"
//	@Param			body		body	RefreshRequest	true	"refreshed annotations"
//	@Accept			application/json
//	@Produce		application/json
//	@Router			/sessions/{sessionID}/refresh [post]
//	@Success		200	{object}	SessionResponse
//	@Failure		400	{object}	ErrResponse
//	@Failure		404	{object}	ErrResponse
//	@Failure		500	{object}	ErrResponse
func (h *TrafficHandler) RefreshSession(w http.ResponseWriter, r *http.Request) {
	data := &RefreshRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if !h.validateRequest(w, r, data) {
		return
	}

	session, err := h.svc.RefreshSession(r.Context(), chi.URLParam(r, "sessionID"), data.Legs, data.LegIndex, data.GeometryIndex)
	if err != nil {
		render.Render(w, r, ErrServer(err))
		return
	}
	render.Status(r, http.StatusOK)
	render.JSON(w, r, h.renderSession(session))
}

// SlowSegmentsResponse model info
//
//	@Description	slow traffic segments ahead of the position
type SlowSegmentsResponse struct {
	Segments  []slowtraffic.SlowTrafficSegment        `json:"segments,omitempty"`
	Summaries []slowtraffic.SlowTrafficSegmentSummary `json:"summaries,omitempty"`
}

func queryInt(r *http.Request, key string, def int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%s must be a non negative integer", key)
	}
	return v, nil
}

// parseRanges parses "40-59,80-100".
func parseRanges(raw string) ([]congestion.CongestionRange, error) {
	if raw == "" {
		return nil, nil
	}
	ranges := make([]congestion.CongestionRange, 0)
	for _, part := range strings.Split(raw, ",") {
		bounds := strings.SplitN(strings.TrimSpace(part), "-", 2)
		if len(bounds) != 2 {
			return nil, fmt.Errorf("invalid congestion range %q", part)
		}
		first, err := strconv.Atoi(bounds[0])
		if err != nil {
			return nil, fmt.Errorf("invalid congestion range %q", part)
		}
		last, err := strconv.Atoi(bounds[1])
		if err != nil || first > last {
			return nil, fmt.Errorf("invalid congestion range %q", part)
		}
		ranges = append(ranges, congestion.NewCongestionRange(first, last))
	}
	return ranges, nil
}

// SlowSegments
//
//	@Summary		slow traffic segments ahead of a position of the session route
//	@Tags			traffic
//	@Param			sessionID		path	string	true	"session id"
//	@Param			leg_index		query	int		false	"current leg"
//	@Param			geometry_index	query	int		false	"current geometry index in the leg"
//	@Param			ranges			query	string	false	"congestion ranges, e.g. 40-59,80-100; every band above low by default"
//	@Param			summarize		query	bool	false	"merge adjacent segments"
//	@Param			legs_limit		query	int		false	"number of legs scanned"
//	@Param			segments_limit	query	int		false	"number of segments returned"
//	@Produce		application/json
//	@Router			/sessions/{sessionID}/slow-segments [get]
//	@Success		200	{object}	SlowSegmentsResponse
//	@Failure		400	{object}	ErrResponse
//	@Failure		404	{object}	ErrResponse
//	@Failure		500	{object}	ErrResponse
func (h *TrafficHandler) SlowSegments(w http.ResponseWriter, r *http.Request) {
	legIndex, err := queryInt(r, "leg_index", 0)
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	geometryIndex, err := queryInt(r, "geometry_index", 0)
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	ranges, err := parseRanges(r.URL.Query().Get("ranges"))
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	opts := make([]slowtraffic.Option, 0, 2)
	for key, opt := range map[string]func(int) slowtraffic.Option{
		"legs_limit":     slowtraffic.WithLegsLimit,
		"segments_limit": slowtraffic.WithSegmentsLimit,
	} {
		if r.URL.Query().Get(key) == "" {
			continue
		}
		limit, err := queryInt(r, key, 0)
		if err != nil {
			render.Render(w, r, ErrInvalidRequest(err))
			return
		}
		opts = append(opts, opt(limit))
	}

	id := chi.URLParam(r, "sessionID")
	resp := &SlowSegmentsResponse{}
	if summarize, _ := strconv.ParseBool(r.URL.Query().Get("summarize")); summarize {
		resp.Summaries, err = h.svc.SlowSegmentSummaries(r.Context(), id, legIndex, geometryIndex, ranges, opts...)
	} else {
		resp.Segments, err = h.svc.SlowSegments(r.Context(), id, legIndex, geometryIndex, ranges, opts...)
	}
	if err != nil {
		render.Render(w, r, ErrServer(err))
		return
	}
	render.Status(r, http.StatusOK)
	render.JSON(w, r, resp)
}

// EHorizonRequest model info
//
//	@Description	electronic horizon tree reported at a graph position
type EHorizonRequest struct {
	Horizon  ehorizon.Horizon       `json:"horizon"`
	Position ehorizon.GraphPosition `json:"position"`
}

func (s *EHorizonRequest) Bind(r *http.Request) error {
	if s.Horizon.Start == nil {
		return errors.New("horizon start edge is required")
	}
	if s.Position.PercentAlong < 0 || s.Position.PercentAlong > 1 {
		return errors.New("percent_along must be in [0, 1]")
	}
	return nil
}

// EHorizonResponse model info
//
//	@Description	most probable path of the electronic horizon
type EHorizonResponse struct {
	MostProbablePath []int64 `json:"most_probable_path"`
	CurrentEdgeID    *int64  `json:"current_edge_id,omitempty"`
	// PathAhead is the most probable path from the position, absent when off the path.
	PathAhead              *ehorizon.GraphPath `json:"path_ahead,omitempty"`
	DistanceToMotorwayExit *float64            `json:"distance_to_motorway_exit,omitempty"`
}

// EHorizon
//
//	@Summary		evaluate the most probable path of an electronic horizon
//	@Tags			ehorizon
//	@Param			body	body	EHorizonRequest	true	"horizon and position"
//	@Accept			application/json
//	@Produce		application/json
//	@Router			/ehorizon/mpp [post]
//	@Success		200	{object}	EHorizonResponse
//	@Failure		400	{object}	ErrResponse
//	@Failure		500	{object}	ErrResponse
func (h *TrafficHandler) EHorizon(w http.ResponseWriter, r *http.Request) {
	data := &EHorizonRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	result, err := h.svc.EHorizon(data.Horizon, data.Position)
	if err != nil {
		render.Render(w, r, ErrServer(err))
		return
	}
	resp := &EHorizonResponse{
		MostProbablePath:       result.MostProbablePath,
		PathAhead:              result.PathAhead,
		DistanceToMotorwayExit: result.DistanceToMotorwayExit,
	}
	if result.Current != nil {
		resp.CurrentEdgeID = &result.Current.ID
	}
	render.Status(r, http.StatusOK)
	render.JSON(w, r, resp)
}
