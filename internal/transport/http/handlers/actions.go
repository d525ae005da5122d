package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/evently/event-actions-service/internal/application/actions"
	"github.com/evently/event-actions-service/internal/domain"
	"github.com/evently/event-actions-service/internal/transport/http/dto"
	"github.com/evently/event-actions-service/internal/transport/http/middleware"
	"github.com/evently/event-actions-service/internal/transport/http/response"
	"github.com/evently/event-actions-service/internal/transport/http/validate"
)

type ActionsHandler struct {
	svc      *actions.Service
	validate *validator.Validate
}

func NewActionsHandler(svc *actions.Service) *ActionsHandler {
	return &ActionsHandler{
		svc:      svc,
		validate: validator.New(),
	}
}

func viewer(r *http.Request) actions.Viewer {
	return actions.Viewer{
		UserID: middleware.UserID(r),
		Role:   middleware.Role(r),
	}
}

func eventID(r *http.Request) (string, error) {
	id := chi.URLParam(r, "event_id")
	if !validate.IsUUID(id) {
		return "", domain.ErrValidationMeta("invalid path param", map[string]string{
			"event_id": "must be uuid",
		})
	}
	return id, nil
}

// GetActions returns the full derived action list for the viewer.
func (h *ActionsHandler) GetActions(w http.ResponseWriter, r *http.Request) {
	id, err := eventID(r)
	if err != nil {
		response.Err(w, r, err)
		return
	}

	states, err := h.svc.GetActions(r.Context(), id, viewer(r))
	if err != nil {
		response.Err(w, r, err)
		return
	}

	response.Data(w, http.StatusOK, dto.ToActionsResp(id, states))
}

// GetPrimary returns the single most important enabled action, or null.
func (h *ActionsHandler) GetPrimary(w http.ResponseWriter, r *http.Request) {
	id, err := eventID(r)
	if err != nil {
		response.Err(w, r, err)
		return
	}

	primary, err := h.svc.GetPrimary(r.Context(), id, viewer(r))
	if err != nil {
		response.Err(w, r, err)
		return
	}

	resp := dto.PrimaryResp{EventID: id}
	if primary != nil {
		s := dto.ToActionStateResp(*primary)
		resp.Primary = &s
	}
	response.Data(w, http.StatusOK, resp)
}

// GetBadge returns the viewer-independent state badge.
func (h *ActionsHandler) GetBadge(w http.ResponseWriter, r *http.Request) {
	id, err := eventID(r)
	if err != nil {
		response.Err(w, r, err)
		return
	}

	badge, err := h.svc.GetBadge(r.Context(), id)
	if err != nil {
		response.Err(w, r, err)
		return
	}

	response.Data(w, http.StatusOK, dto.BadgeResp{EventID: id, Badge: string(badge)})
}

// Evaluate runs the engine over a caller-supplied snapshot (preview
// mode). The snapshot is taken verbatim; nothing is read from storage.
func (h *ActionsHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	var req dto.EvaluateReq
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		response.Err(w, r, domain.ErrValidation("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		response.Err(w, r, domain.ErrValidationMeta("invalid request body", validationMeta(err)))
		return
	}

	v := viewer(r)
	v.SkipTimeValidation = req.SkipTimeValidation

	states, err := h.svc.Preview(r.Context(), dto.ToSnapshot(req.Event), v)
	if err != nil {
		response.Err(w, r, err)
		return
	}

	response.Data(w, http.StatusOK, dto.ToActionsResp(req.Event.ID, states))
}

func validationMeta(err error) map[string]string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil
	}
	meta := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		meta[strings.ToLower(fe.Field())] = fe.Tag()
	}
	return meta
}
