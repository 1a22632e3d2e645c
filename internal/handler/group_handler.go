package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/splitmate/splitmate/internal/middleware"
	"github.com/splitmate/splitmate/internal/service"
)

// GroupHandler serves group management endpoints.
type GroupHandler struct {
	svc *service.GroupService
}

// NewGroupHandler creates a GroupHandler.
func NewGroupHandler(svc *service.GroupService) *GroupHandler {
	return &GroupHandler{svc: svc}
}

type createGroupRequest struct {
	Name string `json:"name"`
}

// CreateGroup handles POST /api/groups. The authenticated user becomes
// the group's first member.
func (h *GroupHandler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	var req createGroupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	group, err := h.svc.CreateGroup(r.Context(), req.Name, middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toGroupDTO(group))
}

// ListGroups handles GET /api/groups, listing the caller's groups.
func (h *GroupHandler) ListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.svc.ListGroups(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]groupDTO, len(groups))
	for i, g := range groups {
		out[i] = toGroupDTO(g)
	}
	writeJSON(w, http.StatusOK, out)
}

// GetGroup handles GET /api/groups/{id}.
func (h *GroupHandler) GetGroup(w http.ResponseWriter, r *http.Request) {
	group, err := h.svc.GetGroup(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toGroupDTO(group))
}

// DeleteGroup handles DELETE /api/groups/{id}. Cascades to the group's
// expenses and splits.
func (h *GroupHandler) DeleteGroup(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteGroup(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type addMemberRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// AddMember handles POST /api/groups/{id}/members. Creates a placeholder
// account when no user exists for the email.
func (h *GroupHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	var req addMemberRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	user, err := h.svc.AddMember(r.Context(), chi.URLParam(r, "id"), req.Email, req.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserDTO(user))
}
