package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"stremini.backend/internal/domain/entities"
	domainerrors "stremini.backend/internal/domain/errors"
	"stremini.backend/internal/interfaces/http/middleware"
	"stremini.backend/internal/interfaces/http/response"
	"stremini.backend/internal/usecases"
)

// DashboardHandler drives the per-session dashboard controller
type DashboardHandler struct {
	dashboards *usecases.DashboardRegistry
}

func NewDashboardHandler(dashboards *usecases.DashboardRegistry) *DashboardHandler {
	return &DashboardHandler{dashboards: dashboards}
}

type openModalRequest struct {
	ID *uuid.UUID `json:"id"`
}

// controller returns the loaded controller of the request session.
func (h *DashboardHandler) controller(c *gin.Context) (*usecases.DashboardController, bool) {
	session, ok := middleware.GetSession(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("no active session"))
		return nil, false
	}
	ctrl, err := h.dashboards.Acquire(c.Request.Context(), session.ID)
	if err != nil {
		response.Error(c, err)
		return nil, false
	}
	ctrl.EnsureLoaded(c.Request.Context())
	return ctrl, true
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid ID"))
		return uuid.Nil, false
	}
	return id, true
}

// confirmed treats anything but an explicit confirm=true as declined.
func confirmed(c *gin.Context) usecases.Confirmer {
	ok, _ := strconv.ParseBool(c.Query("confirm"))
	return usecases.ConfirmFunc(func(string) bool { return ok })
}

func bindOpenModal(c *gin.Context) (*uuid.UUID, bool) {
	var req openModalRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return nil, false
	}
	return req.ID, true
}

func deleteResult(c *gin.Context, deleted bool, err error, prompt string) {
	if err != nil {
		response.Error(c, err)
		return
	}
	if !deleted {
		response.Success(c, http.StatusOK, gin.H{
			"deleted":         false,
			"confirmRequired": true,
			"prompt":          prompt,
		})
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

// Get returns the dashboard snapshot, loading the collections on first use.
// GET /api/v1/admin/dashboard
func (h *DashboardHandler) Get(c *gin.Context) {
	ctrl, ok := h.controller(c)
	if !ok {
		return
	}
	response.Success(c, http.StatusOK, ctrl.Snapshot())
}

// SetFilters updates search, status filter and tab.
// PUT /api/v1/admin/dashboard/filters
func (h *DashboardHandler) SetFilters(c *gin.Context) {
	var input entities.DashboardFiltersInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}
	ctrl, ok := h.controller(c)
	if !ok {
		return
	}
	if err := ctrl.SetFilters(input); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, ctrl.Snapshot())
}

// ExportWaitlist downloads the filtered waitlist as CSV.
// GET /api/v1/admin/waitlist/export
func (h *DashboardHandler) ExportWaitlist(c *gin.Context) {
	ctrl, ok := h.controller(c)
	if !ok {
		return
	}
	export := ctrl.ExportCSV()
	c.Header("Content-Disposition", `attachment; filename="`+export.Filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(export.Content))
}

// ApproveEntry POST /api/v1/admin/waitlist/:id/approve
func (h *DashboardHandler) ApproveEntry(c *gin.Context) {
	h.setEntryStatus(c, (*usecases.DashboardController).Approve)
}

// RemoveEntry POST /api/v1/admin/waitlist/:id/remove
func (h *DashboardHandler) RemoveEntry(c *gin.Context) {
	h.setEntryStatus(c, (*usecases.DashboardController).RemoveEntry)
}

func (h *DashboardHandler) setEntryStatus(
	c *gin.Context,
	action func(*usecases.DashboardController, context.Context, uuid.UUID) (entities.WaitlistEntry, error),
) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	ctrl, ok := h.controller(c)
	if !ok {
		return
	}
	entry, err := action(ctrl, c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"entry": entry})
}

// DeleteEntry DELETE /api/v1/admin/waitlist/:id?confirm=true
func (h *DashboardHandler) DeleteEntry(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	ctrl, ok := h.controller(c)
	if !ok {
		return
	}
	deleted, err := ctrl.DeleteEntry(c.Request.Context(), id, confirmed(c))
	deleteResult(c, deleted, err, usecases.PromptDeleteEntry)
}

// OpenTeamModal opens the team form, for editing when an id is given.
// POST /api/v1/admin/team/modal
func (h *DashboardHandler) OpenTeamModal(c *gin.Context) {
	id, ok := bindOpenModal(c)
	if !ok {
		return
	}
	ctrl, ok := h.controller(c)
	if !ok {
		return
	}
	var (
		state usecases.ModalState[entities.TeamMemberForm]
		err   error
	)
	if id != nil {
		state, err = ctrl.OpenEditTeamMember(*id)
	} else {
		state, err = ctrl.OpenNewTeamMember()
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"modal": state})
}

// SaveTeamModal PUT /api/v1/admin/team/modal
func (h *DashboardHandler) SaveTeamModal(c *gin.Context) {
	var form entities.TeamMemberForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}
	ctrl, ok := h.controller(c)
	if !ok {
		return
	}
	member, err := ctrl.SaveTeamMember(c.Request.Context(), form)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"member": member, "modal": ctrl.TeamModal()})
}

// CancelTeamModal DELETE /api/v1/admin/team/modal
func (h *DashboardHandler) CancelTeamModal(c *gin.Context) {
	ctrl, ok := h.controller(c)
	if !ok {
		return
	}
	if err := ctrl.CancelTeamModal(); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteTeamMember DELETE /api/v1/admin/team/:id?confirm=true
func (h *DashboardHandler) DeleteTeamMember(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	ctrl, ok := h.controller(c)
	if !ok {
		return
	}
	deleted, err := ctrl.DeleteTeamMember(c.Request.Context(), id, confirmed(c))
	deleteResult(c, deleted, err, usecases.PromptDeleteTeamMember)
}

// OpenBlogModal POST /api/v1/admin/blog/modal
func (h *DashboardHandler) OpenBlogModal(c *gin.Context) {
	id, ok := bindOpenModal(c)
	if !ok {
		return
	}
	ctrl, ok := h.controller(c)
	if !ok {
		return
	}
	var (
		state usecases.ModalState[entities.BlogPostForm]
		err   error
	)
	if id != nil {
		state, err = ctrl.OpenEditBlogPost(*id)
	} else {
		state, err = ctrl.OpenNewBlogPost()
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"modal": state})
}

// SaveBlogModal PUT /api/v1/admin/blog/modal
func (h *DashboardHandler) SaveBlogModal(c *gin.Context) {
	var form entities.BlogPostForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}
	ctrl, ok := h.controller(c)
	if !ok {
		return
	}
	post, err := ctrl.SaveBlogPost(c.Request.Context(), form)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"post": post, "modal": ctrl.BlogModal()})
}

// CancelBlogModal DELETE /api/v1/admin/blog/modal
func (h *DashboardHandler) CancelBlogModal(c *gin.Context) {
	ctrl, ok := h.controller(c)
	if !ok {
		return
	}
	if err := ctrl.CancelBlogModal(); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// TogglePublish POST /api/v1/admin/blog/:id/toggle-publish
func (h *DashboardHandler) TogglePublish(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	ctrl, ok := h.controller(c)
	if !ok {
		return
	}
	post, err := ctrl.TogglePublish(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"post": post})
}

// DeleteBlogPost DELETE /api/v1/admin/blog/:id?confirm=true
func (h *DashboardHandler) DeleteBlogPost(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	ctrl, ok := h.controller(c)
	if !ok {
		return
	}
	deleted, err := ctrl.DeleteBlogPost(c.Request.Context(), id, confirmed(c))
	deleteResult(c, deleted, err, usecases.PromptDeleteBlogPost)
}

// Logout signs out from the dashboard and discards its state.
// POST /api/v1/admin/logout
func (h *DashboardHandler) Logout(c *gin.Context) {
	ctrl, ok := h.controller(c)
	if !ok {
		return
	}
	if err := ctrl.Logout(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	h.dashboards.Release(ctrl.Session().ID)
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	response.Success(c, http.StatusOK, gin.H{"reload": true})
}
