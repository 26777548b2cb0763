package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/mi-inventory-api/internal/application/service"
	"github.com/sangkips/mi-inventory-api/internal/domain/entity"
	"github.com/sangkips/mi-inventory-api/internal/presentation/http/dto/request"
	"github.com/sangkips/mi-inventory-api/internal/presentation/http/dto/response"
)

// SessionHandler handles session and app state requests
type SessionHandler struct {
	sessionService *service.SessionService
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessionService *service.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

// Open starts a new working session for the caller.
func (h *SessionHandler) Open(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	view, err := h.sessionService.Open(c.Request.Context(), *userID, GetUserName(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Session opened", view)
}

func (h *SessionHandler) Get(c *gin.Context) {
	ref, ok := sessionRef(c)
	if !ok {
		return
	}
	view, err := h.sessionService.Get(c.Request.Context(), ref)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Session retrieved", view)
}

func (h *SessionHandler) Close(c *gin.Context) {
	ref, ok := sessionRef(c)
	if !ok {
		return
	}
	if err := h.sessionService.Close(c.Request.Context(), ref); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func (h *SessionHandler) ToggleSidebar(c *gin.Context) {
	ref, ok := sessionRef(c)
	if !ok {
		return
	}
	view, err := h.sessionService.ToggleSidebar(c.Request.Context(), ref)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Sidebar toggled", view)
}

func (h *SessionHandler) SelectIndustry(c *gin.Context) {
	ref, ok := sessionRef(c)
	if !ok {
		return
	}
	var req request.SelectIndustryRequest
	if !bindJSON(c, &req) {
		return
	}
	view, err := h.sessionService.SelectIndustry(c.Request.Context(), ref, req.Industry)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Industry selected", view)
}

func (h *SessionHandler) SetCompanyName(c *gin.Context) {
	ref, ok := sessionRef(c)
	if !ok {
		return
	}
	var req request.SetCompanyNameRequest
	if !bindJSON(c, &req) {
		return
	}
	view, err := h.sessionService.SetCompanyName(c.Request.Context(), ref, req.CompanyName)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Company name updated", view)
}

func (h *SessionHandler) SelectDepartment(c *gin.Context) {
	ref, ok := sessionRef(c)
	if !ok {
		return
	}
	var req request.SelectDepartmentRequest
	if !bindJSON(c, &req) {
		return
	}
	dept := entity.Department{Name: req.Name, CustomerFacing: true}
	if req.CustomerFacing != nil {
		dept.CustomerFacing = *req.CustomerFacing
	}
	view, err := h.sessionService.SelectDepartment(c.Request.Context(), ref, dept)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Department selected", view)
}

func (h *SessionHandler) ClearDepartment(c *gin.Context) {
	ref, ok := sessionRef(c)
	if !ok {
		return
	}
	view, err := h.sessionService.ClearDepartment(c.Request.Context(), ref)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Department cleared", view)
}
