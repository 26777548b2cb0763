package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/mi-inventory-api/internal/application/service"
	"github.com/sangkips/mi-inventory-api/internal/presentation/http/dto/response"
)

// IndustryHandler serves the static industry capability table.
type IndustryHandler struct {
	industryService *service.IndustryService
}

func NewIndustryHandler(industryService *service.IndustryService) *IndustryHandler {
	return &IndustryHandler{industryService: industryService}
}

func (h *IndustryHandler) List(c *gin.Context) {
	response.OK(c, "Industries retrieved", h.industryService.List())
}

// Get returns one industry profile together with its capability flags.
func (h *IndustryHandler) Get(c *gin.Context) {
	name := c.Param("industry")
	profile, err := h.industryService.Profile(name)
	if err != nil {
		response.Error(c, err)
		return
	}
	caps, err := h.industryService.Capabilities(name)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Industry retrieved", gin.H{
		"profile":      profile,
		"capabilities": caps,
	})
}
