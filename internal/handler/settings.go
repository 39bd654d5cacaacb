package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thiagofdruzian/ERP/internal/dto"
	"github.com/thiagofdruzian/ERP/internal/middleware"
	"github.com/thiagofdruzian/ERP/internal/service"
)

type SettingsHandler struct{ svc service.SettingsService }

func NewSettingsHandler(svc service.SettingsService) *SettingsHandler {
	return &SettingsHandler{svc: svc}
}

func (h *SettingsHandler) ObterArredondamento(c *gin.Context) {
	strategy, err := h.svc.RoundingStrategy(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.RoundingStrategyResponse{Strategy: strategy})
}

// DefinirArredondamento godoc
// @Summary Define a terminacao comercial de precos (NORMAL, X90, X99)
// @Tags configuracoes
// @Accept json
// @Produce json
// @Param body body dto.RoundingStrategyRequest true "Estrategia"
// @Success 200 {object} dto.RoundingStrategyResponse
// @Failure 422 {object} apierror.APIError
// @Router /v1/configuracoes/arredondamento [put]
func (h *SettingsHandler) DefinirArredondamento(c *gin.Context) {
	var req dto.RoundingStrategyRequest
	if !bindAndValidate(c, &req) {
		return
	}
	strategy, err := h.svc.SetRoundingStrategy(c.Request.Context(), req.Strategy, middleware.Actor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.RoundingStrategyResponse{Strategy: strategy})
}

func (h *SettingsHandler) ListarPrecosMinimos(c *gin.Context) {
	resp, err := h.svc.ListMinPriceRules(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SettingsHandler) DefinirPrecoMinimo(c *gin.Context) {
	var req dto.MinPriceRuleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.SetMinPriceRule(c.Request.Context(), req, middleware.Actor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
