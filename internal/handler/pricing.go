package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thiagofdruzian/ERP/internal/dto"
	"github.com/thiagofdruzian/ERP/internal/service"
)

type PricingHandler struct{ svc service.PricingService }

func NewPricingHandler(svc service.PricingService) *PricingHandler {
	return &PricingHandler{svc: svc}
}

// Calcular godoc
// @Summary Calcula preco de venda a partir da margem ou margem a partir do preco
// @Tags precos
// @Accept json
// @Produce json
// @Param body body dto.CalculateRequest true "Compra, venda e modo"
// @Success 200 {object} dto.CalculateResponse
// @Failure 422 {object} apierror.APIError
// @Router /v1/precos/calcular [post]
func (h *PricingHandler) Calcular(c *gin.Context) {
	var req dto.CalculateRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Calculate(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
