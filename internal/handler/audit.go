package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/thiagofdruzian/ERP/internal/apierror"
	"github.com/thiagofdruzian/ERP/internal/service"
)

type AuditHandler struct{ svc service.AuditService }

func NewAuditHandler(svc service.AuditService) *AuditHandler { return &AuditHandler{svc: svc} }

// Listar godoc
// @Summary Trilha de auditoria, mais recentes primeiro
// @Tags auditoria
// @Produce json
// @Param limit query int false "Maximo de linhas (padrao 300)"
// @Success 200 {array} dto.AuditLogResponse
// @Router /v1/auditoria [get]
func (h *AuditHandler) Listar(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("limit invalido"))
			return
		}
		limit = n
	}
	resp, err := h.svc.ListRecent(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
