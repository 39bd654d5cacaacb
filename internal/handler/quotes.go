package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/thiagofdruzian/ERP/internal/apierror"
	"github.com/thiagofdruzian/ERP/internal/dto"
	"github.com/thiagofdruzian/ERP/internal/middleware"
	"github.com/thiagofdruzian/ERP/internal/service"
)

const (
	contentTypePDF  = "application/pdf"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type QuotesHandler struct{ svc service.QuoteService }

func NewQuotesHandler(svc service.QuoteService) *QuotesHandler {
	return &QuotesHandler{svc: svc}
}

// Criar godoc
// @Summary Cria uma cotacao (versao 1)
// @Tags cotacoes
// @Accept json
// @Produce json
// @Param body body dto.SaveQuoteRequest true "Cotacao"
// @Success 201 {object} dto.QuoteResponse
// @Failure 422 {object} apierror.APIError
// @Router /v1/cotacoes [post]
func (h *QuotesHandler) Criar(c *gin.Context) {
	var req dto.SaveQuoteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Save(c.Request.Context(), uuid.Nil, req, middleware.Actor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Atualizar godoc
// @Summary Salva uma nova versao sobre a versao carregada
// @Tags cotacoes
// @Accept json
// @Produce json
// @Param id path string true "ID da cotacao"
// @Param body body dto.SaveQuoteRequest true "Cotacao com a versao carregada"
// @Success 200 {object} dto.QuoteResponse
// @Failure 404 {object} apierror.APIError
// @Failure 409 {object} apierror.APIError
// @Router /v1/cotacoes/{id} [put]
func (h *QuotesHandler) Atualizar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.SaveQuoteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Save(c.Request.Context(), id, req, middleware.Actor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *QuotesHandler) ObterPorID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *QuotesHandler) ListarVersoes(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.svc.ListVersions(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *QuotesHandler) ObterVersao(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	version, ok := parsePositiveInt(c, c.Param("versao"), "Versao")
	if !ok {
		return
	}
	resp, err := h.svc.GetVersion(c.Request.Context(), id, version)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Listar godoc
// @Summary Lista as cotacoes mais recentes
// @Tags cotacoes
// @Produce json
// @Param limit query int false "Maximo de linhas (padrao 200)"
// @Param status query string false "Status ou TODOS"
// @Param fornecedor query string false "Trecho do fornecedor"
// @Param produto query string false "Trecho do produto"
// @Param usuario query string false "Trecho do usuario"
// @Param data_de query string false "AAAA-MM-DD"
// @Param data_ate query string false "AAAA-MM-DD"
// @Success 200 {object} dto.QuoteListResponse
// @Router /v1/cotacoes [get]
func (h *QuotesHandler) Listar(c *gin.Context) {
	var q dto.QuoteListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.ListRecent(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *QuotesHandler) Duplicar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Duplicate(c.Request.Context(), id, middleware.Actor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Enviar godoc
// @Summary Envia o PDF da cotacao por e-mail
// @Tags cotacoes
// @Accept json
// @Produce json
// @Param id path string true "ID da cotacao"
// @Param body body dto.SendQuoteEmailRequest true "Destinatario"
// @Success 202 {object} dto.SendQuoteEmailResponse
// @Failure 404 {object} apierror.APIError
// @Failure 503 {object} apierror.APIError
// @Router /v1/cotacoes/{id}/enviar [post]
func (h *QuotesHandler) Enviar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.SendQuoteEmailRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.SendByEmail(c.Request.Context(), id, req, middleware.Actor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, resp)
}

// BaixarPDF renders the head, or the version given by ?versao=N.
func (h *QuotesHandler) BaixarPDF(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	version := 0
	if raw := c.Query("versao"); raw != "" {
		if version, ok = parsePositiveInt(c, raw, "Versao"); !ok {
			return
		}
	}
	pdf, err := h.svc.RenderPDF(c.Request.Context(), id, version)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="cotacao-%s.pdf"`, id.String()[:8]))
	c.Data(http.StatusOK, contentTypePDF, pdf)
}

func (h *QuotesHandler) Exportar(c *gin.Context) {
	var q dto.QuoteListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	xlsx, err := h.svc.ExportXLSX(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	name := "cotacoes-" + time.Now().UTC().Format("20060102") + ".xlsx"
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, contentTypeXLSX, xlsx)
}
