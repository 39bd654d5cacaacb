package handler

import (
	"errors"
	"net/http"
	"reflect"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/thiagofdruzian/ERP/internal/apierror"
	"github.com/thiagofdruzian/ERP/internal/dto"
	"github.com/thiagofdruzian/ERP/internal/middleware"
	"github.com/thiagofdruzian/ERP/internal/pricing"
	"github.com/thiagofdruzian/ERP/internal/repository"
	"github.com/thiagofdruzian/ERP/internal/service"
)

var validate = validator.New()

func init() {
	// Numeric validator tags (min, gt, required) need a float view of the
	// decimal types; an absent FlexDecimal reads as nil so "required" fails.
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		switch v := field.Interface().(type) {
		case decimal.Decimal:
			f, _ := v.Float64()
			return f
		case dto.FlexDecimal:
			if !v.Valid {
				return nil
			}
			f, _ := v.Decimal.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{}, dto.FlexDecimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails;
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				fields[fe.Field()] = fe.Tag()
			}
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// errorStatus maps domain errors to HTTP status codes.
var errorStatus = []struct {
	err    error
	status int
}{
	{repository.ErrNotFound, http.StatusNotFound},
	{repository.ErrVersionNotFound, http.StatusNotFound},
	{repository.ErrConcurrencyConflict, http.StatusConflict},
	{service.ErrInvalidCredentials, http.StatusUnauthorized},
	{service.ErrUsernameTaken, http.StatusConflict},
	{pricing.ErrSaleTaxLoadTooHigh, http.StatusUnprocessableEntity},
	{service.ErrInvalidRoundingStrategy, http.StatusUnprocessableEntity},
	{service.ErrInvalidScope, http.StatusUnprocessableEntity},
	{service.ErrEmptyScopeKey, http.StatusUnprocessableEntity},
	{service.ErrSalePriceRequired, http.StatusUnprocessableEntity},
	{service.ErrVersionRequired, http.StatusUnprocessableEntity},
	{service.ErrInvalidDate, http.StatusUnprocessableEntity},
	{service.ErrPasswordTooShort, http.StatusUnprocessableEntity},
	{service.ErrEmailDisabled, http.StatusServiceUnavailable},
	{service.ErrEmailUnavailable, http.StatusServiceUnavailable},
}

// respondError writes the mapped status with the error's own message, or a
// generic 500 for anything unexpected.
func respondError(c *gin.Context, err error) {
	for _, m := range errorStatus {
		if errors.Is(err, m.err) {
			c.JSON(m.status, apierror.New(m.err.Error()))
			return
		}
	}
	log.Error().Err(err).
		Str("request_id", c.GetString(middleware.RequestIDKey)).
		Str("path", c.FullPath()).
		Msg("request failed")
	c.JSON(http.StatusInternalServerError, apierror.New("Erro interno do servidor"))
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return uuid.Nil, false
	}
	return id, true
}

func parsePositiveInt(c *gin.Context, raw, field string) (int, bool) {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		c.JSON(http.StatusBadRequest, apierror.New(field+" invalido"))
		return 0, false
	}
	return n, true
}
