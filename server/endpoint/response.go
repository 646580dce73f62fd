package endpoint

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/alextes/calabi/errors"
)

// DataResponse is the standard success envelope.
type DataResponse struct {
	Data any   `json:"data"`
	Meta *Meta `json:"meta,omitempty"`
}

// Meta carries list metadata.
type Meta struct {
	Total int `json:"total"`
}

// ErrorResponse is the standard error envelope.
type ErrorResponse struct {
	Error *apperrors.AppError `json:"error"`
}

var statusByCode = map[apperrors.ErrorCode]int{
	apperrors.ErrCodeInvalidInput:       http.StatusBadRequest,
	apperrors.ErrCodeMissingField:       http.StatusBadRequest,
	apperrors.ErrCodeInvalidFormat:      http.StatusBadRequest,
	apperrors.ErrCodeUnauthorized:       http.StatusUnauthorized,
	apperrors.ErrCodeRateLimited:        http.StatusTooManyRequests,
	apperrors.ErrCodeServiceUnavailable: http.StatusServiceUnavailable,
	apperrors.ErrCodeTimeout:            http.StatusGatewayTimeout,
	apperrors.ErrCodeConnectionFailed:   http.StatusBadGateway,
	apperrors.ErrCodeExternalService:    http.StatusBadGateway,
	apperrors.ErrCodeUnknownIndicator:   http.StatusBadGateway,
}

// HTTPStatus maps an error code to the status it is answered with.
func HTTPStatus(code apperrors.ErrorCode) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// RespondWithError answers with err's code and message. Errors that are not
// an *apperrors.AppError become a generic 500.
func RespondWithError(c *gin.Context, err error) {
	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		appErr = apperrors.Internal(err)
	}
	c.AbortWithStatusJSON(HTTPStatus(appErr.Code), ErrorResponse{Error: appErr})
}

// RespondOK sends a 200 response wrapping data.
func RespondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, DataResponse{Data: data})
}

// RespondOKWithMeta sends a 200 response with data and metadata.
func RespondOKWithMeta(c *gin.Context, data any, meta *Meta) {
	c.JSON(http.StatusOK, DataResponse{Data: data, Meta: meta})
}
