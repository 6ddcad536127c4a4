package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/placementhub/internal/app/models/dto"
	"github.com/yigit/placementhub/internal/pkg/apperrors"
)

// statusClientClosedRequest is the non-standard status logged when the client went away.
const statusClientClosedRequest = 499

type errorMapping struct {
	target  error
	status  int
	code    dto.ErrorCode
	message string
}

// order matters: the first matching sentinel wins
var errorMappings = []errorMapping{
	{apperrors.ErrStudentNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Student not found"},
	{apperrors.ErrCompanyNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Company not found"},
	{apperrors.ErrResourceNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Resource not found"},
	{apperrors.ErrTokenExpired, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired"},
	{apperrors.ErrTokenInvalid, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token"},
	{apperrors.ErrInvalidYear, http.StatusBadRequest, dto.ErrorCodeInvalidYear, "Admission year is invalid"},
	{apperrors.ErrMalformedInput, http.StatusBadRequest, dto.ErrorCodeMalformedInput, "Input collection is malformed"},
	{apperrors.ErrBadRequest, http.StatusBadRequest, dto.ErrorCodeBadRequest, "Bad request"},
	{apperrors.ErrSourceUnavailable, http.StatusServiceUnavailable, dto.ErrorCodeSnapshotUnavailable, "Placement data is not available"},
}

// HandleAPIError maps an error onto a status code and error envelope
func HandleAPIError(c *gin.Context, err error) {
	status, detail := ErrorDetailFor(err)
	if status >= http.StatusInternalServerError {
		RequestLogger(c).Error().Err(err).Int("status", status).Msg("Request failed")
	}
	c.JSON(status, dto.NewErrorResponse(detail))
}

// ErrorDetailFor classifies err. Client errors are reported as warnings and a
// cancelled request as info. A CustomError's message and details replace the
// generic ones.
func ErrorDetailFor(err error) (int, *dto.ErrorDetail) {
	status := http.StatusInternalServerError
	detail := dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
	if errors.Is(err, context.Canceled) {
		status = statusClientClosedRequest
		detail = dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Request cancelled")
	}
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			status = m.status
			detail = dto.NewErrorDetail(m.code, m.message)
			break
		}
	}

	switch {
	case status == statusClientClosedRequest:
		detail.WithSeverity(dto.ErrorSeverityInfo)
	case status < http.StatusInternalServerError:
		detail.WithSeverity(dto.ErrorSeverityWarning)
	}

	var custom *apperrors.CustomError
	if status < http.StatusInternalServerError && errors.As(err, &custom) {
		if custom.Message != "" {
			detail.Message = custom.Message
		}
		if custom.Details != nil {
			detail.WithDetails(custom.Details)
		}
	}
	return status, detail
}

// RequestLogger returns the request-scoped logger set by RequestLogging, or a
// disabled logger.
func RequestLogger(c *gin.Context) *zerolog.Logger {
	if v, ok := c.Get(ContextLogger); ok {
		if l, ok := v.(zerolog.Logger); ok {
			return &l
		}
	}
	nop := zerolog.Nop()
	return &nop
}
