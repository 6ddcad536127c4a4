package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/yigit/placementhub/internal/app/models/dto"
)

// BindJSON decodes the request body into obj. On failure it writes the error
// envelope and returns false; malformed input maps to ANL_002, rule
// violations to VAL_001.
func BindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		var detail *dto.ErrorDetail
		if _, ok := err.(validator.ValidationErrors); ok {
			detail = dto.HandleValidationError(err)
		} else {
			detail = dto.NewErrorDetail(dto.ErrorCodeMalformedInput, "Request body is malformed").WithDetails(err.Error())
		}
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return false
	}
	return true
}
