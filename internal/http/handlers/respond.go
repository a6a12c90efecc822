package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmuiruri/staffhub/internal/domain/employee"
)

// Every failure body carries success:false so clients can branch on one field.

func RespondError(ctx *gin.Context, status int, message string) {
	ctx.JSON(status, gin.H{
		"success": false,
		"error":   message,
	})
}

func RespondBadRequest(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusBadRequest, message)
}

func RespondNotFound(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusNotFound, message)
}

// RespondValidation reports field-level failures the way the bind helper does,
// so domain-level checks and binding-tag checks look identical on the wire.
func RespondValidation(ctx *gin.Context, violations []employee.FieldViolation) {
	fields := make([]FieldError, 0, len(violations))

	for _, v := range violations {
		fields = append(fields, FieldError{
			Field:   v.Field,
			Message: v.Message,
		})
	}

	ctx.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"errors":  fields,
	})
}

// RespondInternal surfaces the underlying message for diagnostics; there is no
// sensitive data in this domain.
func RespondInternal(ctx *gin.Context, message string, err error) {
	body := gin.H{
		"success": false,
		"error":   message,
	}

	if err != nil {
		body["message"] = err.Error()
	}

	ctx.JSON(http.StatusInternalServerError, body)
}
