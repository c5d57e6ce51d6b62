package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/dxbpulse/internal/domain/dto"
)

// ErrorHandler renders the last error attached with c.Error as an
// ErrorResponse when the handler did not write a response itself.
//
// An attached dto.ErrorResponse is sent as is; anything else becomes a
// 500 "Internal server error".
var ErrorHandler gin.HandlerFunc = func(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 || c.Writer.Written() {
		return
	}

	err := c.Errors.Last().Err
	var resp dto.ErrorResponse
	if !errors.As(err, &resp) {
		resp = dto.NewErrorResponse("Internal server error", err)
	}
	status := c.Writer.Status()
	if status < http.StatusBadRequest {
		status = http.StatusInternalServerError
	}
	c.JSON(status, resp)
}

// AbortWithError stops the chain and writes an ErrorResponse with status.
// err is recorded on the context so RequestLogger can report it.
func AbortWithError(c *gin.Context, status int, message string, err error) {
	if err != nil {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(message, err))
}
