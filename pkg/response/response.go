package response

import (
	"errors"
	"net/http"

	"go-userapi/internal/util/apperr"

	"github.com/gin-gonic/gin"
)

// ErrorBody 通用错误响应
type ErrorBody struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// ValidationBody 字段校验错误响应
type ValidationBody struct {
	Status int               `json:"status"`
	Errors map[string]string `json:"errors"`
}

func OK(c *gin.Context, data interface{}) { c.JSON(http.StatusOK, data) }

func Created(c *gin.Context, data interface{}) { c.JSON(http.StatusCreated, data) }

func NoContent(c *gin.Context) { c.Status(http.StatusNoContent) }

// Err is the single translation point from service errors to transport.
// Validation failures carry the field map; every other error — business
// rule, not found, storage — maps to 400 with the raw message. Not-found is
// deliberately 400 rather than 404: existing clients depend on it.
func Err(c *gin.Context, err error) {
	var ve *apperr.ValidationError
	if errors.As(err, &ve) {
		c.JSON(http.StatusBadRequest, ValidationBody{Status: http.StatusBadRequest, Errors: ve.Fields})
		return
	}
	c.JSON(http.StatusBadRequest, ErrorBody{Status: http.StatusBadRequest, Message: err.Error()})
}
