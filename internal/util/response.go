package util

import (
	"net/http"
	"net/url"

	"practice_hub_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response is the uniform JSON envelope.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// PageResponse wraps a listing page.
type PageResponse struct {
	List      interface{} `json:"list"`
	Total     int64       `json:"total"`
	Page      int         `json:"page"`
	PageCount int         `json:"page_count"`
	Limit     int         `json:"limit"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    http.StatusCreated,
		Message: "created",
		Data:    data,
	})
}

func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

func Unauthorized(c *gin.Context) {
	Error(c, http.StatusUnauthorized, "Unauthorized")
}

func Forbidden(c *gin.Context) {
	Error(c, http.StatusForbidden, "Forbidden")
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func NotFound(c *gin.Context) {
	Error(c, http.StatusNotFound, "Resource not found")
}

func InternalServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Internal server error")
}

func LogInternalError(c *gin.Context, err error) {
	logger.Log.Error("Internal server error", zap.Error(err))
	InternalServerError(c)
}

// SeeOther redirects after a POST. 303 forces the follow-up to be a
// GET regardless of the original method.
func SeeOther(c *gin.Context, location string) {
	c.Redirect(http.StatusSeeOther, location)
}

// SeeOtherWithCapsule appends the one-time form-state token to the
// redirect target.
func SeeOtherWithCapsule(c *gin.Context, location, token string) {
	sep := "?"
	if u, err := url.Parse(location); err == nil && u.RawQuery != "" {
		sep = "&"
	}
	c.Redirect(http.StatusSeeOther, location+sep+"fs="+url.QueryEscape(token))
}
