package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type ErrorResponse struct {
	Message string `json:"message"`
}

// FieldError describes a single failed field check.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationErrorResponse struct {
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors"`
}

type PaginatedResponse struct {
	Total int64       `json:"total"`
	Page  int         `json:"page"`
	Limit int         `json:"limit"`
	Data  interface{} `json:"data"`
}

func SendError(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorResponse{Message: message})
}

func SendMessage(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message})
}

// SendValidationErrors short-circuits a request with the full list of field
// errors, before any store access happens.
func SendValidationErrors(c *gin.Context, errs []FieldError) {
	c.JSON(http.StatusBadRequest, ValidationErrorResponse{
		Message: "Validation failed",
		Errors:  errs,
	})
}

func SendPaginated(c *gin.Context, data interface{}, page, limit int, total int64) {
	c.JSON(http.StatusOK, PaginatedResponse{
		Total: total,
		Page:  page,
		Limit: limit,
		Data:  data,
	})
}
