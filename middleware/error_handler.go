package middleware

import (
	"errors"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/venkatesh1545/drone-x-alert-now/models"
	"github.com/venkatesh1545/drone-x-alert-now/utils"
)

// ErrorHandler is the outermost recovery and error-translation layer.
// Controllers normally answer through the response helpers; this
// catches panics and errors pushed onto the gin context.
type ErrorHandler struct {
	environment string
	logger      *logrus.Logger
}

func NewErrorHandler(environment string, logger *logrus.Logger) *ErrorHandler {
	return &ErrorHandler{
		environment: environment,
		logger:      logger,
	}
}

func (eh *ErrorHandler) Handle() gin.HandlerFunc {
	return gin.HandlerFunc(func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				eh.handlePanic(c, err)
			}
		}()

		c.Next()

		if len(c.Errors) > 0 {
			eh.handleGinErrors(c)
		}
	})
}

func (eh *ErrorHandler) handlePanic(c *gin.Context, err interface{}) {
	eh.logger.WithFields(logrus.Fields{
		"panic":      err,
		"stack":      string(debug.Stack()),
		"request_id": c.GetString("request_id"),
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"user_id":    c.GetString("userID"),
	}).Error("Panic recovered")

	c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Error:   "INTERNAL_ERROR",
		Message: "Internal server error",
		Code:    "PANIC_RECOVERED",
	})
	c.Abort()
}

func (eh *ErrorHandler) handleGinErrors(c *gin.Context) {
	lastError := c.Errors.Last()
	if lastError == nil || c.Writer.Written() {
		return
	}

	for _, ginErr := range c.Errors {
		eh.logError(c, ginErr.Err)
	}

	eh.processError(c, lastError.Err)
}

func (eh *ErrorHandler) logError(c *gin.Context, err error) {
	fields := logrus.Fields{
		"error":      err.Error(),
		"request_id": c.GetString("request_id"),
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"user_id":    c.GetString("userID"),
		"ip":         c.ClientIP(),
	}

	if serviceErr, ok := utils.GetServiceError(err); ok && serviceErr.StatusCode < http.StatusInternalServerError {
		eh.logger.WithFields(fields).Warn("Client error")
		return
	}
	eh.logger.WithFields(fields).Error("Server error")
}

func (eh *ErrorHandler) processError(c *gin.Context, err error) {
	if serviceErr, ok := utils.GetServiceError(err); ok {
		c.JSON(serviceErr.StatusCode, models.ErrorResponse{
			Error:   serviceErr.Code,
			Message: serviceErr.Message,
			Code:    serviceErr.Code,
		})
		return
	}

	switch {
	case mongo.IsDuplicateKeyError(err):
		c.JSON(http.StatusConflict, models.ErrorResponse{
			Error:   "CONFLICT",
			Message: "Resource already exists",
			Code:    "DUPLICATE_RESOURCE",
		})

	case errors.Is(err, mongo.ErrNoDocuments):
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "NOT_FOUND",
			Message: "Resource not found",
			Code:    "RESOURCE_NOT_FOUND",
		})

	case mongo.IsTimeout(err):
		c.JSON(http.StatusGatewayTimeout, models.ErrorResponse{
			Error:   "TIMEOUT",
			Message: "Database operation timed out",
			Code:    "DATABASE_TIMEOUT",
		})

	case mongo.IsNetworkError(err):
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{
			Error:   "SERVICE_UNAVAILABLE",
			Message: "Database connection error",
			Code:    "DATABASE_CONNECTION_ERROR",
		})

	default:
		response := models.ErrorResponse{
			Error:   "INTERNAL_ERROR",
			Message: "An unexpected error occurred",
			Code:    "UNKNOWN_ERROR",
		}
		if eh.environment == "development" {
			response.Message = err.Error()
		}
		c.JSON(http.StatusInternalServerError, response)
	}
}
