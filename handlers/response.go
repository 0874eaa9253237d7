package handlers

import (
	"errors"
	"net/http"

	"urbanset/middleware"
	"urbanset/models"
	"urbanset/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const genericErrorMessage = "An unexpected error occurred. Please try again later."

func respondOK(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

// respondError writes the error envelope for err. Unexpected failures are
// logged with their cause; clients only see the safe message.
func respondError(c *gin.Context, err error) {
	var appErr *utils.AppError
	if !errors.As(err, &appErr) {
		getLogger(c).Error("unhandled error", zap.Error(err))
		utils.JSONError(c, utils.KindUnexpected, genericErrorMessage)
		return
	}
	if appErr.Kind == utils.KindUnexpected {
		getLogger(c).Error(appErr.Message, zap.Error(appErr.Err))
		message := appErr.Message
		if message == "" {
			message = genericErrorMessage
		}
		utils.JSONError(c, utils.KindUnexpected, message)
		return
	}
	if appErr.Kind == utils.KindValidation && appErr.Err != nil {
		utils.JSONError(c, appErr.Kind, appErr.Message, utils.ValidationMessages(appErr.Err)...)
		return
	}
	utils.JSONError(c, appErr.Kind, appErr.Message)
}

// bindJSON decodes the body and reports malformed payloads as validation errors.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		utils.JSONError(c, utils.KindValidation, "invalid request body", err.Error())
		return false
	}
	return true
}

// principal returns the authenticated caller or writes a 401.
func principal(c *gin.Context) (models.Principal, bool) {
	p, ok := middleware.CurrentPrincipal(c)
	if !ok {
		utils.JSONError(c, utils.KindUnauthenticated, "authentication required")
		return models.Principal{}, false
	}
	return p, true
}

func statusFor(created bool) int {
	if created {
		return http.StatusCreated
	}
	return http.StatusOK
}
