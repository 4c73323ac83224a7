package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Fixed client-error message for unparseable request bodies; the layout UI
// matches on it.
var errInvalidJSON = errors.New("Invalid JSON")

func RespondData(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, gin.H{"data": payload})
}

func RespondError(c *gin.Context, status int, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, gin.H{"error": msg})
}
