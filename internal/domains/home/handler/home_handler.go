package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bookstore-api/internal/shared/response"
	"bookstore-api/pkg/logger"
)

const Greeting = "Hello from Book Store Api"

type HomeHandler struct {
	log *logger.Logger
}

func NewHomeHandler(log *logger.Logger) *HomeHandler {
	return &HomeHandler{log: log}
}

// Get - GET /api/home
func (h *HomeHandler) Get(c *gin.Context) {
	h.log.Info("accessed home controller", nil)
	response.Success(c, http.StatusOK, Greeting)
}
