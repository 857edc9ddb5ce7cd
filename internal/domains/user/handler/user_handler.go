package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"bookstore-api/internal/domains/user/model"
	"bookstore-api/internal/domains/user/service"
	"bookstore-api/internal/shared/response"
	"bookstore-api/internal/shared/utils"
	"bookstore-api/pkg/logger"
)

type UserHandler struct {
	service service.Service
	log     *logger.Logger
}

func NewUserHandler(svc service.Service, log *logger.Logger) *UserHandler {
	return &UserHandler{
		service: svc,
		log:     log,
	}
}

// Login - POST /api/users
func (h *UserHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, model.ErrInvalidCredentials) {
			h.log.Warn("login failed", map[string]interface{}{
				"username": req.Username,
				"ip":       utils.ClientIP(c),
			})
			response.ErrorWithDetails(c, http.StatusUnauthorized, "UNAUTHORIZED", err.Error(),
				model.UnauthorizedLogin{Username: req.Username})
			return
		}
		response.Fail(c, h.log, err, fmt.Sprintf("login with user [%s]", req.Username))
		return
	}

	response.Success(c, http.StatusOK, resp)
}
