package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"bookstore-api/internal/domains/author/model"
	"bookstore-api/internal/shared/apperr"
	"bookstore-api/internal/shared/repository"
	"bookstore-api/internal/shared/response"
	"bookstore-api/internal/shared/utils"
	"bookstore-api/pkg/logger"
)

type AuthorHandler struct {
	repo repository.Repository[model.Author]
	log  *logger.Logger
}

func NewAuthorHandler(repo repository.Repository[model.Author], log *logger.Logger) *AuthorHandler {
	return &AuthorHandler{
		repo: repo,
		log:  log,
	}
}

// ════════════════════════════════════════════════════════════════
// READ: GetAll - GET /api/authors
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) GetAll(c *gin.Context) {
	h.log.Info("attempted get all authors", nil)

	authors, err := h.repo.FindAll(c.Request.Context())
	if err != nil {
		response.Fail(c, h.log, err, "getting authors")
		return
	}

	res := make([]model.AuthorDTO, len(authors))
	for i := range authors {
		res[i] = *authors[i].ToDTO()
	}

	h.log.Info("successfully got all authors", map[string]interface{}{"count": len(res)})
	response.Success(c, http.StatusOK, res)
}

// ════════════════════════════════════════════════════════════════
// READ: GetByID - GET /api/authors/:id
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) GetByID(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	a, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			h.log.Warn("author not found", map[string]interface{}{"author_id": id})
		}
		response.Fail(c, h.log, err, fmt.Sprintf("getting author with id %d", id))
		return
	}

	response.Success(c, http.StatusOK, a.ToDTO())
}

// ════════════════════════════════════════════════════════════════
// CREATE: POST /api/authors
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) Create(c *gin.Context) {
	var req model.AuthorCreateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.Fail(c, h.log, err, "creating author")
		return
	}

	a := req.ToEntity()
	ok, err := h.repo.Create(c.Request.Context(), a)
	if err == nil && !ok {
		err = apperr.ErrNoRowsChanged
	}
	if err != nil {
		response.Fail(c, h.log, err, "creating author")
		return
	}

	h.log.Info("author created", map[string]interface{}{"author_id": a.ID, "name": a.FullName()})
	c.Header("Location", fmt.Sprintf("/api/authors/%d", a.ID))
	response.Success(c, http.StatusCreated, a.ToDTO())
}

// ════════════════════════════════════════════════════════════════
// UPDATE: PUT /api/authors/:id
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) Update(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	var req model.AuthorUpdateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.Fail(c, h.log, err, "updating author")
		return
	}
	if !req.MatchesID(id) {
		response.BadRequest(c, model.ErrIDMismatch.Error())
		return
	}

	ctx := c.Request.Context()
	action := fmt.Sprintf("updating author with id %d", id)

	a, err := h.repo.FindByID(ctx, id)
	if err != nil {
		response.Fail(c, h.log, err, action)
		return
	}

	req.ApplyTo(a)
	ok, err := h.repo.Update(ctx, a)
	if err == nil && !ok {
		err = apperr.ErrNoRowsChanged
	}
	if err != nil {
		response.Fail(c, h.log, err, action)
		return
	}

	h.log.Info("author updated", map[string]interface{}{"author_id": id})
	response.NoContent(c, http.StatusNoContent)
}

// ════════════════════════════════════════════════════════════════
// DELETE: DELETE /api/authors/:id
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) Delete(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	action := fmt.Sprintf("deleting author with id %d", id)

	a, err := h.repo.FindByID(ctx, id)
	if err != nil {
		response.Fail(c, h.log, err, action)
		return
	}

	ok, err := h.repo.Delete(ctx, a)
	if err == nil && !ok {
		err = apperr.ErrNoRowsChanged
	}
	if err != nil {
		response.Fail(c, h.log, err, action)
		return
	}

	h.log.Info("author deleted", map[string]interface{}{"author_id": id})
	response.NoContent(c, http.StatusNoContent)
}
