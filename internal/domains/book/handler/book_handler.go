package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"bookstore-api/internal/domains/book/model"
	"bookstore-api/internal/shared/apperr"
	"bookstore-api/internal/shared/repository"
	"bookstore-api/internal/shared/response"
	"bookstore-api/internal/shared/utils"
	"bookstore-api/pkg/logger"
)

// AuthorChecker is the part of the author repository a book handler needs.
type AuthorChecker interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

type BookHandler struct {
	repo    repository.Repository[model.Book]
	authors AuthorChecker
	log     *logger.Logger
}

func NewBookHandler(repo repository.Repository[model.Book], authors AuthorChecker, log *logger.Logger) *BookHandler {
	return &BookHandler{
		repo:    repo,
		authors: authors,
		log:     log,
	}
}

// ════════════════════════════════════════════════════════════════
// READ: GetAll - GET /api/books
// ════════════════════════════════════════════════════════════════

func (h *BookHandler) GetAll(c *gin.Context) {
	h.log.Info("attempted get all books", nil)

	books, err := h.repo.FindAll(c.Request.Context())
	if err != nil {
		response.Fail(c, h.log, err, "getting books")
		return
	}

	res := make([]model.BookDTO, len(books))
	for i := range books {
		res[i] = *books[i].ToDTO()
	}

	h.log.Info("successfully got all books", map[string]interface{}{"count": len(res)})
	response.Success(c, http.StatusOK, res)
}

// ════════════════════════════════════════════════════════════════
// READ: GetByID - GET /api/books/:id
// ════════════════════════════════════════════════════════════════

func (h *BookHandler) GetByID(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	b, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, h.log, err, fmt.Sprintf("getting book with id %d", id))
		return
	}

	response.Success(c, http.StatusOK, b.ToDTO())
}

// ════════════════════════════════════════════════════════════════
// CREATE: POST /api/books
// ════════════════════════════════════════════════════════════════

func (h *BookHandler) Create(c *gin.Context) {
	var req model.BookCreateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.Fail(c, h.log, err, "creating book")
		return
	}

	ctx := c.Request.Context()
	if err := h.checkAuthor(ctx, req.AuthorID); err != nil {
		response.Fail(c, h.log, err, "creating book")
		return
	}

	b := req.ToEntity()
	ok, err := h.repo.Create(ctx, b)
	if err == nil && !ok {
		err = apperr.ErrNoRowsChanged
	}
	if err != nil {
		response.Fail(c, h.log, err, "creating book")
		return
	}

	h.log.Info("book created", map[string]interface{}{"book_id": b.ID})
	c.Header("Location", fmt.Sprintf("/api/books/%d", b.ID))
	response.Success(c, http.StatusCreated, b.ToDTO())
}

// ════════════════════════════════════════════════════════════════
// UPDATE: PUT /api/books/:id
// ════════════════════════════════════════════════════════════════

func (h *BookHandler) Update(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	var req model.BookUpdateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.Fail(c, h.log, err, "updating book")
		return
	}
	if !req.MatchesID(id) {
		response.BadRequest(c, model.ErrIDMismatch.Error())
		return
	}

	ctx := c.Request.Context()
	action := fmt.Sprintf("updating book with id %d", id)

	b, err := h.repo.FindByID(ctx, id)
	if err != nil {
		response.Fail(c, h.log, err, action)
		return
	}
	if err := h.checkAuthor(ctx, req.AuthorID); err != nil {
		response.Fail(c, h.log, err, action)
		return
	}

	req.ApplyTo(b)
	ok, err := h.repo.Update(ctx, b)
	if err == nil && !ok {
		err = apperr.ErrNoRowsChanged
	}
	if err != nil {
		response.Fail(c, h.log, err, action)
		return
	}

	h.log.Info("book updated", map[string]interface{}{"book_id": id})
	response.NoContent(c, http.StatusNoContent)
}

// ════════════════════════════════════════════════════════════════
// DELETE: DELETE /api/books/:id
// ════════════════════════════════════════════════════════════════

func (h *BookHandler) Delete(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	action := fmt.Sprintf("deleting book with id %d", id)

	b, err := h.repo.FindByID(ctx, id)
	if err != nil {
		response.Fail(c, h.log, err, action)
		return
	}

	ok, err := h.repo.Delete(ctx, b)
	if err == nil && !ok {
		err = apperr.ErrNoRowsChanged
	}
	if err != nil {
		response.Fail(c, h.log, err, action)
		return
	}

	h.log.Info("book deleted", map[string]interface{}{"book_id": id})
	response.NoContent(c, http.StatusNoContent)
}

// checkAuthor rejects an author id that does not exist. A nil id is allowed.
func (h *BookHandler) checkAuthor(ctx context.Context, authorID *int64) error {
	if authorID == nil {
		return nil
	}

	exists, err := h.authors.Exists(ctx, *authorID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: %s (id %d)", apperr.ErrBadRequest, model.ErrAuthorNotFound, *authorID)
	}
	return nil
}
