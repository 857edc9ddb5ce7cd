package response

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"bookstore-api/internal/shared/apperr"
	"bookstore-api/pkg/logger"
)

// Fail writes the response for err using the apperr table.
//
//   - validation errors: 400 with the field map as details
//   - apperr.ErrNotFound: 404, no body
//   - other client errors: their status and message
//   - everything else: logged with its cause, 500 with a static message
//
// action completes "Something went wrong <action>", e.g. "getting books".
func Fail(c *gin.Context, log *logger.Logger, err error, action string) {
	kind := apperr.KindOf(err)

	switch {
	case apperr.IsValidation(err) && kind.Status == http.StatusBadRequest:
		var fields validation.Errors
		if errors.As(err, &fields) {
			ValidationFailed(c, fields)
			return
		}
		ValidationFailed(c, err.Error())
	case errors.Is(err, apperr.ErrNotFound):
		NoContent(c, http.StatusNotFound)
	case kind.Status >= 400 && kind.Status < 500:
		msg := err.Error()
		if apperr.IsStoreError(err) {
			msg = firstLine(msg)
		}
		ErrorResponse(c, kind.Status, kind.Code, msg)
	default:
		msg := "Something went wrong " + action + ". Please contact the Administrator"
		log.Error(msg, err, map[string]interface{}{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"request_id": c.GetString("request_id"),
		})
		InternalServerError(c, msg)
	}
}

// firstLine keeps the apperr sentinel of a joined store error and drops the
// database text after it.
func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}
