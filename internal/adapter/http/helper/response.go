package helper

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"todoapi/internal/core/domain"
	"todoapi/internal/core/model/response"
)

// GenericErrorMessage replaces the cause of a 500 when causes are hidden.
const GenericErrorMessage = "internal server error"

func SendSuccess(c *gin.Context, todo domain.Todo) {
	c.JSON(http.StatusOK, response.NewSuccessResponse(todo))
}

func SendList(c *gin.Context, todos []domain.Todo) {
	c.JSON(http.StatusOK, response.NewListResponse(todos))
}

func SendFail(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, response.ErrorResponse{
		Status:  response.StatusFail,
		Message: message,
	})
}

func SendNotFound(c *gin.Context, id int64) {
	SendFail(c, http.StatusNotFound, NotFoundMessage(id))
}

func NotFoundMessage(id int64) string {
	return fmt.Sprintf("todo with ID: %d not found", id)
}

// SendInternalError writes a 500 error envelope. The cause is attached to the
// gin context for the access log and only rendered when expose is set.
func SendInternalError(c *gin.Context, err error, expose bool) {
	_ = c.Error(err)

	message := GenericErrorMessage
	if expose {
		message = err.Error()
	}

	c.JSON(http.StatusInternalServerError, response.ErrorResponse{
		Status:  response.StatusError,
		Message: message,
	})
}

// SendError maps a core error onto its status code and envelope.
func SendError(c *gin.Context, id int64, err error, expose bool) {
	var validationErr *domain.ValidationError

	switch {
	case domain.IsNotFound(err):
		SendNotFound(c, id)
	case errors.As(err, &validationErr):
		SendFail(c, http.StatusBadRequest, validationErr.Message)
	default:
		SendInternalError(c, err, expose)
	}
}
