package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"mandalart/internal/ai"
	"mandalart/internal/history"
	"mandalart/internal/repository"
	"mandalart/internal/service"
)

// Retry prompts shown when the model produced nothing usable. The raw
// model output never reaches the client.
var retryMessages = map[string]string{
	"en": "Something went wrong while generating. Please try again.",
	"pt": "Algo deu errado ao gerar. Tente novamente.",
}

func retryMessage(locale string) string {
	if msg, ok := retryMessages[locale]; ok {
		return msg
	}
	return retryMessages["en"]
}

// writeError maps service and pipeline errors to HTTP responses.
func writeError(c *gin.Context, locale string, err error) {
	var genErr *ai.GenerationError
	var parseErr *ai.ParseError
	var valErr *ai.ValidationError
	switch {
	case errors.As(err, &genErr), errors.As(err, &parseErr), errors.As(err, &valErr):
		c.JSON(http.StatusBadGateway, gin.H{"error": retryMessage(locale)})
	case errors.Is(err, service.ErrBusy):
		c.JSON(http.StatusConflict, gin.H{"error": "a generation is already in progress"})
	case errors.Is(err, repository.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrEmptyGoal),
		errors.Is(err, service.ErrMissingAnswers),
		errors.Is(err, service.ErrInvalidStep),
		errors.Is(err, service.ErrNoDocument),
		errors.Is(err, service.ErrNoSuchItem):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, history.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
