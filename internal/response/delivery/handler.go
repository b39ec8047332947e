package delivery

import (
	"errors"
	"net/http"

	responsedomain "github.com/tinkertanker/discord-summariser/internal/response/domain"
	responsedto "github.com/tinkertanker/discord-summariser/internal/response/dto"
	"github.com/tinkertanker/discord-summariser/internal/response/usecase"
	summarydomain "github.com/tinkertanker/discord-summariser/internal/summary/domain"

	"github.com/gin-gonic/gin"
)

type ResponseHandler struct {
	responseUsecase usecase.ResponseUsecase
}

func NewResponseHandler(responseUsecase usecase.ResponseUsecase) *ResponseHandler {
	return &ResponseHandler{
		responseUsecase: responseUsecase,
	}
}

func (h *ResponseHandler) GenerateResponses(c *gin.Context) {
	userID := c.GetString("userID")

	var req responsedto.GenerateResponsesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	responses, err := h.responseUsecase.GenerateResponses(c.Request.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, summarydomain.ErrSummaryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate responses"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"responses": responses})
}

func (h *ResponseHandler) UpdateResponse(c *gin.Context) {
	userID := c.GetString("userID")
	id := c.Param("id")

	var req responsedto.UpdateResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.responseUsecase.UpdateResponse(userID, id, &req)
	if err != nil {
		if errors.Is(err, responsedomain.ErrResponseNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update response"})
		return
	}

	c.JSON(http.StatusOK, response)
}
