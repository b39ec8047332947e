package delivery

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	responsedomain "github.com/tinkertanker/discord-summariser/internal/response/domain"
	responsedto "github.com/tinkertanker/discord-summariser/internal/response/dto"
	summarydomain "github.com/tinkertanker/discord-summariser/internal/summary/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubResponses struct {
	err error
}

func (s *stubResponses) GenerateResponses(ctx context.Context, userID string, req *responsedto.GenerateResponsesRequest) ([]*responsedomain.SuggestedResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []*responsedomain.SuggestedResponse{{ID: "r1", SummaryID: req.SummaryID, ResponseType: responsedomain.ResponseAcknowledgment}}, nil
}

func (s *stubResponses) UpdateResponse(userID, id string, req *responsedto.UpdateResponseRequest) (*responsedomain.SuggestedResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &responsedomain.SuggestedResponse{ID: id, EditedText: req.EditedText}, nil
}

func newRouter(uc *stubResponses) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewResponseHandler(uc)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userID", "u1")
		c.Next()
	})
	r.POST("/ai/generate-responses", h.GenerateResponses)
	r.PATCH("/responses/:id", h.UpdateResponse)
	return r
}

func TestResponseHandler(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		method   string
		path     string
		body     string
		wantCode int
		wantBody string
	}{
		{"generate", nil, http.MethodPost, "/ai/generate-responses", `{"summaryId":"s1"}`, http.StatusOK, `"responseType":"ACKNOWLEDGMENT"`},
		{"generate without summary id", nil, http.MethodPost, "/ai/generate-responses", `{"channelName":"general"}`, http.StatusBadRequest, "error"},
		{"generate unknown summary", summarydomain.ErrSummaryNotFound, http.MethodPost, "/ai/generate-responses", `{"summaryId":"nope"}`, http.StatusNotFound, "summary not found"},
		{"generate upstream failure", errors.New("boom"), http.MethodPost, "/ai/generate-responses", `{"summaryId":"s1"}`, http.StatusInternalServerError, "Failed to generate responses"},
		{"edit", nil, http.MethodPatch, "/responses/r1", `{"editedText":"hi all"}`, http.StatusOK, `"editedText":"hi all"`},
		{"edit without text", nil, http.MethodPatch, "/responses/r1", `{}`, http.StatusBadRequest, "error"},
		{"edit unknown", responsedomain.ErrResponseNotFound, http.MethodPatch, "/responses/r9", `{"editedText":"x"}`, http.StatusNotFound, "response not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRouter(&stubResponses{err: tt.err})
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantCode, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}
