package delivery

import (
	"crypto/subtle"
	"errors"
	"net/http"

	authdomain "github.com/tinkertanker/discord-summariser/internal/auth/domain"
	summarydomain "github.com/tinkertanker/discord-summariser/internal/summary/domain"
	summarydto "github.com/tinkertanker/discord-summariser/internal/summary/dto"
	"github.com/tinkertanker/discord-summariser/internal/summary/usecase"

	"github.com/gin-gonic/gin"
)

type SummaryHandler struct {
	scanUsecase    usecase.ScanUsecase
	summaryUsecase usecase.SummaryUsecase
	cronSecret     string
}

func NewSummaryHandler(scanUsecase usecase.ScanUsecase, summaryUsecase usecase.SummaryUsecase, cronSecret string) *SummaryHandler {
	return &SummaryHandler{
		scanUsecase:    scanUsecase,
		summaryUsecase: summaryUsecase,
		cronSecret:     cronSecret,
	}
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, authdomain.ErrNoDiscordToken), errors.Is(err, authdomain.ErrUserNotFound):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, summarydomain.ErrNothingToMark), errors.Is(err, summarydomain.ErrUnknownFilter):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, summarydomain.ErrSummaryNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func scanResponse(report *summarydomain.ScanReport) summarydto.ScanResponse {
	return summarydto.ScanResponse{
		Success:          true,
		SummariesCreated: report.SummariesCreated,
		ServersScanned:   len(report.Servers),
		ChannelsSkipped:  len(report.Skipped()),
	}
}

// Scan runs the pipeline for the signed-in user. ?verbose=true returns the
// per-channel outcomes as well.
func (h *SummaryHandler) Scan(c *gin.Context) {
	userID := c.GetString("userID")

	report, err := h.scanUsecase.Scan(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}

	if c.Query("verbose") == "true" {
		c.JSON(http.StatusOK, gin.H{"success": true, "summariesCreated": report.SummariesCreated, "report": report})
		return
	}
	c.JSON(http.StatusOK, scanResponse(report))
}

func (h *SummaryHandler) ListSummaries(c *gin.Context) {
	userID := c.GetString("userID")

	var query summarydto.ListSummariesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	summaries, err := h.summaryUsecase.ListSummaries(userID, &query)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, summaries)
}

func (h *SummaryHandler) MarkRead(c *gin.Context) {
	userID := c.GetString("userID")

	var req summarydto.MarkReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.summaryUsecase.MarkRead(userID, &req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "updated": updated})
}

func (h *SummaryHandler) PreviewGuild(c *gin.Context) {
	userID := c.GetString("userID")
	guildID := c.Param("guildId")

	var req summarydto.GuildPreviewRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	previews, err := h.scanUsecase.PreviewGuild(c.Request.Context(), userID, guildID, req.Topics)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, previews)
}

// Cron scans stale servers of every user. It is guarded by CRON_SECRET
// instead of a user session.
func (h *SummaryHandler) Cron(c *gin.Context) {
	expected := "Bearer " + h.cronSecret
	got := c.GetHeader("Authorization")
	if h.cronSecret == "" || subtle.ConstantTimeCompare([]byte(got), []byte(expected)) != 1 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	report, err := h.scanUsecase.ScanStaleServers(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, scanResponse(report))
}
