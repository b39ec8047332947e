package usecase

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	guilddomain "github.com/tinkertanker/discord-summariser/internal/guild/domain"
	guildrepo "github.com/tinkertanker/discord-summariser/internal/guild/repository"
	summarydomain "github.com/tinkertanker/discord-summariser/internal/summary/domain"
	"github.com/tinkertanker/discord-summariser/internal/summary/repository"
	"github.com/tinkertanker/discord-summariser/pkg/ai"
	"github.com/tinkertanker/discord-summariser/pkg/config"
	"github.com/tinkertanker/discord-summariser/pkg/discord"
	"github.com/tinkertanker/discord-summariser/pkg/metrics"
)

const (
	analysisTemperature = 0.7
	analysisMaxTokens   = 200
	previewChannelLimit = 5
)

// ScanOptions bounds how much of each server a scan reads
type ScanOptions struct {
	ChannelLimit   int
	MessageLimit   int
	PromptMessages int
	PromptChars    int
	StaleAfter     time.Duration
}

func OptionsFromConfig(cfg *config.Config) ScanOptions {
	return ScanOptions{
		ChannelLimit:   cfg.ScanChannelLimit,
		MessageLimit:   cfg.ScanMessageLimit,
		PromptMessages: cfg.ScanPromptMessages,
		PromptChars:    cfg.ScanPromptChars,
		StaleAfter:     cfg.ScanStaleAfter,
	}
}

type scanUsecase struct {
	serverRepo  guildrepo.ServerRepository
	summaryRepo repository.SummaryRepository
	platform    ChatPlatform
	tokens      TokenProvider
	completer   ai.Completer
	opts        ScanOptions
	now         func() time.Time
}

func NewScanUsecase(
	serverRepo guildrepo.ServerRepository,
	summaryRepo repository.SummaryRepository,
	platform ChatPlatform,
	tokens TokenProvider,
	completer ai.Completer,
	opts ScanOptions,
) ScanUsecase {
	return &scanUsecase{
		serverRepo:  serverRepo,
		summaryRepo: summaryRepo,
		platform:    platform,
		tokens:      tokens,
		completer:   completer,
		opts:        opts,
		now:         time.Now,
	}
}

func (u *scanUsecase) Scan(ctx context.Context, userID string) (*summarydomain.ScanReport, error) {
	start := u.now()

	token, err := u.tokens.DiscordAccessToken(ctx, userID)
	if err != nil {
		return nil, err
	}

	servers, err := u.serverRepo.ListActiveByUser(userID)
	if err != nil {
		return nil, err
	}

	report := &summarydomain.ScanReport{}
	for _, server := range servers {
		sr, err := u.scanServer(ctx, userID, token, server)
		if err != nil {
			metrics.RecordScan("manual", "error", u.now().Sub(start).Seconds())
			return nil, err
		}
		report.Add(sr)
	}

	metrics.RecordScan("manual", "ok", u.now().Sub(start).Seconds())
	log.Printf("[Scan] User %s: %d servers, %d summaries written, %d channels skipped",
		userID, len(servers), report.SummariesCreated, len(report.Skipped()))
	return report, nil
}

func (u *scanUsecase) ScanStaleServers(ctx context.Context) (*summarydomain.ScanReport, error) {
	start := u.now()

	servers, err := u.serverRepo.ListStale(start.Add(-u.opts.StaleAfter))
	if err != nil {
		return nil, err
	}

	// group by owner, keeping the order the repository returned
	var owners []string
	byOwner := make(map[string][]*guilddomain.MonitoredServer)
	for _, s := range servers {
		if _, ok := byOwner[s.UserID]; !ok {
			owners = append(owners, s.UserID)
		}
		byOwner[s.UserID] = append(byOwner[s.UserID], s)
	}

	report := &summarydomain.ScanReport{}
	for _, userID := range owners {
		token, err := u.tokens.DiscordAccessToken(ctx, userID)
		if err != nil {
			log.Printf("[Scan] Skipping %d servers of user %s: %v", len(byOwner[userID]), userID, err)
			for _, s := range byOwner[userID] {
				report.Add(summarydomain.ServerReport{
					ServerID:   s.ServerID,
					ServerName: s.ServerName,
					UserID:     userID,
					Error:      err.Error(),
				})
			}
			continue
		}

		for _, server := range byOwner[userID] {
			sr, err := u.scanServer(ctx, userID, token, server)
			if err != nil {
				metrics.RecordScan("cron", "error", u.now().Sub(start).Seconds())
				return nil, err
			}
			report.Add(sr)
		}
	}

	metrics.RecordScan("cron", "ok", u.now().Sub(start).Seconds())
	log.Printf("[Scan] Stale scan: %d servers of %d users, %d summaries written",
		len(servers), len(owners), report.SummariesCreated)
	return report, nil
}

// scanChannels picks the text channels of a server that a scan should read
func (u *scanUsecase) scanChannels(server *guilddomain.MonitoredServer, all []discord.Channel) []discord.Channel {
	var out []discord.Channel
	for _, ch := range discord.FilterText(all) {
		if server.IsIgnored(ch.ID) {
			continue
		}
		out = append(out, ch)
		if u.opts.ChannelLimit > 0 && len(out) == u.opts.ChannelLimit {
			break
		}
	}
	return out
}

// scanServer processes one server. A failed channel list is reported and
// leaves the server unstamped; the only error returned is a failed stamp.
func (u *scanUsecase) scanServer(ctx context.Context, userID, token string, server *guilddomain.MonitoredServer) (summarydomain.ServerReport, error) {
	sr := summarydomain.ServerReport{
		ServerID:   server.ServerID,
		ServerName: server.ServerName,
		UserID:     userID,
	}

	all, err := u.platform.GuildChannels(ctx, token, server.ServerID)
	if err != nil {
		log.Printf("[Scan] Failed to list channels of %s (%s): %v", server.ServerName, server.ServerID, err)
		sr.Error = err.Error()
		return sr, nil
	}

	for _, ch := range u.scanChannels(server, all) {
		outcome := u.scanChannel(ctx, userID, token, server, ch)
		metrics.RecordChannelOutcome(outcome.Label())
		if outcome.Reason != "" {
			log.Printf("[Scan] #%s in %s: %s %s", ch.Name, server.ServerName, outcome.Reason, outcome.Error)
		}
		sr.Channels = append(sr.Channels, outcome)
	}

	if err := u.serverRepo.MarkScanned(server.ID, u.now()); err != nil {
		return sr, fmt.Errorf("failed to stamp server %s: %w", server.ServerID, err)
	}
	sr.Stamped = true
	return sr, nil
}

func (u *scanUsecase) scanChannel(ctx context.Context, userID, token string, server *guilddomain.MonitoredServer, ch discord.Channel) summarydomain.ChannelOutcome {
	outcome := summarydomain.ChannelOutcome{ChannelID: ch.ID, ChannelName: ch.Name}

	msgs, err := u.platform.RecentMessages(ctx, token, ch.ID, u.opts.MessageLimit)
	if err != nil {
		outcome.Reason = summarydomain.SkipUpstreamError
		outcome.Error = err.Error()
		return outcome
	}
	if len(msgs) == 0 {
		outcome.Reason = summarydomain.SkipEmptyChannel
		return outcome
	}

	raw, err := u.completer.Complete(ctx, ai.CompletionRequest{
		System:      channelAnalysisPrompt,
		User:        BuildChannelPrompt(ch.Name, msgs, u.opts.PromptMessages, u.opts.PromptChars),
		Temperature: analysisTemperature,
		MaxTokens:   analysisMaxTokens,
		JSONMode:    true,
	})
	if err != nil {
		outcome.Reason = summarydomain.SkipUpstreamError
		outcome.Error = err.Error()
		return outcome
	}

	result := Analyze(raw)
	if result.IsFallback() {
		outcome.Reason = summarydomain.SkipParseError
		outcome.Error = result.ParseErr.Error()
	}

	// best effort; a 403 here is normal for channels without thread access
	hasThreads, err := u.platform.HasArchivedThreads(ctx, token, ch.ID)
	if err != nil {
		hasThreads = false
	}

	now := u.now()
	lastActivity := msgs[0].Timestamp
	if lastActivity.IsZero() {
		lastActivity = now
	}

	row := &summarydomain.ChannelSummary{
		UserID:         userID,
		ServerID:       server.ServerID,
		ChannelID:      ch.ID,
		ChannelName:    ch.Name,
		Summary:        result.Analysis.Summary,
		Importance:     result.Analysis.Importance,
		Topics:         result.Analysis.Topics,
		MessageCount:   len(msgs),
		HasThreads:     hasThreads,
		CreatedAt:      summarydomain.DayKey(now),
		LastActivityAt: &lastActivity,
	}
	if err := u.summaryRepo.Upsert(row); err != nil {
		outcome.Reason = summarydomain.SkipStoreError
		outcome.Error = err.Error()
		return outcome
	}

	outcome.Summary = row
	return outcome
}

func (u *scanUsecase) PreviewGuild(ctx context.Context, userID, guildID string, topics []string) ([]summarydomain.GuildPreview, error) {
	token, err := u.tokens.DiscordAccessToken(ctx, userID)
	if err != nil {
		return nil, err
	}

	all, err := u.platform.GuildChannels(ctx, token, guildID)
	if err != nil {
		return nil, err
	}
	channels := discord.FilterText(all)
	if len(channels) > previewChannelLimit {
		channels = channels[:previewChannelLimit]
	}

	previews := []summarydomain.GuildPreview{}
	for _, ch := range channels {
		msgs, err := u.platform.RecentMessages(ctx, token, ch.ID, u.opts.MessageLimit)
		if err != nil {
			log.Printf("[Scan] Preview of #%s skipped: %v", ch.Name, err)
			continue
		}
		if len(msgs) == 0 {
			continue
		}

		raw, err := u.completer.Complete(ctx, ai.CompletionRequest{
			System:      buildPreviewSystemPrompt(topics),
			User:        buildPreviewUserPrompt(ch.Name, msgs, u.opts.PromptChars),
			Temperature: analysisTemperature,
			MaxTokens:   analysisMaxTokens,
			JSONMode:    true,
		})
		if err != nil {
			log.Printf("[Scan] Preview of #%s skipped: %v", ch.Name, err)
			continue
		}
		analysis := Analyze(raw).Analysis

		hasThreads, err := u.platform.HasArchivedThreads(ctx, token, ch.ID)
		if err != nil {
			hasThreads = false
		}

		var lastActivity *time.Time
		if ts := msgs[0].Timestamp; !ts.IsZero() {
			lastActivity = &ts
		}

		previews = append(previews, summarydomain.GuildPreview{
			GuildID:      guildID,
			ChannelID:    ch.ID,
			ChannelName:  ch.Name,
			Summary:      analysis.Summary,
			Topics:       analysis.Topics,
			Importance:   analysis.Importance,
			Priority:     summarydomain.PriorityFor(analysis.Importance),
			HasThreads:   hasThreads,
			MessageCount: len(msgs),
			LastActivity: lastActivity,
		})
	}

	sort.SliceStable(previews, func(i, j int) bool {
		return previews[i].Importance > previews[j].Importance
	})
	return previews, nil
}
