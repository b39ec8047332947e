package usecase

import (
	"fmt"
	"strings"

	guildrepo "github.com/tinkertanker/discord-summariser/internal/guild/repository"
	summarydomain "github.com/tinkertanker/discord-summariser/internal/summary/domain"
	summarydto "github.com/tinkertanker/discord-summariser/internal/summary/dto"
	"github.com/tinkertanker/discord-summariser/internal/summary/repository"
	"github.com/tinkertanker/discord-summariser/pkg/fuzzy"
)

type summaryUsecase struct {
	summaryRepo repository.SummaryRepository
	serverRepo  guildrepo.ServerRepository
}

func NewSummaryUsecase(summaryRepo repository.SummaryRepository, serverRepo guildrepo.ServerRepository) SummaryUsecase {
	return &summaryUsecase{
		summaryRepo: summaryRepo,
		serverRepo:  serverRepo,
	}
}

func (u *summaryUsecase) ListSummaries(userID string, query *summarydto.ListSummariesQuery) ([]*summarydomain.SummaryView, error) {
	if query == nil {
		query = &summarydto.ListSummariesQuery{}
	}
	switch query.Filter {
	case "", "all", "unread", "important":
	default:
		return nil, fmt.Errorf("%w: %q", summarydomain.ErrUnknownFilter, query.Filter)
	}

	summaries, err := u.summaryRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	summarydomain.SortSummaries(summaries)

	servers, err := u.serverRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	type serverInfo struct{ name, icon string }
	info := make(map[string]serverInfo, len(servers))
	for _, s := range servers {
		info[s.ServerID] = serverInfo{name: s.ServerName, icon: s.ServerIcon}
	}

	views := make([]*summarydomain.SummaryView, 0, len(summaries))
	for _, s := range summaries {
		si := info[s.ServerID]
		if !keep(s, si.name, query) {
			continue
		}
		views = append(views, &summarydomain.SummaryView{
			ChannelSummary: s,
			ServerName:     si.name,
			ServerIcon:     si.icon,
			Priority:       summarydomain.PriorityFor(s.Importance),
		})
	}
	return views, nil
}

func keep(s *summarydomain.ChannelSummary, serverName string, query *summarydto.ListSummariesQuery) bool {
	if query.ServerID != "" && s.ServerID != query.ServerID {
		return false
	}
	switch query.Filter {
	case "unread":
		if s.IsRead {
			return false
		}
	case "important":
		if s.Importance < summarydomain.ImportantMin {
			return false
		}
	}
	if q := strings.TrimSpace(query.Q); q != "" {
		fields := append([]string{s.ChannelName, s.Summary, serverName}, s.Topics...)
		return fuzzy.MatchAny(q, fields...)
	}
	return true
}

func (u *summaryUsecase) MarkRead(userID string, req *summarydto.MarkReadRequest) (int64, error) {
	if req.All {
		return u.summaryRepo.MarkAllRead(userID)
	}
	if len(req.SummaryIDs) == 0 {
		return 0, summarydomain.ErrNothingToMark
	}
	return u.summaryRepo.MarkRead(userID, req.SummaryIDs)
}
