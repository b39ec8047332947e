package usecase

import (
	"context"
	"log"

	guilddomain "github.com/tinkertanker/discord-summariser/internal/guild/domain"
	guilddto "github.com/tinkertanker/discord-summariser/internal/guild/dto"
	"github.com/tinkertanker/discord-summariser/internal/guild/repository"
	"github.com/tinkertanker/discord-summariser/pkg/discord"
)

type serverUsecase struct {
	serverRepo repository.ServerRepository
	guilds     GuildDirectory
	tokens     TokenProvider
}

func NewServerUsecase(serverRepo repository.ServerRepository, guilds GuildDirectory, tokens TokenProvider) ServerUsecase {
	return &serverUsecase{
		serverRepo: serverRepo,
		guilds:     guilds,
		tokens:     tokens,
	}
}

func (u *serverUsecase) ListServers(userID string) ([]*guilddomain.MonitoredServer, error) {
	servers, err := u.serverRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	if servers == nil {
		servers = []*guilddomain.MonitoredServer{}
	}
	return servers, nil
}

func (u *serverUsecase) AddServer(userID string, req *guilddto.AddServerRequest) (*guilddomain.MonitoredServer, error) {
	existing, err := u.serverRepo.FindByServerID(userID, req.ServerID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, guilddomain.ErrServerAlreadyAdded
	}

	scanAll := true
	if req.ScanAllChannels != nil {
		scanAll = *req.ScanAllChannels
	}
	ignored := req.IgnoredChannels
	if ignored == nil {
		ignored = []string{}
	}

	server := &guilddomain.MonitoredServer{
		UserID:          userID,
		ServerID:        req.ServerID,
		ServerName:      req.ServerName,
		ServerIcon:      req.ServerIcon,
		ScanAllChannels: scanAll,
		IgnoredChannels: ignored,
		IsActive:        true,
	}
	if err := u.serverRepo.Create(server); err != nil {
		return nil, err
	}

	log.Printf("[Servers] User %s now monitors %s (%s)", userID, server.ServerName, server.ServerID)
	return server, nil
}

func (u *serverUsecase) UpdateServer(userID, id string, req *guilddto.UpdateServerRequest) (*guilddomain.MonitoredServer, error) {
	server, err := u.serverRepo.FindByID(userID, id)
	if err != nil {
		return nil, err
	}
	if server == nil {
		return nil, guilddomain.ErrServerNotFound
	}

	if req.ServerName != nil {
		server.ServerName = *req.ServerName
	}
	if req.ServerIcon != nil {
		server.ServerIcon = *req.ServerIcon
	}
	if req.ScanAllChannels != nil {
		server.ScanAllChannels = *req.ScanAllChannels
	}
	if req.IgnoredChannels != nil {
		server.IgnoredChannels = append([]string{}, (*req.IgnoredChannels)...)
	}
	if req.IsActive != nil {
		server.IsActive = *req.IsActive
	}

	if err := u.serverRepo.Update(server); err != nil {
		return nil, err
	}
	return server, nil
}

func (u *serverUsecase) DeleteServer(userID, id string) error {
	deleted, err := u.serverRepo.Delete(userID, id)
	if err != nil {
		return err
	}
	if !deleted {
		return guilddomain.ErrServerNotFound
	}
	return nil
}

func (u *serverUsecase) AvailableServers(ctx context.Context, userID string) ([]guilddto.AvailableServer, error) {
	token, err := u.tokens.DiscordAccessToken(ctx, userID)
	if err != nil {
		return nil, err
	}

	guilds, err := u.guilds.UserGuilds(ctx, token)
	if err != nil {
		return nil, err
	}

	monitored, err := u.serverRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	taken := make(map[string]bool, len(monitored))
	for _, s := range monitored {
		taken[s.ServerID] = true
	}

	available := make([]guilddto.AvailableServer, 0, len(guilds))
	for _, g := range guilds {
		if g.Permissions&discord.PermissionReadMessages == 0 || taken[g.ID] {
			continue
		}
		available = append(available, guilddto.AvailableServer{
			ID:      g.ID,
			Name:    g.Name,
			Icon:    g.Icon,
			IconURL: discord.IconURL(g.ID, g.Icon),
		})
	}
	return available, nil
}

func (u *serverUsecase) ServerChannels(ctx context.Context, userID, serverID string) ([]discord.Channel, error) {
	token, err := u.tokens.DiscordAccessToken(ctx, userID)
	if err != nil {
		return nil, err
	}
	return u.guilds.GuildTextChannels(ctx, token, serverID)
}
