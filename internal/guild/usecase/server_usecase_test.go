package usecase

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	authdomain "github.com/tinkertanker/discord-summariser/internal/auth/domain"
	guilddomain "github.com/tinkertanker/discord-summariser/internal/guild/domain"
	guilddto "github.com/tinkertanker/discord-summariser/internal/guild/dto"
	"github.com/tinkertanker/discord-summariser/pkg/discord"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockServerRepo struct {
	servers map[string]*guilddomain.MonitoredServer
	clock   time.Time
}

func newMockServerRepo() *mockServerRepo {
	return &mockServerRepo{
		servers: make(map[string]*guilddomain.MonitoredServer),
		clock:   time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (m *mockServerRepo) Create(server *guilddomain.MonitoredServer) error {
	server.ID = uuid.New().String()
	m.clock = m.clock.Add(time.Minute)
	server.CreatedAt = m.clock
	cp := *server
	m.servers[server.ID] = &cp
	return nil
}

func (m *mockServerRepo) FindByID(userID, id string) (*guilddomain.MonitoredServer, error) {
	if s, ok := m.servers[id]; ok && s.UserID == userID {
		cp := *s
		return &cp, nil
	}
	return nil, nil
}

func (m *mockServerRepo) FindByServerID(userID, serverID string) (*guilddomain.MonitoredServer, error) {
	for _, s := range m.servers {
		if s.UserID == userID && s.ServerID == serverID {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *mockServerRepo) ListByUser(userID string) ([]*guilddomain.MonitoredServer, error) {
	var out []*guilddomain.MonitoredServer
	for _, s := range m.servers {
		if s.UserID == userID {
			cp := *s
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *mockServerRepo) ListActiveByUser(userID string) ([]*guilddomain.MonitoredServer, error) {
	all, _ := m.ListByUser(userID)
	var out []*guilddomain.MonitoredServer
	for _, s := range all {
		if s.IsActive {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *mockServerRepo) ListStale(before time.Time) ([]*guilddomain.MonitoredServer, error) {
	return nil, nil
}

func (m *mockServerRepo) Update(server *guilddomain.MonitoredServer) error {
	cp := *server
	m.servers[server.ID] = &cp
	return nil
}

func (m *mockServerRepo) Delete(userID, id string) (bool, error) {
	if s, ok := m.servers[id]; ok && s.UserID == userID {
		delete(m.servers, id)
		return true, nil
	}
	return false, nil
}

func (m *mockServerRepo) MarkScanned(id string, at time.Time) error {
	m.servers[id].LastScannedAt = &at
	return nil
}

type mockGuilds struct {
	guilds    []discord.Guild
	channels  []discord.Channel
	err       error
	lastToken string
}

func (m *mockGuilds) UserGuilds(ctx context.Context, token string) ([]discord.Guild, error) {
	m.lastToken = token
	return m.guilds, m.err
}

func (m *mockGuilds) GuildTextChannels(ctx context.Context, token, guildID string) ([]discord.Channel, error) {
	m.lastToken = token
	return m.channels, m.err
}

type mockTokens struct {
	token string
	err   error
}

func (m *mockTokens) DiscordAccessToken(ctx context.Context, userID string) (string, error) {
	return m.token, m.err
}

func boolPtr(b bool) *bool { return &b }

func TestAddServer(t *testing.T) {
	repo := newMockServerRepo()
	uc := NewServerUsecase(repo, &mockGuilds{}, &mockTokens{token: "tok"})

	server, err := uc.AddServer("u1", &guilddto.AddServerRequest{ServerID: "g1", ServerName: "Guild One"})
	require.NoError(t, err)
	assert.True(t, server.IsActive)
	assert.True(t, server.ScanAllChannels, "scanAllChannels defaults to true")
	assert.NotNil(t, server.IgnoredChannels)

	_, err = uc.AddServer("u1", &guilddto.AddServerRequest{ServerID: "g1", ServerName: "Guild One"})
	assert.ErrorIs(t, err, guilddomain.ErrServerAlreadyAdded)

	// another user may monitor the same guild
	_, err = uc.AddServer("u2", &guilddto.AddServerRequest{ServerID: "g1", ServerName: "Guild One"})
	assert.NoError(t, err)
}

func TestListServers_NewestFirst(t *testing.T) {
	repo := newMockServerRepo()
	uc := NewServerUsecase(repo, &mockGuilds{}, &mockTokens{})

	empty, err := uc.ListServers("u1")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Len(t, empty, 0)

	for _, id := range []string{"g1", "g2", "g3"} {
		_, err := uc.AddServer("u1", &guilddto.AddServerRequest{ServerID: id, ServerName: id})
		require.NoError(t, err)
	}

	servers, err := uc.ListServers("u1")
	require.NoError(t, err)
	require.Len(t, servers, 3)
	assert.Equal(t, "g3", servers[0].ServerID)
	assert.Equal(t, "g1", servers[2].ServerID)
}

func TestUpdateServer(t *testing.T) {
	repo := newMockServerRepo()
	uc := NewServerUsecase(repo, &mockGuilds{}, &mockTokens{})

	server, err := uc.AddServer("u1", &guilddto.AddServerRequest{ServerID: "g1", ServerName: "Old"})
	require.NoError(t, err)

	ignored := []string{"c1", "c2"}
	updated, err := uc.UpdateServer("u1", server.ID, &guilddto.UpdateServerRequest{
		ScanAllChannels: boolPtr(false),
		IgnoredChannels: &ignored,
		IsActive:        boolPtr(false),
	})
	require.NoError(t, err)
	assert.Equal(t, "Old", updated.ServerName, "untouched fields stay")
	assert.False(t, updated.ScanAllChannels)
	assert.False(t, updated.IsActive)
	assert.True(t, updated.IsIgnored("c2"))
	assert.False(t, updated.IsIgnored("c3"))

	_, err = uc.UpdateServer("u2", server.ID, &guilddto.UpdateServerRequest{IsActive: boolPtr(true)})
	assert.ErrorIs(t, err, guilddomain.ErrServerNotFound)
}

func TestDeleteServer(t *testing.T) {
	repo := newMockServerRepo()
	uc := NewServerUsecase(repo, &mockGuilds{}, &mockTokens{})

	server, err := uc.AddServer("u1", &guilddto.AddServerRequest{ServerID: "g1", ServerName: "G"})
	require.NoError(t, err)

	assert.ErrorIs(t, uc.DeleteServer("u2", server.ID), guilddomain.ErrServerNotFound)
	assert.NoError(t, uc.DeleteServer("u1", server.ID))
	assert.ErrorIs(t, uc.DeleteServer("u1", server.ID), guilddomain.ErrServerNotFound)
}

func TestAvailableServers(t *testing.T) {
	repo := newMockServerRepo()
	guilds := &mockGuilds{guilds: []discord.Guild{
		{ID: "g1", Name: "Readable", Permissions: 0x400},
		{ID: "g2", Name: "Admin", Icon: "abc", Permissions: 0x8 | 0x400},
		{ID: "g3", Name: "No access", Permissions: 0x8},
		{ID: "g4", Name: "Already monitored", Permissions: 0x400},
	}}
	uc := NewServerUsecase(repo, guilds, &mockTokens{token: "tok"})

	_, err := uc.AddServer("u1", &guilddto.AddServerRequest{ServerID: "g4", ServerName: "Already monitored"})
	require.NoError(t, err)

	available, err := uc.AvailableServers(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "tok", guilds.lastToken)

	var ids []string
	for _, s := range available {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []string{"g1", "g2"}, ids)
	assert.NotEmpty(t, available[1].IconURL)
}

func TestAvailableServers_NoToken(t *testing.T) {
	uc := NewServerUsecase(newMockServerRepo(), &mockGuilds{}, &mockTokens{err: authdomain.ErrNoDiscordToken})

	_, err := uc.AvailableServers(context.Background(), "u1")
	assert.ErrorIs(t, err, authdomain.ErrNoDiscordToken)
}

func TestServerChannels(t *testing.T) {
	guilds := &mockGuilds{channels: []discord.Channel{{ID: "c1", Name: "general"}}}
	uc := NewServerUsecase(newMockServerRepo(), guilds, &mockTokens{token: "tok"})

	chs, err := uc.ServerChannels(context.Background(), "u1", "g1")
	require.NoError(t, err)
	assert.Len(t, chs, 1)

	guilds.err = errors.New("discord: 403")
	_, err = uc.ServerChannels(context.Background(), "u1", "g1")
	assert.Error(t, err)
}
