package discord

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/bwmarrin/discordgo"
)

// PermissionReadMessages is VIEW_CHANNEL (formerly READ_MESSAGES)
const PermissionReadMessages int64 = 0x400

type Channel struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Type     int    `json:"type"`
	Position int    `json:"position"`
}

type Message struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

type Guild struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Permissions int64  `json:"permissions"`
}

type User struct {
	ID        string
	Username  string
	Email     string
	AvatarURL string
}

// Client talks to the Discord REST API on behalf of a user. Every call
// takes the user's OAuth access token; no bot session is kept open.
type Client struct {
	httpClient *http.Client
}

func NewClient(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 20 * time.Second}
	}
	return &Client{httpClient: httpClient}
}

func (c *Client) session(token string) (*discordgo.Session, error) {
	if token == "" {
		return nil, fmt.Errorf("discord: empty access token")
	}
	s, err := discordgo.New("Bearer " + token)
	if err != nil {
		return nil, err
	}
	s.Client = c.httpClient
	s.ShouldRetryOnRateLimit = false
	s.MaxRestRetries = 0
	return s, nil
}

// GuildChannels returns every channel of the guild in API order.
func (c *Client) GuildChannels(ctx context.Context, token, guildID string) ([]Channel, error) {
	s, err := c.session(token)
	if err != nil {
		return nil, err
	}
	chs, err := s.GuildChannels(guildID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("discord: list channels for guild %s: %w", guildID, err)
	}

	out := make([]Channel, 0, len(chs))
	for _, ch := range chs {
		out = append(out, Channel{
			ID:       ch.ID,
			Name:     ch.Name,
			Type:     int(ch.Type),
			Position: ch.Position,
		})
	}
	return out, nil
}

// GuildTextChannels is GuildChannels filtered to type 0 channels.
func (c *Client) GuildTextChannels(ctx context.Context, token, guildID string) ([]Channel, error) {
	chs, err := c.GuildChannels(ctx, token, guildID)
	if err != nil {
		return nil, err
	}
	return FilterText(chs), nil
}

func FilterText(chs []Channel) []Channel {
	out := make([]Channel, 0, len(chs))
	for _, ch := range chs {
		if ch.Type == int(discordgo.ChannelTypeGuildText) {
			out = append(out, ch)
		}
	}
	return out
}

// RecentMessages returns up to limit messages, newest first.
func (c *Client) RecentMessages(ctx context.Context, token, channelID string, limit int) ([]Message, error) {
	s, err := c.session(token)
	if err != nil {
		return nil, err
	}
	msgs, err := s.ChannelMessages(channelID, limit, "", "", "", discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("discord: fetch messages for channel %s: %w", channelID, err)
	}

	out := make([]Message, 0, len(msgs))
	for _, m := range msgs {
		author := ""
		if m.Author != nil {
			author = m.Author.Username
		}
		out = append(out, Message{
			ID:        m.ID,
			Author:    author,
			Content:   m.Content,
			Timestamp: m.Timestamp,
		})
	}
	return out, nil
}

// HasArchivedThreads reports whether the channel has any archived public
// threads. A 403 or 404 from Discord is returned as an error; callers that
// only want a hint should ignore it.
func (c *Client) HasArchivedThreads(ctx context.Context, token, channelID string) (bool, error) {
	s, err := c.session(token)
	if err != nil {
		return false, err
	}
	list, err := s.ThreadsArchived(channelID, nil, 0, discordgo.WithContext(ctx))
	if err != nil {
		return false, err
	}
	return list != nil && len(list.Threads) > 0, nil
}

// UserGuilds returns the guilds the token's user belongs to.
func (c *Client) UserGuilds(ctx context.Context, token string) ([]Guild, error) {
	s, err := c.session(token)
	if err != nil {
		return nil, err
	}
	gs, err := s.UserGuilds(100, "", "", false, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("discord: list user guilds: %w", err)
	}

	out := make([]Guild, 0, len(gs))
	for _, g := range gs {
		out = append(out, Guild{
			ID:          g.ID,
			Name:        g.Name,
			Icon:        g.Icon,
			Permissions: g.Permissions,
		})
	}
	return out, nil
}

func (c *Client) CurrentUser(ctx context.Context, token string) (*User, error) {
	s, err := c.session(token)
	if err != nil {
		return nil, err
	}
	u, err := s.User("@me", discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("discord: fetch current user: %w", err)
	}

	avatar := ""
	if u.Avatar != "" {
		avatar = u.AvatarURL("")
	}
	return &User{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		AvatarURL: avatar,
	}, nil
}

// IconURL builds the CDN url for a guild icon hash.
func IconURL(guildID, icon string) string {
	if icon == "" {
		return ""
	}
	return discordgo.EndpointGuildIcon(guildID, icon)
}
