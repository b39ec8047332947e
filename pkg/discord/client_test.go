package discord

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rewriteTransport sends every request to the test server, keeping the path
type rewriteTransport struct {
	target *url.URL
}

func (t rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.URL.Scheme = t.target.Scheme
	req.URL.Host = t.target.Host
	req.Host = t.target.Host
	return http.DefaultTransport.RoundTrip(req)
}

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	u, err := url.Parse(srv.URL)
	require.NoError(t, err)
	return NewClient(&http.Client{Transport: rewriteTransport{target: u}})
}

func TestClient_GuildTextChannels(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/guilds/g1/channels"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id":"c1","name":"general","type":0,"position":0},
			{"id":"c2","name":"Voice","type":2,"position":1},
			{"id":"c3","name":"announcements","type":0,"position":2}
		]`))
	})

	chs, err := c.GuildTextChannels(context.Background(), "tok", "g1")
	require.NoError(t, err)
	require.Len(t, chs, 2)
	assert.Equal(t, "c1", chs[0].ID)
	assert.Equal(t, "announcements", chs[1].Name)
}

func TestClient_RecentMessages(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/channels/c1/messages"))
		assert.Equal(t, "50", r.URL.Query().Get("limit"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id":"m2","content":"second","timestamp":"2025-03-01T10:00:00+00:00","author":{"id":"u1","username":"alice"}},
			{"id":"m1","content":"first","timestamp":"2025-03-01T09:00:00+00:00","author":{"id":"u2","username":"bob"}}
		]`))
	})

	msgs, err := c.RecentMessages(context.Background(), "tok", "c1", 50)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "alice", msgs[0].Author)
	assert.Equal(t, "second", msgs[0].Content)
	assert.Equal(t, 10, msgs[0].Timestamp.Hour())
}

func TestClient_HasArchivedThreads(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.Contains(r.URL.Path, "/channels/busy/"):
			_, _ = w.Write([]byte(`{"threads":[{"id":"t1","type":11}],"members":[],"has_more":false}`))
		case strings.Contains(r.URL.Path, "/channels/quiet/"):
			_, _ = w.Write([]byte(`{"threads":[],"members":[],"has_more":false}`))
		default:
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"message":"Missing Access","code":50001}`))
		}
	})
	ctx := context.Background()

	ok, err := c.HasArchivedThreads(ctx, "tok", "busy")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.HasArchivedThreads(ctx, "tok", "quiet")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = c.HasArchivedThreads(ctx, "tok", "private")
	assert.Error(t, err)
}

func TestClient_UserGuilds(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/users/@me/guilds"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"g1","name":"Guild","icon":"abc","permissions":"1024"}]`))
	})

	gs, err := c.UserGuilds(context.Background(), "tok")
	require.NoError(t, err)
	require.Len(t, gs, 1)
	assert.Equal(t, PermissionReadMessages, gs[0].Permissions&PermissionReadMessages)
}

func TestClient_EmptyToken(t *testing.T) {
	c := NewClient(nil)
	_, err := c.GuildChannels(context.Background(), "", "g1")
	assert.Error(t, err)
}

func TestIconURL(t *testing.T) {
	assert.Equal(t, "", IconURL("g1", ""))
	assert.Contains(t, IconURL("g1", "abc"), "icons/g1/abc")
}
