package repository

import (
	"testing"
	"time"

	summarydomain "github.com/tinkertanker/discord-summariser/internal/summary/domain"
	"github.com/tinkertanker/discord-summariser/pkg/database/dbtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsert_OneRowPerUserChannelDay(t *testing.T) {
	db, rec := dbtest.DryRun(t)
	repo := NewSummaryRepository(db)

	s := &summarydomain.ChannelSummary{
		UserID:     "u1",
		ServerID:   "g1",
		ChannelID:  "c1",
		Summary:    "release planning",
		Importance: 7,
		Topics:     []string{"release"},
		CreatedAt:  time.Date(2025, 3, 1, 15, 30, 0, 0, time.UTC),
	}
	require.NoError(t, repo.Upsert(s))

	assert.NotEmpty(t, s.ID)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), s.CreatedAt)

	sql := rec.Last()
	assert.Contains(t, sql, `INSERT INTO "channel_summaries"`)
	assert.Contains(t, sql, `ON CONFLICT ("user_id","channel_id","created_at") DO UPDATE SET`)
	assert.Contains(t, sql, `"summary"="excluded"."summary"`)
	assert.Contains(t, sql, `"importance"="excluded"."importance"`)
	assert.NotContains(t, sql, `"is_read"="excluded"`, "read state survives a rescan")
	assert.Contains(t, sql, "RETURNING")
	assert.Contains(t, sql, "2025-03-01 00:00:00")
}

func TestListByUser_ScopedAndOrdered(t *testing.T) {
	db, rec := dbtest.DryRun(t)

	_, err := NewSummaryRepository(db).ListByUser("u1")
	require.NoError(t, err)

	sql := rec.Last()
	assert.Contains(t, sql, `FROM "channel_summaries" WHERE user_id = 'u1'`)
	assert.Contains(t, sql, "ORDER BY is_read ASC,importance DESC,created_at DESC")
}

func TestMarkAllRead_OnlyCaller(t *testing.T) {
	db, rec := dbtest.DryRun(t)

	_, err := NewSummaryRepository(db).MarkAllRead("u1")
	require.NoError(t, err)

	sql := rec.Last()
	assert.Contains(t, sql, `UPDATE "channel_summaries" SET "is_read"=true`)
	assert.Contains(t, sql, "user_id = 'u1' AND is_read = false")
}

func TestMarkRead_ScopesIDsToCaller(t *testing.T) {
	db, rec := dbtest.DryRun(t)
	repo := NewSummaryRepository(db)

	_, err := repo.MarkRead("u1", []string{"s1", "s2"})
	require.NoError(t, err)

	sql := rec.Last()
	assert.Contains(t, sql, `UPDATE "channel_summaries" SET "is_read"=true`)
	assert.Contains(t, sql, "user_id = 'u1' AND id IN ('s1','s2')")

	n, err := repo.MarkRead("u1", nil)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Len(t, rec.Statements(), 1, "empty selection issues no statement")
}
