//go:build integration

package postgres

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

type PostgresIntegrationSuite struct {
	suite.Suite
	ctx           context.Context
	container     *postgres.PostgresContainer
	db            *sqlx.DB
	checkState    *CheckStateStore
	notifications *NotificationStore
}

func (s *PostgresIntegrationSuite) SetupSuite() {
	s.ctx = context.Background()

	migrationsPath, err := filepath.Abs("../../../migrations")
	s.Require().NoError(err)

	container, err := postgres.Run(s.ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		postgres.WithInitScripts(
			filepath.Join(migrationsPath, "001_create_source_check_state.up.sql"),
			filepath.Join(migrationsPath, "002_create_sent_notification.up.sql"),
		),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	connStr, err := container.ConnectionString(s.ctx, "sslmode=disable")
	s.Require().NoError(err)

	db, err := sqlx.Connect("postgres", connStr)
	s.Require().NoError(err)
	s.db = db

	s.checkState = NewCheckStateStore(db)
	s.notifications = NewNotificationStore(db)
}

func (s *PostgresIntegrationSuite) TearDownSuite() {
	if s.db != nil {
		s.db.Close()
	}
	if s.container != nil {
		_ = s.container.Terminate(s.ctx)
	}
}

func (s *PostgresIntegrationSuite) SetupTest() {
	_, _ = s.db.ExecContext(s.ctx, "DELETE FROM sent_notification")
	_, _ = s.db.ExecContext(s.ctx, "DELETE FROM source_check_state")
}

func TestPostgresIntegrationSuite(t *testing.T) {
	suite.Run(t, new(PostgresIntegrationSuite))
}

func (s *PostgresIntegrationSuite) TestCheckState_AbsentForNewSource() {
	state, err := s.checkState.Get(s.ctx, "alpha")
	s.NoError(err)
	s.Nil(state)
}

func (s *PostgresIntegrationSuite) TestCheckState_UpsertAndMonotonicCheckTime() {
	contentID := "x1"
	ts := time.Now().Add(-time.Hour).UTC().Truncate(time.Microsecond)

	s.Require().NoError(s.checkState.Update(s.ctx, "alpha", &contentID, &ts))

	first, err := s.checkState.Get(s.ctx, "alpha")
	s.Require().NoError(err)
	s.Require().NotNil(first)
	s.Equal("x1", *first.LastContentID)
	s.WithinDuration(ts, *first.LastContentTimestamp, time.Millisecond)

	// A second check with no new content refreshes last_check_time
	// without touching the content cursor.
	s.Require().NoError(s.checkState.Update(s.ctx, "alpha", nil, nil))

	second, err := s.checkState.Get(s.ctx, "alpha")
	s.Require().NoError(err)
	s.Require().NotNil(second)
	s.Equal("x1", *second.LastContentID)
	s.WithinDuration(ts, *second.LastContentTimestamp, time.Millisecond)
	s.False(second.LastCheckTime.Before(first.LastCheckTime))

	// Only one row per source.
	var count int
	s.Require().NoError(s.db.GetContext(s.ctx, &count,
		"SELECT COUNT(*) FROM source_check_state WHERE source_id = $1", "alpha"))
	s.Equal(1, count)
}

func (s *PostgresIntegrationSuite) TestCheckState_NeverCheckedContentFieldsStayNull() {
	s.Require().NoError(s.checkState.Update(s.ctx, "quiet", nil, nil))

	state, err := s.checkState.Get(s.ctx, "quiet")
	s.Require().NoError(err)
	s.Require().NotNil(state)
	s.Nil(state.LastContentID)
	s.Nil(state.LastContentTimestamp)
	s.False(state.LastCheckTime.IsZero())
}

func (s *PostgresIntegrationSuite) TestRecordSent_Idempotent() {
	s.Require().NoError(s.notifications.RecordSent(s.ctx, "alpha", "x1", "https://example.com/x1", "msg-1"))
	s.Require().NoError(s.notifications.RecordSent(s.ctx, "alpha", "x1", "https://example.com/x1", "msg-2"))

	var count int
	s.Require().NoError(s.db.GetContext(s.ctx, &count,
		"SELECT COUNT(*) FROM sent_notification WHERE source_id = $1 AND content_id = $2", "alpha", "x1"))
	s.Equal(1, count)

	sent, err := s.notifications.IsSent(s.ctx, "alpha", "x1")
	s.NoError(err)
	s.True(sent)

	// Same content id under another source is a different item.
	sent, err = s.notifications.IsSent(s.ctx, "beta", "x1")
	s.NoError(err)
	s.False(sent)
}

func (s *PostgresIntegrationSuite) TestSweepExpired_RemovesOnlyOldRows() {
	insert := `
		INSERT INTO sent_notification (source_id, content_id, content_url, external_message_id, sent_at)
		VALUES ($1, $2, '', '', NOW() - $3 * INTERVAL '1 day')`

	_, err := s.db.ExecContext(s.ctx, insert, "alpha", "old-1", 40)
	s.Require().NoError(err)
	_, err = s.db.ExecContext(s.ctx, insert, "alpha", "old-2", 31)
	s.Require().NoError(err)
	_, err = s.db.ExecContext(s.ctx, insert, "alpha", "fresh", 1)
	s.Require().NoError(err)

	removed, err := s.notifications.SweepExpired(s.ctx, 30)
	s.Require().NoError(err)
	s.Equal(int64(2), removed)

	sent, err := s.notifications.IsSent(s.ctx, "alpha", "fresh")
	s.NoError(err)
	s.True(sent)

	sent, err = s.notifications.IsSent(s.ctx, "alpha", "old-1")
	s.NoError(err)
	s.False(sent)
}

func (s *PostgresIntegrationSuite) TestStats_Aggregates() {
	s.Require().NoError(s.notifications.RecordSent(s.ctx, "alpha", "x1", "", "msg-1"))
	s.Require().NoError(s.notifications.RecordSent(s.ctx, "beta", "y1", "", "msg-2"))

	_, err := s.db.ExecContext(s.ctx, `
		INSERT INTO sent_notification (source_id, content_id, content_url, external_message_id, sent_at)
		VALUES ('alpha', 'ancient', '', '', NOW() - INTERVAL '10 days')`)
	s.Require().NoError(err)

	s.Require().NoError(s.checkState.Update(s.ctx, "alpha", nil, nil))
	s.Require().NoError(s.checkState.Update(s.ctx, "beta", nil, nil))

	stats, err := s.notifications.Stats(s.ctx)
	s.Require().NoError(err)

	s.Equal(int64(3), stats.TotalNotifications)
	s.Equal(int64(2), stats.Notifications24h)
	s.Equal(int64(2), stats.Notifications7d)
	s.Equal(int64(2), stats.ActiveSources)
	s.Require().NotNil(stats.LastGlobalCheck)
	s.WithinDuration(time.Now(), *stats.LastGlobalCheck, time.Minute)
}
