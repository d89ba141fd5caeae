package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"content_watcher/internal/domain"
	"content_watcher/internal/service/mocks"
)

type CheckServiceTestSuite struct {
	suite.Suite
	ctrl *gomock.Controller

	poller        *mocks.MockPoller
	checkState    *mocks.MockCheckStateStore
	notifications *mocks.MockNotificationStore
	dispatcher    *mocks.MockDispatcher

	service *CheckService
	cfg     Config
	logger  *slog.Logger
}

func (s *CheckServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())

	s.poller = mocks.NewMockPoller(s.ctrl)
	s.checkState = mocks.NewMockCheckStateStore(s.ctrl)
	s.notifications = mocks.NewMockNotificationStore(s.ctrl)
	s.dispatcher = mocks.NewMockDispatcher(s.ctrl)

	s.cfg = Config{FetchLimit: 10}
	s.logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	s.poller.EXPECT().ID().Return("alpha").AnyTimes()
	s.poller.EXPECT().Name().Return("Alpha").AnyTimes()

	s.service = NewCheckService(
		[]Poller{s.poller},
		s.checkState,
		s.notifications,
		s.dispatcher,
		s.logger,
		s.cfg,
	)
}

func (s *CheckServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestCheckServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CheckServiceTestSuite))
}

func item(id string, ts time.Time) domain.ContentItem {
	return domain.ContentItem{
		SourceID:    "alpha",
		ID:          id,
		Title:       "item " + id,
		URL:         "https://example.com/" + id,
		PublishedAt: ts,
	}
}

func (s *CheckServiceTestSuite) TestCheckSource_StrictCursorBoundary() {
	ctx := context.Background()
	cursor := time.Now().Add(-1 * time.Hour)

	// Most-recent-first: T+2, T+1, T-1.
	items := []domain.ContentItem{
		item("a", cursor.Add(2*time.Second)),
		item("b", cursor.Add(1*time.Second)),
		item("c", cursor.Add(-1*time.Second)),
	}

	s.checkState.EXPECT().Get(ctx, "alpha").Return(&domain.CheckState{
		SourceID:             "alpha",
		LastCheckTime:        cursor,
		LastContentTimestamp: &cursor,
	}, nil)

	s.poller.EXPECT().FetchLatest(ctx, 10).Return(items, nil)

	s.notifications.EXPECT().IsSent(ctx, "alpha", "a").Return(false, nil)
	s.notifications.EXPECT().IsSent(ctx, "alpha", "b").Return(false, nil)

	s.dispatcher.EXPECT().
		DispatchBatch(ctx, "alpha", gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, newItems []domain.ContentItem, _ func(domain.ContentItem) string) (int, int) {
			s.Len(newItems, 2)
			s.Equal("a", newItems[0].ID)
			s.Equal("b", newItems[1].ID)
			return 2, 0
		})

	// Cursor advances to the most recently fetched item.
	s.checkState.EXPECT().Update(ctx, "alpha", &items[0].ID, &items[0].PublishedAt).Return(nil)

	res := s.service.CheckSource(ctx, s.poller)

	s.NoError(res.Err)
	s.Equal(3, res.Fetched)
	s.Len(res.New, 2)
	s.Equal(2, res.Dispatched)
}

func (s *CheckServiceTestSuite) TestCheckSource_EmptyFetchStillAdvances() {
	ctx := context.Background()
	cursor := time.Now().Add(-1 * time.Hour)

	s.checkState.EXPECT().Get(ctx, "alpha").Return(&domain.CheckState{
		SourceID:             "alpha",
		LastContentTimestamp: &cursor,
	}, nil)

	s.poller.EXPECT().FetchLatest(ctx, 10).Return(nil, nil)

	// Content fields stay untouched, but the check is still recorded.
	s.checkState.EXPECT().Update(ctx, "alpha", nil, nil).Return(nil)

	res := s.service.CheckSource(ctx, s.poller)

	s.NoError(res.Err)
	s.Equal(0, res.Fetched)
	s.Empty(res.New)
}

func (s *CheckServiceTestSuite) TestCheckSource_SentLedgerWinsOverTimestamp() {
	ctx := context.Background()
	cursor := time.Now().Add(-1 * time.Hour)

	items := []domain.ContentItem{
		item("a", cursor.Add(2*time.Second)),
		item("b", cursor.Add(1*time.Second)),
	}

	s.checkState.EXPECT().Get(ctx, "alpha").Return(&domain.CheckState{
		SourceID:             "alpha",
		LastContentTimestamp: &cursor,
	}, nil)

	s.poller.EXPECT().FetchLatest(ctx, 10).Return(items, nil)

	// "a" was already delivered in a previous run despite being newer
	// than the cursor (clock skew / re-fetch).
	s.notifications.EXPECT().IsSent(ctx, "alpha", "a").Return(true, nil)
	s.notifications.EXPECT().IsSent(ctx, "alpha", "b").Return(false, nil)

	s.dispatcher.EXPECT().
		DispatchBatch(ctx, "alpha", gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, newItems []domain.ContentItem, _ func(domain.ContentItem) string) (int, int) {
			s.Len(newItems, 1)
			s.Equal("b", newItems[0].ID)
			return 1, 0
		})

	s.checkState.EXPECT().Update(ctx, "alpha", &items[0].ID, &items[0].PublishedAt).Return(nil)

	res := s.service.CheckSource(ctx, s.poller)

	s.NoError(res.Err)
	s.Len(res.New, 1)
}

func (s *CheckServiceTestSuite) TestCheckSource_FetchErrorStillMarksChecked() {
	ctx := context.Background()

	s.checkState.EXPECT().Get(ctx, "alpha").Return(nil, nil)
	s.poller.EXPECT().FetchLatest(ctx, 10).Return(nil, errors.New("connection refused"))

	// The content cursor does not move, but the check time refreshes.
	s.checkState.EXPECT().Update(ctx, "alpha", nil, nil).Return(nil)

	res := s.service.CheckSource(ctx, s.poller)

	s.Error(res.Err)
	s.Empty(res.New)
}

func (s *CheckServiceTestSuite) TestCheckSource_FirstCheckUsesLookbackWindow() {
	ctx := context.Background()

	items := []domain.ContentItem{
		item("recent", time.Now().Add(-1*time.Hour)),
		item("ancient", time.Now().Add(-48*time.Hour)),
	}

	// Never checked before.
	s.checkState.EXPECT().Get(ctx, "alpha").Return(nil, nil)
	s.poller.EXPECT().FetchLatest(ctx, 10).Return(items, nil)

	s.notifications.EXPECT().IsSent(ctx, "alpha", "recent").Return(false, nil)

	s.dispatcher.EXPECT().
		DispatchBatch(ctx, "alpha", gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, newItems []domain.ContentItem, _ func(domain.ContentItem) string) (int, int) {
			s.Len(newItems, 1)
			s.Equal("recent", newItems[0].ID)
			return 1, 0
		})

	s.checkState.EXPECT().Update(ctx, "alpha", &items[0].ID, &items[0].PublishedAt).Return(nil)

	res := s.service.CheckSource(ctx, s.poller)

	s.NoError(res.Err)
	s.Len(res.New, 1)
}

func (s *CheckServiceTestSuite) TestCheckSource_SecondCycleSeesNothingNew() {
	ctx := context.Background()
	now := time.Now()
	x1 := item("x1", now)

	// First cycle: no prior state.
	s.checkState.EXPECT().Get(ctx, "alpha").Return(nil, nil)
	s.poller.EXPECT().FetchLatest(ctx, 10).Return([]domain.ContentItem{x1}, nil)
	s.notifications.EXPECT().IsSent(ctx, "alpha", "x1").Return(false, nil)
	s.dispatcher.EXPECT().
		DispatchBatch(ctx, "alpha", gomock.Any(), gomock.Any()).
		Return(1, 0)
	s.checkState.EXPECT().Update(ctx, "alpha", &x1.ID, &x1.PublishedAt).Return(nil)

	res := s.service.CheckSource(ctx, s.poller)
	s.NoError(res.Err)
	s.Len(res.New, 1)

	// Second cycle: same fetch result, cursor now at x1's timestamp.
	s.checkState.EXPECT().Get(ctx, "alpha").Return(&domain.CheckState{
		SourceID:             "alpha",
		LastContentID:        &x1.ID,
		LastContentTimestamp: &x1.PublishedAt,
	}, nil)
	s.poller.EXPECT().FetchLatest(ctx, 10).Return([]domain.ContentItem{x1}, nil)
	s.checkState.EXPECT().Update(ctx, "alpha", &x1.ID, &x1.PublishedAt).Return(nil)

	res = s.service.CheckSource(ctx, s.poller)
	s.NoError(res.Err)
	s.Empty(res.New)
}

func (s *CheckServiceTestSuite) TestRunCycle_SourceFailureDoesNotBlockOthers() {
	ctx := context.Background()
	now := time.Now()

	broken := mocks.NewMockPoller(s.ctrl)
	broken.EXPECT().ID().Return("broken").AnyTimes()
	broken.EXPECT().Name().Return("Broken").AnyTimes()
	broken.EXPECT().Configured().Return(true)
	healthy := mocks.NewMockPoller(s.ctrl)
	healthy.EXPECT().ID().Return("healthy").AnyTimes()
	healthy.EXPECT().Name().Return("Healthy").AnyTimes()
	healthy.EXPECT().Configured().Return(true)

	svc := NewCheckService(
		[]Poller{broken, healthy},
		s.checkState,
		s.notifications,
		s.dispatcher,
		s.logger,
		s.cfg,
	)

	s.checkState.EXPECT().Get(ctx, "broken").Return(nil, nil)
	broken.EXPECT().FetchLatest(ctx, 10).Return(nil, errors.New("after 3 rate-limited attempts: rate limited by source"))
	s.checkState.EXPECT().Update(ctx, "broken", nil, nil).Return(nil)

	fresh := domain.ContentItem{SourceID: "healthy", ID: "n1", PublishedAt: now}
	s.checkState.EXPECT().Get(ctx, "healthy").Return(nil, nil)
	healthy.EXPECT().FetchLatest(ctx, 10).Return([]domain.ContentItem{fresh}, nil)
	s.notifications.EXPECT().IsSent(ctx, "healthy", "n1").Return(false, nil)
	s.dispatcher.EXPECT().
		DispatchBatch(ctx, "healthy", gomock.Any(), gomock.Any()).
		Return(1, 0)
	s.checkState.EXPECT().Update(ctx, "healthy", &fresh.ID, &fresh.PublishedAt).Return(nil)

	summary, err := svc.RunCycle(ctx)

	s.NoError(err)
	s.Equal(2, summary.Checked)
	s.Equal(1, summary.Dispatched)
	s.Require().Len(summary.Failures, 1)
	s.Equal("broken", summary.Failures[0].SourceID)
}

func (s *CheckServiceTestSuite) TestRunCycle_SkipsUnconfiguredSources() {
	ctx := context.Background()

	s.poller.EXPECT().Configured().Return(false)

	summary, err := s.service.RunCycle(ctx)

	s.NoError(err)
	s.Equal(0, summary.Checked)
	s.Equal(1, summary.Skipped)
	s.Empty(summary.Failures)
}
