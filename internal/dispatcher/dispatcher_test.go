package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"content_watcher/internal/domain"
)

type fakeChannel struct {
	calls  int
	sent   []string
	failOn map[int]error // call index -> error
}

func (c *fakeChannel) Send(ctx context.Context, text string) (string, error) {
	idx := c.calls
	c.calls++
	if err, ok := c.failOn[idx]; ok {
		return "", err
	}
	c.sent = append(c.sent, text)
	return fmt.Sprintf("msg-%d", idx), nil
}

type recordedSend struct {
	sourceID, contentID, url, messageID string
}

type fakeRecorder struct {
	records []recordedSend
	err     error
}

func (r *fakeRecorder) RecordSent(ctx context.Context, sourceID, contentID, contentURL, externalMessageID string) error {
	if r.err != nil {
		return r.err
	}
	r.records = append(r.records, recordedSend{sourceID, contentID, contentURL, externalMessageID})
	return nil
}

type fakeEvents struct {
	published []string
}

func (e *fakeEvents) PublishSent(ctx context.Context, item *domain.ContentItem, externalMessageID string) error {
	e.published = append(e.published, item.ID)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func batch(ids ...string) []domain.ContentItem {
	items := make([]domain.ContentItem, len(ids))
	now := time.Now()
	for i, id := range ids {
		items[i] = domain.ContentItem{
			SourceID:    "alpha",
			ID:          id,
			Title:       "item " + id,
			URL:         "https://example.com/" + id,
			PublishedAt: now.Add(-time.Duration(i) * time.Minute),
		}
	}
	return items
}

func render(item domain.ContentItem) string {
	return "rendered:" + item.ID
}

func TestDispatchBatch_SendsOldestFirstAndRecords(t *testing.T) {
	channel := &fakeChannel{}
	recorder := &fakeRecorder{}
	events := &fakeEvents{}
	d := New(channel, recorder, events, time.Millisecond, testLogger())

	// Input is most-recent-first.
	sent, failed := d.DispatchBatch(context.Background(), "alpha", batch("new", "old"), render)

	assert.Equal(t, 2, sent)
	assert.Equal(t, 0, failed)
	require.Len(t, channel.sent, 2)
	assert.Equal(t, "rendered:old", channel.sent[0])
	assert.Equal(t, "rendered:new", channel.sent[1])

	require.Len(t, recorder.records, 2)
	assert.Equal(t, "old", recorder.records[0].contentID)
	assert.Equal(t, "alpha", recorder.records[0].sourceID)
	assert.NotEmpty(t, recorder.records[0].messageID)

	assert.Equal(t, []string{"old", "new"}, events.published)
}

func TestDispatchBatch_FailedItemDoesNotAbortBatch(t *testing.T) {
	channel := &fakeChannel{failOn: map[int]error{0: errors.New("channel down")}}
	recorder := &fakeRecorder{}
	d := New(channel, recorder, nil, time.Millisecond, testLogger())

	sent, failed := d.DispatchBatch(context.Background(), "alpha", batch("new", "old"), render)

	assert.Equal(t, 1, sent)
	assert.Equal(t, 1, failed)

	// The failed item ("old", sent first) was not recorded, so it
	// stays eligible for the next cycle.
	require.Len(t, recorder.records, 1)
	assert.Equal(t, "new", recorder.records[0].contentID)
}

func TestDispatchBatch_RecordFailureStillCountsAsSent(t *testing.T) {
	channel := &fakeChannel{}
	recorder := &fakeRecorder{err: errors.New("db gone")}
	d := New(channel, recorder, nil, time.Millisecond, testLogger())

	sent, failed := d.DispatchBatch(context.Background(), "alpha", batch("only"), render)

	assert.Equal(t, 1, sent)
	assert.Equal(t, 0, failed)
	assert.Empty(t, recorder.records)
}

func TestSendRaw_BypassesRecording(t *testing.T) {
	channel := &fakeChannel{}
	recorder := &fakeRecorder{}
	d := New(channel, recorder, nil, time.Millisecond, testLogger())

	err := d.SendRaw(context.Background(), "cycle summary")

	require.NoError(t, err)
	assert.Equal(t, []string{"cycle summary"}, channel.sent)
	assert.Empty(t, recorder.records)
}

func TestDispatchBatch_CancelledContextStopsBatch(t *testing.T) {
	channel := &fakeChannel{}
	recorder := &fakeRecorder{}
	// Long delay so the second item has to wait on the limiter.
	d := New(channel, recorder, nil, time.Hour, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	sent, failed := d.DispatchBatch(ctx, "alpha", batch("new", "old"), render)

	assert.Equal(t, 1, sent)
	assert.Equal(t, 1, failed)
}
