package kafka

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/DRSN-tech/cafe-kiosk/internal/usecase"
	"github.com/DRSN-tech/cafe-kiosk/pkg/logger"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOutboxRepo struct {
	mu        sync.Mutex
	pending   []*usecase.OutboxEvent
	processed []int64
	released  []int64
	failed    []int64
}

func (f *fakeOutboxRepo) Create(_ context.Context, event *usecase.OutboxEvent) (*usecase.OutboxEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pending = append(f.pending, event)
	return event, nil
}

func (f *fakeOutboxRepo) GetAndMarkAsProcessing(_ context.Context, limit int) ([]*usecase.OutboxEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	n := min(limit, len(f.pending))
	batch := f.pending[:n]
	f.pending = f.pending[n:]
	for _, ev := range batch {
		ev.Status = usecase.Processing
	}
	return batch, nil
}

func (f *fakeOutboxRepo) MarkAsProcessed(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.processed = append(f.processed, id)
	return nil
}

func (f *fakeOutboxRepo) ReleaseProcessing(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.released = append(f.released, id)
	return nil
}

func (f *fakeOutboxRepo) MarkAsFailed(_ context.Context, id int64, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failed = append(f.failed, id)
	return nil
}

type fakeProducer struct {
	mu   sync.Mutex
	err  error
	sent []*usecase.WriteRawMessageReq
}

func (f *fakeProducer) WriteRawMessage(_ context.Context, req *usecase.WriteRawMessageReq) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, req)
	return nil
}

func seedEvents(repo *fakeOutboxRepo, n int) {
	for i := 1; i <= n; i++ {
		repo.pending = append(repo.pending, &usecase.OutboxEvent{
			ID:        int64(i),
			EventID:   "evt",
			EventType: usecase.OrderCreated,
			OrderID:   int64(100 + i),
			Payload:   []byte("payload"),
			Status:    usecase.Pending,
		})
	}
}

func TestOutboxWorker_Drain(t *testing.T) {
	repo := &fakeOutboxRepo{}
	producer := &fakeProducer{}
	seedEvents(repo, 5)
	w := NewOutboxWorker(repo, logger.Nop{}, producer, "", 2)

	w.drain(context.Background())

	assert.Len(t, producer.sent, 5)
	assert.Equal(t, []int64{1, 2, 3, 4, 5}, repo.processed)
	assert.Empty(t, repo.released)
	assert.Equal(t, "101", producer.sent[0].Key)
	assert.Equal(t, usecase.OrderCreated, producer.sent[0].EventType)
}

func TestOutboxWorker_ReleasesFailedEvents(t *testing.T) {
	repo := &fakeOutboxRepo{}
	producer := &fakeProducer{err: errors.New("dial tcp: connection refused")}
	seedEvents(repo, 3)
	w := NewOutboxWorker(repo, logger.Nop{}, producer, "", 2)

	hasMore, err := w.processBatch(context.Background())

	require.NoError(t, err)
	assert.False(t, hasMore)
	assert.Equal(t, []int64{1, 2}, repo.released)
	assert.Empty(t, repo.processed)
}

func TestOutboxWorker_MarksRejectedEventsFailed(t *testing.T) {
	repo := &fakeOutboxRepo{}
	producer := &fakeProducer{err: kafka.WriteErrors{kafka.MessageSizeTooLarge}}
	seedEvents(repo, 3)
	w := NewOutboxWorker(repo, logger.Nop{}, producer, "", 2)

	hasMore, err := w.processBatch(context.Background())

	require.NoError(t, err)
	assert.True(t, hasMore, "rejected events must not stall the queue")
	assert.Equal(t, []int64{1, 2}, repo.failed)
	assert.Empty(t, repo.released)
	assert.Empty(t, repo.processed)
}

func TestIsPermanentError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"network", errors.New("dial tcp: connection refused"), false},
		{"canceled", context.Canceled, false},
		{"temporary kafka code", kafka.LeaderNotAvailable, false},
		{"rejected kafka code", kafka.TopicAuthorizationFailed, true},
		{"message too large", kafka.MessageTooLargeError{}, true},
		{"all writes rejected", kafka.WriteErrors{kafka.MessageSizeTooLarge}, true},
		{"some writes temporary", kafka.WriteErrors{kafka.MessageSizeTooLarge, kafka.RequestTimedOut}, false},
		{"wrapped", fmt.Errorf("publish: %w", kafka.InvalidTopic), true},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isPermanentError(tt.err))
		})
	}
}
