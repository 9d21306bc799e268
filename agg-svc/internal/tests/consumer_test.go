package tests

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"food-platform/agg-svc/internal/domain"
	"food-platform/agg-svc/internal/mocks"
	"food-platform/agg-svc/internal/service"

	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var eventTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func orderEvent(eventType string) domain.OrderEvent {
	return domain.OrderEvent{
		Type:         eventType,
		OrderID:      42,
		UserID:       1,
		RestaurantID: 10,
		TotalPrice:   decimal.RequireFromString("250.00"),
		Status:       "PENDING",
		Timestamp:    eventTime,
	}
}

func TestConsumer_ProcessEvent(t *testing.T) {
	tests := []struct {
		name           string
		event          domain.OrderEvent
		setupMockStore func(*mocks.StoreInterface)
		wantErr        bool
	}{
		{
			name:  "created",
			event: orderEvent(domain.EventOrderCreated),
			setupMockStore: func(m *mocks.StoreInterface) {
				m.On("MarkProcessed", mock.Anything, orderEvent(domain.EventOrderCreated)).Return(true, nil).Once()
				m.On("ApplyEvent", mock.Anything, orderEvent(domain.EventOrderCreated)).Return(nil).Once()
			},
		},
		{
			name:  "duplicate delivery",
			event: orderEvent(domain.EventOrderCanceled),
			setupMockStore: func(m *mocks.StoreInterface) {
				m.On("MarkProcessed", mock.Anything, orderEvent(domain.EventOrderCanceled)).Return(false, nil).Once()
			},
		},
		{
			name:  "dedup store error",
			event: orderEvent(domain.EventOrderCompleted),
			setupMockStore: func(m *mocks.StoreInterface) {
				m.On("MarkProcessed", mock.Anything, mock.Anything).Return(false, errors.New("db connection failed")).Once()
			},
			wantErr: true,
		},
		{
			name:  "redis error",
			event: orderEvent(domain.EventOrderCompleted),
			setupMockStore: func(m *mocks.StoreInterface) {
				m.On("MarkProcessed", mock.Anything, mock.Anything).Return(true, nil).Once()
				m.On("ApplyEvent", mock.Anything, mock.Anything).Return(errors.New("redis error")).Once()
				m.On("UnmarkProcessed", mock.Anything, orderEvent(domain.EventOrderCompleted)).Return(nil).Once()
			},
			wantErr: true,
		},
		{
			name:  "redis error and marker stuck",
			event: orderEvent(domain.EventOrderCompleted),
			setupMockStore: func(m *mocks.StoreInterface) {
				m.On("MarkProcessed", mock.Anything, mock.Anything).Return(true, nil).Once()
				m.On("ApplyEvent", mock.Anything, mock.Anything).Return(errors.New("redis error")).Once()
				m.On("UnmarkProcessed", mock.Anything, mock.Anything).Return(errors.New("db down")).Once()
			},
			wantErr: true,
		},
		{
			name:           "unknown type",
			event:          orderEvent("new_review"),
			setupMockStore: func(*mocks.StoreInterface) {},
		},
		{
			name:           "missing restaurant",
			event:          domain.OrderEvent{Type: domain.EventOrderCreated, OrderID: 1},
			setupMockStore: func(*mocks.StoreInterface) {},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			mockStore := mocks.NewStoreInterface(t)
			testCase.setupMockStore(mockStore)

			consumer := service.NewConsumer(nil, mockStore, nil)
			err := consumer.ProcessEvent(context.Background(), testCase.event)

			if testCase.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConsumer_Start_CommitsProcessedMessages(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	payload, err := json.Marshal(orderEvent(domain.EventOrderCreated))
	require.NoError(t, err)
	good := kafka.Message{Offset: 1, Value: payload}
	malformed := kafka.Message{Offset: 2, Value: []byte("{not json")}

	reader := mocks.NewMessageReader(t)
	store := mocks.NewStoreInterface(t)

	reader.On("FetchMessage", mock.Anything).Return(good, nil).Once()
	reader.On("FetchMessage", mock.Anything).Return(malformed, nil).Once()
	reader.On("FetchMessage", mock.Anything).Run(func(mock.Arguments) { cancel() }).
		Return(kafka.Message{}, context.Canceled).Once()
	reader.On("CommitMessages", mock.Anything, good).Return(nil).Once()
	reader.On("CommitMessages", mock.Anything, malformed).Return(nil).Once()

	store.On("MarkProcessed", mock.Anything, mock.MatchedBy(func(e domain.OrderEvent) bool {
		return e.OrderID == 42 && e.TotalPrice.Equal(decimal.RequireFromString("250"))
	})).Return(true, nil).Once()
	store.On("ApplyEvent", mock.Anything, mock.Anything).Return(nil).Once()

	assert.NoError(t, service.NewConsumer(reader, store, nil).Start(ctx))
}

func newRetryingConsumer(reader *mocks.MessageReader, store *mocks.StoreInterface) *service.Consumer {
	consumer := service.NewConsumer(reader, store, nil)
	consumer.RetryBackoff = time.Millisecond
	consumer.MaxBackoff = 5 * time.Millisecond
	return consumer
}

func TestConsumer_Start_RetriesSameMessageBeforeCommit(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	payload, err := json.Marshal(orderEvent(domain.EventOrderCreated))
	require.NoError(t, err)
	first := kafka.Message{Offset: 7, Value: payload}

	reader := mocks.NewMessageReader(t)
	store := mocks.NewStoreInterface(t)
	var calls []string
	record := func(name string) func(mock.Arguments) {
		return func(mock.Arguments) { calls = append(calls, name) }
	}

	reader.On("FetchMessage", mock.Anything).Return(first, nil).Once()
	reader.On("FetchMessage", mock.Anything).Run(func(mock.Arguments) { cancel() }).
		Return(kafka.Message{}, context.Canceled).Once()
	reader.On("CommitMessages", mock.Anything, first).Run(record("commit")).Return(nil).Once()

	store.On("MarkProcessed", mock.Anything, mock.Anything).Run(record("mark")).Return(true, nil).Twice()
	store.On("ApplyEvent", mock.Anything, mock.Anything).Run(record("apply")).Return(errors.New("redis timeout")).Once()
	store.On("UnmarkProcessed", mock.Anything, mock.Anything).Run(record("unmark")).Return(nil).Once()
	store.On("ApplyEvent", mock.Anything, mock.Anything).Run(record("apply")).Return(nil).Once()

	assert.NoError(t, newRetryingConsumer(reader, store).Start(ctx))
	assert.Equal(t, []string{"mark", "apply", "unmark", "mark", "apply", "commit"}, calls)
}

func TestConsumer_Start_StopsRetryingOnShutdown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	payload, err := json.Marshal(orderEvent(domain.EventOrderCreated))
	require.NoError(t, err)

	reader := mocks.NewMessageReader(t)
	store := mocks.NewStoreInterface(t)

	reader.On("FetchMessage", mock.Anything).Return(kafka.Message{Value: payload}, nil).Once()
	store.On("MarkProcessed", mock.Anything, mock.Anything).Return(false, errors.New("db down")).Once()
	store.On("MarkProcessed", mock.Anything, mock.Anything).Run(func(mock.Arguments) { cancel() }).
		Return(false, errors.New("db down")).Once()

	assert.NoError(t, newRetryingConsumer(reader, store).Start(ctx))
	reader.AssertNotCalled(t, "CommitMessages", mock.Anything, mock.Anything)
	reader.AssertNumberOfCalls(t, "FetchMessage", 1)
}

func TestOrderEvent_Cents(t *testing.T) {
	e := orderEvent(domain.EventOrderCreated)
	e.TotalPrice = decimal.RequireFromString("12.345")
	assert.Equal(t, int64(1235), e.Cents())

	e.TotalPrice = decimal.RequireFromString("250")
	assert.Equal(t, int64(25000), e.Cents())
}
