package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/Eursukkul/restaurant-ledger/internal/channel"
	"github.com/Eursukkul/restaurant-ledger/internal/dto"
	"github.com/Eursukkul/restaurant-ledger/internal/lock"
	"github.com/Eursukkul/restaurant-ledger/internal/models"
	"github.com/Eursukkul/restaurant-ledger/internal/repository"
	"github.com/Eursukkul/restaurant-ledger/internal/service"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Fake Acknowledger ---

type fakeAck struct {
	acked    bool
	nacked   bool
	requeued bool
}

func (f *fakeAck) Ack(tag uint64, multiple bool) error {
	f.acked = true
	return nil
}
func (f *fakeAck) Nack(tag uint64, multiple, requeue bool) error {
	f.nacked = true
	f.requeued = requeue
	return nil
}
func (f *fakeAck) Reject(tag uint64, requeue bool) error {
	return f.Nack(tag, false, requeue)
}

// --- Fake Publisher ---

type sent struct {
	target        string
	correlationID string
	payload       any
}

type fakePublisher struct {
	mu        sync.Mutex
	published []sent
	replies   []sent
}

func (p *fakePublisher) Publish(routingKey string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, sent{target: routingKey, payload: payload})
	return nil
}
func (p *fakePublisher) Reply(replyTo, correlationID string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.replies = append(p.replies, sent{target: replyTo, correlationID: correlationID, payload: payload})
	return nil
}

// --- Mock OrderService ---

type mockOrderService struct {
	setStatusFn func(ctx context.Context, id, status string) (*service.StatusChange, error)
}

func (m *mockOrderService) Create(ctx context.Context, in service.CreateOrderInput) (*models.Order, error) {
	return nil, errors.New("not implemented")
}
func (m *mockOrderService) Query(ctx context.Context, q service.OrderQuery) ([]models.Order, error) {
	return nil, errors.New("not implemented")
}
func (m *mockOrderService) SetStatus(ctx context.Context, id, status string) (*service.StatusChange, error) {
	return m.setStatusFn(ctx, id, status)
}

func newConsumer(t *testing.T) (*MessageConsumer, *fakePublisher) {
	t.Helper()
	store := repository.NewMemoryStore()
	require.NoError(t, repository.EnsureSheets(context.Background(), store))
	opts := service.Options{
		MaxCapacity: 10,
		Location:    time.UTC,
		Now:         func() time.Time { return time.Date(2024, 1, 16, 10, 0, 0, 0, time.UTC) },
	}
	locker := lock.NewKeyedMutex()
	reservations := service.NewReservationService(repository.NewReservationRepository(store), locker, nil, opts)
	orders := service.NewOrderService(repository.NewOrderRepository(store), locker, nil, opts)
	pub := &fakePublisher{}
	mc := NewMessageConsumer(reservations, orders, nil, channel.Formatter{WeChatAccountID: "gh_restaurant"}, pub)
	mc.now = func() time.Time { return time.Unix(1705400000, 0) }
	return mc, pub
}

func delivery(ack *fakeAck, routingKey, body string) amqp.Delivery {
	return amqp.Delivery{
		Acknowledger:  ack,
		RoutingKey:    routingKey,
		ReplyTo:       "amq.rabbitmq.reply-to",
		CorrelationId: "corr-1",
		Body:          []byte(body),
	}
}

func TestHandleInbound_AnswersOnOutboundKey(t *testing.T) {
	mc, pub := newConsumer(t)
	ack := &fakeAck{}

	mc.handleMessage(context.Background(), delivery(ack, "inbound.wechat",
		`{"FromUserName":"oUser","CreateTime":"1705382400","MsgType":"text","Content":"我要点宫保鸡丁"}`))

	assert.True(t, ack.acked)
	require.Len(t, pub.published, 1)
	assert.Equal(t, "outbound.wechat", pub.published[0].target)
	reply, ok := pub.published[0].payload.(channel.WeChatReply)
	require.True(t, ok)
	assert.Equal(t, "oUser", reply.ToUserName)
	assert.Equal(t, "[wechat] received: 我要点宫保鸡丁", reply.Content)
}

func TestHandleInbound_RejectsUnknownChannel(t *testing.T) {
	mc, pub := newConsumer(t)
	ack := &fakeAck{}

	mc.handleMessage(context.Background(), delivery(ack, "inbound.fax", `{}`))

	assert.True(t, ack.nacked)
	assert.False(t, ack.requeued)
	assert.Empty(t, pub.published)
}

func TestHandleCommand_CreateReservationReplies(t *testing.T) {
	mc, pub := newConsumer(t)
	ack := &fakeAck{}
	body := `{"customer_name":"李四","phone":"138","date":"2024-01-20","time_slot":"19:00-21:00","party_size":4,"channel":"douyin"}`

	mc.handleMessage(context.Background(), delivery(ack, "command.reservation.create", body))

	assert.True(t, ack.acked)
	require.Len(t, pub.replies, 1)
	assert.Equal(t, "corr-1", pub.replies[0].correlationID)
	env, ok := pub.replies[0].payload.(dto.Envelope)
	require.True(t, ok)
	assert.True(t, env.Success)
	res, ok := env.Data.(*models.Reservation)
	require.True(t, ok)
	assert.Equal(t, "RES20240120001", res.ID)
}

func TestHandleCommand_CapacityRefusalIsAcked(t *testing.T) {
	mc, pub := newConsumer(t)
	ack := &fakeAck{}
	body := `{"customer_name":"李四","phone":"138","date":"2024-01-20","time_slot":"19:00-21:00","party_size":12,"channel":"douyin"}`

	mc.handleMessage(context.Background(), delivery(ack, "command.reservation.create", body))

	assert.True(t, ack.acked)
	require.Len(t, pub.replies, 1)
	env := pub.replies[0].payload.(dto.Envelope)
	assert.False(t, env.Success)
	assert.Contains(t, env.Error, "remaining 10, requested 12")
}

func TestHandleCommand_OrderLifecycle(t *testing.T) {
	mc, pub := newConsumer(t)
	ctx := context.Background()
	create := `{"customer_name":"王五","phone":"137","address":"建国路","items":[{"dish_id":"D001","quantity":1}],"total_amount":38,"channel":"phone"}`

	ack := &fakeAck{}
	mc.handleMessage(ctx, delivery(ack, "command.order.create", create))
	require.True(t, ack.acked)

	ack = &fakeAck{}
	mc.handleMessage(ctx, delivery(ack, "command.order.status", `{"id":"ORD20240116001","status":"preparing"}`))
	require.True(t, ack.acked)

	require.Len(t, pub.replies, 2)
	env := pub.replies[1].payload.(dto.Envelope)
	assert.True(t, env.Success)
	assert.Equal(t, "order ORD20240116001 is now preparing", env.Message)
}

func TestHandleCommand_MalformedBody(t *testing.T) {
	mc, pub := newConsumer(t)
	ack := &fakeAck{}

	mc.handleMessage(context.Background(), delivery(ack, "command.order.create", `{"items":`))

	assert.True(t, ack.nacked)
	assert.False(t, ack.requeued)
	require.Len(t, pub.replies, 1)
	assert.False(t, pub.replies[0].payload.(dto.Envelope).Success)
}

func TestHandleCommand_UnknownCommand(t *testing.T) {
	mc, _ := newConsumer(t)
	ack := &fakeAck{}

	mc.handleMessage(context.Background(), delivery(ack, "command.menu.drop", `{}`))

	assert.True(t, ack.nacked)
	assert.False(t, ack.requeued)
}

func TestHandleCommand_StoreFailureRequeuesOnce(t *testing.T) {
	mc, pub := newConsumer(t)
	mc.orders = &mockOrderService{
		setStatusFn: func(ctx context.Context, id, status string) (*service.StatusChange, error) {
			return nil, fmt.Errorf("update order: %w: %w", service.ErrStoreFailure, errors.New("connection reset"))
		},
	}
	body := `{"id":"ORD20240116001","status":"completed"}`

	first := &fakeAck{}
	mc.handleMessage(context.Background(), delivery(first, "command.order.status", body))
	assert.True(t, first.nacked)
	assert.True(t, first.requeued)
	assert.Empty(t, pub.replies)

	second := &fakeAck{}
	d := delivery(second, "command.order.status", body)
	d.Redelivered = true
	mc.handleMessage(context.Background(), d)
	assert.True(t, second.nacked)
	assert.False(t, second.requeued)
	require.Len(t, pub.replies, 1)
}

func TestStart_StopsWhenChannelCloses(t *testing.T) {
	mc, pub := newConsumer(t)
	msgs := make(chan amqp.Delivery, 1)
	ack := &fakeAck{}
	payload, err := json.Marshal(map[string]any{"user_id": "u1", "content": "hi", "timestamp": 1705382400})
	require.NoError(t, err)
	msgs <- delivery(ack, "inbound.douyin", string(payload))
	close(msgs)

	mc.Start(context.Background(), msgs)

	assert.Eventually(t, func() bool {
		pub.mu.Lock()
		defer pub.mu.Unlock()
		return len(pub.published) == 1
	}, time.Second, 10*time.Millisecond)
}
