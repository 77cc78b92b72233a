package producer

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"time"

	"github.com/RoyceAzure/lab/shopcart/internal/domain/model"
	"github.com/segmentio/kafka-go"
)

var ErrProducerClosed = errors.New("order producer is closed")

type OrderEvent string

const (
	OrderEventCommitted OrderEvent = "order.committed"
)

// OrderCommittedPayload 單次commit的事件內容
// Orders內容為寫入db的不可變快照
type OrderCommittedPayload struct {
	SessionID   string        `json:"session_id"`
	Username    string        `json:"username"`
	CommittedAt time.Time     `json:"committed_at"`
	Orders      []model.Order `json:"orders"`
}

type IOrderProducer interface {
	OrderCommitted(ctx context.Context, payload *OrderCommittedPayload) error
	Close() error
}

// OrderProducer 訂單事件producer
// 同步發送，會block到消息寫入
type OrderProducer struct {
	writer *kafka.Writer
	closed atomic.Bool
}

func NewOrderProducer(brokers []string, topic string) *OrderProducer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
		Async:        false,
		BatchTimeout: 10 * time.Millisecond,
		Compression:  kafka.Snappy,
	}

	return &OrderProducer{writer: writer}
}

func (p *OrderProducer) OrderCommitted(ctx context.Context, payload *OrderCommittedPayload) error {
	if p.closed.Load() {
		return ErrProducerClosed
	}

	value, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(string(OrderEventCommitted) + ":" + payload.Username),
		Value: value,
		Time:  payload.CommittedAt,
	})
}

func (p *OrderProducer) Close() error {
	if !p.closed.CompareAndSwap(false, true) {
		return nil
	}
	return p.writer.Close()
}

var _ IOrderProducer = (*OrderProducer)(nil)
