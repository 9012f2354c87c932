package producer

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"

	"github.com/Dominion116/StyleHub/internal/domain/model/event"
	"github.com/Dominion116/StyleHub/internal/service"
)

// MarketEventProducer 將市集領域事件發佈到kafka
// 同步發送，會block到broker確認寫入
type MarketEventProducer struct {
	writer *kafka.Writer
	closed atomic.Bool
}

var _ service.EventDispatcher = (*MarketEventProducer)(nil)

func NewMarketEventProducer(brokers []string, topic string) *MarketEventProducer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireAll,
		Async:        false,

		MaxAttempts: 3,

		Transport: &kafka.Transport{
			Dial: func(ctx context.Context, network string, address string) (net.Conn, error) {
				dialer := &kafka.Dialer{
					Timeout:   10 * time.Second,
					DualStack: true,
					KeepAlive: 30 * time.Second,
				}
				return dialer.DialContext(ctx, network, address)
			},
		},

		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...interface{}) {
			log.Error().Msgf("kafka producer error: "+msg, args...)
		}),

		Compression: kafka.Snappy,
	}

	return &MarketEventProducer{writer: writer}
}

// Dispatch 以aggregate id作為message key，確保同一聚合的事件落在同一partition
func (p *MarketEventProducer) Dispatch(ctx context.Context, evt event.Event) error {
	if p.closed.Load() {
		return fmt.Errorf("market event producer is closed")
	}

	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal event %s: %w", evt.Type(), err)
	}

	msg := kafka.Message{
		Key:   []byte(evt.GetAggregateID()),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(evt.Type())},
			{Key: "event_id", Value: []byte(evt.GetID())},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write event %s: %w", evt.Type(), err)
	}
	return nil
}

func (p *MarketEventProducer) Close() error {
	if !p.closed.CompareAndSwap(false, true) {
		return nil
	}
	return p.writer.Close()
}
