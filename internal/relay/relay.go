// Package relay 는 새로 결과가 나온 지원 알림을 메일 큐로 넘긴다.
package relay

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/eunji0124/The-Julge-sub000/internal/alert"
	"github.com/eunji0124/The-Julge-sub000/internal/config"
	"github.com/eunji0124/The-Julge-sub000/internal/domain"
	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

type Publisher interface {
	Publish(ctx context.Context, msg domain.MailMessage) error
}

// Channel 은 *amqp.Channel 중 발행에 쓰는 부분이다.
type Channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type AMQPPublisher struct {
	ch      Channel
	queue   string
	timeout time.Duration
}

func NewAMQPPublisher(cfg *config.Config, ch Channel) *AMQPPublisher {
	return &AMQPPublisher{
		ch:      ch,
		queue:   cfg.RabbitMQ.Queue,
		timeout: time.Duration(cfg.RabbitMQ.PublishTimeout) * time.Second,
	}
}

func (p *AMQPPublisher) Publish(ctx context.Context, msg domain.MailMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("relay: encode message: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if err := p.ch.PublishWithContext(
		ctx,
		"",
		p.queue,
		true,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    uuid.NewString(),
			Timestamp:    time.Now(),
			Type:         msg.Type,
			Body:         body,
		},
	); err != nil {
		return fmt.Errorf("relay: publish to %s: %w", p.queue, err)
	}
	return nil
}

// DeclareQueue 는 메일 큐를 내구성 있게 선언한다. 발행하는 쪽과 소비하는 쪽이 같이 쓴다.
func DeclareQueue(ch *amqp.Channel, name string) (amqp.Queue, error) {
	return ch.QueueDeclare(
		name,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	)
}

// Relay 는 폴러의 새 목록을 보고, 아직 읽지 않은 승인/거절 알림을 한 번씩만 발행한다.
type Relay struct {
	pub     Publisher
	timeout time.Duration

	mu   sync.Mutex
	sent map[string]bool
}

func New(pub Publisher, timeout time.Duration) *Relay {
	return &Relay{
		pub:     pub,
		timeout: timeout,
		sent:    make(map[string]bool),
	}
}

// Observe 는 alert.Poller.Observe 에 넘긴다.
func (r *Relay) Observe(s alert.Snapshot) {
	if s.Recipient.Email == "" {
		return
	}

	for _, n := range s.Notifications {
		if n.Read || !r.claim(n.ID) {
			continue
		}

		msg := domain.MailMessage{
			Type: domain.MailTypeApplicationResult,
			To:   s.Recipient.Email,
			Data: domain.ApplicationResultMailData{
				Name:        s.Recipient.Name,
				ShopName:    n.ShopName,
				Result:      n.Status,
				NoticeStart: n.NoticeStart,
				WorkHour:    n.WorkHour,
			},
		}

		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		err := r.pub.Publish(ctx, msg)
		cancel()
		if err != nil {
			slog.Error("알림 메일을 큐에 넣지 못했습니다", "alertID", n.ID, "error", err)
			r.release(n.ID)
			continue
		}
		slog.Info("알림 메일을 큐에 넣었습니다", "alertID", n.ID, "to", s.Recipient.Email)
	}
}

func (r *Relay) claim(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sent[id] {
		return false
	}
	r.sent[id] = true
	return true
}

// release 는 발행에 실패한 알림을 다음 목록에서 다시 시도하게 한다.
func (r *Relay) release(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sent, id)
}
