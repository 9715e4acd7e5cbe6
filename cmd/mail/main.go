package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/eunji0124/The-Julge-sub000/internal/config"
	"github.com/eunji0124/The-Julge-sub000/internal/mailer"
	"github.com/eunji0124/The-Julge-sub000/internal/relay"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/wneessen/go-mail"
)

func main() {
	/**********************************************
	 * logger 생성
	 **********************************************/
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	/**********************************************
	 * 설정 불러오기
	 **********************************************/
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("설정을 불러올 수 없습니다", slog.String("error", err.Error()))
		return
	}
	if cfg.RabbitMQ.DSN == "" {
		logger.Error("RABBITMQ_DSN 이 비어 있습니다")
		return
	}

	composer, err := mailer.NewComposer(cfg.Email.SMTP.Username)
	if err != nil {
		logger.Error("메일 템플릿을 읽을 수 없습니다", slog.String("error", err.Error()))
		return
	}

	/**********************************************
	 * 메일 클라이언트 생성
	 **********************************************/
	client, err := mail.NewClient(cfg.Email.SMTP.Host,
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithSSL(),
		mail.WithPort(cfg.Email.SMTP.Port),
		mail.WithUsername(cfg.Email.SMTP.Username),
		mail.WithPassword(cfg.Email.SMTP.Password),
	)
	if err != nil {
		logger.Error("메일 클라이언트를 만들 수 없습니다", slog.String("error", err.Error()))
		return
	}
	defer client.Close()

	// 시작할 때 메일 서버에 연결되는지 확인한다
	dialCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Email.SMTP.DialTimeout)*time.Second)
	defer cancel()
	if err := client.DialWithContext(dialCtx); err != nil {
		logger.Error("메일 서버에 연결할 수 없습니다", slog.String("error", err.Error()))
		return
	}

	/**********************************************
	 * RabbitMQ 연결
	 **********************************************/
	conn, err := amqp.Dial(cfg.RabbitMQ.DSN)
	if err != nil {
		logger.Error("RabbitMQ 에 연결할 수 없습니다", slog.String("error", err.Error()))
		return
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		logger.Error("채널을 열 수 없습니다", slog.String("error", err.Error()))
		return
	}
	defer ch.Close()

	q, err := relay.DeclareQueue(ch, cfg.RabbitMQ.Queue)
	if err != nil {
		logger.Error("큐를 선언할 수 없습니다", slog.String("error", err.Error()))
		return
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	msgs, err := ch.Consume(
		q.Name,
		"",    // consumer
		false, // autoAck
		false, // exclusive
		false, // noLocal
		false, // noWait
		nil,
	)
	if err != nil {
		logger.Error("메시지를 받을 수 없습니다", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := context.WithCancel(context.Background())
	wg := sync.WaitGroup{}

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					logger.Warn("메시지 채널이 닫혔습니다")
					return
				}
				logger.Info("메시지를 받았습니다", slog.String("id", msg.MessageId), slog.String("type", msg.Type))

				var m mailer.Message
				if err := json.Unmarshal(msg.Body, &m); err != nil {
					logger.Error("메시지를 해석할 수 없습니다", slog.String("error", err.Error()))
					_ = msg.Nack(false, false)
					continue
				}

				email, err := composer.Compose(m)
				if err != nil {
					logger.Error("메일을 만들 수 없습니다", slog.String("error", err.Error()))
					_ = msg.Nack(false, false)
					continue
				}

				if err := client.DialAndSend(email); err != nil {
					logger.Error("메일을 보내지 못했습니다", slog.String("error", err.Error()))
					_ = msg.Nack(false, true) // 다시 큐에 넣는다
					continue
				}

				_ = msg.Ack(false)
			}
		}
	}()

	logger.Info("메시지를 기다립니다... (CTRL+C 로 종료)", slog.String("queue", q.Name))
	<-sigChan

	slog.Info("mail worker 를 종료합니다...")
	stop()
	wg.Wait()
	slog.Info("mail worker 가 종료되었습니다")
}
