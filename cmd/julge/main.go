package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/eunji0124/The-Julge-sub000/internal/alert"
	"github.com/eunji0124/The-Julge-sub000/internal/cache"
	"github.com/eunji0124/The-Julge-sub000/internal/config"
	"github.com/eunji0124/The-Julge-sub000/internal/domain"
	"github.com/eunji0124/The-Julge-sub000/internal/feedback"
	"github.com/eunji0124/The-Julge-sub000/internal/gateway"
	"github.com/eunji0124/The-Julge-sub000/internal/handler"
	"github.com/eunji0124/The-Julge-sub000/internal/recent"
	"github.com/eunji0124/The-Julge-sub000/internal/relay"
	"github.com/eunji0124/The-Julge-sub000/internal/repository"
	"github.com/eunji0124/The-Julge-sub000/internal/session"
	"github.com/eunji0124/The-Julge-sub000/internal/storage"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
)

func main() {
	/**********************************************
	 * logger 생성
	 **********************************************/
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	/**********************************************
	 * 설정 불러오기
	 **********************************************/
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("설정을 불러올 수 없습니다", "error", err)
		return
	}

	/**********************************************
	 * 저장소 연결
	 **********************************************/
	var store storage.Store
	switch cfg.Storage.Backend {
	case "memory":
		store = storage.NewMemory()
	default:
		rdb := redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Redis.ConnectTimeout)*time.Second)
		err := rdb.Ping(ctx).Err()
		cancel()
		if err != nil {
			logger.Error("redis 에 연결할 수 없습니다", "error", err)
			return
		}
		store = storage.NewRedis(rdb, cfg.Storage.KeyPrefix, cfg.RedisTimeout())
	}

	/**********************************************
	 * 세션 복원
	 **********************************************/
	sessions := session.NewStore(store)
	ctx, cancel := context.WithTimeout(context.Background(), cfg.RedisTimeout())
	if err := sessions.Restore(ctx); err != nil {
		// 복원에 실패해도 로그아웃 상태로 시작한다
		logger.Warn("저장된 세션을 복원하지 못했습니다", "error", err)
	}
	cancel()

	/**********************************************
	 * 백엔드 클라이언트 생성
	 **********************************************/
	rec := feedback.NewRecorder()
	gw := gateway.New(cfg, sessions, rec, rec)
	repo := repository.NewRepository(cfg, gw)

	refresher := session.NewRefresher(sessions, repo,
		time.Duration(cfg.Session.RefreshMinInterval)*time.Second,
		time.Duration(cfg.Session.RefreshTimeout)*time.Second,
	)
	gw.SetRefresher(refresher)
	defer refresher.Wait()

	profileCache := cache.New[domain.User](time.Duration(cfg.Cache.ProfileStaleTime)*time.Second, cfg.APITimeout())
	defer profileCache.Wait()

	/**********************************************
	 * 알림 폴링
	 **********************************************/
	poller := alert.New(cfg, repo)
	unsubscribe := sessions.Subscribe(poller.SetSession)
	poller.SetSession(sessions.Snapshot())
	defer func() {
		unsubscribe()
		poller.Stop()
	}()

	if cfg.RabbitMQ.DSN != "" {
		conn, err := amqp.Dial(cfg.RabbitMQ.DSN)
		if err != nil {
			logger.Error("rabbitmq 에 연결할 수 없습니다", "error", err)
			return
		}
		defer conn.Close()

		ch, err := conn.Channel()
		if err != nil {
			logger.Error("채널을 열 수 없습니다", "error", err)
			return
		}
		defer ch.Close()

		if _, err := relay.DeclareQueue(ch, cfg.RabbitMQ.Queue); err != nil {
			logger.Error("큐를 선언할 수 없습니다", "error", err)
			return
		}

		r := relay.New(relay.NewAMQPPublisher(cfg, ch), time.Duration(cfg.RabbitMQ.PublishTimeout)*time.Second)
		poller.Observe(r.Observe)
		logger.Info("알림 메일 릴레이를 켭니다", "queue", cfg.RabbitMQ.Queue)
	}

	/**********************************************
	 * handler 생성
	 **********************************************/
	h, err := handler.NewHandler(cfg, repo, sessions, rec, recent.NewStore(store), poller, profileCache)
	if err != nil {
		logger.Error("handler 를 만들 수 없습니다", "error", err)
		return
	}
	defer h.Close()
	h.RegisterRoutes()

	/**********************************************
	 * HTTP 서버 시작
	 **********************************************/
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      h.Mux,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("서버를 시작합니다", "port", cfg.Server.Port, "api", cfg.API.BaseURL)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("서버를 시작할 수 없습니다", slog.String("error", err.Error()))
			return
		}
	}()

	<-quit
	logger.Info("서버를 종료합니다...")

	ctx, cancel = context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("서버를 종료하지 못했습니다", slog.String("error", err.Error()))
	}
	logger.Info("서버가 종료되었습니다")
}
