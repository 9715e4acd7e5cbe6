package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/eunji0124/The-Julge-sub000/internal/config"
	"github.com/eunji0124/The-Julge-sub000/internal/feedback"
	"github.com/eunji0124/The-Julge-sub000/internal/gateway"
	"github.com/eunji0124/The-Julge-sub000/internal/repository"
	"github.com/eunji0124/The-Julge-sub000/internal/seed"
	"github.com/eunji0124/The-Julge-sub000/internal/session"
	"github.com/eunji0124/The-Julge-sub000/internal/storage"
)

func main() {
	var op int
	var n int
	var email string

	flag.IntVar(&op, "op", 0, "실행할 작업 (1: 사장님과 가게 만들기, 2: 공고 올리기, 3: 알바님 만들기)")
	flag.IntVar(&n, "n", 5, "만들 개수")
	flag.StringVar(&email, "email", "", "공고를 올릴 사장님 이메일 (op 2)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("설정을 불러올 수 없습니다", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 시드 작업의 세션은 남기지 않는다
	store := session.NewStore(storage.NewMemory())
	rec := feedback.NewRecorder()
	repo := repository.NewRepository(cfg, gateway.New(cfg, store, rec, rec))
	s := seed.New(repo, store, cfg.Seed.Password, cfg.Seed.EmailDomain)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	defer func() {
		if err := s.Close(ctx); err != nil {
			slog.Error("세션을 지우지 못했습니다", slog.String("error", err.Error()))
		}
	}()

	if n <= 0 {
		slog.Error("개수는 1 이상이어야 합니다")
		return
	}

	switch op {
	case 0:
		slog.Error("작업을 지정하지 않았습니다")
	case 1:
		emails, err := s.Employers(ctx, n)
		if err != nil {
			slog.Error("사장님을 만들지 못했습니다", slog.String("error", err.Error()))
		}
		slog.Info("사장님을 만들었습니다", slog.Int("count", len(emails)), slog.Any("emails", emails))
	case 2:
		if email == "" {
			slog.Error("-email 이 필요합니다")
			return
		}
		created, err := s.Notices(ctx, email, n)
		if err != nil {
			slog.Error("공고를 올리지 못했습니다", slog.String("error", err.Error()))
		}
		slog.Info("공고를 올렸습니다", slog.Int("count", created))
	case 3:
		created, err := s.Employees(ctx, n)
		if err != nil {
			slog.Error("알바님을 만들지 못했습니다", slog.String("error", err.Error()))
		}
		slog.Info("알바님을 만들었습니다", slog.Int("count", created))
	default:
		slog.Error("지원하지 않는 작업입니다")
	}
}
