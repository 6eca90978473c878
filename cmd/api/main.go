package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/graphuraprojects/farming-sub001/internal/repository"
	"github.com/graphuraprojects/farming-sub001/internal/service"
	httpx "github.com/graphuraprojects/farming-sub001/internal/transport/http"
	"github.com/graphuraprojects/farming-sub001/pkg/auth"
	"github.com/graphuraprojects/farming-sub001/pkg/config"
	"github.com/graphuraprojects/farming-sub001/pkg/db"
	"github.com/graphuraprojects/farming-sub001/pkg/mq"
	"github.com/graphuraprojects/farming-sub001/pkg/obs"
)

func must[T any](v T, err error) T {
	if err != nil {
		log.Fatal(err)
	}
	return v
}

func main() {
	_ = godotenv.Load()
	cfg := must(config.Load())
	auth.SetSecret(cfg.JWTSecret)

	shutdownTracer := obs.InitTracer("agrirent-api")
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracer(ctx)
	}()

	// DB
	gdb := db.Open(cfg.PGDSN)
	users := repository.NewUserRepo(gdb)
	machines := repository.NewMachineRepo(gdb)
	bookings := repository.NewBookingRepo(gdb)
	must(0, users.Migrate())
	must(0, machines.Migrate())
	must(0, bookings.Migrate())

	// Redis (refresh tokens)
	rdb := repository.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	defer rdb.Close()
	tokens := repository.NewTokenStore(rdb, time.Duration(cfg.RefreshExpireHr)*time.Hour)

	// RabbitMQ (booking events)
	pub := must(mq.NewPublisher(cfg.RabbitURL, cfg.BookingExchange))
	defer pub.Close()

	svcs := httpx.Services{
		Auth: service.NewAuthSvc(users, tokens,
			time.Duration(cfg.JWTExpireMin)*time.Minute,
			time.Duration(cfg.RefreshExpireHr)*time.Hour),
		Users:    service.NewUserSvc(users),
		Machines: service.NewMachineSvc(machines),
		Bookings: service.NewBookingSvc(bookings, machines, pub),
	}

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: httpx.NewRouter(svcs),
	}
	go func() {
		log.Println("[api] listening on", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	// graceful shutdown
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("[api] shutdown: %v", err)
	}
	log.Println("[api] stopped")
}
