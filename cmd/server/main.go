package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"storefront/internal/cache"
	"storefront/internal/config"
	"storefront/internal/es"
	"storefront/internal/events"
	"storefront/internal/httpserver"
	"storefront/internal/logging"
	"storefront/internal/mykafka"
	"storefront/internal/repo"
	"storefront/internal/service"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LOG_LEVEL)

	db, err := config.InitDB(configuration)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	store := repo.New(db)
	bus := events.NewBus()

	var producer *mykafka.Producer
	if configuration.KAFKA_ADDRESS != "" {
		producer = mykafka.NewProducer([]string{configuration.KAFKA_ADDRESS})
		bus.SubscribeOrderCreated(func(ctx context.Context, ev events.OrderCreated) error {
			return producer.PublishEvent(ctx, mykafka.TopicOrderEvents, fmt.Sprint(ev.OrderID), ev)
		})
	} else {
		logger.Warn("kafka disabled, order events stay local")
	}

	deps := &httpserver.Deps{
		Auth: &httpserver.AuthHTTP{Svc: &service.AuthService{
			Store:         store,
			JWTSecret:     []byte(configuration.JWT_SECRET),
			RefreshSecret: []byte(configuration.REFRESH_SECRET),
		}},
		Catalog:   &httpserver.CatalogHTTP{Svc: &service.CatalogService{Store: store}},
		Cart:      &httpserver.CartHTTP{Svc: &service.CartService{Store: store}},
		Order:     &httpserver.OrderHTTP{Svc: &service.OrderService{Store: store, Bus: bus}},
		Customer:  &httpserver.CustomerHTTP{Svc: &service.CustomerService{Store: store}},
		JWTSecret: []byte(configuration.JWT_SECRET),
	}

	if producer != nil {
		deps.Notify = &httpserver.NotifyHTTP{Producer: producer}
	}

	if configuration.ES_URL != "" {
		esClient, err := es.NewClient(configuration)
		if err != nil {
			log.Fatalf("es init error: %v", err)
		}
		deps.Search = &httpserver.SearchHTTP{ES: esClient, Index: "products"}
	} else {
		logger.Warn("elasticsearch disabled, /store/search not registered")
	}

	if configuration.REDIS_ADDR != "" {
		rdb, err := cache.NewRedis(configuration.REDIS_ADDR, configuration.REDIS_PASSWORD)
		if err != nil {
			log.Fatalf("redis init error: %v", err)
		}
		defer rdb.Close()
		deps.ProductCache = cache.ResponseCache(rdb, configuration.CACHE_TTL)
	} else {
		logger.Warn("redis disabled, product list responses are not cached")
	}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := logging.IntoContext(c.Request().Context(), logger)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	})

	httpserver.Register(e, deps)

	srv := &http.Server{
		Addr:         configuration.HTTP_ADDR,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	} else {
		log.Printf("db() error: %v", err)
	}

	if producer != nil {
		if err := producer.Close(); err != nil {
			log.Printf("kafka close error: %v", err)
		}
	}

	log.Println("shutdown complete")
}
