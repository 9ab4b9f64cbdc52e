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

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/mkuznetsov/product_catalog/internal/config"
	"github.com/mkuznetsov/product_catalog/internal/es"
	"github.com/mkuznetsov/product_catalog/internal/handlers"
	"github.com/mkuznetsov/product_catalog/internal/logging"
	loggingmw "github.com/mkuznetsov/product_catalog/internal/middleware/logging"
	"github.com/mkuznetsov/product_catalog/internal/middleware/ratelimit"
	"github.com/mkuznetsov/product_catalog/internal/mykafka"
	httpserver "github.com/mkuznetsov/product_catalog/internal/transport/http"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	config.MustNonEmpty(configuration.JWT_SECRET, "JWT_SECRET")
	jwtSecret := []byte(configuration.JWT_SECRET)

	logger := logging.New(configuration.LOG_LEVEL)

	db, err := config.InitDB(configuration)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	var prod *mykafka.Producer
	if configuration.KAFKA_ADDRESS != "" {
		prod = mykafka.NewProducer([]string{configuration.KAFKA_ADDRESS})
	}

	productHandler := &handlers.ProductHandler{DB: db, Producer: prod, Index: "products"}
	searchHandler := &handlers.SearchHandler{Index: "products"}
	if configuration.ES_URL != "" {
		client, err := es.NewClient(configuration)
		if err != nil {
			log.Fatal(err)
		}
		productHandler.ES = client
		searchHandler.ES = client
	}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{configuration.CORS_ORIGIN},
		AllowCredentials: true,
	}))
	e.Use(ratelimit.New(100, 15*time.Minute).Middleware())

	deps := httpserver.Deps{
		DB:             db,
		AuthHandler:    &handlers.AuthHandler{DB: db, JWTSecret: jwtSecret, Producer: prod},
		ProductHandler: productHandler,
		SearchHandler:  searchHandler,
		JWTSecret:      jwtSecret,
	}

	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         ":" + configuration.PORT,
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

	if err := prod.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	log.Println("shutdown complete")
}
