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

	"github.com/redis/go-redis/v9"

	"github.com/kartikmehta18/sudisa-farms-harvest-cart/internal/cart"
	"github.com/kartikmehta18/sudisa-farms-harvest-cart/internal/catalog"
	"github.com/kartikmehta18/sudisa-farms-harvest-cart/internal/checkout"
	h "github.com/kartikmehta18/sudisa-farms-harvest-cart/internal/http"
	"github.com/kartikmehta18/sudisa-farms-harvest-cart/internal/profile"
	"github.com/kartikmehta18/sudisa-farms-harvest-cart/internal/woo"
	"github.com/kartikmehta18/sudisa-farms-harvest-cart/internal/wp"
)

type Config struct {
	HTTPPort        string
	WooBaseURL      string
	WooAjaxURL      string
	WooKey          string
	WooSecret       string
	WPBaseURL       string
	RedisAddr       string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func loadConfig() *Config {
	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		WooBaseURL:      getEnv("WOO_BASE_URL", "https://sudishafarms.com/wp-json/wc/v3"),
		WooAjaxURL:      getEnv("WOO_AJAX_URL", "https://sudishafarms.com"),
		WooKey:          getEnv("WOO_CONSUMER_KEY", ""),
		WooSecret:       getEnv("WOO_CONSUMER_SECRET", ""),
		WPBaseURL:       getEnv("WP_BASE_URL", "https://sudishafarms.com/wp-json/wp/v2"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	cfg := loadConfig()

	if cfg.WooKey == "" || cfg.WooSecret == "" {
		log.Fatal("WOO_CONSUMER_KEY and WOO_CONSUMER_SECRET are required")
	}

	wooClient := woo.NewClient(woo.Config{
		BaseURL:        cfg.WooBaseURL,
		AjaxURL:        cfg.WooAjaxURL,
		ConsumerKey:    cfg.WooKey,
		ConsumerSecret: cfg.WooSecret,
	})
	wpClient := wp.NewClient(wp.Config{BaseURL: cfg.WPBaseURL})

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer redisClient.Close()

	cartStore := cart.NewStore()
	defer cartStore.Close()

	router := h.NewRouter(h.RouterConfig{
		Catalog:        catalog.NewService(wooClient, wpClient),
		Carts:          cartStore,
		Checkout:       checkout.NewService(wooClient, cartStore),
		Profiles:       profile.NewRedisStore(redisClient),
		RequestTimeout: cfg.RequestTimeout,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("storefront starting on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exited")
}
