package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/yoockh/languageclub/config"
	"github.com/yoockh/languageclub/internal/api/handlers"
	"github.com/yoockh/languageclub/internal/api/middleware"
	"github.com/yoockh/languageclub/internal/api/routes"
	"github.com/yoockh/languageclub/internal/auth"
	"github.com/yoockh/languageclub/internal/cache"
	"github.com/yoockh/languageclub/internal/logger"
	"github.com/yoockh/languageclub/internal/providers/payment"
	"github.com/yoockh/languageclub/internal/repositories/memory"
	mongorepo "github.com/yoockh/languageclub/internal/repositories/mongo"
	"github.com/yoockh/languageclub/internal/services"
)

var inMemory bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

func init() {
	serveCmd.Flags().BoolVar(&inMemory, "in-memory", false, "use a process-local store instead of MongoDB (local development)")
}

type repos struct {
	users    mongorepo.UserRepository
	classes  mongorepo.ClassRepository
	cart     mongorepo.CartRepository
	payments mongorepo.PaymentRepository
	ping     func(ctx context.Context) error
}

func serve() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.New(cfg.LogLevel)
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var r repos
	if inMemory {
		store := memory.New()
		r = repos{store.Users(), store.Classes(), store.Cart(), store.Payments(), store.Ping}
		log.Warn("serving from an in-memory store; data is lost on exit")
	} else {
		uri, err := cfg.MongoConnectionURI()
		if err != nil {
			return err
		}
		if err := config.ValidateMongoURI(uri); err != nil {
			return err
		}

		store := mongorepo.NewLazy()
		go connectMongo(ctx, cfg, store, log)
		defer func() {
			if client := store.Client(); client != nil {
				dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = client.Disconnect(dctx)
			}
		}()
		r = repos{store.Users(), store.Classes(), store.Cart(), store.Payments(), store.Ping}
	}

	c := newCache(ctx, cfg, log)

	processor, err := payment.New(payment.Settings{
		Provider:           cfg.PaymentProvider,
		StripeSecretKey:    cfg.StripeSecretKey,
		MidtransServerKey:  cfg.MidtransServerKey,
		MidtransProduction: cfg.MidtransProduction,
	})
	if err != nil {
		// intent creation answers 503 until a processor is configured
		log.WithError(err).Warn("payment processor disabled")
	}

	userSvc := services.NewUserService(r.users, c, cfg.CacheTTL)
	classSvc := services.NewClassService(r.classes, c, cfg.CacheTTL)
	cartSvc := services.NewCartService(r.cart)
	paymentSvc := services.NewPaymentService(r.payments, processor, cfg.PaymentCurrency)

	engine := routes.NewEngine(log, routes.Deps{
		Auth:         handlers.NewAuthHandler(auth.NewIssuer(cfg.AccessSecret)),
		Users:        handlers.NewUserHandler(userSvc),
		Classes:      handlers.NewClassHandler(classSvc),
		Cart:         handlers.NewCartHandler(cartSvc),
		Payments:     handlers.NewPaymentHandler(paymentSvc),
		Verifier:     auth.NewVerifier(cfg.AccessSecret),
		Roles:        r.users,
		TokenLimiter: middleware.NewRateLimiter(ctx, rate.Limit(cfg.TokenRateLimit), cfg.TokenRateBurst),
		Health:       r.ping,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("port", cfg.Port).Info("Language Club Server is Running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(sctx)
}

// connectMongo retries until the client is built, then publishes it to store.
// The HTTP listener is already up; until then store-backed routes answer 503.
func connectMongo(ctx context.Context, cfg *config.Config, store *mongorepo.Lazy, log *logrus.Logger) {
	backoff := time.Second
	for {
		client, err := config.NewMongo(ctx, cfg)
		if client != nil {
			if err != nil {
				// the driver keeps reconnecting in the background
				log.WithError(err).Error("mongo ping failed, continuing")
			} else {
				log.Info("mongo connected")
			}
			db := client.Database(cfg.MongoDB)
			if err := config.EnsureMongoIndexes(ctx, db); err != nil {
				log.WithError(err).Warn("ensure indexes failed")
			}
			store.Set(client, cfg.MongoDB)
			return
		}

		if errors.Is(err, config.ErrInvalidMongoURI) {
			log.WithError(err).Error("mongo configuration rejected, giving up")
			return
		}
		log.WithError(err).WithField("retry_in", backoff.String()).Error("mongo connect failed")

		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
		backoff = min(backoff*2, 30*time.Second)
	}
}

// newCache falls back to cache.Nop when Redis is unset or unreachable.
func newCache(ctx context.Context, cfg *config.Config, log *logrus.Logger) cache.Cache {
	rdb, err := config.NewRedis(ctx, cfg)
	if rdb == nil && err == nil {
		log.Info("redis not configured, catalog caching disabled")
		return cache.Nop{}
	}
	if err != nil {
		log.WithError(err).Warn("redis unavailable, catalog caching disabled")
		closeRedis(rdb)
		return cache.Nop{}
	}
	go func() {
		<-ctx.Done()
		closeRedis(rdb)
	}()
	return cache.NewRedisCache(rdb)
}

func closeRedis(rdb *redis.Client) {
	if rdb != nil {
		_ = rdb.Close()
	}
}
