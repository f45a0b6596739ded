package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"storefront/internal/apiclient"
	"storefront/internal/app"
	"storefront/internal/cart"
	"storefront/internal/catalog"
	"storefront/internal/events"
	handlersCart "storefront/internal/handlers/shopping_cart"
	handlersCatalog "storefront/internal/handlers/catalog"
	handlersCheckout "storefront/internal/handlers/checkout"
	"storefront/internal/middleware"
	"storefront/internal/order"
	"storefront/internal/search"
	"storefront/internal/storage"
)

func main() {
	// init logger
	zapLogger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}

	logger := zapLogger.Sugar()
	defer func() {
		if err := zapLogger.Sync(); err != nil {
			logger.Warnf("error to sync logger: %v", err)
		}
	}()

	// парсим конфиг
	c, err := app.NewConfig(app.ConfigPath())
	if err != nil {
		logger.Fatalf("error to parsing config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// init storage
	kv, closeKV, err := newKV(ctx, c.CfgStorage, logger)
	if err != nil {
		logger.Fatalf("error to storage start: %v", err)
	}
	defer closeKV()

	// init cart
	durability := cart.NewStorageAdapter(kv, cart.DefaultStorageKey, c.CfgStorage.Timeout, logger)
	store := cart.NewStore(ctx, durability, logger)
	middleware.ObserveCart(store.Snapshot())
	store.Subscribe(middleware.CartObserver)

	// init events
	producer, err := newProducer(c.CfgEvents, logger)
	if err != nil {
		logger.Fatalf("error to events producer start: %v", err)
	}
	defer producer.Close()

	notifier := events.NewNotifier(producer, logger, c.CfgEvents.QueueSize)
	store.Subscribe(notifier.Observe)
	notifierDone := make(chan struct{})
	go func() {
		defer close(notifierDone)
		notifier.Run(ctx)
	}()

	// init remote API
	api := apiclient.NewClient(c.APIURL, c.APITimeout, logger)
	catalogClient := catalog.NewAPIClient(api, logger)
	submitter := order.NewAPISubmitter(api, logger)
	lastOrders := order.NewLastOrderRepository(kv, logger)
	checkout := order.NewService(store, submitter, lastOrders, notifier, logger)

	// init search
	var searcher search.Searcher
	if len(c.CfgES.Addresses) > 0 {
		es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: c.CfgES.Addresses})
		if err != nil {
			logger.Errorf("error to elasticsearch client: %v", err)
		} else {
			searcher = search.NewService(es, logger, c.CfgES.Index)
		}
	}

	// init router
	r := mux.NewRouter()
	r.Use(middleware.MetricsMiddleware)

	// init handlers
	cartHandlers := handlersCart.NewShoppingCartHandler(logger, store, catalogClient)
	catalogHandlers := handlersCatalog.NewCatalogHandler(logger, catalogClient, searcher)
	checkoutHandlers := handlersCheckout.NewCheckoutHandler(logger, checkout)

	apiRouter := r.PathPrefix("/api").Subrouter()

	apiRouter.HandleFunc("/cart", cartHandlers.GetCart).Methods("GET")
	apiRouter.HandleFunc("/cart", cartHandlers.Clear).Methods("DELETE")
	apiRouter.HandleFunc("/cart/items", cartHandlers.AddItem).Methods("POST")
	apiRouter.HandleFunc("/cart/items/{productID}", cartHandlers.RemoveItem).Methods("DELETE")
	apiRouter.HandleFunc("/cart/items/{productID}", cartHandlers.SetQuantity).Methods("PUT")
	apiRouter.HandleFunc("/cart/items/{productID}", cartHandlers.AdjustQuantity).Methods("PATCH")

	apiRouter.HandleFunc("/products", catalogHandlers.ListProducts).Methods("GET")
	apiRouter.HandleFunc("/products/search", catalogHandlers.Search).Methods("GET")
	apiRouter.HandleFunc("/products/{id}/cart", cartHandlers.AddProduct).Methods("POST")
	apiRouter.HandleFunc("/categories", catalogHandlers.ListCategories).Methods("GET")

	apiRouter.HandleFunc("/checkout", checkoutHandlers.Checkout).Methods("POST")
	apiRouter.HandleFunc("/orders/last", checkoutHandlers.LastOrder).Methods("GET")

	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	logger.Infow("starting server",
		"type", "START",
		"addr", c.ServerPort,
		"storage", c.CfgStorage.Backend,
		"events", c.CfgEvents.Backend,
		"max_conns", c.MaxConns,
	)

	ln, err := app.NewListener(c.ServerPort, c.MaxConns)
	if err != nil {
		logger.Fatalf("can't listen on %s: %v", c.ServerPort, err)
	}

	srv := &http.Server{
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Errorf("error to shutdown server: %v", err)
		}
	}()

	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatalf("can't start server: %v", err)
	}

	<-notifierDone
	logger.Infow("server stopped")
}

// newKV хранилище корзины и последнего заказа по настройке backend
func newKV(ctx context.Context, c app.ConfigStorage, logger *zap.SugaredLogger) (storage.KV, func(), error) {
	switch c.Backend {
	case app.StorageRedis:
		redisClient := redis.NewClient(&redis.Options{
			Addr:     c.RedisAddr,
			Password: c.RedisPassword,
			DB:       c.RedisDB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warnf("Failed to get response to redis ping: %v", err)
		}
		return storage.NewRedisStorage(redisClient, logger, c.RedisPrefix), func() { _ = redisClient.Close() }, nil

	case app.StoragePostgres:
		db, err := sql.Open("postgres", c.CfgDB.DSN())
		if err != nil {
			return nil, nil, err
		}
		db.SetMaxOpenConns(c.MaxOpenConns)
		if err := db.Ping(); err != nil {
			logger.Infof("Failed to get response to ping: %v", err)
		}
		return newSQLKV(ctx, db, storage.DialectPostgres, logger)

	default:
		if err := os.MkdirAll(filepath.Dir(c.SQLitePath), 0o755); err != nil {
			return nil, nil, err
		}
		db, err := storage.OpenSQLite(c.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return newSQLKV(ctx, db, storage.DialectSQLite, logger)
	}
}

func newSQLKV(ctx context.Context, db *sql.DB, dialect storage.Dialect, logger *zap.SugaredLogger) (storage.KV, func(), error) {
	kv, err := storage.NewSQLStorage(db, dialect, logger)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	if err := kv.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return kv, func() { _ = db.Close() }, nil
}

// newProducer брокер аналитических событий, "none" - события никуда не уходят
func newProducer(c app.ConfigEvents, logger *zap.SugaredLogger) (events.EventProducer, error) {
	switch c.Backend {
	case app.EventsKafka:
		return events.NewKafkaProducer(c.KafkaBrokers, c.KafkaTopic, logger), nil

	case app.EventsRabbitMQ:
		conn, err := amqp.Dial(c.RabbitURL)
		if err != nil {
			return nil, err
		}
		producer, err := events.NewRabbitProducer(conn, c.RabbitQueue, logger)
		if err != nil {
			_ = conn.Close()
			return nil, err
		}
		return producer, nil

	default:
		return events.NopProducer{}, nil
	}
}
