package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/DRSN-tech/cafe-kiosk/internal/cfg"
	v1Grpc "github.com/DRSN-tech/cafe-kiosk/internal/delivery/v1/grpc"
	v1Http "github.com/DRSN-tech/cafe-kiosk/internal/delivery/v1/http"
	"github.com/DRSN-tech/cafe-kiosk/internal/infrastructure/kafka"
	"github.com/DRSN-tech/cafe-kiosk/internal/infrastructure/mail"
	minioInfra "github.com/DRSN-tech/cafe-kiosk/internal/infrastructure/minio"
	s3Repo "github.com/DRSN-tech/cafe-kiosk/internal/repository/minio"
	"github.com/DRSN-tech/cafe-kiosk/internal/repository/pgdb"
	pgdbConv "github.com/DRSN-tech/cafe-kiosk/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/cafe-kiosk/internal/repository/redis"
	redisConv "github.com/DRSN-tech/cafe-kiosk/internal/repository/redis/converter"
	"github.com/DRSN-tech/cafe-kiosk/internal/usecase"
	"github.com/DRSN-tech/cafe-kiosk/pkg/clients"
	"github.com/DRSN-tech/cafe-kiosk/pkg/closer"
	"github.com/DRSN-tech/cafe-kiosk/pkg/e"
	"github.com/DRSN-tech/cafe-kiosk/pkg/logger"
	"github.com/DRSN-tech/cafe-kiosk/pkg/metrics"
	"github.com/DRSN-tech/cafe-kiosk/pkg/postgres"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
)

const (
	metricsSubsystem = "api"
	shutdownTimeout  = 10 * time.Second
	initTimeout      = 10 * time.Second
	forcedTimeout    = 2 * time.Second
)

// App владеет всеми зависимостями сервиса и порядком их остановки.
type App struct {
	cfg    *config.Config
	logger logger.Logger
	closer *closer.Closer

	httpSrv *v1Http.Server
	grpcSrv *v1Grpc.GRPCServer
	worker  *kafka.OutboxWorker

	// workerCtx отменяется при остановке; от него зависят фоновые задачи.
	workerCtx    context.Context
	workerCancel context.CancelFunc
}

// NewApp поднимает подключения и собирает граф зависимостей.
// Всё, что требует закрытия, регистрируется в closer сразу после создания.
func NewApp(cfg *config.Config, logger logger.Logger) (*App, error) {
	a := &App{
		cfg:    cfg,
		logger: logger,
		closer: closer.NewCloser(forcedTimeout),
	}
	a.workerCtx, a.workerCancel = context.WithCancel(context.Background())

	if err := a.init(); err != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if closeErr := a.closer.Close(ctx); closeErr != nil {
			logger.Warnf("%s", closeErr.Error())
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return a, nil
}

func (a *App) init() error {
	db, err := initPGDB(a.logger, a.cfg)
	if err != nil {
		return err
	}
	a.closer.Add("postgres", func(context.Context) error {
		db.Close()
		return nil
	})

	trManager := manager.Must(trmpgx.NewDefaultFactory(db.Pool))

	productRepo := pgdb.NewProductRepo(db.Pool, pgdbConv.NewProductConverter())
	orderRepo := pgdb.NewOrderRepo(db.Pool, pgdbConv.NewOrderConverter())
	historyRepo := pgdb.NewMailSendHistoryRepo(db.Pool, pgdbConv.NewMailSendHistoryConverter())
	outboxRepo := pgdb.NewOutboxEventRepo(db.Pool, pgdbConv.NewOutboxEventConverter(), a.cfg.Kafka.OutboxProcessingTimeout)

	redisClient := clients.NewRedisClient(a.cfg.Redis)
	redisCtx, redisCancel := context.WithTimeout(context.Background(), initTimeout)
	defer redisCancel()
	if err := redisClient.Ping(redisCtx); err != nil {
		return e.Wrap("failed to connect to redis", err)
	}
	a.closer.Add("redis", redisClient.Close)
	cacheRepo := redis.NewCacheRepo(redisClient, redisConv.NewProductInfoConverter(), a.cfg.Redis, a.logger)

	// Закрытие идёт в обратном порядке: фоновые задачи отменяются только после ожидания очистки MinIO.
	a.closer.Add("background tasks", func(context.Context) error {
		a.workerCancel()
		return nil
	})

	minioClient, err := clients.NewMinIOClient(a.cfg.Minio)
	if err != nil {
		return e.Wrap("failed to initialize minio client", err)
	}
	minioCtx, minioCancel := context.WithTimeout(context.Background(), initTimeout)
	defer minioCancel()
	if err := clients.EnsureBucket(minioCtx, minioClient, a.cfg.Minio.BucketName); err != nil {
		return e.Wrap("failed to initialize minio bucket", err)
	}
	reportsInfra := minioInfra.NewMinioInfrastructure(s3Repo.NewReportRepo(minioClient, a.cfg.Minio), a.cfg.Minio, a.logger, a.workerCtx)
	a.closer.Add("minio cleanup", func(ctx context.Context) error {
		if err := reportsInfra.WaitForCleanup(ctx); err != nil {
			a.logger.Warnf("MinIO cleanup did not finish before shutdown, some reports may remain: %v", err)
		}
		return nil
	})

	producer, err := kafka.NewProducer(a.logger, a.cfg.Kafka)
	if err != nil {
		return e.Wrap("failed to initialize kafka producer", err)
	}
	a.closer.Add("kafka producer", producer.Close)
	if err := producer.EnsureTopic(initTimeout); err != nil {
		a.logger.Warnf("failed to ensure kafka topic %s: %v", a.cfg.Kafka.Topic, err)
	}

	productUC := usecase.NewProductUC(
		productRepo,
		trManager,
		cacheRepo,
		a.logger,
		a.cfg.Catalog.NumberMaxRetries,
		a.cfg.Catalog.NumberRetryDelay,
	)
	orderUC := usecase.NewOrderUC(orderRepo, productRepo, outboxRepo, kafka.NewEventEncoder(), trManager, a.logger)
	mailUC := usecase.NewMailUC(mail.NewLogMailClient(a.logger), historyRepo, a.logger)
	statsUC := usecase.NewOrderStatisticsUC(orderRepo, mailUC, reportsInfra, a.cfg.Mail.FromEmail, a.logger)

	a.worker = kafka.NewOutboxWorker(outboxRepo, a.logger, producer, db.Dsn, a.cfg.Kafka.OutboxBatchSize)
	a.closer.Add("outbox worker", a.worker.Stop)

	a.grpcSrv = v1Grpc.NewGRPCServer(a.cfg.Grpc, a.logger)
	a.grpcSrv.RegisterServices(productUC)
	a.closer.Add("grpc server", a.grpcSrv.Stop)

	r := chi.NewRouter()
	router := v1Http.NewRouter(r, a.logger, metrics.NewServerMetrics(metricsSubsystem, nil), a.cfg.Http.SwaggerURL)
	router.Init(productUC, orderUC, statsUC, mailUC, db, time.Local)

	a.httpSrv = v1Http.NewServer(r, a.cfg.Http)
	a.closer.Add("http server", a.httpSrv.Stop)

	return nil
}

// Run запускает серверы и outbox-воркер и блокируется до сигнала или фатальной ошибки.
func (a *App) Run() error {
	a.worker.Start(a.workerCtx)

	errCh := make(chan error, 2)

	go func() {
		a.logger.Infof("gRPC server starting on %s:%s", a.cfg.Grpc.NetworkMode, a.cfg.Grpc.Port)
		if err := a.grpcSrv.Start(); err != nil {
			errCh <- e.Wrap("gRPC server failed", err)
		}
	}()

	go func() {
		a.logger.Infof("HTTP server started on port %s", a.cfg.Http.Port)
		if err := a.httpSrv.Run(); err != nil {
			errCh <- e.Wrap("HTTP server failed", err)
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	var appErr error
	select {
	case appErr = <-errCh:
		a.logger.Errorf(appErr, "server fatal error")
	case <-shutdown:
		a.logger.Infof("Received shutdown signal, stopping gracefully...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.closer.Close(ctx); err != nil {
		a.logger.Errorf(err, "shutdown finished with errors")
		if appErr == nil {
			appErr = err
		}
	}

	a.logger.Infof("Application shutdown complete")
	return appErr
}

func initPGDB(logger logger.Logger, cfg *config.Config) (*postgres.PgDatabase, error) {
	db, err := postgres.Connect(cfg.Db)
	if err != nil {
		logger.Errorf(err, "failed to connect to database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.RunMigrations(logger); err != nil {
		logger.Errorf(err, "failed to run migrations")
		db.Close()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.Ping(); err != nil {
		logger.Errorf(err, "failed to ping database")
		db.Close()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return db, nil
}
