package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/meta-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/meta-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/meta-dashboard-api/internal/api"
	"github.com/vfg2006/meta-dashboard-api/internal/config"
	"github.com/vfg2006/meta-dashboard-api/internal/scheduler"
	"github.com/vfg2006/meta-dashboard-api/internal/usecases/authenticating"
	"github.com/vfg2006/meta-dashboard-api/internal/usecases/connecting"
	"github.com/vfg2006/meta-dashboard-api/internal/usecases/syncing"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	userRepo := repository.NewUserRepository(pgConn)
	connectionRepo := repository.NewMetaConnectionRepository(pgConn)
	runRepo := repository.NewSyncRunRepository(pgConn)
	logRepo := repository.NewSyncLogRepository(pgConn)
	adAccountRepo := repository.NewAdAccountRepository(pgConn)
	hierarchyRepo := repository.NewHierarchyRepository(pgConn)
	insightRepo := repository.NewInsightRepository(pgConn)
	instagramRepo := repository.NewInstagramRepository(pgConn)

	authenticator := authenticating.NewService(userRepo, cfg)

	connector := connecting.NewService(cfg, connectionRepo)

	syncer := syncing.NewService(
		cfg,
		connectionRepo,
		runRepo,
		logRepo,
		adAccountRepo,
		hierarchyRepo,
		insightRepo,
		instagramRepo,
	)

	metaSyncService := scheduler.NewMetaSyncService(connectionRepo, runRepo, syncer, cfg)

	if err := metaSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de sincronização com a Meta")
	} else {
		logrus.Info("Agendador de sincronização com a Meta iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		authenticator,
		connector,
		syncer,
		runRepo,
		logRepo,
		metaSyncService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
