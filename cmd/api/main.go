// Executável principal da API: carrega a configuração, inicializa dependências e sobe o servidor HTTP.
package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/marcelojr/eleicoes-diretoria/internal/app/apuracao"
	"github.com/marcelojr/eleicoes-diretoria/internal/app/cargos"
	"github.com/marcelojr/eleicoes-diretoria/internal/app/eleicoes"
	"github.com/marcelojr/eleicoes-diretoria/internal/app/httpapi"
	"github.com/marcelojr/eleicoes-diretoria/internal/app/membros"
	"github.com/marcelojr/eleicoes-diretoria/internal/app/votacao"
	"github.com/marcelojr/eleicoes-diretoria/internal/domain"
	"github.com/marcelojr/eleicoes-diretoria/internal/platform/antifraude"
	"github.com/marcelojr/eleicoes-diretoria/internal/platform/auth"
	"github.com/marcelojr/eleicoes-diretoria/internal/platform/clock"
	"github.com/marcelojr/eleicoes-diretoria/internal/platform/config"
	"github.com/marcelojr/eleicoes-diretoria/internal/platform/health"
	"github.com/marcelojr/eleicoes-diretoria/internal/platform/ids"
	"github.com/marcelojr/eleicoes-diretoria/internal/platform/logger"
	"github.com/marcelojr/eleicoes-diretoria/internal/platform/migrations"
	postgresstorage "github.com/marcelojr/eleicoes-diretoria/internal/platform/storage/postgres"
	redisstorage "github.com/marcelojr/eleicoes-diretoria/internal/platform/storage/redis"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("configuracao invalida", "err", err)
	}

	// Mantemos a conexão compartilhada em todo o ciclo para reaproveitar pool e checar readiness.
	db, err := postgresstorage.Open(ctx, cfg.PostgresDSN())
	if err != nil {
		logger.Fatal("falha ao conectar no postgres", "err", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("falha ao resgatar sql.DB", "err", err)
	}
	defer sqlDB.Close()

	if cfg.AutoMigrate {
		// Rodamos migrations automáticas apenas se habilitado para evitar surpresas em produção.
		if err := migrations.Run(db); err != nil {
			logger.Fatal("falha na migracao automatica", "err", err)
		}
	}

	// Redis serializa as transições de cargo e limita a cadência de votos.
	redisClient, err := redisstorage.NewClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		logger.Fatal("falha ao conectar no redis", "err", err)
	}
	defer redisClient.Close()

	dbEleicao := postgresstorage.NewEleicaoRepository(db)
	dbCargo := postgresstorage.NewCargoRepository(db)
	dbCargoEleicao := postgresstorage.NewCargoEleicaoRepository(db)
	dbMembro := postgresstorage.NewMembroRepository(db)
	dbCandidato := postgresstorage.NewCandidatoRepository(db)
	dbPresenca := postgresstorage.NewPresencaRepository(db)
	dbVoto := postgresstorage.NewVotoRepository(db)
	dbVencedor := postgresstorage.NewVencedorRepository(db)
	dbVerificacao := postgresstorage.NewVerificacaoRepository(db)

	trava := redisstorage.NewTrava(redisClient, cfg.TravaKeyPrefix, time.Duration(cfg.TravaTTLSegundos)*time.Second)
	clockSystem := clock.NewSystemClock()
	idGen := ids.NewGenerator()

	var antifraudeSvc domain.Antifraude = antifraude.NewNoop()
	if cfg.RateLimitEnabled {
		janela := time.Duration(cfg.RateLimitJanelaSeg) * time.Second
		antifraudeSvc = antifraude.NewRedisRateLimiter(redisClient, cfg.RateLimitMaxVotos, janela, cfg.RateLimitKeyPrefix)
	}

	eleicoesSvc := eleicoes.NewService(dbEleicao, dbCargo, dbCargoEleicao, dbMembro, dbPresenca, dbVencedor, trava, clockSystem, idGen)
	cargosSvc := cargos.NewService(dbEleicao, dbCargoEleicao, dbCandidato, dbVencedor, trava, clockSystem, idGen)
	votacaoSvc := votacao.NewService(dbCargoEleicao, dbCandidato, dbPresenca, dbVoto, antifraudeSvc, clockSystem, idGen, logger.L())
	apuracaoSvc := apuracao.NewService(dbEleicao, dbCargoEleicao, dbPresenca, dbVoto, dbVencedor, dbVerificacao, clockSystem, idGen)
	membrosSvc := membros.NewService(dbMembro, logger.L())

	authMw := auth.New(cfg.JWTSecret)

	mux := http.NewServeMux()
	checker := health.NewChecker(sqlDB, redisClient)

	// HTTP expõe API, health check e métricas que o Prometheus coleta.
	api := httpapi.New(eleicoesSvc, cargosSvc, votacaoSvc, apuracaoSvc, membrosSvc, dbCargo, authMw, logger.L())
	api.Register(mux)
	mux.HandleFunc("/readyz", checker.ReadyHandler())
	mux.Handle("/metrics", promhttp.Handler())

	logger.Info("api ouvindo", "addr", cfg.HTTPAddress)
	if err := http.ListenAndServe(cfg.HTTPAddress, mux); err != nil {
		logger.Fatal("erro no servidor", "err", err)
	}
}
