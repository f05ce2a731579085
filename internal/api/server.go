package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/fb-insights-api/internal/api/handler"
	"github.com/vfg2006/fb-insights-api/internal/api/handler/router"
	"github.com/vfg2006/fb-insights-api/internal/config"
	"github.com/vfg2006/fb-insights-api/internal/usecases/authenticating"
	"github.com/vfg2006/fb-insights-api/internal/usecases/connecting"
	"github.com/vfg2006/fb-insights-api/internal/usecases/insighting"
	"github.com/vfg2006/fb-insights-api/pkg/middleware"
)

type Server struct {
	httpServer *http.Server
}

// New monta o roteador e a cadeia de middlewares; metaSyncService pode ser nil
func New(
	config *config.Config,
	insightService insighting.Insighter,
	connectService connecting.Connector,
	authenticator authenticating.Authenticator,
	metaSyncService handler.CronJob,
) (*Server, error) {
	cronServices := handler.CronJobServices{
		MetaInsightSyncService: metaSyncService,
	}

	rt := router.New(
		router.WithRoutes(handler.Healthcheck()...),
		router.WithRoutes(handler.Facebook(connectService, config.Server.FrontendURL)...),
		router.WithRoutes(handler.Insights(insightService)...),
		router.WithRoutes(handler.CronJobs(cronServices)...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(config.Server.AllowedOrigins),
		middleware.AuthMiddleware(authenticator),
	}

	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
			Handler:           alice.New(middlewares...).Then(rt),
			ReadHeaderTimeout: 2 * time.Second,
		},
	}

	return srv, nil
}

// Handler expõe a cadeia completa para testes
func (s Server) Handler() http.Handler {
	return s.httpServer.Handler
}

const shutdownTimeout = 15 * time.Second

// Run serve até receber SIGINT/SIGTERM, o contexto ser cancelado ou o
// listener falhar; depois desliga de forma graciosa
func (s Server) Run(ctx context.Context) error {
	serveErr := make(chan error, 1)
	go func() {
		logrus.WithField("address", s.httpServer.Addr).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(signals)

	select {
	case sig := <-signals:
		logrus.WithField("signal", sig.String()).Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		logrus.Info("Contexto de aplicação cancelado")
	case err := <-serveErr:
		if err != nil {
			logrus.WithError(err).Error("Erro durante a execução do servidor")
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logrus.WithField("timeout", shutdownTimeout.String()).Info("Iniciando desligamento gracioso do servidor")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	logrus.Info("Servidor desligado com sucesso")
	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
