// Package cli implementa o insightsctl, ferramenta de operação que usa os
// mesmos casos de uso da API sem passar pelo HTTP.
package cli

import (
	"context"
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/vfg2006/fb-insights-api/internal/config"
	"github.com/vfg2006/fb-insights-api/internal/usecases/insighting"
)

const appName = "insightsctl"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Migrator aplica o schema do banco
type Migrator interface {
	Migrate(ctx context.Context) error
}

// Services são as dependências montadas a partir da configuração
type Services struct {
	Insighter insighting.Insighter
	Migrator  Migrator
	Close     func() error
}

// ServiceFactory monta os serviços; os testes injetam mocks por aqui
type ServiceFactory func(ctx context.Context, cfg *config.Config) (*Services, error)

type GlobalFlags struct {
	LogLevel string
}

func NewRootCommand(loadConfig func() (*config.Config, error), factory ServiceFactory) *cobra.Command {
	flags := &GlobalFlags{}

	cmd := &cobra.Command{
		Use:           appName,
		Short:         "Operação do pipeline de insights do Facebook",
		Long:          "insightsctl aplica o schema, busca insights no Meta e consulta os snapshots gravados.",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if flags.LogLevel == "" {
				return nil
			}
			level, err := logrus.ParseLevel(flags.LogLevel)
			if err != nil {
				return fmt.Errorf("--log-level inválido %q: %w", flags.LogLevel, err)
			}
			logrus.SetLevel(level)
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&flags.LogLevel, "log-level", "", "Nível de log (debug, info, warn, error)")

	run := runner{loadConfig: loadConfig, factory: factory}

	cmd.AddCommand(newMigrateCommand(run))
	cmd.AddCommand(newFetchCommand(run))
	cmd.AddCommand(newQueryCommand(run))
	cmd.AddCommand(newSummaryCommand(run))

	return cmd
}

// runner carrega a configuração e os serviços para cada subcomando
type runner struct {
	loadConfig func() (*config.Config, error)
	factory    ServiceFactory
}

func (r runner) with(ctx context.Context, fn func(*Services) error) error {
	cfg, err := r.loadConfig()
	if err != nil {
		return fmt.Errorf("erro ao carregar configuração: %w", err)
	}

	services, err := r.factory(ctx, cfg)
	if err != nil {
		return err
	}
	if services.Close != nil {
		defer func() {
			if err := services.Close(); err != nil {
				logrus.WithError(err).Warn("insightsctl: erro ao liberar recursos")
			}
		}()
	}

	return fn(services)
}

func printJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
