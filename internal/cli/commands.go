package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vfg2006/fb-insights-api/internal/domain"
	"github.com/vfg2006/fb-insights-api/internal/usecases/insighting"
	"github.com/vfg2006/fb-insights-api/pkg/utils"
)

type accountFlags struct {
	UserID      int
	AdAccountID string
}

func (f *accountFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.UserID, "user", 0, "ID do usuário dono da credencial")
	cmd.Flags().StringVar(&f.AdAccountID, "account", "", "Ad account ID (act_<número>)")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("account")
}

func newMigrateCommand(run runner) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Aplica o schema embutido no banco",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run.with(cmd.Context(), func(s *Services) error {
				if s.Migrator == nil {
					return errors.New("migrate: conexão com o banco não configurada")
				}
				if err := s.Migrator.Migrate(cmd.Context()); err != nil {
					return err
				}
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "schema aplicado")
				return err
			})
		},
	}
}

func newFetchCommand(run runner) *cobra.Command {
	account := &accountFlags{}
	var since, until, level string

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Busca insights no Meta e grava os snapshots do período",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run.with(cmd.Context(), func(s *Services) error {
				result, err := s.Insighter.FetchAndStoreInsights(cmd.Context(), account.UserID, domain.FetchInsightsRequest{
					AdAccountID: account.AdAccountID,
					Since:       since,
					Until:       until,
					Level:       level,
				})
				if result != nil {
					if printErr := printJSON(cmd.OutOrStdout(), result); printErr != nil {
						return printErr
					}
				}
				return err
			})
		},
	}

	account.register(cmd)
	cmd.Flags().StringVar(&since, "since", "", "Data inicial YYYY-MM-DD")
	cmd.Flags().StringVar(&until, "until", "", "Data final YYYY-MM-DD")
	cmd.Flags().StringVar(&level, "level", string(domain.LevelCampaign), "Nível: account, campaign, adset ou ad")
	_ = cmd.MarkFlagRequired("since")
	_ = cmd.MarkFlagRequired("until")

	return cmd
}

func newQueryCommand(run runner) *cobra.Command {
	account := &accountFlags{}
	var since, until, level string
	var page, limit int

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Lista os snapshots gravados de uma conta",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			filters := domain.InsightFilters{}

			if level != "" {
				parsed, err := domain.ParseLevel(level)
				if err != nil {
					return err
				}
				filters.Level = &parsed
			}
			var err error
			if filters.DateFrom, err = utils.ParseDate(since); err != nil {
				return err
			}
			if filters.DateTo, err = utils.ParseDate(until); err != nil {
				return err
			}

			return run.with(cmd.Context(), func(s *Services) error {
				result, err := s.Insighter.QueryStoredInsights(cmd.Context(), account.UserID, account.AdAccountID, domain.StoredInsightsQuery{
					Filters: filters,
					Page:    page,
					Limit:   limit,
				})
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), result)
			})
		},
	}

	account.register(cmd)
	cmd.Flags().StringVar(&since, "since", "", "Data inicial YYYY-MM-DD")
	cmd.Flags().StringVar(&until, "until", "", "Data final YYYY-MM-DD")
	cmd.Flags().StringVar(&level, "level", "", "Filtra por nível")
	cmd.Flags().IntVar(&page, "page", 1, "Página, a partir de 1")
	cmd.Flags().IntVar(&limit, "limit", domain.DefaultPageLimit, "Itens por página, até 1000")

	return cmd
}

func newSummaryCommand(run runner) *cobra.Command {
	account := &accountFlags{}
	var level string
	var days int

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Resume os últimos dias de snapshots gravados",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			parsed, err := domain.ParseLevel(level)
			if err != nil {
				return err
			}

			return run.with(cmd.Context(), func(s *Services) error {
				summary, err := s.Insighter.GetMetricsSummary(cmd.Context(), account.UserID, account.AdAccountID, days, parsed)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), summary)
			})
		},
	}

	account.register(cmd)
	cmd.Flags().IntVar(&days, "days", insighting.DefaultSummaryDays, "Quantidade de dias, até 365")
	cmd.Flags().StringVar(&level, "level", string(domain.LevelCampaign), "Nível agregado")

	return cmd
}
