package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"persona-quiz/internal/config"
	"persona-quiz/internal/db"
	"persona-quiz/internal/domain"
	"persona-quiz/internal/repository"
	"persona-quiz/internal/service"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cli_quiz",
		Short: "Test de personalidad de 4 letras desde la terminal",
	}

	rootCmd.AddCommand(scoreCmd())
	rootCmd.AddCommand(takeCmd())
	rootCmd.AddCommand(historyCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func scoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Puntua una lista de respuestas sin guardar nada",
		Long: `Cada respuesta es un entero entre -2 y 2, una por pregunta y en orden:
positivo = de acuerdo, negativo = en desacuerdo, 0 = neutral.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, _ := cmd.Flags().GetString("answers")
			scorer := service.NewPersonalityScorer(service.DefaultQuestions())
			answers, err := parseAnswerList(raw)
			if err != nil {
				return err
			}
			res, err := scorer.Score(answers)
			if err != nil {
				return err
			}
			printScore(cmd.OutOrStdout(), res.Type, res.Scores, res.Traits)
			return nil
		},
	}
	cmd.Flags().StringP("answers", "a", "", "Respuestas separadas por coma, ej: 2,-1,0,1,...")
	_ = cmd.MarkFlagRequired("answers")
	return cmd
}

func takeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "take",
		Short: "Responde el test interactivamente y guarda el resultado",
		RunE: func(cmd *cobra.Command, args []string) error {
			email, _ := cmd.Flags().GetString("email")
			username, _ := cmd.Flags().GetString("username")

			app, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.close()

			user, err := ensureUser(cmd.Context(), app.users, email, username)
			if err != nil {
				return fmt.Errorf("usuario: %w", err)
			}

			session := service.NewQuizSession(uuid.NewString(), user.ID, app.scorer.QuestionCount())
			if err := session.Start(); err != nil {
				return err
			}
			completed, err := runQuiz(os.Stdin, cmd.OutOrStdout(), app.scorer.Questions(), session)
			if err != nil {
				return err
			}
			if !completed {
				fmt.Fprintln(cmd.OutOrStdout(), "Test cancelado, no se guardo nada.")
				return nil
			}

			answers, err := session.FinalAnswers()
			if err != nil {
				return err
			}
			sub, err := app.results.Submit(cmd.Context(), user.ID, answers)
			if err != nil {
				return fmt.Errorf("guardar resultado: %w", err)
			}
			printScore(cmd.OutOrStdout(), sub.Result.PersonalityType, sub.Result.Scores, sub.Traits)
			fmt.Fprintln(cmd.OutOrStdout(), service.DescribeType(sub.Result.PersonalityType))
			printChange(cmd.OutOrStdout(), sub.Result.ChangeFromPrevious)
			return nil
		},
	}
	cmd.Flags().StringP("email", "e", "cli_test@example.com", "Email del usuario")
	cmd.Flags().StringP("username", "u", "", "Username si hay que crear el usuario (default: parte local del email)")
	return cmd
}

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Lista los resultados guardados de un usuario",
		RunE: func(cmd *cobra.Command, args []string) error {
			email, _ := cmd.Flags().GetString("email")
			limit, _ := cmd.Flags().GetInt("limit")

			app, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.close()

			user, err := app.users.GetByEmail(cmd.Context(), strings.ToLower(strings.TrimSpace(email)))
			if err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return fmt.Errorf("no existe el usuario %s", email)
				}
				return err
			}
			results, err := app.results.History(cmd.Context(), user.ID, limit)
			if err != nil {
				return err
			}
			printHistory(cmd.OutOrStdout(), results)
			return nil
		},
	}
	cmd.Flags().StringP("email", "e", "cli_test@example.com", "Email del usuario")
	cmd.Flags().IntP("limit", "n", 10, "Cantidad maxima de resultados")
	return cmd
}

type cliApp struct {
	pool    *pgxpool.Pool
	logger  *zap.Logger
	users   repository.UserRepository
	scorer  service.PersonalityScorer
	results *service.ResultService
}

func openApp(ctx context.Context) (*cliApp, error) {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	logger := zap.NewExample()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("db connect: %w", err)
	}
	if cfg.AutoMigrate {
		if err := db.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("db schema: %w", err)
		}
	}

	scorer := service.NewPersonalityScorer(service.DefaultQuestions())
	return &cliApp{
		pool:    pool,
		logger:  logger,
		users:   repository.NewPgUserRepository(pool),
		scorer:  scorer,
		results: service.NewResultService(repository.NewPgResultRepository(pool), scorer, logger, cfg.HistoryDefaultLimit),
	}, nil
}

func (a *cliApp) close() {
	a.pool.Close()
	_ = a.logger.Sync()
}

// ensureUser busca el usuario por email y lo crea sin password si no existe.
// Un usuario creado asi no puede loguearse por la API hasta registrarse.
func ensureUser(ctx context.Context, repo repository.UserRepository, email, username string) (domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !strings.Contains(email, "@") {
		return domain.User{}, fmt.Errorf("email invalido: %q", email)
	}

	user, err := repo.GetByEmail(ctx, email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, err
	}

	username = strings.TrimSpace(username)
	if username == "" {
		username = email[:strings.Index(email, "@")]
	}
	user = domain.User{
		ID:        uuid.NewString(),
		Username:  username,
		Email:     email,
		CreatedAt: time.Now().UTC(),
	}
	if err := repo.Create(ctx, user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}
