package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"stremini.backend/internal/config"
	"stremini.backend/internal/domain/entities"
	"stremini.backend/internal/infrastructure/dataservice"
	"stremini.backend/internal/infrastructure/datasources/postgres"
	"stremini.backend/internal/infrastructure/repositories"
	"stremini.backend/internal/usecases"
	"stremini.backend/pkg/jwt"
	"stremini.backend/pkg/logger"
	"stremini.backend/pkg/redis"
)

var openAdminDB = func(cfg config.DatabaseConfig, env string) (*gorm.DB, error) {
	sqlDB, err := postgres.NewConnection(cfg)
	if err != nil {
		return nil, err
	}
	return postgres.NewGorm(sqlDB, env)
}

type adminRuntime interface {
	Invite(ctx context.Context, sessionID string, input entities.InviteUserInput) entities.InviteResult
	ExportWaitlist(ctx context.Context, sessionID string, filters entities.DashboardFiltersInput) (usecases.CSVExport, error)
}

type adminDeps struct {
	loadEnv func() error
	loadCfg func() *config.Config
	prepare func(cfg *config.Config) (adminRuntime, io.Closer, error)
	out     io.Writer
}

type adminRuntimeImpl struct {
	invitations *usecases.InvitationUsecase
	dashboards  *usecases.DashboardRegistry
}

func (r adminRuntimeImpl) Invite(ctx context.Context, sessionID string, input entities.InviteUserInput) entities.InviteResult {
	return r.invitations.InviteUser(ctx, sessionID, input)
}

func (r adminRuntimeImpl) ExportWaitlist(ctx context.Context, sessionID string, filters entities.DashboardFiltersInput) (usecases.CSVExport, error) {
	ctrl, err := r.dashboards.Acquire(ctx, sessionID)
	if err != nil {
		return usecases.CSVExport{}, err
	}
	ctrl.EnsureLoaded(ctx)
	if err := ctrl.SetFilters(filters); err != nil {
		return usecases.CSVExport{}, err
	}
	return ctrl.ExportCSV(), nil
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func defaultAdminDeps() adminDeps {
	return adminDeps{
		loadEnv: func() error { return godotenv.Load() },
		loadCfg: config.Load,
		prepare: func(cfg *config.Config) (adminRuntime, io.Closer, error) {
			logger.Init(cfg.Server.Env)
			if err := redis.Init(cfg.Redis.URL, cfg.Redis.PASSWORD); err != nil {
				return nil, nil, fmt.Errorf("failed to connect redis: %w", err)
			}
			db, err := openAdminDB(cfg.Database, cfg.Server.Env)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to connect db: %w", err)
			}
			sqlDB, err := db.DB()
			if err != nil {
				return nil, nil, fmt.Errorf("failed to init sql db: %w", err)
			}
			sessions, err := redis.NewSessionStore(cfg.Security.SessionEncryptionKey)
			if err != nil {
				_ = sqlDB.Close()
				return nil, nil, fmt.Errorf("failed to init session store: %w", err)
			}

			auth := dataservice.NewAuthService(db, sessions, jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiry), cfg.Security.SessionTTL)
			client := dataservice.NewClient(db)
			dashboards := usecases.NewDashboardRegistry(auth,
				repositories.NewWaitlistRepository(client),
				repositories.NewTeamRepository(client),
				repositories.NewBlogRepository(client),
			)
			runtime := adminRuntimeImpl{
				invitations: usecases.NewInvitationUsecase(auth, dataservice.NewElevatedClient(db)),
				dashboards:  dashboards,
			}
			return runtime, closerFunc(func() error {
				dashboards.Close()
				return sqlDB.Close()
			}), nil
		},
		out: os.Stdout,
	}
}

// withRuntime loads configuration, prepares the runtime and closes it after fn.
func withRuntime(deps adminDeps, fn func(adminRuntime) error) error {
	if err := deps.loadEnv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	runtime, closer, err := deps.prepare(deps.loadCfg())
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}
	return fn(runtime)
}

func newInviteCmd(deps adminDeps) *cobra.Command {
	var (
		sessionID string
		email     string
		roles     []string
	)
	cmd := &cobra.Command{
		Use:   "invite",
		Short: "Invite an admin user, creating the identity when needed",
		RunE: func(cmd *cobra.Command, _ []string) error {
			input := entities.InviteUserInput{Email: email}
			for _, r := range roles {
				role := entities.Role(strings.TrimSpace(r))
				if !role.Valid() {
					return fmt.Errorf("invalid role: %s", r)
				}
				input.Roles = append(input.Roles, role)
			}

			return withRuntime(deps, func(rt adminRuntime) error {
				result := rt.Invite(cmd.Context(), sessionID, input)
				if !result.Success {
					return fmt.Errorf("invitation failed: %s", result.Error)
				}
				_, _ = fmt.Fprintln(deps.out, result.Message)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&sessionID, "session", "", "session id of a superadmin (required)")
	cmd.Flags().StringVar(&email, "email", "", "email address to invite (required)")
	cmd.Flags().StringSliceVar(&roles, "role", nil, "role to grant, repeatable (superadmin, admin, editor)")
	_ = cmd.MarkFlagRequired("session")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("role")
	return cmd
}

func newExportCmd(deps adminDeps) *cobra.Command {
	var (
		sessionID string
		status    string
		search    string
		out       string
	)
	cmd := &cobra.Command{
		Use:   "export-waitlist",
		Short: "Export the filtered waitlist as CSV",
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter := entities.StatusFilter(status)
			if !filter.Valid() {
				return fmt.Errorf("invalid status filter: %s", status)
			}

			return withRuntime(deps, func(rt adminRuntime) error {
				export, err := rt.ExportWaitlist(cmd.Context(), sessionID, entities.DashboardFiltersInput{
					SearchQuery:  &search,
					FilterStatus: &filter,
				})
				if err != nil {
					return fmt.Errorf("export failed: %w", err)
				}
				if out == "-" {
					_, err := fmt.Fprintln(deps.out, export.Content)
					return err
				}
				if out == "" {
					out = export.Filename
				}
				if err := os.WriteFile(out, []byte(export.Content), 0o644); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(deps.out, "Wrote %s\n", out)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&sessionID, "session", "", "admin session id (required)")
	cmd.Flags().StringVar(&status, "status", string(entities.StatusFilterAll), "status filter (all, pending, approved, removed)")
	cmd.Flags().StringVar(&search, "search", "", "case-insensitive match on email or name")
	cmd.Flags().StringVar(&out, "out", "", "output file, - for stdout (default waitlist-YYYY-MM-DD.csv)")
	_ = cmd.MarkFlagRequired("session")
	return cmd
}

func newRootCmd(deps adminDeps) *cobra.Command {
	def := defaultAdminDeps()
	if deps.loadEnv == nil {
		deps.loadEnv = def.loadEnv
	}
	if deps.loadCfg == nil {
		deps.loadCfg = def.loadCfg
	}
	if deps.prepare == nil {
		deps.prepare = def.prepare
	}
	if deps.out == nil {
		deps.out = def.out
	}

	root := &cobra.Command{
		Use:           "admin",
		Short:         "Stremini CMS administration",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newInviteCmd(deps), newExportCmd(deps))
	return root
}

func main() {
	if err := newRootCmd(defaultAdminDeps()).Execute(); err != nil {
		log.Fatal(err)
	}
}
