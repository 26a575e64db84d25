package migrate

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"keygate/internal/infrastructure/config"
	"keygate/internal/infrastructure/database"
	"keygate/internal/infrastructure/migration"
	"keygate/internal/shared/constants"
	"keygate/internal/shared/logger"
)

var env string

var managedTables = []string{
	constants.TableUsers,
	constants.TableMachines,
	constants.TableDigitalKeys,
	constants.TablePermissions,
}

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Create or update the keygate tables and report which of them exist.`,
		RunE:  runUp,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	cmd.AddCommand(
		newUpCommand(),
		newStatusCommand(),
	)

	return cmd
}

func newUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Run gorm AutoMigrate for every model",
		RunE:  runUp,
	}
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show which tables exist",
		RunE:  runStatus,
	}
}

func initEnv() (logger.Interface, error) {
	cfg, err := config.Load(env)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger, cfg.Server.Mode); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := database.Init(&cfg.Database); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return logger.NewLogger(), nil
}

func runUp(cmd *cobra.Command, args []string) error {
	log, err := initEnv()
	if err != nil {
		return err
	}
	defer database.Close()

	log.Infow("running migrations", "environment", env)

	if err := migration.NewManager().Migrate(database.Get()); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	log.Infow("migrations completed successfully")
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	if _, err := initEnv(); err != nil {
		return err
	}
	defer database.Close()

	printStatus(cmd.OutOrStdout(), database.Get())
	return nil
}

func printStatus(w io.Writer, db *gorm.DB) {
	fmt.Fprintf(w, "Migration Status (%s):\n", env)
	for _, table := range managedTables {
		state := "missing"
		if db.Migrator().HasTable(table) {
			state = "present"
		}
		fmt.Fprintf(w, "  %-16s %s\n", table, state)
	}
}
