package cli

import (
	"fmt"

	"pillpal/internal/config"
	"pillpal/internal/platform/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// state lo comparten los subcomandos; se llena en PersistentPreRunE.
type state struct {
	v          *viper.Viper
	configFile string
	envFile    string

	settings *config.Settings
	log      logger.Logger
}

// RootCommand crea el comando raíz con todos los subcomandos.
func RootCommand() *cobra.Command {
	st := &state{v: config.New()}

	rootCmd := &cobra.Command{
		Use:           "pillpal",
		Short:         "Personal medication tracker with daily reminders",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	if err := setupFlags(rootCmd, st); err != nil {
		panic(err)
	}

	rootCmd.AddCommand(
		serveCommand(st),
		addCommand(st),
		editCommand(st),
		listCommand(st),
		deleteCommand(st),
		takeCommand(st),
		historyCommand(st),
		infoCommand(st),
	)

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		return st.initialize(cmd)
	}

	return rootCmd
}

func setupFlags(rootCmd *cobra.Command, st *state) error {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&st.configFile, "config", "", "Config file (default ./config.yaml or ~/.config/pillpal/config.yaml)")
	pf.StringVar(&st.envFile, "env-file", ".env", "Dotenv file loaded before reading the environment")
	pf.String("storage", st.v.GetString("storage.driver"), "Storage backend: sqlite, postgres or memory")
	pf.String("db", st.v.GetString("storage.sqlite.path"), "SQLite database path")
	pf.String("dsn", "", "PostgreSQL DSN (storage=postgres)")
	pf.String("log-level", st.v.GetString("log.level"), "Log level: debug, info, warn, error")
	pf.String("log-format", st.v.GetString("log.format"), "Log format: text or json")

	bindings := map[string]string{
		"storage.driver":       "storage",
		"storage.sqlite.path":  "db",
		"storage.postgres.dsn": "dsn",
		"log.level":            "log-level",
		"log.format":           "log-format",
	}
	for key, flag := range bindings {
		if err := st.v.BindPFlag(key, pf.Lookup(flag)); err != nil {
			return fmt.Errorf("error binding flag %s: %w", flag, err)
		}
	}
	return nil
}

func (st *state) initialize(cmd *cobra.Command) error {
	if err := config.LoadDotEnv(st.envFile); err != nil {
		return fmt.Errorf("load %s: %w", st.envFile, err)
	}

	settings, err := config.Load(st.v, st.configFile)
	if err != nil {
		return err
	}
	st.settings = settings

	// logs a stderr: stdout queda para la salida de los comandos
	st.log = logger.New(logger.Options{
		Level:  logger.ParseLevel(settings.Log.Level),
		Format: logger.ParseFormat(settings.Log.Format),
		App:    "pillpal",
		Output: cmd.ErrOrStderr(),
	})
	return nil
}
