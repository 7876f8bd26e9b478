// Package cli arma los comandos del binario: serve (por defecto), migrate,
// config init, token y vets.
package cli

import (
	"fmt"
	"os"

	"petclinic/internal/config"
	"petclinic/internal/platform/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Version se puede pisar con -ldflags.
var Version = "dev"

// app es el estado compartido entre comandos; se llena en PersistentPreRunE.
type app struct {
	v       *viper.Viper
	cfgPath string
	cfg     config.Config
	log     logger.Logger
}

// Execute corre el comando raíz. Lo llama main.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func NewRootCommand() *cobra.Command {
	a := &app{v: config.New()}

	root := &cobra.Command{
		Use:           "petclinic",
		Short:         "Petclinic REST API",
		Long:          `API REST de la clínica: veterinarios, owners, mascotas y visitas.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd, true)
		},
		// Sin subcomando levanta el servidor.
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.serve(cmd.Context())
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgPath, "config", config.DefaultPath, "Path to the TOML config file. (Env: PETCLINIC_CONFIG)")
	pf.String("host", "", "Listen host. (Env: PETCLINIC_SERVER_HOST)")
	pf.Int("port", 8080, "Listen port. (Env: PETCLINIC_SERVER_PORT, PORT)")
	pf.String("storage-driver", "", "Storage driver: memory, sqlite or postgres. (Env: PETCLINIC_STORAGE_DRIVER)")
	pf.String("dsn", "", "SQLite path or Postgres DSN. (Env: PETCLINIC_STORAGE_DSN, DB_DSN)")
	pf.Bool("auto-migrate", true, "Apply migrations on startup. (Env: PETCLINIC_STORAGE_AUTO_MIGRATE)")
	pf.String("log-level", "", "Log level: debug, info, warn, error. (Env: PETCLINIC_LOG_LEVEL, LOG_LEVEL)")
	pf.String("log-format", "", "Log format: text or json. (Env: PETCLINIC_LOG_FORMAT, LOG_FORMAT)")
	pf.Bool("auth-required", false, "Require a bearer token on write routes. (Env: PETCLINIC_AUTH_REQUIRED)")
	pf.String("jwt-secret", "", "HMAC secret for bearer tokens. (Env: PETCLINIC_AUTH_JWT_SECRET)")

	root.AddCommand(
		newServeCommand(a),
		newMigrateCommand(a),
		newConfigCommand(a),
		newTokenCommand(a),
		newVetsCommand(a),
	)
	return root
}

// load resuelve la config (archivo < env < flags) y arma el logger. Con
// readFile=false sólo se usan defaults, env y flags.
func (a *app) load(cmd *cobra.Command, readFile bool) error {
	explicit := cmd.Flags().Changed("config")
	if !explicit {
		if env := os.Getenv(config.EnvPrefix + "_CONFIG"); env != "" {
			a.cfgPath, explicit = env, true
		}
	}

	if err := config.BindFlags(a.v, cmd.Flags()); err != nil {
		return err
	}
	path := a.cfgPath
	if !readFile {
		path = ""
	}
	cfg, err := config.Load(a.v, path, explicit)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    cfg.Log.App,
		Output: cmd.ErrOrStderr(),
	})
	return nil
}
