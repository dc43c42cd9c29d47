package main

import (
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"pets-api/internal/platform/config"
	"pets-api/internal/platform/logger"
)

// storeAnnotation marca los comandos que abren el store y necesitan la config completa.
const storeAnnotation = "pets-api/store"

// app es el estado compartido por los subcomandos; se llena en PersistentPreRunE.
// cfg queda nil en los comandos remotos.
type app struct {
	cfg           *config.Config
	log           logger.Logger
	correlationID string
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "pets-api",
		Short: "Pets API server and tools",
		Long: `pets-api serves a CRUD API of pets over HTTP.

The storage backend (memory, postgres, sqlite, mongodb, redis) is chosen
with STORE_TYPE when the process starts. Without a subcommand it runs serve.`,
		SilenceUsage: true,
		Annotations:  map[string]string{storeAnnotation: "true"},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			a.correlationID = uuid.NewString()
			fields := map[string]any{"correlation_id": a.correlationID}

			// list/species solo hablan HTTP: no validan STORE_TYPE ni credenciales.
			if cmd.Annotations[storeAnnotation] == "" {
				a.log = logger.NewFromEnv().With(fields)
				return nil
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.log = logger.New(cfg.LoggerOptions()).With(fields)
			a.log.Debug("command start", map[string]any{"command": cmd.CommandPath()})
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.serve(cmd.Context())
		},
	}

	root.AddCommand(
		newServeCmd(a),
		newSeedCmd(a),
		newListCmd(a),
		newSpeciesCmd(a),
	)
	return root
}
