package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/hive/internal/httpserver"
	"github.com/robalobadob/hive/internal/store"
)

var servePort string

func init() {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the puzzle JSON API",
		RunE:  runServe,
	}
	serveCmd.Flags().StringVarP(&servePort, "port", "p", "", "Port to listen on (default $PORT or 5175)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	src, err := loadWords()
	if err != nil {
		return err
	}
	scores, closeScores, err := openScores(cmd.Context())
	if err != nil {
		return err
	}
	defer closeScores()
	cipher, err := saveCipher()
	if err != nil {
		return err
	}

	srv := httpserver.New(httpserver.Deps{
		Words:        src,
		Sessions:     store.NewMemoryStore(),
		Scores:       scores,
		SaveDir:      cfg.SaveDir,
		Cipher:       cipher,
		DailySalt:    cfg.DailySalt,
		ClientOrigin: cfg.ClientOrigin,
	})
	port := cfg.Port
	if servePort != "" {
		port = servePort
	}
	log.Info().Str("port", port).Msg("starting hive server")
	return srv.Start(":" + port)
}
