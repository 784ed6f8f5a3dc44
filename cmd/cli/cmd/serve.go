package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Davinais/FM-Heuristic/internal/httpapi"
	"github.com/Davinais/FM-Heuristic/internal/service"
	"github.com/Davinais/FM-Heuristic/pkg/utils"
)

var (
	servePort int
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start an HTTP server exposing POST /partition",
	Long: `Start a lightweight HTTP server that accepts a netlist body on
POST /partition, runs it to completion, and responds with the
PartitionRun summary as JSON. GET /healthz reports database connectivity.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	binName := BinName()
	serveCmd.Example = `  # Start the server on port 8080
  ` + binName + ` serve -p 8080`

	serveCmd.Flags().IntVarP(&servePort, "port", "p", 8080, "Port for the HTTP server")
}

func runServe(cmd *cobra.Command, args []string) error {
	log := GetLogger()

	svc, err := service.New(GetConfig(), log)
	if err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}

	ctx := context.Background()
	if err := svc.Initialize(ctx); err != nil {
		return fmt.Errorf("failed to initialize service: %w", err)
	}
	defer svc.Stop()

	return startServeMode(svc, servePort, log)
}

func startServeMode(svc *service.Service, port int, log utils.Logger) error {
	server := httpapi.NewServer(svc, port, log)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info("Shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Info("")
	log.Info("Partition server listening on http://localhost:%d", port)
	log.Info("POST /partition to run a job, GET /healthz to check status")
	log.Info("Press Ctrl+C to stop")
	log.Info("")

	if err := server.Start(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
