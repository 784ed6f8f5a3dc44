// Package service wires configuration, storage, and persistence around the
// partitioning engine for the CLI's partition/batch/serve subcommands and
// the HTTP surface.
package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/Davinais/FM-Heuristic/internal/fm"
	"github.com/Davinais/FM-Heuristic/internal/netlist"
	parsenetlist "github.com/Davinais/FM-Heuristic/internal/parser/netlist"
	"github.com/Davinais/FM-Heuristic/internal/repository"
	"github.com/Davinais/FM-Heuristic/internal/storage"
	"github.com/Davinais/FM-Heuristic/pkg/compression"
	"github.com/Davinais/FM-Heuristic/pkg/config"
	"github.com/Davinais/FM-Heuristic/pkg/model"
	"github.com/Davinais/FM-Heuristic/pkg/utils"
)

// Service is the main application service.
type Service struct {
	config  *config.Config
	logger  utils.Logger
	db      *repository.Repositories
	storage storage.Storage

	running bool
}

// New creates a new Service instance.
func New(cfg *config.Config, logger utils.Logger) (*Service, error) {
	if logger == nil {
		logger = utils.GetGlobalLogger()
	}

	return &Service{
		config: cfg,
		logger: logger,
	}, nil
}

// Initialize initializes all service components.
func (s *Service) Initialize(ctx context.Context) error {
	s.logger.Info("Initializing service components...")

	if err := s.initDatabase(); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := s.initStorage(); err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	s.running = true
	s.logger.Info("Service components initialized successfully")
	return nil
}

func (s *Service) initDatabase() error {
	s.logger.Info("Connecting to database (%s)...", s.config.Database.Type)

	dbConfig := &repository.DBConfig{
		Type:     s.config.Database.Type,
		Host:     s.config.Database.Host,
		Port:     s.config.Database.Port,
		Database: s.config.Database.Database,
		User:     s.config.Database.User,
		Password: s.config.Database.Password,
		MaxConns: s.config.Database.MaxConns,
	}

	gormDB, err := repository.NewGormDB(dbConfig)
	if err != nil {
		return err
	}

	s.db = repository.NewRepositories(gormDB, s.config.Database.Type)
	s.logger.Info("Database connection established")
	return nil
}

func (s *Service) initStorage() error {
	s.logger.Info("Initializing storage (%s)...", s.config.Storage.Type)

	store, err := storage.NewStorage(&s.config.Storage)
	if err != nil {
		return err
	}

	s.storage = store
	s.logger.Info("Storage initialized")
	return nil
}

// UploadInput stores r under key in the configured storage backend, for
// callers (the HTTP surface) that receive a netlist body directly rather
// than a path already present in storage.
func (s *Service) UploadInput(ctx context.Context, key string, r io.Reader) error {
	if err := s.storage.Upload(ctx, key, r); err != nil {
		return fmt.Errorf("failed to stage input: %w", err)
	}
	return nil
}

// Stop releases service resources.
func (s *Service) Stop() error {
	s.logger.Info("Stopping service...")

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close database connection: %v", err)
		}
	}

	s.running = false
	s.logger.Info("Service stopped")
	return nil
}

// IsRunning returns whether the service has been initialized and not stopped.
func (s *Service) IsRunning() bool {
	return s.running
}

// HealthCheck performs a health check on the service.
func (s *Service) HealthCheck(ctx context.Context) error {
	if s.db != nil {
		if err := s.db.HealthCheck(ctx); err != nil {
			return fmt.Errorf("database health check failed: %w", err)
		}
	}
	return nil
}

// RunPartition reads the netlist at inputKey through the storage backend,
// runs it to completion, writes the result to outputKey, and records the
// run (and its pass history, if db persistence is configured) under a
// freshly generated run UUID. When compressAs is not compression.TypeNone,
// a second copy of the output is written to outputKey+".gz" (the same
// suffix for every compression type) alongside the canonical uncompressed file.
func (s *Service) RunPartition(ctx context.Context, inputKey, outputKey string, compressAs compression.Type) (*model.PartitionRun, error) {
	runUUID := uuid.NewString()
	begin := time.Now()

	run := &model.PartitionRun{
		RunUUID:    runUUID,
		InputPath:  inputKey,
		OutputPath: outputKey,
		Status:     model.RunStatusRunning,
		BeginTime:  &begin,
	}

	if s.db != nil {
		if err := s.db.Run.CreateRun(ctx, run); err != nil {
			return nil, fmt.Errorf("failed to record run: %w", err)
		}
	}

	nl, bFactor, err := s.readNetlist(ctx, inputKey)
	if err != nil {
		s.failRun(ctx, runUUID, err)
		return nil, err
	}

	driver := fm.NewDriver(nl, bFactor)
	driver.Logger = s.logger
	driver.Run(ctx)

	if err := s.writeNetlist(ctx, outputKey, nl, compressAs); err != nil {
		s.failRun(ctx, runUUID, err)
		return nil, err
	}

	end := time.Now()
	summary := driver.Summarize()
	run.BFactor = bFactor
	run.Status = model.RunStatusCompleted
	run.CellCount = summary.CellNum
	run.NetCount = summary.NetNum
	run.PassCount = summary.Passes
	run.CutSize = summary.CutSize
	run.PartSizeA = summary.PartSize[0]
	run.PartSizeB = summary.PartSize[1]
	run.EndTime = &end

	if s.db != nil {
		if err := s.db.Run.CompleteRun(ctx, runUUID, run); err != nil {
			return nil, fmt.Errorf("failed to record run completion: %w", err)
		}
		if err := s.db.Pass.SavePasses(ctx, passRecords(runUUID, driver.Reports)); err != nil {
			return nil, fmt.Errorf("failed to record pass history: %w", err)
		}
	}

	return run, nil
}

func (s *Service) failRun(ctx context.Context, runUUID string, cause error) {
	if s.db == nil {
		return
	}
	if err := s.db.Run.FailRun(ctx, runUUID, cause.Error()); err != nil {
		s.logger.Error("Failed to record run failure: %v", err)
	}
}

func (s *Service) readNetlist(ctx context.Context, inputKey string) (*netlist.Netlist, float64, error) {
	rc, err := s.storage.Download(ctx, inputKey)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to download input: %w", err)
	}
	defer rc.Close()

	result, err := parsenetlist.NewParser(nil).Parse(ctx, rc)
	if err != nil {
		return nil, 0, err
	}
	return result.Netlist, result.BFactor, nil
}

func (s *Service) writeNetlist(ctx context.Context, outputKey string, nl *netlist.Netlist, compressAs compression.Type) error {
	pr, pw := io.Pipe()
	errCh := make(chan error, 1)
	go func() {
		errCh <- parsenetlist.WriteResult(pw, nl)
		pw.Close()
	}()

	var buf bytes.Buffer
	if compressAs == compression.TypeNone {
		if err := s.storage.Upload(ctx, outputKey, pr); err != nil {
			return fmt.Errorf("failed to upload output: %w", err)
		}
		return <-errCh
	}

	if err := s.storage.Upload(ctx, outputKey, io.TeeReader(pr, &buf)); err != nil {
		return fmt.Errorf("failed to upload output: %w", err)
	}
	if err := <-errCh; err != nil {
		return err
	}

	comp, err := compression.New(compressAs, compression.LevelDefault)
	if err != nil {
		return fmt.Errorf("failed to create compressor: %w", err)
	}
	compressed, err := comp.Compress(buf.Bytes())
	if err != nil {
		return fmt.Errorf("failed to compress output: %w", err)
	}

	gzKey := outputKey + ".gz"
	if err := s.storage.Upload(ctx, gzKey, bytes.NewReader(compressed)); err != nil {
		return fmt.Errorf("failed to upload compressed output: %w", err)
	}
	return nil
}

func passRecords(runUUID string, reports []fm.Report) []model.PassRecord {
	recs := make([]model.PassRecord, len(reports))
	for i, r := range reports {
		recs[i] = model.PassRecord{
			RunUUID:     runUUID,
			PassIndex:   i,
			MoveNum:     r.MoveNum,
			BestMoveNum: r.BestMoveNum,
			AccGain:     r.MaxAccGain,
		}
	}
	return recs
}
