package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Davinais/FM-Heuristic/internal/service"
	"github.com/Davinais/FM-Heuristic/pkg/config"
	"github.com/Davinais/FM-Heuristic/pkg/utils"
)

func newTestService(t *testing.T) *service.Service {
	t.Helper()

	cfg := &config.Config{
		Partition: config.PartitionConfig{DefaultBFactor: 0.45, Workers: 1},
		Database:  config.DatabaseConfig{Type: "sqlite", Database: ":memory:"},
		Storage:   config.StorageConfig{Type: "local", LocalPath: t.TempDir()},
	}

	svc, err := service.New(cfg, utils.NewDefaultLogger(utils.LevelError, nil))
	require.NoError(t, err)
	require.NoError(t, svc.Initialize(context.Background()))
	t.Cleanup(func() { svc.Stop() })

	return svc
}

func TestHandlePartition_Success(t *testing.T) {
	svc := newTestService(t)
	srv := NewServer(svc, 0, utils.NewDefaultLogger(utils.LevelError, nil))

	body := "0.45\nNET n0 a b ;\nNET n1 b c ;\n"
	req := httptest.NewRequest(http.MethodPost, "/partition", strings.NewReader(body))
	rec := httptest.NewRecorder()

	srv.handlePartition(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "run_uuid")
}

func TestHandlePartition_MethodNotAllowed(t *testing.T) {
	svc := newTestService(t)
	srv := NewServer(svc, 0, utils.NewDefaultLogger(utils.LevelError, nil))

	req := httptest.NewRequest(http.MethodGet, "/partition", nil)
	rec := httptest.NewRecorder()

	srv.handlePartition(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHandlePartition_MalformedNetlist(t *testing.T) {
	svc := newTestService(t)
	srv := NewServer(svc, 0, utils.NewDefaultLogger(utils.LevelError, nil))

	req := httptest.NewRequest(http.MethodPost, "/partition", strings.NewReader("not a netlist"))
	rec := httptest.NewRecorder()

	srv.handlePartition(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestHandleHealthz(t *testing.T) {
	svc := newTestService(t)
	srv := NewServer(svc, 0, utils.NewDefaultLogger(utils.LevelError, nil))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()

	srv.handleHealthz(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
