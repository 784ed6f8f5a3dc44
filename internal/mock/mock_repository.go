package mock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Davinais/FM-Heuristic/pkg/model"
)

// MockRunRepository is a mock implementation of the RunRepository interface.
type MockRunRepository struct {
	mock.Mock
}

// CreateRun mocks the CreateRun method.
func (m *MockRunRepository) CreateRun(ctx context.Context, run *model.PartitionRun) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

// CompleteRun mocks the CompleteRun method.
func (m *MockRunRepository) CompleteRun(ctx context.Context, runUUID string, run *model.PartitionRun) error {
	args := m.Called(ctx, runUUID, run)
	return args.Error(0)
}

// FailRun mocks the FailRun method.
func (m *MockRunRepository) FailRun(ctx context.Context, runUUID string, info string) error {
	args := m.Called(ctx, runUUID, info)
	return args.Error(0)
}

// GetRunByUUID mocks the GetRunByUUID method.
func (m *MockRunRepository) GetRunByUUID(ctx context.Context, runUUID string) (*model.PartitionRun, error) {
	args := m.Called(ctx, runUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PartitionRun), args.Error(1)
}

// ListRecentRuns mocks the ListRecentRuns method.
func (m *MockRunRepository) ListRecentRuns(ctx context.Context, limit int) ([]*model.PartitionRun, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.PartitionRun), args.Error(1)
}

// ExpectCreateRun sets up an expectation for CreateRun.
func (m *MockRunRepository) ExpectCreateRun(err error) *mock.Call {
	return m.On("CreateRun", mock.Anything, mock.Anything).Return(err)
}

// ExpectCompleteRun sets up an expectation for CompleteRun.
func (m *MockRunRepository) ExpectCompleteRun(runUUID string, err error) *mock.Call {
	return m.On("CompleteRun", mock.Anything, runUUID, mock.Anything).Return(err)
}

// ExpectFailRun sets up an expectation for FailRun.
func (m *MockRunRepository) ExpectFailRun(runUUID string, err error) *mock.Call {
	return m.On("FailRun", mock.Anything, runUUID, mock.Anything).Return(err)
}

// ExpectGetRunByUUID sets up an expectation for GetRunByUUID.
func (m *MockRunRepository) ExpectGetRunByUUID(runUUID string, run *model.PartitionRun, err error) *mock.Call {
	return m.On("GetRunByUUID", mock.Anything, runUUID).Return(run, err)
}

// ExpectListRecentRuns sets up an expectation for ListRecentRuns.
func (m *MockRunRepository) ExpectListRecentRuns(limit int, runs []*model.PartitionRun, err error) *mock.Call {
	return m.On("ListRecentRuns", mock.Anything, limit).Return(runs, err)
}

// MockPassRepository is a mock implementation of the PassRepository interface.
type MockPassRepository struct {
	mock.Mock
}

// SavePasses mocks the SavePasses method.
func (m *MockPassRepository) SavePasses(ctx context.Context, passes []model.PassRecord) error {
	args := m.Called(ctx, passes)
	return args.Error(0)
}

// GetPassesByRunUUID mocks the GetPassesByRunUUID method.
func (m *MockPassRepository) GetPassesByRunUUID(ctx context.Context, runUUID string) ([]model.PassRecord, error) {
	args := m.Called(ctx, runUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PassRecord), args.Error(1)
}

// ExpectSavePasses sets up an expectation for SavePasses.
func (m *MockPassRepository) ExpectSavePasses(err error) *mock.Call {
	return m.On("SavePasses", mock.Anything, mock.Anything).Return(err)
}

// ExpectGetPassesByRunUUID sets up an expectation for GetPassesByRunUUID.
func (m *MockPassRepository) ExpectGetPassesByRunUUID(runUUID string, passes []model.PassRecord, err error) *mock.Call {
	return m.On("GetPassesByRunUUID", mock.Anything, runUUID).Return(passes, err)
}
