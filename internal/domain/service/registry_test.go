package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/finder/backend/internal/shared/types"
)

type mockProvider struct {
	id       string
	category types.Category
	fail     bool
	lastCtx  *types.Context
}

func (m *mockProvider) Definition() types.Service {
	category := m.category
	if category == "" {
		category = types.CategoryFilesystem
	}
	return types.Service{
		ID:           m.id,
		Name:         "Mock Service",
		Description:  "A mock service for browsing folders",
		Category:     category,
		Capabilities: []string{"list", "search"},
		Tools: []types.Tool{
			{ID: m.id + ".test", Name: "Test Tool", Description: "A test tool", Returns: "string"},
		},
	}
}

func (m *mockProvider) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	m.lastCtx = appCtx
	if m.fail {
		msg := "boom"
		return &types.Result{Success: false, Error: &msg}, nil
	}
	return &types.Result{
		Success: true,
		Data:    map[string]interface{}{"tool": toolID, "params": len(params)},
	}, nil
}

type mockRecorder struct {
	mock.Mock
}

func (m *mockRecorder) RecordServiceCall(service, tool, status string, duration time.Duration) {
	m.Called(service, tool, status, duration)
}

func TestRegister(t *testing.T) {
	r := NewRegistry()

	require.NoError(t, r.Register(&mockProvider{id: "test"}))
	_, ok := r.Get("test")
	assert.True(t, ok)

	err := r.Register(&mockProvider{id: "test"})
	assert.Error(t, err, "duplicate registration should fail")

	err = r.Register(&mockProvider{id: ""})
	assert.Error(t, err, "empty ID should fail")
}

func TestUnregister(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&mockProvider{id: "test"}))

	r.Unregister("test")

	_, ok := r.Get("test")
	assert.False(t, ok)
}

func TestList(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&mockProvider{id: "zeta"}))
	require.NoError(t, r.Register(&mockProvider{id: "alpha"}))
	require.NoError(t, r.Register(&mockProvider{id: "sys", category: types.CategorySystem}))

	services := r.List(nil)
	require.Len(t, services, 3)
	assert.Equal(t, "alpha", services[0].ID)
	assert.Equal(t, "sys", services[1].ID)
	assert.Equal(t, "zeta", services[2].ID)

	cat := types.CategoryFilesystem
	assert.Len(t, r.List(&cat), 2)
}

func TestListEmpty(t *testing.T) {
	services := NewRegistry().List(nil)
	assert.NotNil(t, services)
	assert.Empty(t, services)
}

func TestDiscover(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&mockProvider{id: "filesystem"}))

	results := r.Discover("filesystem search", 5)
	require.NotEmpty(t, results)
	assert.Equal(t, "filesystem", results[0].ID)

	assert.Empty(t, r.Discover("zzz", 5))
}

func TestExecute(t *testing.T) {
	tests := []struct {
		name        string
		toolID      string
		wantErr     bool
		wantSuccess bool
	}{
		{"routes to provider", "test.test", false, true},
		{"missing dot", "testtest", true, false},
		{"empty service", ".test", true, false},
		{"unknown service", "nope.test", true, false},
	}

	r := NewRegistry()
	require.NoError(t, r.Register(&mockProvider{id: "test"}))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := r.Execute(context.Background(), tt.toolID, nil, nil)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			require.NotNil(t, result)
			assert.Equal(t, tt.wantSuccess, result.Success)
		})
	}
}

func TestExecutePassesContext(t *testing.T) {
	p := &mockProvider{id: "test"}
	r := NewRegistry()
	require.NoError(t, r.Register(p))

	reqID := "req_01ARZ3NDEKTSV4RRFFQ69G5FAV"
	_, err := r.Execute(context.Background(), "test.test", map[string]interface{}{}, &types.Context{RequestID: &reqID})
	require.NoError(t, err)

	require.NotNil(t, p.lastCtx)
	assert.Equal(t, reqID, *p.lastCtx.RequestID)
}

func TestExecuteRecordsMetrics(t *testing.T) {
	rec := new(mockRecorder)
	rec.On("RecordServiceCall", "ok", "ok.test", "success", mock.AnythingOfType("time.Duration")).Once()
	rec.On("RecordServiceCall", "bad", "bad.test", "error", mock.AnythingOfType("time.Duration")).Once()

	r := NewRegistry().WithMetrics(rec)
	require.NoError(t, r.Register(&mockProvider{id: "ok"}))
	require.NoError(t, r.Register(&mockProvider{id: "bad", fail: true}))

	_, err := r.Execute(context.Background(), "ok.test", nil, nil)
	require.NoError(t, err)
	_, err = r.Execute(context.Background(), "bad.test", nil, nil)
	require.NoError(t, err)

	rec.AssertExpectations(t)
}

func TestStats(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&mockProvider{id: "test1"}))
	require.NoError(t, r.Register(&mockProvider{id: "test2"}))

	stats := r.Stats()
	assert.Equal(t, 2, stats["total_services"])
	assert.Equal(t, 2, stats["total_tools"])
	assert.Equal(t, map[string]int{"filesystem": 2}, stats["categories"])
}
