package main

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/qsnap/internal/adapters/cas"
	"go.trai.ch/qsnap/internal/adapters/fs"
	"go.trai.ch/qsnap/internal/adapters/markdown"
	"go.trai.ch/qsnap/internal/adapters/render"
	"go.trai.ch/qsnap/internal/adapters/telemetry"
	"go.trai.ch/qsnap/internal/app"
	"go.trai.ch/qsnap/internal/core/domain"
	"go.trai.ch/qsnap/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func provide(a *app.App, log *mocks.MockLogger) ComponentProvider {
	return func(_ context.Context) (*app.Components, func(), error) {
		return app.NewComponents(a, log), func() {}, nil
	}
}

// TestRun_Success verifies that the run function returns 0 when the command succeeds.
func TestRun_Success(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockLogger := mocks.NewMockLogger(ctrl)
	application := app.New(mocks.NewMockConfigLoader(ctrl), nil, nil, nil, nil, nil, nil, nil, nil, mockLogger)

	stdout := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stdout, new(bytes.Buffer), provide(application, mockLogger))

	assert.Equal(t, 0, exitCode)
	assert.Contains(t, stdout.String(), "qsnap version")
}

// TestRun_InitializationError verifies that run returns 1 when component initialization fails.
func TestRun_InitializationError(t *testing.T) {
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return nil, nil, errors.New("init failed")
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, new(bytes.Buffer), stderr, provider)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Error: init failed")
}

// TestRun_ExecutionError verifies that run logs the error and returns 1 when a command fails.
func TestRun_ExecutionError(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockLoader := mocks.NewMockConfigLoader(ctrl)
	mockLoader.EXPECT().Load(gomock.Any()).Return(domain.Config{}, errors.New("load failed"))

	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Error(gomock.Any()).Do(func(err error) {
		assert.ErrorContains(t, err, "load failed")
	})

	application := app.New(mockLoader, nil, nil, nil, nil, nil, nil, nil, nil, mockLogger)

	exitCode := run(context.Background(), []string{"status"}, new(bytes.Buffer), new(bytes.Buffer), provide(application, mockLogger))

	assert.Equal(t, 1, exitCode)
}

// TestRun_FailedDocumentsLoggedOnce verifies that a failed run is not reported a second time.
func TestRun_FailedDocumentsLoggedOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	root := t.TempDir()

	cfg := domain.DefaultConfig(root)
	cfg.Renderer = domain.RendererSVG

	mockLoader := mocks.NewMockConfigLoader(ctrl)
	mockLoader.EXPECT().Load(gomock.Any()).Return(cfg, nil)

	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Debug(gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Error(gomock.Any()).Times(1)

	application := app.New(
		mockLoader,
		fs.NewFinder(fs.NewWalker()),
		fs.NewStore(),
		cas.NewStore(mockLogger),
		markdown.NewInventory(),
		render.NewFactory(mockLogger),
		telemetry.NewNoOpTracer(),
		nil,
		nil,
		mockLogger,
	)

	missing := filepath.Join(root, "missing.md")
	exitCode := run(context.Background(), []string{"run", missing}, new(bytes.Buffer), new(bytes.Buffer), provide(application, mockLogger))

	assert.Equal(t, 1, exitCode)
}
