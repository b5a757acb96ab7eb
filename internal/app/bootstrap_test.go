package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/taazabazaar/internal/config"
	"github.com/taazabazaar/internal/constants"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memoryConfig() *config.Config {
	cfg := config.Defaults()
	cfg.Store.Driver = constants.StoreDriverMemory
	return cfg
}

func serviceNames(r *Runner) []string {
	names := make([]string, 0, len(r.services))
	for _, svc := range r.services {
		names = append(names, svc.Name())
	}
	return names
}

func TestBuildRunnerSkipsWorkerWhenQueueDisabled(t *testing.T) {
	runner, err := BuildRunner(context.Background(), memoryConfig(), ModeAll, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"http", "container"}, serviceNames(runner))
}

func TestBuildRunnerWorkerModeRequiresQueue(t *testing.T) {
	_, err := BuildRunner(context.Background(), memoryConfig(), ModeWorker, nil)
	assert.Error(t, err)
}

func TestBuildRunnerWorkerMode(t *testing.T) {
	cfg := memoryConfig()
	cfg.Queue.Enabled = true
	runner, err := BuildRunner(context.Background(), cfg, ModeWorker, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"worker", "container"}, serviceNames(runner))
}

func TestBuildRunnerUnknownMode(t *testing.T) {
	_, err := BuildRunner(context.Background(), memoryConfig(), "bogus", nil)
	assert.Error(t, err)
}

type fakeService struct {
	name     string
	startErr error
	stopped  bool
}

func (s *fakeService) Name() string { return s.name }

func (s *fakeService) Start(ctx context.Context) error {
	if s.startErr != nil {
		return s.startErr
	}
	<-ctx.Done()
	return nil
}

func (s *fakeService) Stop(context.Context) error {
	s.stopped = true
	return nil
}

func TestRunnerStopsAllServicesOnFailure(t *testing.T) {
	boom := errors.New("listen failed")
	failing := &fakeService{name: "http", startErr: boom}
	waiting := &fakeService{name: "container"}

	err := NewRunner(failing, waiting).Run(context.Background(), time.Second, nil)
	assert.ErrorIs(t, err, boom)
	assert.True(t, failing.stopped)
	assert.True(t, waiting.stopped)
}

func TestRunnerCancelledContextIsClean(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	svc := &fakeService{name: "container"}
	cancel()

	assert.NoError(t, NewRunner(svc).Run(ctx, time.Second, nil))
	assert.True(t, svc.stopped)
}

func TestNormalizeOptions(t *testing.T) {
	opts := normalizeOptions(Options{Mode: " API "})
	assert.Equal(t, ModeAPI, opts.Mode)
	assert.NotNil(t, opts.Logger)
	assert.Equal(t, 15*time.Second, opts.ShutdownTimeout)

	assert.Equal(t, ModeAll, normalizeOptions(Options{}).Mode)
}
