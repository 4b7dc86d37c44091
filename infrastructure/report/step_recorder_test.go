package report

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"page_automation/domain/entities"
	"page_automation/infrastructure/storage"
)

type fakeClock struct {
	t    time.Time
	step time.Duration
}

func (c *fakeClock) Now() time.Time {
	now := c.t
	c.t = c.t.Add(c.step)
	return now
}

func TestStepRecordsOutcome(t *testing.T) {
	t.Parallel()
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	rec := NewStepRecorder(logger, nil)
	clock := &fakeClock{t: time.Date(2026, 10, 15, 10, 0, 0, 0, time.UTC), step: 250 * time.Millisecond}
	rec.now = clock.Now

	require.NoError(t, rec.Step(context.Background(), "Click on element [Login]", func(context.Context) error { return nil }))
	cause := errors.New("not visible")
	err := rec.Step(context.Background(), "Click on element [Logout]", func(context.Context) error { return cause })
	assert.Same(t, cause, err)

	steps := rec.Steps()
	require.Len(t, steps, 2)
	assert.Equal(t, entities.StepPassed, steps[0].Status)
	assert.Equal(t, 250*time.Millisecond, steps[0].Duration)
	assert.Equal(t, entities.StepFailed, steps[1].Status)
	assert.Equal(t, "not visible", steps[1].Error)
	_, parseErr := uuid.Parse(steps[0].ID)
	assert.NoError(t, parseErr)
	assert.NotEqual(t, steps[0].ID, steps[1].ID)

	last := hook.LastEntry()
	assert.Equal(t, logrus.WarnLevel, last.Level)
	assert.Equal(t, "Click on element [Logout]", last.Data["step"])
}

func TestStepPassesContext(t *testing.T) {
	t.Parallel()
	logger, _ := logtest.NewNullLogger()
	rec := NewStepRecorder(logger, nil)
	type key struct{}
	ctx := context.WithValue(context.Background(), key{}, "v")

	var got any
	require.NoError(t, rec.Step(ctx, "s", func(ctx context.Context) error {
		got = ctx.Value(key{})
		return nil
	}))
	assert.Equal(t, "v", got)
}

func TestConcurrentSteps(t *testing.T) {
	t.Parallel()
	logger, _ := logtest.NewNullLogger()
	rec := NewStepRecorder(logger, nil)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = rec.Step(context.Background(), "parallel", func(context.Context) error { return nil })
		}()
	}
	wg.Wait()
	assert.Len(t, rec.Steps(), 20)
}

func TestFlushAppendsToStorage(t *testing.T) {
	t.Parallel()
	logger, _ := logtest.NewNullLogger()
	store, err := storage.NewReportStore(filepath.Join(t.TempDir(), "steps.json"))
	require.NoError(t, err)
	rec := NewStepRecorder(logger, store)
	noop := func(context.Context) error { return nil }

	require.NoError(t, rec.Step(context.Background(), "first", noop))
	require.NoError(t, rec.Flush())
	assert.Empty(t, rec.Steps())

	require.NoError(t, rec.Step(context.Background(), "second", noop))
	require.NoError(t, rec.Flush())

	saved, err := store.LoadSteps()
	require.NoError(t, err)
	require.Len(t, saved, 2)
	assert.Equal(t, "first", saved[0].Title)
	assert.Equal(t, "second", saved[1].Title)
}

func TestFlushWithoutStorage(t *testing.T) {
	t.Parallel()
	logger, _ := logtest.NewNullLogger()
	rec := NewStepRecorder(logger, nil)
	require.NoError(t, rec.Step(context.Background(), "s", func(context.Context) error { return nil }))
	assert.NoError(t, rec.Flush())
	assert.Empty(t, rec.Steps())
}

type flakyStore struct {
	failSave bool
	saved    []entities.Step
}

func (s *flakyStore) SaveSteps(steps []entities.Step) error {
	if s.failSave {
		return errors.New("disk full")
	}
	s.saved = steps
	return nil
}

func (s *flakyStore) LoadSteps() ([]entities.Step, error) {
	return s.saved, nil
}

func TestFlushKeepsStepsWhenSaveFails(t *testing.T) {
	t.Parallel()
	logger, _ := logtest.NewNullLogger()
	store := &flakyStore{failSave: true}
	rec := NewStepRecorder(logger, store)
	noop := func(context.Context) error { return nil }

	require.NoError(t, rec.Step(context.Background(), "first", noop))
	require.NoError(t, rec.Step(context.Background(), "second", noop))

	err := rec.Flush()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Len(t, rec.Steps(), 2)
	assert.Empty(t, store.saved)

	store.failSave = false
	require.NoError(t, rec.Flush())
	assert.Empty(t, rec.Steps())
	require.Len(t, store.saved, 2)
	assert.Equal(t, "first", store.saved[0].Title)
	assert.Equal(t, "second", store.saved[1].Title)
}
