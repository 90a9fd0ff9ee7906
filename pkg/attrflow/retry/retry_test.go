package retry

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBusy = errors.New("script queue busy")

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return false }

func fastConfig(attempts int) Config {
	return NewConfig(
		WithMaxAttempts(attempts),
		WithInitialBackoff(time.Millisecond),
		WithMaxBackoff(2*time.Millisecond),
		WithJitter(0),
	)
}

func TestCategorize(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Category
	}{
		{"nil", nil, CategoryPermanent},
		{"plain", errBusy, CategoryPermanent},
		{"transient", Transient(errBusy, "start scripts"), CategoryTransient},
		{"wrapped transient", fmt.Errorf("outer: %w", Transient(errBusy, "")), CategoryTransient},
		{"permanent", Permanent(errBusy, ""), CategoryPermanent},
		{"timeout", fmt.Errorf("call: %w", timeoutErr{}), CategoryTransient},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Categorize(tt.err))
		})
	}
}

func TestCategorizedError(t *testing.T) {
	err := &CategorizedError{Err: errBusy, Category: CategoryTransient, Attempts: 2, Context: "start scripts"}
	assert.Equal(t, "start scripts: script queue busy (category: transient, attempts: 2)", err.Error())
	assert.ErrorIs(t, err, errBusy)
	assert.Equal(t, "unknown", Category(9).String())
}

func TestDo_SucceedsAfterTransientFailures(t *testing.T) {
	calls := 0
	res := Do(context.Background(), fastConfig(3), func(context.Context) (string, error) {
		calls++
		if calls < 3 {
			return "", Transient(errBusy, "")
		}
		return "ok", nil
	})

	require.NoError(t, res.Err)
	assert.Equal(t, "ok", res.Value)
	assert.Equal(t, 3, res.Attempts)
}

func TestDo_PermanentStopsImmediately(t *testing.T) {
	calls := 0
	res := Do(context.Background(), fastConfig(5), func(context.Context) (struct{}, error) {
		calls++
		return struct{}{}, errBusy
	})

	assert.ErrorIs(t, res.Err, errBusy)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, res.Attempts)
}

func TestDo_ExhaustsAttempts(t *testing.T) {
	res := Do(context.Background(), fastConfig(2), func(context.Context) (int, error) {
		return 0, Transient(errBusy, "")
	})

	var catErr *CategorizedError
	require.ErrorAs(t, res.Err, &catErr)
	assert.Equal(t, "max retries exceeded", catErr.Context)
	assert.Equal(t, 2, res.Attempts)
	assert.ErrorIs(t, res.Err, errBusy)
}

func TestDo_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	res := Do(ctx, fastConfig(3), func(context.Context) (int, error) {
		calls++
		return 0, nil
	})

	assert.ErrorIs(t, res.Err, context.Canceled)
	assert.Zero(t, calls)
}

func TestDo_CustomRetryable(t *testing.T) {
	calls := 0
	cfg := fastConfig(3)
	cfg.RetryableFunc = func(err error) bool { return errors.Is(err, errBusy) }

	res := Do(context.Background(), cfg, func(context.Context) (int, error) {
		calls++
		return 0, errBusy
	})

	assert.Error(t, res.Err)
	assert.Equal(t, 3, calls)
}

func TestDo_ZeroAttemptsRunsOnce(t *testing.T) {
	calls := 0
	res := Do(context.Background(), Config{}, func(context.Context) (int, error) {
		calls++
		return 7, nil
	})

	require.NoError(t, res.Err)
	assert.Equal(t, 7, res.Value)
	assert.Equal(t, 1, calls)
}
