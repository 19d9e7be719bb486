package retryx_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"cs_market/pkg/retryx"
)

func TestDo(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	errBoom := errors.New("boom")

	t.Run("succeeds after transient failures", func(*testing.T) {
		attempts := 0

		err := retryx.Do(ctx, 5, time.Millisecond, func() error {
			attempts++
			if attempts < 3 {
				return errBoom
			}
			return nil
		})

		rq.NoError(err)
		rq.Equal(3, attempts)
	})

	t.Run("stops after max attempts", func(*testing.T) {
		attempts := 0

		err := retryx.Do(ctx, 3, time.Millisecond, func() error {
			attempts++
			return errBoom
		})

		rq.ErrorIs(err, errBoom)
		rq.Equal(3, attempts)
	})

	t.Run("permanent error stops immediately", func(*testing.T) {
		attempts := 0

		err := retryx.Do(ctx, 5, time.Millisecond, func() error {
			attempts++
			return retryx.Permanent(errBoom)
		})

		rq.ErrorIs(err, errBoom)
		rq.Equal(1, attempts)
	})

	t.Run("cancelled context stops retrying", func(*testing.T) {
		cancelCtx, cancel := context.WithCancel(ctx)
		cancel()

		err := retryx.Do(cancelCtx, 5, time.Minute, func() error {
			return errBoom
		})

		rq.Error(err)
	})
}
