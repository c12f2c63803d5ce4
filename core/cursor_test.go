package core_test

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peggy-bridge/orchestrator/core"
)

func TestEventCursorAdvance(t *testing.T) {
	cases := map[string]struct {
		start   uint64
		to      uint64
		want    uint64
		wantErr bool
	}{
		"forward":   {start: 1000, to: 1050, want: 1050},
		"same":      {start: 1000, to: 1000, want: 1000},
		"from zero": {start: 0, to: 7, want: 7},
		"backwards": {start: 1000, to: 999, want: 1000, wantErr: true},
	}
	for n, c := range cases {
		t.Run(n, func(t *testing.T) {
			cursor := core.NewEventCursor(c.start)
			err := cursor.Advance(c.to)
			if c.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, core.ErrOutOfOrderCursor))
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, c.want, cursor.Current())
		})
	}
}

func TestEventCursorIsMonotone(t *testing.T) {
	cursor := core.NewEventCursor(10)
	prev := cursor.Current()
	for _, to := range []uint64{12, 12, 5, 30, 29, 31, 0, 31} {
		_ = cursor.Advance(to)
		assert.GreaterOrEqual(t, cursor.Current(), prev)
		prev = cursor.Current()
	}
	assert.Equal(t, uint64(31), cursor.Current())
}
