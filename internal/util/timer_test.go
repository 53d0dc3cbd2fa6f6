package util_test

import (
	"testing"

	"github.com/lsftools/lsbacct/internal/util"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestRetryTimer(t *testing.T) {
	t.Run("Exit at first", func(tt *testing.T) {
		var called int
		err := util.NewExpRetryTimer(3).Run(func(seq int) (bool, error) {
			called++
			return true, nil
		})
		assert.NoError(tt, err)
		assert.Equal(tt, 1, called)
	})

	t.Run("Exit after retry", func(tt *testing.T) {
		var seqs []int
		err := util.NewNoWaitRetryTimer(5).Run(func(seq int) (bool, error) {
			seqs = append(seqs, seq)
			return seq == 2, nil
		})
		assert.NoError(tt, err)
		assert.Equal(tt, []int{0, 1, 2}, seqs)
	})

	t.Run("Limit exceeded", func(tt *testing.T) {
		var called int
		err := util.NewNoWaitRetryTimer(3).Run(func(seq int) (bool, error) {
			called++
			return false, nil
		})
		assert.Equal(tt, util.ErrRetryLimitExceeded, err)
		assert.Equal(tt, 3, called)
	})

	t.Run("Error stops retry", func(tt *testing.T) {
		errStop := errors.New("stop")
		err := util.NewNoWaitRetryTimer(3).Run(func(seq int) (bool, error) {
			return false, errStop
		})
		assert.Equal(tt, errStop, err)
	})
}
