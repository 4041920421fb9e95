package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeRefresher struct {
	calls []string
	fail  map[string]bool
}

func (f *fakeRefresher) Refresh(_ context.Context, symbol, period string) (int, error) {
	f.calls = append(f.calls, symbol+"@"+period)
	if f.fail[symbol] {
		return 0, errors.New("boom")
	}
	return 250, nil
}

func TestRunNow_SequentialAndTolerant(t *testing.T) {
	f := &fakeRefresher{fail: map[string]bool{"INFY.NS": true}}
	s := NewScheduler(context.Background(), f, []string{"TCS.NS", "INFY.NS", "SBIN.NS"}, "1y")

	res := s.RunNow()
	assert.Equal(t, []string{"TCS.NS@1y", "INFY.NS@1y", "SBIN.NS@1y"}, f.calls)
	assert.Equal(t, 2, res.Refreshed)
	assert.Equal(t, []string{"INFY.NS"}, res.Failed)
}

func TestRunNow_StopsWhenCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	f := &fakeRefresher{}
	s := NewScheduler(ctx, f, []string{"TCS.NS"}, "1y")

	res := s.RunNow()
	assert.Empty(t, f.calls)
	assert.Zero(t, res.Refreshed)
}

func TestRegister(t *testing.T) {
	s := NewScheduler(context.Background(), &fakeRefresher{}, nil, "1y")
	assert.NoError(t, s.Register("0 30 16 * * 1-5"))
	assert.Len(t, s.Cron.Entries(), 1)
	assert.Error(t, s.Register("not a cron"))

	s.Start()
	s.Stop()
}
