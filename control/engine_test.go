package control

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smart-traffic-control/types"
)

func engineAt(t *testing.T, cfg Config, lastSwitch time.Time, active types.Side) *Engine {
	t.Helper()
	e := NewEngine(cfg)
	e.state = SwitchState{ActiveSide: active, LastSwitch: lastSwitch}
	return e
}

func TestEvaluateSwitchesAfterInterval(t *testing.T) {
	// Smoothed counts from the worked scenario: left [2,3,2,4,3], right
	// [1,1,0,1,1], toy threshold, 6 seconds since the last switch.
	base := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	e := engineAt(t, ToyConfig(), base, types.SideRight)

	d := e.Evaluate(base.Add(6*time.Second), 2.8, 0.8)
	require.NotNil(t, d)
	assert.Equal(t, types.SideLeft, d.Winner)
	assert.Equal(t, types.SideLeft, e.State().ActiveSide)
	assert.Equal(t, base.Add(6*time.Second), e.State().LastSwitch)
}

func TestEvaluateRateLimited(t *testing.T) {
	// Same counts but only 3 seconds elapsed: no switch regardless of margin.
	base := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	e := engineAt(t, ToyConfig(), base, types.SideRight)

	d := e.Evaluate(base.Add(3*time.Second), 2.8, 0.8)
	assert.Nil(t, d)
	assert.Equal(t, types.SideRight, e.State().ActiveSide)
	assert.Equal(t, base, e.State().LastSwitch)
}

func TestEvaluateMarginRules(t *testing.T) {
	base := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	now := base.Add(time.Minute)

	tests := []struct {
		name       string
		cfg        Config
		left       float64
		right      float64
		wantWinner *types.Side
	}{
		{name: "tie never switches", cfg: ToyConfig(), left: 2, right: 2},
		{name: "diff equal to threshold never switches", cfg: RealConfig(), left: 3, right: 2},
		{name: "diff above threshold switches", cfg: RealConfig(), left: 3.2, right: 2, wantWinner: sidePtr(types.SideLeft)},
		{name: "any margin qualifies in toy mode", cfg: ToyConfig(), left: 0, right: 0.2, wantWinner: sidePtr(types.SideRight)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := engineAt(t, tt.cfg, base, types.SideLeft)
			d := e.Evaluate(now, tt.left, tt.right)
			if tt.wantWinner == nil {
				assert.Nil(t, d)
				return
			}
			require.NotNil(t, d)
			assert.Equal(t, *tt.wantWinner, d.Winner)
		})
	}
}

func TestEvaluateReaffirmDoesNotResetTimer(t *testing.T) {
	base := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	e := engineAt(t, ToyConfig(), base, types.SideLeft)

	// Left already holds green; a qualifying margin re-emits the pair but
	// leaves the switch timestamp alone.
	d := e.Evaluate(base.Add(10*time.Second), 4, 1)
	require.NotNil(t, d)
	assert.Equal(t, types.SideLeft, d.Winner)
	assert.Equal(t, base, e.State().LastSwitch)

	// So the other side can take over immediately once it wins.
	d = e.Evaluate(base.Add(11*time.Second), 1, 4)
	require.NotNil(t, d)
	assert.Equal(t, types.SideRight, d.Winner)
	assert.Equal(t, base.Add(11*time.Second), e.State().LastSwitch)
}

func TestEvaluateFirstFrameMaySwitchImmediately(t *testing.T) {
	e := NewEngine(ToyConfig())
	d := e.Evaluate(time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC), 1, 3)
	require.NotNil(t, d)
	assert.Equal(t, types.SideRight, d.Winner)
}

func TestResetRestartsRateLimiter(t *testing.T) {
	base := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	e := NewEngine(ToyConfig())
	e.Reset(base)

	assert.Nil(t, e.Evaluate(base.Add(2*time.Second), 5, 0))
	assert.NotNil(t, e.Evaluate(base.Add(5*time.Second), 5, 0))
}

func sidePtr(s types.Side) *types.Side {
	return &s
}
