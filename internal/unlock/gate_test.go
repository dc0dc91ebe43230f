package unlock

import (
	"context"
	"errors"
	"testing"
	"testing/synctest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sangeetx/sangeetx/internal/player"
)

func TestDetectPlatform(t *testing.T) {
	env := func(vars map[string]string) func(string) string {
		return func(k string) string { return vars[k] }
	}
	tests := []struct {
		name    string
		setting string
		env     map[string]string
		want    Platform
	}{
		{"forced mobile", "mobile", nil, Mobile},
		{"forced desktop on termux", "Desktop", map[string]string{"TERMUX_VERSION": "0.118"}, Desktop},
		{"auto termux", "auto", map[string]string{"TERMUX_VERSION": "0.118"}, Mobile},
		{"auto android", "", map[string]string{"ANDROID_ROOT": "/system"}, Mobile},
		{"auto termux prefix", "auto", map[string]string{"PREFIX": "/data/data/com.termux/files/usr"}, Mobile},
		{"auto plain linux", "auto", map[string]string{"HOME": "/home/u"}, Desktop},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectPlatform(tt.setting, env(tt.env)))
		})
	}
}

func TestGate_DesktopNeverIntercepts(t *testing.T) {
	out := player.NewMockOutput()
	c := player.NewController(out.NewElement)
	defer c.Close()
	g := NewGate(Desktop, c)

	assert.False(t, g.Intercept())
	assert.False(t, g.Prompt())
	assert.Nil(t, g.Gesture())
	assert.True(t, g.Unlocked())
	assert.Zero(t, len(out.Elements()), "desktop gesture does not prime")
}

func TestGate_MobileInterceptThenConfirm(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		out := player.NewMockOutput()
		out.RequireActivation = true
		c := player.NewController(out.NewElement)
		defer c.Close()
		g := NewGate(Mobile, c)

		require.True(t, g.Intercept())
		assert.True(t, g.Prompt())
		assert.False(t, g.Unlocked())

		deferred, prime := g.Confirm()
		assert.True(t, deferred)
		require.NotNil(t, prime)
		require.NoError(t, prime.Wait(context.Background()))
		synctest.Wait()

		assert.False(t, g.Prompt())
		assert.True(t, g.Unlocked())
		assert.True(t, out.Activated())
		assert.False(t, g.Intercept())
	})
}

func TestGate_GesturePrimesOnce(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		out := player.NewMockOutput()
		c := player.NewController(out.NewElement)
		defer c.Close()
		g := NewGate(Mobile, c)

		p := g.Gesture()
		require.NotNil(t, p)
		require.NoError(t, p.Wait(context.Background()))
		assert.Nil(t, g.Gesture())
		assert.Equal(t, 1, out.Last().PrimeCalls())
	})
}

func TestGate_Dismiss(t *testing.T) {
	g := NewGate(Mobile, nil)
	require.True(t, g.Intercept())
	assert.True(t, g.Dismiss())
	assert.False(t, g.Prompt())
	assert.False(t, g.Unlocked())
	assert.False(t, g.Dismiss())
}

type failingPrimer struct{}

func (failingPrimer) Prime() *player.Pending {
	c := player.NewController(func() player.Element { return nil })
	_ = c.Close()
	return c.Prime()
}

func TestGate_FailedPrimeRelocks(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		g := NewGate(Mobile, failingPrimer{})
		p := g.Gesture()
		require.NotNil(t, p)
		err := p.Wait(context.Background())
		assert.True(t, errors.Is(err, player.ErrClosed))
		synctest.Wait()
		assert.False(t, g.Unlocked())
	})
}

func TestGate_Block(t *testing.T) {
	g := NewGate(Desktop, nil)
	g.Gesture()
	require.True(t, g.Unlocked())

	g.Block()
	assert.True(t, g.Prompt())
	assert.False(t, g.Unlocked())
}
