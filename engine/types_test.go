package engine

import (
	"math"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunStateJSON(t *testing.T) {
	t.Run("NaNLossEncodesAsNull", func(t *testing.T) {
		s := RunState{K: 3, Loss: math.NaN(), Phase: PhaseReady}

		data, err := json.Marshal(s)
		require.NoError(t, err)
		assert.JSONEq(t, `{"k":3,"iteration":0,"loss":null,"converged":false,"phase":1}`, string(data))

		var decoded RunState
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.True(t, math.IsNaN(decoded.Loss))
		assert.Equal(t, PhaseReady, decoded.Phase)
	})

	t.Run("FiniteLossRoundtrips", func(t *testing.T) {
		s := RunState{K: 4, Iteration: 7, Loss: 12.5, Converged: true, Phase: PhaseConverged}

		data, err := json.Marshal(s)
		require.NoError(t, err)

		var decoded RunState
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, s, decoded)
	})
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "Empty", PhaseEmpty.String())
	assert.Equal(t, "Ready", PhaseReady.String())
	assert.Equal(t, "Running", PhaseRunning.String())
	assert.Equal(t, "Converged", PhaseConverged.String())
	assert.Equal(t, "Unknown(99)", Phase(99).String())
}

func TestRenderStateClusterAccessors(t *testing.T) {
	t.Run("NilBeforeFirstStep", func(t *testing.T) {
		c := newTestController(t, func(o *Options) { o.Params.Seed = 3 })

		rs := c.RenderState()
		assert.Nil(t, rs.ClusterMembers())
		assert.Nil(t, rs.ClusterSizes())
	})

	t.Run("CoversEveryPoint", func(t *testing.T) {
		c := newTestController(t, func(o *Options) { o.Params.Seed = 3 })
		rs, err := c.Step()
		require.NoError(t, err)

		members := rs.ClusterMembers()
		require.Len(t, members, rs.State.K)

		total := uint64(0)
		for _, bm := range members {
			total += bm.GetCardinality()
		}
		assert.Equal(t, uint64(len(rs.Dataset)), total)

		sizes := rs.ClusterSizes()
		require.Len(t, sizes, rs.State.K)
		for i, bm := range members {
			assert.Equal(t, sizes[i], int(bm.GetCardinality()))
		}
	})
}
