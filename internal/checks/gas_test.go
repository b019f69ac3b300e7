package checks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimateGas(t *testing.T) {
	t.Parallel()
	src := `contract Gas {
    storage {
        var total: UInt256
    }

    init() {
        self.total = 0
    }

    public func pure(a: UInt256) -> UInt256 {
        return a + 1
    }

    public func callOut() {
        vault.send(1)
    }

    func bounded() {
        var i = 0
        while i < 5 {
            i = i + 1
        }
    }

    func unbounded(n: UInt256) {
        var i = 0
        while i < n {
            i = i + 1
        }
    }
}`
	estimates := EstimateGas(parseProg(t, src))
	require.Len(t, estimates, 5)

	byName := make(map[string]int64, len(estimates))
	for _, fg := range estimates {
		assert.Equal(t, "Gas", fg.Contract)
		byName[fg.Name] = fg.Estimate
	}

	// one storage write plus the slot read on the left-hand side
	assert.Equal(t, int64(costStorageWrite+costStorageRead), byName["init"])
	assert.Equal(t, int64(costArithmetic), byName["pure"])
	assert.Equal(t, int64(costExternalCall+costCallOverhead), byName["callOut"])
	// literal bound 5 gives 6 trips of (comparison + increment)
	assert.Equal(t, int64(6*(costComparison+costArithmetic)), byName["bounded"])
	// unknown bound falls back to the pessimistic trip count
	assert.Equal(t, int64(defaultLoopFactor*(costComparison+costArithmetic)), byName["unbounded"])
}

func TestEstimateGasBranchesChargeWorstCase(t *testing.T) {
	t.Parallel()
	src := `contract C {
    storage {
        var total: UInt256
    }
    init() { self.total = 0 }
    func choose(flag: Bool) {
        if flag {
            self.total = 1
        } else {
            let x = 1 + 1
        }
    }
}`
	estimates := EstimateGas(parseProg(t, src))
	for _, fg := range estimates {
		if fg.Name != "choose" {
			continue
		}
		// the storage-writing then branch dominates the literal else
		assert.Equal(t, int64(costStorageWrite+costStorageRead), fg.Estimate)
		return
	}
	t.Fatal("choose not estimated")
}

func TestDetectGasLimit(t *testing.T) {
	t.Parallel()
	src := `contract Hot {
    init() {}

    public func drain() {
        vault.a(1)
        vault.b(1)
    }

    public func cheap() {}
}`
	issues, err := DetectGasLimit("test.swsc", parseProg(t, src), 5000)
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, "gas-limit", issues[0].Rule)
	assert.Contains(t, issues[0].Message, "Hot.drain")
	assert.Contains(t, issues[0].Message, "threshold 5000")
}

func TestDetectGasLimitDefaultThreshold(t *testing.T) {
	t.Parallel()
	src := `func f(a: UInt256) -> UInt256 { return a + 1 }`
	issues, err := DetectGasLimit("test.swsc", parseProg(t, src), 0)
	require.NoError(t, err)
	assert.Empty(t, issues)
}
