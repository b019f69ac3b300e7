package checks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectTaintFlowsStorageWrite(t *testing.T) {
	t.Parallel()
	src := `contract C {
    storage {
        var limit: UInt256
    }
    init() { self.limit = 0 }

    public func setLimit(newLimit: UInt256) {
        self.limit = newLimit
    }

    public func setLimitChecked(newLimit: UInt256) {
        require(newLimit < 1000, "limit too high")
        self.limit = newLimit
    }
}`
	issues, err := DetectTaintFlows("test.swsc", parseProg(t, src))
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, "taint-storage-write", issues[0].Rule)
	assert.Contains(t, issues[0].Message, `"limit"`)
}

func TestDetectTaintFlowsExternalCall(t *testing.T) {
	t.Parallel()
	src := `contract C {
    init() {}

    public func forward(amount: UInt256) {
        vault.send(amount)
    }

    public func forwardChecked(amount: UInt256) {
        require(amount > 0)
        vault.send(amount)
    }
}`
	issues, err := DetectTaintFlows("test.swsc", parseProg(t, src))
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, "taint-external-call", issues[0].Rule)
	assert.Contains(t, issues[0].Message, "forward")
}

func TestTaintPropagatesThroughBindings(t *testing.T) {
	t.Parallel()
	src := `contract C {
    storage {
        var fee: UInt256
    }
    init() { self.fee = 0 }

    public func setFee(raw: UInt256) {
        let scaled = raw * 100
        self.fee = scaled
    }
}`
	issues, err := DetectTaintFlows("test.swsc", parseProg(t, src))
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, "taint-storage-write", issues[0].Rule)
}

func TestTaintIgnoresPrivateAndInit(t *testing.T) {
	t.Parallel()
	src := `contract C {
    storage {
        var fee: UInt256
    }
    init(fee: UInt256) {
        self.fee = fee
    }
    func internalSet(v: UInt256) {
        self.fee = v
    }
}`
	issues, err := DetectTaintFlows("test.swsc", parseProg(t, src))
	require.NoError(t, err)
	assert.Empty(t, issues)
}
