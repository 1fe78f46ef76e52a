package batch_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/NethermindEth/t9n/batch"
	"github.com/NethermindEth/t9n/metrics"
	"github.com/NethermindEth/t9n/mocks"
	"github.com/NethermindEth/t9n/t9n"
	"github.com/NethermindEth/t9n/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestRun(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	validator := mocks.NewMockFileValidator(mockCtrl)

	errBroken := errors.New("broken")
	paths := make([]string, 0, 30)
	for i := range 30 {
		path := fmt.Sprintf("tx-%d.json", i)
		paths = append(paths, path)

		call := validator.EXPECT().ValidateFile(path)
		switch i % 3 {
		case 0:
			call.Return(&t9n.Result{Valid: true}, nil)
		case 1:
			call.Return(&t9n.Result{Valid: false}, nil)
		default:
			call.Return(&t9n.Result{State: t9n.StateRejected}, errBroken)
		}
	}

	outcomes, err := batch.Run(context.Background(), paths, validator, 4)
	require.NoError(t, err)
	require.Len(t, outcomes, len(paths))

	for i, outcome := range outcomes {
		assert.Equal(t, paths[i], outcome.Path)
	}
	assert.Equal(t, metrics.VerdictValid, outcomes[0].Verdict())
	assert.Equal(t, metrics.VerdictInvalid, outcomes[1].Verdict())
	assert.Equal(t, metrics.VerdictRejected, outcomes[2].Verdict())
	assert.ErrorIs(t, outcomes[2].Err, errBroken)

	assert.Equal(t, batch.Summary{Valid: 10, Invalid: 10, Rejected: 10}, batch.Summarize(outcomes))
}

func TestRunCancelled(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	// no expectations: a cancelled run must not validate anything
	validator := mocks.NewMockFileValidator(mockCtrl)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outcomes, err := batch.Run(ctx, []string{"a.json", "b.json"}, validator, 0)
	require.ErrorIs(t, err, context.Canceled)
	assert.Len(t, outcomes, 2)
}

func TestRunFixtures(t *testing.T) {
	paths := []string{
		"../t9n/testdata/declare_v2.json",
		"../t9n/testdata/invoke_v3.json",
		"../t9n/testdata/deploy_account_v3.json",
		"../t9n/testdata/unsupported_invoke.json",
	}
	v := t9n.New(utils.Sepolia.ChainID()).WithPublicKey(utils.HexToFelt(t, "0x77a3b314db07c45076d11f62b6f9e748a39790441823307743cf00d6597ea43"))

	outcomes, err := batch.Run(context.Background(), paths, v, 2)
	require.NoError(t, err)
	assert.Equal(t, batch.Summary{Valid: 3, Rejected: 1}, batch.Summarize(outcomes))
	assert.ErrorIs(t, outcomes[3].Err, t9n.ErrUnsupportedTypeOrVersion)
}
