package nutrikit_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	nutrikit "github.com/mealmind/nutrikit"
	"github.com/mealmind/nutrikit/pkg/entitlement"
	"github.com/mealmind/nutrikit/pkg/kv"
	"github.com/mealmind/nutrikit/pkg/oracle"
)

type staticProvider struct {
	info entitlement.CustomerInfo
}

func (p *staticProvider) CustomerInfo(ctx context.Context) (entitlement.CustomerInfo, error) {
	return p.info, nil
}

func (p *staticProvider) Offerings(ctx context.Context) (entitlement.Offerings, error) {
	return entitlement.Offerings{}, nil
}

func (p *staticProvider) PurchaseProduct(ctx context.Context, productID string) (entitlement.PurchaseResult, error) {
	return entitlement.PurchaseResult{}, nil
}

func (p *staticProvider) RestorePurchases(ctx context.Context) (entitlement.CustomerInfo, error) {
	return p.info, nil
}

func newState(t *testing.T) *nutrikit.State {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"answer": "eat your vegetables"})
	}))
	t.Cleanup(server.Close)

	state, err := nutrikit.New(context.Background(),
		nutrikit.Config{Oracle: oracle.Config{Endpoint: server.URL}},
		nutrikit.WithStore(kv.NewMemoryStore()),
		nutrikit.WithProvider(&staticProvider{}),
	)
	require.NoError(t, err)
	return state
}

func TestNew(t *testing.T) {
	t.Parallel()

	state := newState(t)

	// No premium entitlement from the static provider.
	assert.Equal(t, entitlement.TierFree, state.Entitlements.Tier())
	assert.True(t, state.Usage.CanAskOracleQuestion())
}

func TestState_AskOracle(t *testing.T) {
	t.Parallel()

	t.Run("answers and consumes quota", func(t *testing.T) {
		t.Parallel()

		state := newState(t)
		before := state.Usage.RemainingOracleQuestions()

		answer, ok := state.AskOracle(context.Background(), "what should I eat?")
		require.True(t, ok)
		assert.Equal(t, "eat your vegetables", answer.Text)
		assert.Equal(t, before-1, state.Usage.RemainingOracleQuestions())
	})

	t.Run("denied once quota is exhausted", func(t *testing.T) {
		t.Parallel()

		state := newState(t)
		ctx := context.Background()

		for state.Usage.CanAskOracleQuestion() {
			_, ok := state.AskOracle(ctx, "another question")
			require.True(t, ok)
		}

		_, ok := state.AskOracle(ctx, "one too many")
		assert.False(t, ok)
	})
}
