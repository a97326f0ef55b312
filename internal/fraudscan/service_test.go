package fraudscan

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/txlens/txlens/internal/abiresolve"
	"github.com/txlens/txlens/internal/pkg/validator"
	"github.com/txlens/txlens/internal/txdecode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	validator.Init()
}

const validReply = `{
	"riskLevel": "medium",
	"fraudScore": 45,
	"description": "Token approval to an unverified spender",
	"reasoning": "The call grants spending rights over the caller's balance",
	"warnings": ["Unlimited approval amount"],
	"functionName": "approve",
	"functionDescription": "Authorizes a spender for a token allowance",
	"aiConfidence": 80
}`

type reasonerStub struct {
	assess func(ctx context.Context, req AssessmentRequest) (json.RawMessage, error)
	calls  int
}

func (r *reasonerStub) Assess(ctx context.Context, req AssessmentRequest) (json.RawMessage, error) {
	r.calls++
	return r.assess(ctx, req)
}

func interactionTx() txdecode.DecodedTransaction {
	return txdecode.DecodedTransaction{
		To:                    "0x2222222222222222222222222222222222222222",
		Value:                 "0",
		ChainID:               "1",
		GasLimit:              120000,
		Data:                  "0x095ea7b3",
		IsContractInteraction: true,
		Classification:        txdecode.ClassificationContractInteraction,
		Call:                  &txdecode.DecodedCall{Method: "approve(address,uint256)", Arguments: []txdecode.Argument{}},
	}
}

func noneResolution() abiresolve.InterfaceResolution {
	return abiresolve.InterfaceResolution{Provenance: abiresolve.ProvenanceNone}
}

func TestNew(t *testing.T) {
	t.Run("requires a reasoning client", func(t *testing.T) {
		_, err := New(nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrReasonerRequired)
	})
}

func TestService_Evaluate_ShortCircuits(t *testing.T) {
	reasoner := &reasonerStub{
		assess: func(context.Context, AssessmentRequest) (json.RawMessage, error) {
			t.Fatal("the reasoning service must not be invoked")
			return nil, nil
		},
	}
	svc, err := New(reasoner)
	require.NoError(t, err)

	t.Run("plain transfer gets the fixed low-risk verdict", func(t *testing.T) {
		tx := txdecode.DecodedTransaction{
			To:             "0x1111111111111111111111111111111111111111",
			Value:          "1000000000000000000",
			Classification: txdecode.ClassificationEthTransfer,
		}

		out := svc.Evaluate(t.Context(), tx, noneResolution())

		require.True(t, out.Success)
		assert.Equal(t, "low", out.Assessment.RiskTier)
		assert.Equal(t, 5, out.Assessment.FraudScore)
		assert.Equal(t, "Simple ETH transfer", out.Assessment.Description)
		assert.Equal(t, 95, out.Assessment.AIConfidence)
		assert.NotNil(t, out.Assessment.Warnings)
		assert.Empty(t, out.Assessment.Warnings)
	})

	t.Run("contract creation gets the fixed unknown-pattern verdict", func(t *testing.T) {
		tx := txdecode.DecodedTransaction{
			IsContractCreation: true,
			Classification:     txdecode.ClassificationContractCreation,
		}

		out := svc.Evaluate(t.Context(), tx, noneResolution())

		require.True(t, out.Success)
		assert.Equal(t, "high", out.Assessment.RiskTier)
		assert.Equal(t, 100, out.Assessment.FraudScore)
		assert.Equal(t, 0, out.Assessment.AIConfidence)
		assert.Equal(t, []string{"Unknown transaction pattern"}, out.Assessment.Warnings)
	})

	t.Run("unclassified transactions get the fixed unknown-pattern verdict", func(t *testing.T) {
		tx := txdecode.DecodedTransaction{Classification: txdecode.ClassificationUnknown}

		out := svc.Evaluate(t.Context(), tx, noneResolution())

		require.True(t, out.Success)
		assert.Equal(t, "high", out.Assessment.RiskTier)
		assert.Equal(t, []string{"Unknown transaction pattern"}, out.Assessment.Warnings)
	})

	assert.Zero(t, reasoner.calls)
}

func TestService_Evaluate_Interaction(t *testing.T) {
	t.Run("accepts a schema-conforming reply", func(t *testing.T) {
		reasoner := &reasonerStub{
			assess: func(_ context.Context, req AssessmentRequest) (json.RawMessage, error) {
				assert.Equal(t, "contract_interaction", req.Classification)
				assert.Equal(t, "1", req.ChainID)
				assert.Equal(t, "0x2222222222222222222222222222222222222222", req.To)
				require.NotNil(t, req.DecodedCall)
				assert.Equal(t, "approve(address,uint256)", req.DecodedCall.Method)
				return json.RawMessage(validReply), nil
			},
		}
		svc, err := New(reasoner)
		require.NoError(t, err)

		out := svc.Evaluate(t.Context(), interactionTx(), noneResolution())

		require.True(t, out.Success)
		assert.Equal(t, "medium", out.Assessment.RiskTier)
		assert.Equal(t, 45, out.Assessment.FraudScore)
		assert.Equal(t, []string{"Unlimited approval amount"}, out.Assessment.Warnings)
		assert.Equal(t, 80, out.Assessment.AIConfidence)
		require.NotNil(t, out.Assessment.ContractInfo)
		assert.Equal(t, "approve", out.Assessment.ContractInfo.FunctionName)
		assert.NotEmpty(t, out.Timestamp)
	})

	t.Run("transport failure degrades deterministically", func(t *testing.T) {
		reasoner := &reasonerStub{
			assess: func(context.Context, AssessmentRequest) (json.RawMessage, error) {
				return nil, errors.New("upstream 503")
			},
		}
		svc, err := New(reasoner)
		require.NoError(t, err)

		out := svc.Evaluate(t.Context(), interactionTx(), noneResolution())

		require.True(t, out.Success)
		assert.Equal(t, "high", out.Assessment.RiskTier)
		assert.Equal(t, 100, out.Assessment.FraudScore)
		assert.Equal(t, "AI analysis failed", out.Assessment.Description)
		assert.Equal(t, "Unable to analyze transaction due to AI service error", out.Assessment.Reasoning)
		assert.Equal(t, []string{"AI analysis unavailable"}, out.Assessment.Warnings)
		assert.Equal(t, 0, out.Assessment.AIConfidence)
	})

	t.Run("timeout degrades deterministically", func(t *testing.T) {
		reasoner := &reasonerStub{
			assess: func(ctx context.Context, _ AssessmentRequest) (json.RawMessage, error) {
				<-ctx.Done()
				return nil, ctx.Err()
			},
		}
		svc, err := New(reasoner, WithTimeout(10*time.Millisecond))
		require.NoError(t, err)

		out := svc.Evaluate(t.Context(), interactionTx(), noneResolution())
		assert.Equal(t, "AI analysis failed", out.Assessment.Description)
	})

	for _, tc := range []struct {
		name  string
		reply string
	}{
		{
			name:  "missing fraudScore",
			reply: `{"riskLevel":"low","description":"d","reasoning":"r","warnings":[],"functionName":"f","functionDescription":"fd","aiConfidence":50}`,
		},
		{
			name:  "null warnings",
			reply: `{"riskLevel":"low","fraudScore":10,"description":"d","reasoning":"r","warnings":null,"functionName":"f","functionDescription":"fd","aiConfidence":50}`,
		},
		{
			name:  "riskLevel outside the vocabulary",
			reply: `{"riskLevel":"critical","fraudScore":10,"description":"d","reasoning":"r","warnings":[],"functionName":"f","functionDescription":"fd","aiConfidence":50}`,
		},
		{
			name:  "fraudScore above the bound",
			reply: `{"riskLevel":"low","fraudScore":150,"description":"d","reasoning":"r","warnings":[],"functionName":"f","functionDescription":"fd","aiConfidence":50}`,
		},
		{
			name:  "not a JSON object",
			reply: `"fine"`,
		},
		{
			name:  "prose instead of JSON",
			reply: `The transaction looks safe to me.`,
		},
	} {
		t.Run("degrades on a reply with "+tc.name, func(t *testing.T) {
			reasoner := &reasonerStub{
				assess: func(context.Context, AssessmentRequest) (json.RawMessage, error) {
					return json.RawMessage(tc.reply), nil
				},
			}
			svc, err := New(reasoner)
			require.NoError(t, err)

			out := svc.Evaluate(t.Context(), interactionTx(), noneResolution())

			require.True(t, out.Success)
			assert.Equal(t, "high", out.Assessment.RiskTier)
			assert.Equal(t, 100, out.Assessment.FraudScore)
			assert.Equal(t, "AI analysis failed", out.Assessment.Description)
		})
	}

	t.Run("empty warnings array is accepted", func(t *testing.T) {
		reply := `{"riskLevel":"low","fraudScore":10,"description":"d","reasoning":"r","warnings":[],"functionName":"f","functionDescription":"fd","aiConfidence":50}`
		reasoner := &reasonerStub{
			assess: func(context.Context, AssessmentRequest) (json.RawMessage, error) {
				return json.RawMessage(reply), nil
			},
		}
		svc, err := New(reasoner)
		require.NoError(t, err)

		out := svc.Evaluate(t.Context(), interactionTx(), noneResolution())

		require.True(t, out.Success)
		assert.Equal(t, "low", out.Assessment.RiskTier)
		assert.NotNil(t, out.Assessment.Warnings)
		assert.Empty(t, out.Assessment.Warnings)
	})

	t.Run("boundary scores are accepted", func(t *testing.T) {
		reply := `{"riskLevel":"high","fraudScore":100,"description":"d","reasoning":"r","warnings":[],"functionName":"f","functionDescription":"fd","aiConfidence":0}`
		reasoner := &reasonerStub{
			assess: func(context.Context, AssessmentRequest) (json.RawMessage, error) {
				return json.RawMessage(reply), nil
			},
		}
		svc, err := New(reasoner)
		require.NoError(t, err)

		out := svc.Evaluate(t.Context(), interactionTx(), noneResolution())

		require.True(t, out.Success)
		assert.Equal(t, 100, out.Assessment.FraudScore)
		assert.Equal(t, 0, out.Assessment.AIConfidence)
	})
}
