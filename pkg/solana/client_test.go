package solana

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubNode serves a fixed JSON-RPC result for every method call.
func stubNode(t *testing.T, result string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID interface{} `json:"id"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		id, err := json.Marshal(req.ID)
		require.NoError(t, err)

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%s,"result":%s}`, id, result)
	}))
}

func TestGetSignatureStatus_TransactionError(t *testing.T) {
	node := stubNode(t, `{"context":{"slot":100},"value":[{"slot":100,"confirmations":null,"confirmationStatus":"finalized","err":{"InstructionError":[0,{"Custom":1}]}}]}`)
	defer node.Close()

	var sig Signature
	sig[0] = 1

	// A rooted transaction that failed on-chain must not look confirmed.
	status, err := New(node.URL).GetSignatureStatus(sig, CommitmentConfirmed)
	require.Error(t, err)
	require.NotNil(t, status)
	require.NotNil(t, status.ErrorResult)
	assert.Equal(t, TransactionErrorInstructionError, status.ErrorResult.ErrorKey())
}

func TestGetSignatureStatus_Confirmed(t *testing.T) {
	node := stubNode(t, `{"context":{"slot":100},"value":[{"slot":100,"confirmations":5,"confirmationStatus":"confirmed","err":null}]}`)
	defer node.Close()

	var sig Signature
	sig[0] = 1

	status, err := New(node.URL).GetSignatureStatus(sig, CommitmentConfirmed)
	require.NoError(t, err)
	require.NotNil(t, status)
	assert.Nil(t, status.ErrorResult)
	assert.True(t, status.Confirmed())
}

func TestSignatureStatus(t *testing.T) {
	zero, one := 0, 1

	testCases := []struct {
		s         SignatureStatus
		confirmed bool
		finalized bool
	}{
		{
			s: SignatureStatus{
				Slot:               10,
				ErrorResult:        nil,
				Confirmations:      &zero,
				ConfirmationStatus: "",
			},
		},
		{
			s: SignatureStatus{
				Slot:               10,
				ErrorResult:        nil,
				Confirmations:      &zero,
				ConfirmationStatus: "random",
			},
		},
		{
			s: SignatureStatus{
				Slot:               10,
				ErrorResult:        nil,
				Confirmations:      &zero,
				ConfirmationStatus: confirmationStatusProcessed,
			},
		},
		{
			s: SignatureStatus{
				Slot:               10,
				ErrorResult:        nil,
				Confirmations:      &one,
				ConfirmationStatus: "",
			},
			confirmed: true,
		},
		{
			s: SignatureStatus{
				Slot:               10,
				ErrorResult:        nil,
				Confirmations:      &zero,
				ConfirmationStatus: confirmationStatusConfirmed,
			},
			confirmed: true,
		},
		{
			s: SignatureStatus{
				Slot:               10,
				ErrorResult:        nil,
				Confirmations:      &zero,
				ConfirmationStatus: confirmationStatusFinalized,
			},
			confirmed: true,
			finalized: true,
		},
		{
			s: SignatureStatus{
				Slot:          10,
				ErrorResult:   nil,
				Confirmations: nil,
			},
			confirmed: true,
			finalized: true,
		},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.confirmed, tc.s.Confirmed())
		assert.Equal(t, tc.finalized, tc.s.Finalized())
	}
}
