package billing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalmesh/frontdesk/internal/patient"
	"github.com/vitalmesh/frontdesk/internal/roles"
	"github.com/vitalmesh/frontdesk/pkg/utils"
)

func newTestAgent(t *testing.T) *BillingAgent {
	t.Helper()
	binding := &roles.Binding{Session: patient.NewSession()}
	return New(binding, utils.NewConfig(nil))
}

func TestHandleCollectInsuranceInfo(t *testing.T) {
	ctx := context.Background()

	t.Run("valid arguments", func(t *testing.T) {
		ba := newTestAgent(t)

		_, err := ba.handleCollectInsuranceInfo(ctx, `{
			"insurance_provider": "Acme Health",
			"member_id": "M123",
			"group_number": "G9"
		}`)
		require.NoError(t, err)

		assert.Equal(t, "Provider: Acme Health, Member ID: M123, Group: G9",
			ba.binding.Session.InsuranceInfo)
		require.Len(t, ba.binding.Session.Notes, 1)
		assert.Contains(t, ba.binding.Session.Notes[0].Content, "Insurance information collected")
	})

	t.Run("invalid JSON", func(t *testing.T) {
		ba := newTestAgent(t)

		_, err := ba.handleCollectInsuranceInfo(ctx, `{"insurance_provider": }`)
		assert.Error(t, err)
	})
}

func TestHandleAddBillingQuestion(t *testing.T) {
	ctx := context.Background()

	t.Run("questions accumulate in order", func(t *testing.T) {
		ba := newTestAgent(t)

		_, err := ba.handleAddBillingQuestion(ctx, `{"question": "Is the MRI covered?"}`)
		require.NoError(t, err)
		_, err = ba.handleAddBillingQuestion(ctx, `{"question": "What is my copay?"}`)
		require.NoError(t, err)

		assert.Equal(t, []string{"Is the MRI covered?", "What is my copay?"},
			ba.binding.Session.BillingQuestions)
		assert.Len(t, ba.binding.Session.Notes, 2)
	})

	t.Run("empty question rejected", func(t *testing.T) {
		ba := newTestAgent(t)

		_, err := ba.handleAddBillingQuestion(ctx, `{"question": "  "}`)
		assert.Error(t, err)
		assert.Empty(t, ba.binding.Session.BillingQuestions)
	})
}
