package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeMetadata(t *testing.T) {
	t.Run("typed body selected by action type", func(t *testing.T) {
		md, err := DecodeMetadata(ActionTypeDonation, []byte(`{"has_evidence":true,"amount":25.5,"currency":"USD"}`))
		require.NoError(t, err)

		assert.True(t, md.HasEvidence)
		details, ok := md.Details.(*DonationDetails)
		require.True(t, ok)
		require.NotNil(t, details.Amount)
		assert.Equal(t, 25.5, *details.Amount)
		assert.Equal(t, "USD", *details.Currency)
	})

	t.Run("empty metadata", func(t *testing.T) {
		md, err := DecodeMetadata(ActionTypeMentorship, nil)
		require.NoError(t, err)

		assert.False(t, md.HasEvidence)
		assert.IsType(t, &MentorshipDetails{}, md.Details)
	})

	t.Run("unknown action type", func(t *testing.T) {
		_, err := DecodeMetadata(ActionType("GOSSIP"), []byte(`{}`))
		assert.ErrorIs(t, err, ErrUnknownActionType)
	})

	t.Run("malformed json", func(t *testing.T) {
		_, err := DecodeMetadata(ActionTypeContent, []byte(`{"word_count":"many"}`))
		var validationErr *ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})
}

func TestMetadata_MarshalJSON(t *testing.T) {
	hours := 3.0
	md := Metadata{
		ContentLength: 120,
		HasMedia:      true,
		Details:       &VolunteerDetails{Hours: &hours},
	}

	raw, err := json.Marshal(md)
	require.NoError(t, err)
	assert.JSONEq(t, `{"content_length":120,"has_evidence":false,"has_media":true,"hours":3}`, string(raw))

	decoded, err := DecodeMetadata(ActionTypeVolunteer, raw)
	require.NoError(t, err)
	assert.Equal(t, &hours, decoded.Details.(*VolunteerDetails).Hours)
}
