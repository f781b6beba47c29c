package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsedData_UnmarshalTypedPayload(t *testing.T) {
	var p ParsedData
	err := json.Unmarshal([]byte(`{"type":"award","data":{"title":"USAMO","level":"national"},"confidence":"high","original":"USAMO"}`), &p)
	require.NoError(t, err)

	assert.Equal(t, ParsedAward, p.Type)
	assert.Equal(t, AwardData{Title: "USAMO", Level: AwardLevelNational}, p.Data)
	assert.Equal(t, ConfidenceHigh, p.Confidence)
}

func TestParsedData_UnmarshalNullData(t *testing.T) {
	var p ParsedData
	require.NoError(t, json.Unmarshal([]byte(`{"type":"gpa","data":null,"confidence":"low","original":""}`), &p))
	assert.Equal(t, GPAData{}, p.Data)
}

func TestParsedData_UnmarshalErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"unknown type", `{"type":"essay","data":{}}`},
		{"payload mismatch", `{"type":"sat","data":{"value":"high"}}`},
		{"not an object", `[]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p ParsedData
			assert.Error(t, json.Unmarshal([]byte(tt.doc), &p))
		})
	}
}

func TestTierForChance(t *testing.T) {
	assert.Equal(t, TierReach, TierForChance(1))
	assert.Equal(t, TierReach, TierForChance(14))
	assert.Equal(t, TierTarget, TierForChance(15))
	assert.Equal(t, TierTarget, TierForChance(39))
	assert.Equal(t, TierSafety, TierForChance(40))
	assert.Equal(t, TierSafety, TierForChance(95))
}

func TestConfidenceForDataPoints(t *testing.T) {
	assert.Equal(t, ConfidenceLow, ConfidenceForDataPoints(0))
	assert.Equal(t, ConfidenceLow, ConfidenceForDataPoints(1))
	assert.Equal(t, ConfidenceMedium, ConfidenceForDataPoints(2))
	assert.Equal(t, ConfidenceMedium, ConfidenceForDataPoints(3))
	assert.Equal(t, ConfidenceHigh, ConfidenceForDataPoints(4))
}

func TestHasLeadership(t *testing.T) {
	assert.False(t, HasLeadership(nil))
	assert.False(t, HasLeadership([]Activity{{Title: "Chess"}}))
	assert.True(t, HasLeadership([]Activity{{Title: "Chess"}, {Title: "Captain", IsLeadership: true}}))
}
