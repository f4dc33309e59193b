package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTierFor(t *testing.T) {
	tests := []struct {
		lifetime int
		want     string
	}{
		{0, TierMember},
		{499, TierMember},
		{500, TierSilver},
		{1999, TierSilver},
		{2000, TierGold},
		{4999, TierGold},
		{5000, TierDiamond},
		{120000, TierDiamond},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, TierFor(tt.lifetime), "lifetime %d", tt.lifetime)
	}
}
