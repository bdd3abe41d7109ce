package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/fseq/internal/models"
)

func TestSimulate(t *testing.T) {
	tests := []struct {
		name     string
		occupied []string
		plan     []models.RenameAction
		want     map[string]bool
		wantErr  error
	}{
		{
			name:     "empty plan",
			occupied: []string{"a"},
			want:     map[string]bool{"a": true},
		},
		{
			name:     "chain",
			occupied: []string{"a", "b"},
			plan:     []models.RenameAction{mv("b", "c"), mv("a", "b")},
			want:     map[string]bool{"b": true, "c": true},
		},
		{
			name:     "overwrite",
			occupied: []string{"a", "b"},
			plan:     []models.RenameAction{mv("a", "b")},
			wantErr:  ErrWouldOverwrite,
		},
		{
			name:     "missing source",
			occupied: []string{"a"},
			plan:     []models.RenameAction{mv("a", "b"), mv("a", "c")},
			wantErr:  ErrMissingSource,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Simulate(tt.occupied, tt.plan)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSimulateNamesFailingAction(t *testing.T) {
	_, err := Simulate([]string{"a", "b"}, []models.RenameAction{mv("a", "c"), mv("b", "c")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "action 2 (b -> c)")
}
