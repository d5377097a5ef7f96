package bookstore_test

import (
	"testing"
	"time"

	"github.com/goliatone/go-bookstore"
	"github.com/stretchr/testify/assert"
)

func TestIsWithinThresholdPeriod(t *testing.T) {
	tests := []struct {
		name    string
		t       time.Time
		pattern string
		want    bool
		wantErr bool
	}{
		{
			name:    "inside window",
			t:       time.Now().Add(-1 * time.Hour),
			pattern: "24h",
			want:    true,
		},
		{
			name:    "outside window",
			t:       time.Now().Add(-48 * time.Hour),
			pattern: "24h",
			want:    false,
		},
		{
			name:    "invalid pattern",
			t:       time.Now(),
			pattern: "one day",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := bookstore.IsWithinThresholdPeriod(tt.t, tt.pattern)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsOutsideThresholdPeriod(t *testing.T) {
	outside, err := bookstore.IsOutsideThresholdPeriod(time.Now().Add(-48*time.Hour), "24h")
	assert.NoError(t, err)
	assert.True(t, outside)

	outside, err = bookstore.IsOutsideThresholdPeriod(time.Now(), "24h")
	assert.NoError(t, err)
	assert.False(t, outside)
}
