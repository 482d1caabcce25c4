package youtube

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		token string
		want  int
	}{
		{"PT1H30M45S", 5445},
		{"PT5M30S", 330},
		{"PT45S", 45},
		{"PT2H", 7200},
		{"PT1H5S", 3605},
		{"PT", 0},
		{"", 0},
		{"not-a-duration", 0},
		{"P1DT2H", 0},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseDuration(tt.token))
		})
	}
}
