package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntervalsOverlap(t *testing.T) {
	tests := []struct {
		name                           string
		aStart, aEnd, bStart, bEnd     int
		want                           bool
	}{
		{name: "full overlap", aStart: 600, aEnd: 660, bStart: 600, bEnd: 660, want: true},
		{name: "partial overlap", aStart: 600, aEnd: 660, bStart: 630, bEnd: 690, want: true},
		{name: "containment", aStart: 600, aEnd: 720, bStart: 630, bEnd: 660, want: true},
		{name: "touching edges do not overlap", aStart: 600, aEnd: 660, bStart: 660, bEnd: 720, want: false},
		{name: "touching edges reversed", aStart: 660, aEnd: 720, bStart: 600, bEnd: 660, want: false},
		{name: "disjoint", aStart: 600, aEnd: 660, bStart: 720, bEnd: 780, want: false},
		{name: "one minute overlap", aStart: 600, aEnd: 661, bStart: 660, bEnd: 720, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IntervalsOverlap(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
			// Пересечение симметрично
			assert.Equal(t, tt.want, IntervalsOverlap(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd))
		})
	}
}
