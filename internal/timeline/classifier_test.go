package timeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	keys := [RowCount]uint16{17, 31, 30, 32} // W S A D evdev codes

	tests := []struct {
		name string
		code uint16
		want Row
	}{
		{"first row", 17, 0},
		{"second row", 31, 1},
		{"third row", 30, 2},
		{"fourth row", 32, 3},
		{"unmapped", 16, RowNone},
		{"zero code", 0, RowNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.code, keys))
		})
	}
}

func TestClassifyFirstMatchWins(t *testing.T) {
	// Two rows bound to the same key: the linear scan returns the first.
	keys := [RowCount]uint16{17, 17, 30, 32}
	assert.Equal(t, Row(0), Classify(17, keys))
}

func TestClassifySeesRebindImmediately(t *testing.T) {
	keys := [RowCount]uint16{17, 31, 30, 32}
	assert.Equal(t, Row(0), Classify(17, keys))

	keys[0] = 57 // rebind row 0 to space
	assert.Equal(t, RowNone, Classify(17, keys))
	assert.Equal(t, Row(0), Classify(57, keys))
}
