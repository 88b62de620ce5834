package flags

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignalWire(t *testing.T) {
	tests := []struct {
		name   string
		signal Signal
		want   string
	}{
		{"clear", Signal{Code: CodeClear}, ""},
		{"green", Signal{Code: CodeGreen}, "1"},
		{"yellow", Signal{Code: CodeYellow}, "2"},
		{"safety car", Signal{Code: CodeSafetyCar}, "4"},
		{"virtual safety car", Signal{Code: CodeVirtualSafetyCar}, "5"},
		{"blue", Signal{Code: CodeBlue}, "8"},
		{"penalty", Signal{Code: CodePenalty, Driver: 14}, "11,14"},
		{"red", Signal{Code: CodeRed}, "12"},
		{"chequered", Signal{Code: CodeChequered}, "16"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.signal.Wire())
		})
	}
}

func TestFlagCodes(t *testing.T) {
	assert.Equal(t, CodeVirtualSafetyCar, GlobalVSC.Code())
	assert.Equal(t, CodeSafetyCar, GlobalSC.Code())
	assert.Equal(t, CodeRed, GlobalRed.Code())
	assert.Equal(t, CodeClear, GlobalNone.Code())

	assert.Equal(t, CodeGreen, LocalGreen.Code())
	assert.Equal(t, CodeYellow, LocalYellow.Code())
	assert.Equal(t, CodeBlue, LocalBlue.Code())
	assert.Equal(t, CodeClear, LocalNone.Code())
}
