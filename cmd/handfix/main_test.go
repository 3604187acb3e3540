package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGroupOf(t *testing.T) {
	root := NewCommand()

	tests := []struct {
		args []string
		want string
	}{
		{[]string{"status"}, gBasic},
		{[]string{"instance", "create"}, gInstance},
		{[]string{"calibration", "check"}, gOffline},
		{[]string{"version"}, ""},
	}
	for _, tt := range tests {
		cmd, _, err := root.Find(tt.args)
		if assert.NoError(t, err, tt.args) {
			assert.Equal(t, tt.want, groupOf(cmd), tt.args)
		}
	}
}
