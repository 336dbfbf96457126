package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigPath(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		fallback string
		want     string
	}{
		{"flag", []string{"--config", "a.yaml", "ticket", "list"}, "env.yaml", "a.yaml"},
		{"flag after subcommand", []string{"ticket", "new", "--title", "x", "--config=b.yaml"}, "", "b.yaml"},
		{"fallback", []string{"focus"}, "env.yaml", "env.yaml"},
		{"none", []string{"focus"}, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, configPath(tt.args, tt.fallback))
		})
	}
}
