package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultsAreValid(t *testing.T) {
	require.NoError(t, DefaultViewer().Validate())
	require.NoError(t, DefaultSnapshot().Validate())
}

func TestViewerValidate(t *testing.T) {
	c := DefaultViewer()
	c.MSAA = 2
	require.Error(t, c.Validate())

	c = DefaultViewer()
	c.Height = 0
	require.Error(t, c.Validate())
}

func TestSnapshotValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Snapshot)
	}{
		{"width", func(c *Snapshot) { c.Width = -1 }},
		{"frames", func(c *Snapshot) { c.Frames = -1 }},
		{"dt", func(c *Snapshot) { c.DT = -0.5 }},
		{"out", func(c *Snapshot) { c.Out = "" }},
		{"workers", func(c *Snapshot) { c.Workers = -2 }},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			c := DefaultSnapshot()
			test.modify(&c)
			require.Error(t, c.Validate())
		})
	}
}
