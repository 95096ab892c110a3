package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_UnknownDevice(t *testing.T) {
	// 未知の --device は RunE に入る前に弾かれ、Usage 付きで報告されるのだ
	addAppFlags(rootCmd)
	rootCmd.AddCommand(frameCmd, combineCmd, splitCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"frame", "--device", "toaster"})

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "toaster")
	assert.Contains(t, out.String(), "Usage:")
}
