package main

import (
	"bytes"
	"context"
	"os"
	"path"
	"testing"
)

var testData = []byte{
	0x31, 0x32, 0x33, 0x34, 0x35, 0x36, 0x37, 0x38,
	0x61, 0x62, 0x63, 0x64, 0x65, 0x66, 0x67, 0x68,
}

// createTestFile writes contents to a temporary file and returns its path.
func createTestFile(t *testing.T, contents []byte) string {
	filepath := path.Join(t.TempDir(), "test.data")
	if err := os.WriteFile(filepath, contents, 0644); err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	return filepath
}

// runCommand runs the root command with args and returns what it printed.
func runCommand(t *testing.T, stdin []byte, args ...string) (stdout, stderr string, err error) {
	var outBuf, errBuf bytes.Buffer

	cmd := newRootCommand()
	cmd.SetArgs(args)
	cmd.SetIn(bytes.NewReader(stdin))
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)

	err = cmd.ExecuteContext(context.Background())
	return outBuf.String(), errBuf.String(), err
}
