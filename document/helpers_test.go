package document

import (
	"os"
	"path"
	"testing"
)

// testData is the content of the sample file used across tests.
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

func openTestDocument(t *testing.T, contents []byte, layout Layout, opts ...OpenOption) *Document {
	doc, err := Open(Config{File: createTestFile(t, contents), Layout: layout}, opts...)
	if err != nil {
		t.Fatalf("Failed to open document: %v", err)
	}

	t.Cleanup(func() {
		if err := doc.Close(); err != nil {
			t.Fatalf("Failed to close document: %v", err)
		}
	})

	return doc
}
