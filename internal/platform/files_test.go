package platform

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCreateDirectoryIfNotExists(t *testing.T) {
	tempDir := t.TempDir()
	testDir := filepath.Join(tempDir, "test_dir")

	// Directory should not exist initially
	if _, err := os.Stat(testDir); !os.IsNotExist(err) {
		t.Fatalf("Test directory already exists: %s", testDir)
	}

	// Create directory
	if err := CreateDirectoryIfNotExists(testDir); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}

	if _, err := os.Stat(testDir); os.IsNotExist(err) {
		t.Fatalf("Directory was not created: %s", testDir)
	}

	// Second call should not fail
	if err := CreateDirectoryIfNotExists(testDir); err != nil {
		t.Fatalf("Failed to handle existing directory: %v", err)
	}
}

func TestRemoveIfExists(t *testing.T) {
	tempDir := t.TempDir()
	file := filepath.Join(tempDir, "artifact.mp4")

	if err := os.WriteFile(file, []byte("data"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	if err := RemoveIfExists(file); err != nil {
		t.Fatalf("Failed to remove existing file: %v", err)
	}

	if _, err := os.Stat(file); !os.IsNotExist(err) {
		t.Fatal("File still exists after removal")
	}

	// Removing an absent file is a no-op, not an error
	if err := RemoveIfExists(file); err != nil {
		t.Errorf("Expected no error removing absent file, got %v", err)
	}
}

func TestFileSize(t *testing.T) {
	tempDir := t.TempDir()
	file := filepath.Join(tempDir, "sized.bin")

	data := make([]byte, 1234)
	if err := os.WriteFile(file, data, 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	size, err := FileSize(file)
	if err != nil {
		t.Fatalf("FileSize failed: %v", err)
	}
	if size != 1234 {
		t.Errorf("Expected size 1234, got %d", size)
	}

	if _, err := FileSize(filepath.Join(tempDir, "missing")); err == nil {
		t.Error("Expected error for missing file, got nil")
	}
}
