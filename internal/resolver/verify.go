package resolver

import (
	"errors"
	"io/fs"
	"os"
)

// verifyArtifact checks that the download actually produced a file within the
// size cap. yt-dlp exits zero even when every candidate stream was skipped by
// the max-filesize filter, so absence has to be checked explicitly.
func verifyArtifact(path string, limit int64) error {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return ErrNoOutput
	}
	if err != nil {
		return err
	}

	if info.Size() > limit {
		return &TooLargeError{Size: info.Size(), Limit: limit}
	}
	return nil
}
