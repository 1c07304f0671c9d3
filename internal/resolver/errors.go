package resolver

import (
	"errors"
	"fmt"
)

var (
	// ErrNoFormats means discovery found no usable video formats for the URL.
	ErrNoFormats = errors.New("no downloadable video formats found")

	// ErrNoOutput means the download finished without producing an output file.
	ErrNoOutput = errors.New("download produced no output file")
)

// TooLargeError means the produced artifact exceeds the configured size cap.
// Detection is post-hoc: yt-dlp's max-filesize skips streams whose size is
// known in advance, but merged outputs can only be measured after the fact.
type TooLargeError struct {
	Size  int64 // measured artifact size in bytes
	Limit int64 // configured cap in bytes
}

func (e *TooLargeError) Error() string {
	return fmt.Sprintf("file too large: %.2fMB exceeds %.2fMB limit",
		float64(e.Size)/1024/1024, float64(e.Limit)/1024/1024)
}
