package resolver

import (
	"encoding/json"
	"strings"
)

// Absent-codec marker in yt-dlp format listings.
const codecNone = "none"

// probeInfo mirrors the slice of yt-dlp's --dump-json output we care about.
type probeInfo struct {
	Formats []probeFormat `json:"formats"`
}

type probeFormat struct {
	FormatID string `json:"format_id"`
	Height   int    `json:"height"`
	VCodec   string `json:"vcodec"`
}

// parseProbe extracts quality options from yt-dlp probe output: one JSON
// object per line, each listing the formats of one video. Only formats with a
// known height and a real video codec qualify; audio-only and storyboard
// entries are dropped. When several formats share a height the last one wins,
// matching yt-dlp's worst-to-best listing order.
func parseProbe(output string) (map[int]string, error) {
	qualities := make(map[int]string)

	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		var info probeInfo
		if err := json.Unmarshal([]byte(line), &info); err != nil {
			return nil, err
		}

		for _, f := range info.Formats {
			if f.Height <= 0 || f.VCodec == "" || f.VCodec == codecNone {
				continue
			}
			qualities[f.Height] = f.FormatID
		}
	}

	if len(qualities) == 0 {
		return nil, ErrNoFormats
	}
	return qualities, nil
}
