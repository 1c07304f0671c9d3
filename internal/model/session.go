package model

import "time"

// Session represents one user's in-progress download negotiation: the link
// they submitted and the qualities discovered for it. A user has at most one
// session at a time; submitting a new link replaces the old session wholesale.
type Session struct {
	UserID    int64          // chat participant, acts as the mapping key
	URL       string         // normalized source URL
	Formats   map[int]string // resolution height -> yt-dlp format id
	CreatedAt time.Time      // used solely for expiry
}

// Expired reports whether the session's age has reached ttl at the given
// instant. A session exactly at the boundary counts as expired.
func (s Session) Expired(ttl time.Duration, now time.Time) bool {
	return now.Sub(s.CreatedAt) >= ttl
}

// Heights returns the distinct resolution heights available for this session.
// Order is unspecified; display ordering is computed at render time.
func (s Session) Heights() []int {
	heights := make([]int, 0, len(s.Formats))
	for h := range s.Formats {
		heights = append(heights, h)
	}
	return heights
}
