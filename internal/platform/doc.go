package platform

// Package platform holds small host-facing helpers: YouTube URL recognition
// and canonicalization, and filesystem plumbing for the download directory
// and transient artifacts.
