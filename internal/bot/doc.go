package bot

// Package bot wires Telegram chat events to the session store and the media
// resolver. The per-user conversation state machine (awaiting link, awaiting
// quality choice, downloading) is implicit: it is fully reconstructible from
// the presence of a session entry plus the kind of incoming event, so nothing
// beyond the session store is kept.
