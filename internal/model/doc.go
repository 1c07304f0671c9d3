package model

// Package model defines domain data structures shared across the bot: the
// per-user download session and its expiry rules. Structures carry no
// behavior beyond simple predicates so they can pass freely between the
// session store, the resolver, and the chat handlers.
