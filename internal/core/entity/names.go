package entity

import "strings"

// Full-name composition. Composite entities join an owner name and a local
// name with "."; parsing is the exact inverse, splitting on the first "." so
// nested local parts ("node.comp.child") survive the round trip.

// JoinName composes a full name from an owner and a local part.
func JoinName(owner, local string) string {
	return owner + "." + local
}

// cutName splits a full name into owner and local parts at the first ".".
func cutName(full string) (owner, local string, ok bool) {
	return strings.Cut(full, ".")
}

// CutName is the exported form of cutName.
func CutName(full string) (owner, local string, ok bool) {
	return cutName(full)
}
