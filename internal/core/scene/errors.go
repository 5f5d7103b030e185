package scene

import "errors"

// Backend state errors. These surface unchanged to callers; nothing in this
// layer retries.
var (
	// Node errors

	ErrNodeNotFound      = errors.New("node not found")
	ErrNodeExists        = errors.New("node already exists")
	ErrNodeLocked        = errors.New("node is locked")
	ErrUnknownNodeType   = errors.New("unknown node type")
	ErrHierarchyCycle    = errors.New("reparenting would create a cycle")

	// Attribute errors

	ErrAttributeNotFound = errors.New("attribute not found")
	ErrAttributeExists   = errors.New("attribute already exists")
	ErrBadAttributeValue = errors.New("value not valid for attribute type")
	ErrBadAttributeName  = errors.New("attribute name must be of the form node.attr")

	// Connection errors

	ErrSelfConnection = errors.New("source and destination are the same attribute")

	// Namespace errors

	ErrNamespaceNotFound = errors.New("namespace not found")
	ErrNamespaceExists   = errors.New("namespace already exists")

	// Animation errors

	ErrKeyNotFound = errors.New("no key at frame")
	ErrNoKeys      = errors.New("attribute has no keys")

	// Skin errors

	ErrNotASkin          = errors.New("node is not a skin deformer")
	ErrInfluenceNotFound = errors.New("influence not found")
)
