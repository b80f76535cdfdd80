package valueobjects

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ID generation for the canvas entities. Node, section and project ids
// keep the original prefix scheme with a UUID suffix so that rapid
// successive creations never collide. Edge ids embed both endpoints plus
// a nanosecond timestamp, which keeps parallel edges between the same
// pair distinct.

// NewNodeID generates a unique node identifier
func NewNodeID() string {
	return fmt.Sprintf("node-%s", uuid.NewString())
}

// NewSectionID generates a unique section identifier
func NewSectionID() string {
	return fmt.Sprintf("section-%s", uuid.NewString())
}

// NewProjectID generates a unique project identifier
func NewProjectID() string {
	return fmt.Sprintf("project-%s", uuid.NewString())
}

// NewEdgeID generates a unique edge identifier from its endpoints
func NewEdgeID(sourceID, targetID string) string {
	return fmt.Sprintf("edge-%s-%s-%d", sourceID, targetID, time.Now().UnixNano())
}
