package jtms

import (
	"errors"
	"fmt"
	"strings"
)

// NodeNotFoundError reports operations referencing unknown node names.
// The JTMS itself never panics; unknown handles surface as this error.
type NodeNotFoundError struct {
	// Names lists the unknown node names, in reference order.
	Names []string
}

// Error implements the error interface.
func (e *NodeNotFoundError) Error() string {
	if len(e.Names) == 1 {
		return fmt.Sprintf("node not found: %s", e.Names[0])
	}
	return fmt.Sprintf("nodes not found: %s", strings.Join(e.Names, ", "))
}

// IsNodeNotFound returns true if the error is a NodeNotFoundError.
// Uses errors.As to handle wrapped errors.
func IsNodeNotFound(err error) bool {
	var ne *NodeNotFoundError
	return errors.As(err, &ne)
}
