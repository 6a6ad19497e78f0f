package driver

import (
	"errors"
	"fmt"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// ConnectivityError means the store is unreachable or rejected our credentials.
// It is fatal to the operation in progress.
type ConnectivityError struct {
	URI string
	Err error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("graph store %s unavailable: %v", e.URI, e.Err)
}

func (e *ConnectivityError) Unwrap() error {
	return e.Err
}

// IsConnectivity reports whether err is, or wraps, a ConnectivityError.
func IsConnectivity(err error) bool {
	var ce *ConnectivityError
	return errors.As(err, &ce)
}

// classify turns driver-level connection and authentication failures into
// ConnectivityError and leaves statement errors untouched.
func classify(uri string, err error) error {
	if err == nil {
		return nil
	}
	if neo4j.IsConnectivityError(err) {
		return &ConnectivityError{URI: uri, Err: err}
	}
	var n4jErr *neo4j.Neo4jError
	if errors.As(err, &n4jErr) && strings.HasPrefix(n4jErr.Code, "Neo.ClientError.Security.") {
		return &ConnectivityError{URI: uri, Err: err}
	}
	return err
}
