// Package streamlite provides connectors that stream change notifications
// from inventory sources.
package streamlite

import (
	"time"
)

// Connector represents a data source connector
type Connector interface {
	Name() string
	Start() error
	Stop() error
}

// BaseConnector provides common functionality for all connectors
type BaseConnector struct {
	name      string
	startedAt time.Time
}

// NewBaseConnector creates a new base connector
func NewBaseConnector(name string) *BaseConnector {
	return &BaseConnector{
		name: name,
	}
}

// Name returns the connector name
func (c *BaseConnector) Name() string {
	return c.name
}

// StartedAt returns when the connector was started, zero if never
func (c *BaseConnector) StartedAt() time.Time {
	return c.startedAt
}

// Start marks the connector as started
func (c *BaseConnector) Start() error {
	c.startedAt = time.Now()
	return nil
}

// Stop has nothing to release for the base connector
func (c *BaseConnector) Stop() error {
	return nil
}
