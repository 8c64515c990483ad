// Package id issues the int64 Snowflake identifiers used for every row.
package id

import (
	"errors"
	"sync"

	"github.com/bwmarrin/snowflake"
)

var (
	node *snowflake.Node
	once sync.Once

	ErrNotInitialized = errors.New("id: Init has not been called")
)

// Init sets up the process-wide node. Only the first call has an effect.
func Init(nodeID int64) error {
	var err error
	once.Do(func() {
		node, err = snowflake.NewNode(nodeID)
	})
	return err
}

// New returns a time-ordered unique id. It panics if Init was never called.
func New() int64 {
	if node == nil {
		panic(ErrNotInitialized)
	}
	return node.Generate().Int64()
}
