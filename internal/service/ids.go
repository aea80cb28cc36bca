package service

import (
	"strings"

	"github.com/google/uuid"
)

// IDGenerator returns a new process-unique id carrying the given prefix
type IDGenerator func(prefix string) string

// NewID builds ids like "quote_3f1c..." from a random uuid
func NewID(prefix string) string {
	return prefix + "_" + strings.ReplaceAll(uuid.New().String(), "-", "")
}
