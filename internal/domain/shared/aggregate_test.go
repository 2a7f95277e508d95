package shared

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNewBaseAggregateRoot(t *testing.T) {
	root := NewBaseAggregateRoot()

	assert.NotEqual(t, uuid.Nil, root.ID)
	assert.False(t, root.CreatedAt.IsZero())
	assert.Equal(t, root.CreatedAt, root.UpdatedAt)
	assert.Equal(t, 1, root.Version)
}

func TestIncrementVersion(t *testing.T) {
	root := NewBaseAggregateRoot()

	root.IncrementVersion()
	root.IncrementVersion()

	assert.Equal(t, 3, root.Version)
}
