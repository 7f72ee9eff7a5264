package config

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorClassification(t *testing.T) {
	schema := NewSchemaError("bad key", nil)
	assert.True(t, IsSchema(schema))
	assert.False(t, IsReference(schema))
	assert.False(t, IsVersion(schema))
	assert.False(t, IsProject(schema))

	ref := NewReferenceError("no such target", nil)
	assert.True(t, IsReference(ref))
	assert.False(t, IsSchema(ref))
}

func TestErrorWrapping(t *testing.T) {
	cause := fs.ErrNotExist
	err := NewSchemaError("failed to open config", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "failed to open config")

	wrapped := fmt.Errorf("loading project: %w", err)
	assert.True(t, IsSchema(wrapped), "classification survives wrapping")

	var ce *ConfigError
	require.True(t, errors.As(wrapped, &ce))
	assert.Equal(t, ErrorClassSchema, ce.Class)
}
