package ioschema

import (
	"errors"
	"testing"

	"github.com/gnames/gn"
	"github.com/oscaralateras/participant-inventory/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNotConnectedError_Structure verifies error structure.
func TestNotConnectedError_Structure(t *testing.T) {
	err := NotConnectedError()

	require.NotNil(t, err)

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok, "Error should be of type *gn.Error")

	assert.Equal(t, errcode.DBNotConnectedError, gnErr.Code)
	assert.NotEmpty(t, gnErr.Msg)
}

// TestCreateTableError_Structure verifies the dataset is named and the
// cause is wrapped.
func TestCreateTableError_Structure(t *testing.T) {
	originalErr := errors.New("syntax error")

	err := CreateTableError("dti", originalErr)

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok, "Error should be of type *gn.Error")

	assert.Equal(t, errcode.TablesCreateError, gnErr.Code)
	assert.Equal(t, []any{"dti"}, gnErr.Vars)
	assert.ErrorIs(t, gnErr.Err, originalErr)
}

// TestGORMConnectionError_Structure verifies
// error structure.
func TestGORMConnectionError_Structure(t *testing.T) {
	originalErr := errors.New("connection failed")

	err := GORMConnectionError(originalErr)

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok, "Error should be of type *gn.Error")

	assert.Equal(t, errcode.TablesGORMConnectionError, gnErr.Code)
	assert.ErrorIs(t, gnErr.Err, originalErr)
}
