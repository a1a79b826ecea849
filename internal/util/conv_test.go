package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionalUint(t *testing.T) {
	id, err := OptionalUint("")
	require.NoError(t, err)
	assert.Nil(t, id)

	id, err = OptionalUint(" 42 ")
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, uint(42), *id)

	for _, bad := range []string{"abc", "-1", "1.5", "99999999999"} {
		_, err = OptionalUint(bad)
		assert.Error(t, err, bad)
	}
}
