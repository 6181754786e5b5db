package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open("oracle", "", PoolConfig{})

	assert.ErrorContains(t, err, "unsupported database driver")
}
