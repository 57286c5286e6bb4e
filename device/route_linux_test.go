//go:build linux

package device

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRouterLinux(t *testing.T) {
	assert.NotPanics(t, func() {
		router, err := newRouter()
		if err == nil {
			assert.NotNil(t, router)
		}
	})
}
