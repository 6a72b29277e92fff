package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrefixed(t *testing.T) {
	assert.Equal(t, "s.id, s.status, s.ends_at", prefixed("s", "id, status,\n\tends_at"))
}
