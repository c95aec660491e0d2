package tspd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocationIsDepot(t *testing.T) {
	assert.True(t, Location{ID: "depot", Index: 0}.IsDepot())
	assert.False(t, Location{ID: "customer", Index: 1}.IsDepot())
}
