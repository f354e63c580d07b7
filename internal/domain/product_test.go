package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProductType_Valid(t *testing.T) {
	assert.True(t, ProductTypeNormal.Valid())
	assert.True(t, ProductType152mm.Valid())
	assert.True(t, ProductTypeShared.Valid())

	assert.False(t, ProductType("custom").Valid())
	assert.False(t, ProductType("").Valid())
}
