package gateway

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNoRows(t *testing.T) {
	assert.True(t, IsNoRows(errors.New("(PGRST116) JSON object requested, multiple (or no) rows returned")))
	assert.True(t, IsNoRows(fmt.Errorf("fetching milestone: %w", errors.New("(PGRST116) no rows"))))
	assert.False(t, IsNoRows(errors.New("(23505) duplicate key value violates unique constraint")))
	assert.False(t, IsNoRows(nil))
}

func TestIsDuplicateObject(t *testing.T) {
	assert.True(t, isDuplicateObject(errors.New("Duplicate")))
	assert.True(t, isDuplicateObject(errors.New("The resource already exists")))
	assert.False(t, isDuplicateObject(errors.New("bucket not found")))
}
