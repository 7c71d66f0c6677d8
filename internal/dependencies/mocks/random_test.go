package mocks

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMockRandomReplaysInOrder(t *testing.T) {
	rnd := NewMockRandom()
	rnd.QueueIntn(3, 1)
	rnd.QueueString("ABC123", "4521")

	assert.Equal(t, 3, rnd.Intn(10))
	assert.Equal(t, 1, rnd.Intn(10))
	assert.Equal(t, "ABC123", rnd.String(6, "ABC"))
	assert.Equal(t, "4521", rnd.String(4, "0123456789"))
}

func TestMockRandomExhaustedQueueYieldsZeroValues(t *testing.T) {
	rnd := NewMockRandom()

	assert.Equal(t, 0, rnd.Intn(10))
	assert.Equal(t, "", rnd.String(6, "ABC"))
}

func TestMockRandomReset(t *testing.T) {
	rnd := NewMockRandom()
	rnd.QueueIntn(7)
	rnd.Reset()

	assert.Equal(t, 0, rnd.Intn(10))
}
