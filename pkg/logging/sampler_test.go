package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorSampler(t *testing.T) {
	sampler := NewErrorSampler(10)

	log, n := sampler.Observe("byId/network")
	assert.True(t, log, "first occurrence should be logged")
	assert.Equal(t, 1, n)

	for i := 2; i <= 9; i++ {
		log, _ := sampler.Observe("byId/network")
		assert.False(t, log, "occurrence %d should not be logged", i)
	}

	log, n = sampler.Observe("byId/network")
	assert.True(t, log, "10th occurrence should be logged")
	assert.Equal(t, 10, n)
	assert.Equal(t, 10, sampler.Count("byId/network"))

	sampler.Reset("byId/network")
	assert.Equal(t, 0, sampler.Count("byId/network"))
	log, _ = sampler.Observe("byId/network")
	assert.True(t, log, "first occurrence after reset should be logged")
}

func TestErrorSamplerIndependentKeys(t *testing.T) {
	sampler := NewErrorSampler(5)

	sampler.Observe("paged/network")
	sampler.Observe("paged/network")
	sampler.Observe("full/deserialization")

	assert.Equal(t, 2, sampler.Count("paged/network"))
	assert.Equal(t, 1, sampler.Count("full/deserialization"))
}

func TestErrorSamplerDefaults(t *testing.T) {
	sampler := NewErrorSampler(0)
	for i := 1; i < DefaultSampleInterval; i++ {
		sampler.Observe("k")
	}
	log, _ := sampler.Observe("k")
	assert.True(t, log)

	var nilSampler *ErrorSampler
	log, n := nilSampler.Observe("k")
	assert.True(t, log)
	assert.Equal(t, 1, n)
}
