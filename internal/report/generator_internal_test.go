package report

import (
	"testing"

	"github.com/gosuri/uiprogress"
	"github.com/stretchr/testify/assert"
)

func TestAdvance_ClampsToBarRange(t *testing.T) {
	bar := uiprogress.NewBar(4)

	assert.NoError(t, advance(bar, 2))
	assert.Equal(t, 2, bar.Current())

	assert.NoError(t, advance(bar, 9))
	assert.Equal(t, 4, bar.Current())

	assert.NoError(t, advance(bar, -1))
	assert.Equal(t, 0, bar.Current())
}
