package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEmissionValidate(t *testing.T) {
	valid := &Emission{
		ID:        "20261019_120000_abcdef",
		RunID:     "20261019_120000_123456",
		Type:      MessageComponentReady,
		CreatedAt: time.Now(),
	}
	assert.NoError(t, valid.Validate())
	assert.Equal(t, "abcdef", valid.ShortID())

	var nilEmission *Emission
	assert.ErrorIs(t, nilEmission.Validate(), ErrInvalidEmission)

	noType := *valid
	noType.Type = ""
	assert.ErrorIs(t, noType.Validate(), ErrInvalidEmission)

	noTime := *valid
	noTime.CreatedAt = time.Time{}
	assert.ErrorIs(t, noTime.Validate(), ErrInvalidEmission)
}
