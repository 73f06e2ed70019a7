package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUIDModelBeforeCreateFillsEmptyID(t *testing.T) {
	var m UUIDModel
	require.NoError(t, m.BeforeCreate(nil))
	assert.Len(t, m.ID, 36)

	keep := UUIDModel{ID: "preset-id"}
	require.NoError(t, keep.BeforeCreate(nil))
	assert.Equal(t, "preset-id", keep.ID)
}

func TestRowModelHiddenFromJSON(t *testing.T) {
	raw, err := json.Marshal(RowModel{ID: 7})
	require.NoError(t, err)
	assert.Equal(t, "{}", string(raw))
}
