package scene

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodecPreservesUnknownFields(t *testing.T) {
	raw := `{"id":"a","type":"rectangle","x":1,"y":2,"width":3,"height":4,` +
		`"strokeColor":"#1e1e1e","roughness":2,"roundness":{"type":3}}`

	var el Element
	require.NoError(t, json.Unmarshal([]byte(raw), &el))
	assert.Equal(t, "a", el.ID)
	assert.Equal(t, 3.0, el.Width)
	require.Len(t, el.Extra, 3)
	assert.JSONEq(t, `"#1e1e1e"`, string(el.Extra["strokeColor"]))

	out, err := json.Marshal(&el)
	require.NoError(t, err)

	var round map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(out, &round))
	assert.JSONEq(t, `2`, string(round["roughness"]))
	assert.JSONEq(t, `{"type":3}`, string(round["roundness"]))
	assert.JSONEq(t, `"rectangle"`, string(round["type"]))
}

func TestCodecModeledFieldsWinOverExtras(t *testing.T) {
	el := Element{ID: "a", Type: TypeRectangle, X: 10,
		Extra: map[string]json.RawMessage{"x": json.RawMessage(`999`)}}
	out, err := json.Marshal(&el)
	require.NoError(t, err)

	var round map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(out, &round))
	assert.JSONEq(t, `10`, string(round["x"]))
}

func TestCodecZeroGeometryAlwaysSerialized(t *testing.T) {
	out, err := json.Marshal(&Element{ID: "a", Type: TypeRectangle})
	require.NoError(t, err)
	assert.Contains(t, string(out), `"x":0`)
	assert.Contains(t, string(out), `"height":0`)
}

func TestSplitPartitionsPseudoElements(t *testing.T) {
	els := []*Element{
		{ID: "r1", Type: TypeRectangle, Width: 100, Height: 50},
		{Type: TypeCameraUpdate, X: 0, Y: 0, Width: 400, Height: 300},
		{Type: TypeDelete, IDs: "old1, old2"},
		{ID: "cp_1", Type: TypeRestoreCheckpoint},
		{ID: "t1", Type: TypeText, Text: "hi"},
	}

	d, drawables := Split(els)

	require.Len(t, drawables, 2)
	assert.Equal(t, "r1", drawables[0].ID)
	assert.Equal(t, "t1", drawables[1].ID)

	require.NotNil(t, d.Camera)
	assert.Equal(t, 400.0, d.Camera.Width)
	assert.Equal(t, "cp_1", d.RestoreID)
	assert.True(t, d.Deletes("old1"))
	assert.True(t, d.Deletes("old2"))
	assert.False(t, d.Deletes("r1"))
}

func TestSplitLastCameraWins(t *testing.T) {
	els := []*Element{
		{Type: TypeCameraUpdate, Width: 100, Height: 75},
		{Type: TypeCameraUpdate, X: 50, Width: 800, Height: 600},
	}
	d, _ := Split(els)
	require.NotNil(t, d.Camera)
	assert.Equal(t, 800.0, d.Camera.Width)
	assert.Equal(t, 50.0, d.Camera.X)
}

func TestSplitFirstRestoreWins(t *testing.T) {
	els := []*Element{
		{ID: "cp_a", Type: TypeRestoreCheckpoint},
		{ID: "cp_b", Type: TypeRestoreCheckpoint},
	}
	d, _ := Split(els)
	assert.Equal(t, "cp_a", d.RestoreID)
}

func TestSplitDoesNotMutateInput(t *testing.T) {
	els := []*Element{
		{ID: "r1", Type: TypeRectangle},
		{Type: TypeDelete, IDs: "x"},
	}
	_, drawables := Split(els)
	assert.Len(t, els, 2)
	assert.Len(t, drawables, 1)
}

func TestCloneIsDeep(t *testing.T) {
	fp := [2]float64{0.5, 1}
	el := &Element{
		ID:   "arrow1",
		Type: TypeArrow,
		Points: [][]float64{
			{0, 0}, {100, 40},
		},
		GroupIDs:      []string{"g1"},
		EndBinding:    &Binding{ElementID: "r1", FixedPoint: &fp},
		BoundElements: []*BoundElement{{ID: "t1", Type: TypeText}},
		Extra:         map[string]json.RawMessage{"strokeStyle": json.RawMessage(`"dashed"`)},
	}

	cp := el.Clone()
	cp.Points[1][0] = -1
	cp.GroupIDs[0] = "other"
	cp.EndBinding.FixedPoint[0] = 0
	cp.BoundElements[0].ID = "changed"
	delete(cp.Extra, "strokeStyle")

	assert.Equal(t, 100.0, el.Points[1][0])
	assert.Equal(t, "g1", el.GroupIDs[0])
	assert.Equal(t, 0.5, el.EndBinding.FixedPoint[0])
	assert.Equal(t, "t1", el.BoundElements[0].ID)
	assert.JSONEq(t, `"dashed"`, string(el.Extra["strokeStyle"]))
}

func TestClonePreservesExtras(t *testing.T) {
	el := &Element{ID: "a", Type: TypeRectangle,
		Extra: map[string]json.RawMessage{
			"strokeColor": json.RawMessage(`"#1e1e1e"`),
			"roundness":   json.RawMessage(`{"type":3}`),
		}}
	cp := el.Clone()
	require.Len(t, cp.Extra, 2)
	assert.JSONEq(t, `"#1e1e1e"`, string(cp.Extra["strokeColor"]))
	assert.JSONEq(t, `{"type":3}`, string(cp.Extra["roundness"]))
}
