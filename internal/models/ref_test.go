package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefMarshal(t *testing.T) {
	unresolved := RefTo[CategorySummary]("cat-1")
	b, err := json.Marshal(unresolved)
	require.NoError(t, err)
	assert.JSONEq(t, `"cat-1"`, string(b))

	resolved := Ref[CategorySummary]{ID: "cat-1", Doc: &CategorySummary{ID: "cat-1", Type: "text", Label: "Bio"}}
	b, err = json.Marshal(resolved)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"cat-1","type":"text","label":"Bio"}`, string(b))

	b, err = json.Marshal(Ref[UserSummary]{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))
}

func TestRefUnmarshal(t *testing.T) {
	var value ContentValue
	require.NoError(t, json.Unmarshal([]byte(`{"categoryId":"cat-1","value":"hello"}`), &value))
	assert.Equal(t, "cat-1", value.CategoryID.ID)
	assert.False(t, value.CategoryID.Resolved())

	require.NoError(t, json.Unmarshal([]byte(`{"categoryId":{"id":"cat-2","type":"text","label":"Bio"},"value":"x"}`), &value))
	assert.Equal(t, "cat-2", value.CategoryID.ID)
	require.True(t, value.CategoryID.Resolved())
	assert.Equal(t, "Bio", value.CategoryID.Doc.Label)

	require.NoError(t, json.Unmarshal([]byte(`{"categoryId":null,"value":"x"}`), &value))
	assert.Equal(t, "", value.CategoryID.ID)
	assert.False(t, value.CategoryID.Resolved())
}

func TestContentRoundTripKeepsResolvedShape(t *testing.T) {
	content := Content{
		ID:        "c-1",
		Title:     "Hello",
		ThemesIDs: []Ref[ThemeSummary]{{ID: "t-1", Doc: &ThemeSummary{ID: "t-1", Name: "Travel"}}},
		Values:    []ContentValue{{CategoryID: RefTo[CategorySummary]("cat-1"), Value: "v"}},
		UserID:    Ref[UserSummary]{ID: "u-1", Doc: &UserSummary{ID: "u-1", Username: "ana"}},
	}

	b, err := json.Marshal(content)
	require.NoError(t, err)

	var decoded Content
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, "Travel", decoded.ThemesIDs[0].Doc.Name)
	assert.Equal(t, "cat-1", decoded.Values[0].CategoryID.ID)
	assert.Equal(t, "ana", decoded.UserID.Doc.Username)
}

func TestRefHelpers(t *testing.T) {
	refs := RefsTo[ThemeSummary]([]string{"a", "b"})
	assert.Equal(t, []string{"a", "b"}, RefIDs(refs))
	assert.Empty(t, RefIDs[ThemeSummary](nil))
	assert.NotNil(t, RefIDs[ThemeSummary](nil))
}
