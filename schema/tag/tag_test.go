package tag

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestExtract(t *testing.T) {
	t.Run("empty input yields empty set", func(t *testing.T) {
		s := Extract(nil)
		require.NotNil(t, s)
		assert.Equal(t, 0, s.Len())
		assert.Empty(t, s.Names())
		assert.False(t, s.Has("default"))
		assert.Empty(t, s.Value("default"))
	})

	t.Run("maps names to remaining parameters", func(t *testing.T) {
		s := Extract([]Tag{
			{Name: "default", Params: Params{"value": "0", "kind": "string"}},
			{Name: "softDeletes"},
		})
		p, ok := s.Get("default")
		require.True(t, ok)
		assert.Equal(t, Params{"value": "0", "kind": "string"}, p)
		assert.True(t, s.Has("softDeletes"))
		assert.Equal(t, []string{"default", "softDeletes"}, s.Names())
	})

	t.Run("last write wins on duplicate names", func(t *testing.T) {
		s := Extract([]Tag{
			New("onDelete", "restrict"),
			New("unique", "['a']"),
			New("onDelete", "set null"),
		})
		assert.Equal(t, "set null", s.Value("onDelete"))
		assert.Equal(t, []string{"onDelete", "unique"}, s.Names())
		assert.Equal(t, 2, s.Len())
	})

	t.Run("idempotent", func(t *testing.T) {
		in := []Tag{New("a", 1.0), New("b", "x"), New("a", 2.0)}
		assert.Equal(t, Extract(in), Extract(in))
	})

	t.Run("does not alias input parameters", func(t *testing.T) {
		in := []Tag{{Name: "a", Params: Params{"value": "x"}}}
		s := Extract(in)
		in[0].Params["value"] = "y"
		assert.Equal(t, "x", s.Value("a"))
	})
}

func TestParamsString(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"cascade", "cascade"},
		{float64(255), "255"},
		{1.5, "1.5"},
		{true, "true"},
		{42, "42"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Params{"value": tt.in}.Value())
	}
	assert.Empty(t, Params(nil).Value())
}

func TestTagJSON(t *testing.T) {
	var tags []Tag
	err := json.Unmarshal([]byte(`[{"name":"default","value":"0"},{"name":"index","value":"['email']","kind":"raw"}]`), &tags)
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, "default", tags[0].Name)
	assert.Equal(t, Params{"value": "0"}, tags[0].Params)
	assert.Equal(t, "raw", tags[1].Params.String("kind"))

	b, err := json.Marshal(tags[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"default","value":"0"}`, string(b))

	var bad Tag
	assert.Error(t, json.Unmarshal([]byte(`{"value":"0"}`), &bad))
}

func TestTagYAML(t *testing.T) {
	var tags []Tag
	err := yaml.Unmarshal([]byte("- name: onDelete\n  value: set null\n- name: softDeletes\n"), &tags)
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, "set null", tags[0].Params.Value())
	assert.Equal(t, "softDeletes", tags[1].Name)
	assert.Empty(t, tags[1].Params)

	b, err := yaml.Marshal(New("default", "0"))
	require.NoError(t, err)
	assert.Contains(t, string(b), "name: default")
	assert.Contains(t, string(b), `value: "0"`)
}
