package load

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/laragen/schema"
	"github.com/syssam/laragen/schema/tag"
)

func TestFormatOf(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"schema.json", JSON, false},
		{"schema.yaml", YAML, false},
		{"dir/schema.YML", YAML, false},
		{"schema.xml", "", true},
		{"schema", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatOf(tt.path)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFile(t *testing.T) {
	fromYAML, err := File(filepath.Join("testdata", "blog.yaml"))
	require.NoError(t, err)
	fromJSON, err := File(filepath.Join("testdata", "blog.json"))
	require.NoError(t, err)
	assert.Equal(t, fromYAML, fromJSON)

	require.Len(t, fromYAML, 3)
	users, posts, user := fromYAML[0], fromYAML[1], fromYAML[2]

	assert.Equal(t, schema.KindTable, users.Kind)
	assert.Equal(t, "users", users.Name)
	require.Len(t, users.Columns, 3)
	assert.True(t, users.Columns[0].PrimaryKey)
	assert.Equal(t, 191, users.Columns[1].Length)
	assert.True(t, users.Columns[1].Unique)
	assert.Equal(t, "'active'", tag.Extract(users.Columns[2].Tags).Value("default"))

	fk := posts.Columns[1]
	assert.True(t, fk.ForeignKey)
	assert.Equal(t, &schema.Reference{Table: "users", Column: "id"}, fk.Reference)
	assert.Equal(t, "set null", tag.Extract(fk.Tags).Value("onDelete"))
	assert.True(t, posts.Columns[2].Nullable)
	assert.Equal(t, []string{"users"}, posts.References())

	assert.Equal(t, schema.KindClass, user.Kind)
	require.Len(t, user.Attributes, 2)
	assert.False(t, user.Attributes[1].Public())
	require.Len(t, user.Associations, 1)
	assert.Equal(t, "0..*", user.Associations[0].End2.Multiplicity)
	assert.Equal(t, []string{"authenticatable", "notifiable"}, tag.Extract(user.Tags).Names())
}

func TestFiles(t *testing.T) {
	entities, err := Files(filepath.Join("testdata", "blog.yaml"), filepath.Join("testdata", "blog.json"))
	require.NoError(t, err)
	assert.Len(t, entities, 6)

	_, err = Files(filepath.Join("testdata", "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.yaml")
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		input  string
	}{
		{"unknown json key", JSON, `{"entities": [{"kind": "table", "name": "t", "colums": []}]}`},
		{"unknown yaml key", YAML, "entities:\n  - kind: table\n    name: t\n    colums: []\n"},
		{"tag without name", YAML, "entities:\n  - kind: table\n    name: t\n    tags:\n      - value: x\n"},
		{"malformed json", JSON, `{"entities": [`},
		{"unknown format", Format("toml"), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.input), tt.format)
			require.Error(t, err)
		})
	}
}

func TestDecodeEmptyYAML(t *testing.T) {
	entities, err := Decode(strings.NewReader(""), YAML)
	require.NoError(t, err)
	assert.Empty(t, entities)
}

func TestEncode(t *testing.T) {
	entities, err := File(filepath.Join("testdata", "blog.yaml"))
	require.NoError(t, err)

	for _, format := range []Format{YAML, JSON} {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Encode(&buf, format, entities))
			got, err := Decode(&buf, format)
			require.NoError(t, err)
			assert.Equal(t, entities, got)
		})
	}

	assert.Error(t, Encode(&bytes.Buffer{}, Format("toml"), entities))
}
