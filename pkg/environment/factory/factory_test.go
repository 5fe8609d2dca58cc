package factory

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caesium-lab/evacenv/pkg/environment"
	"github.com/caesium-lab/evacenv/pkg/jsondoc"
	"github.com/caesium-lab/evacenv/pkg/shape"
)

const withBadGateway = `{
  "domains": [
    {"id": 1, "width": 10, "height": 10,
     "accesses": [{"id": 1, "shape": {"type": "RECTANGLE", "bottomLeft": {"x": 0, "y": 4}, "width": 1, "height": 2}}]},
    {"id": 2, "width": 10, "height": 10}
  ],
  "gateways": [
    {"id": 1, "domain1": 0, "domain2": 1},
    {"id": 2, "domain1": 2, "domain2": 2},
    {"id": 3, "domain1": 1, "domain2": 8}
  ]
}`

const yamlDoc = `
domains:
  - id: 1
    name: lobby
    width: 12
    height: 8
    obstacles:
      - name: column
        shape: {type: circle, center: {x: 6, y: 4}, radius: 0.5}
gateways:
  - {id: 1, domain1: 1, domain2: 0}
`

const legacyDoc = `{
  "domains": [{
    "id": 1, "name": "room", "width": 10, "height": 10,
    "obstacles": [
      {"type": "circle", "center": {"X": 5, "Y": 5}, "radius": 1},
      {"name": "table", "top": {"X": 1, "Y": 1}, "width": 2, "height": 1},
      {"type": "POLYGON", "points": [{"X": 7, "Y": 7}, {"X": 9, "Y": 7}, {"X": 8, "Y": 9}]}
    ],
    "accesses": [
      {"id": 1, "name": "door", "shape": [{"X": 0, "Y": 4}, {"X": 0, "Y": 6}]}
    ]
  }],
  "gateways": [{"id": 1, "domain1": 0, "domain2": 1}]
}`

func TestParse_LenientSkipsRejectedGateways(t *testing.T) {
	env, report, err := Parse([]byte(withBadGateway), FormatJSON, Options{})
	require.NoError(t, err)

	assert.Equal(t, []int32{1}, env.GatewayIDs())
	require.NotNil(t, report)
	assert.True(t, report.Valid, "rejections are warnings")

	var rejected []string
	for _, w := range report.Warnings {
		if strings.Contains(w.Message, "could not be added") {
			rejected = append(rejected, w.Path)
			assert.Contains(t, w.Message, environment.ErrGatewayRejected.Error())
		}
	}
	assert.Equal(t, []string{"gateways[id=2]", "gateways[id=3]"}, rejected)
}

func TestParse_StrictAbortsOnRejectedGateway(t *testing.T) {
	env, report, err := Parse([]byte(withBadGateway), FormatJSON, Options{Strict: true})
	assert.Nil(t, env)
	assert.Nil(t, report)
	assert.ErrorIs(t, err, environment.ErrGatewayRejected)
}

func TestParse_StructuralErrorsAbort(t *testing.T) {
	_, _, err := Parse([]byte(`{"domains": [{"id": 1}], "gateways": []}`), FormatJSON, Options{})
	assert.ErrorIs(t, err, environment.ErrMalformedDocument)

	_, _, err = Parse([]byte(`{"domains": `), FormatJSON, Options{})
	assert.ErrorIs(t, err, environment.ErrParseFailure)

	_, _, err = Parse([]byte(`[]`), FormatJSON, Options{})
	assert.ErrorIs(t, err, environment.ErrMalformedDocument)

	_, _, err = Parse([]byte(`{}`), Format("toml"), Options{})
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestParse_YAML(t *testing.T) {
	env, report, err := Parse([]byte(yamlDoc), FormatYAML, Options{})
	require.NoError(t, err)
	assert.True(t, report.Valid)

	d, ok := env.Domain(1)
	require.True(t, ok)
	assert.Equal(t, "lobby", d.Name())
	require.Len(t, d.Obstacles(), 1)
	assert.Equal(t, shape.TypeCircle, d.Obstacles()[0].Shape.Type())
	assert.False(t, d.IsWalkable(6, 4))

	g, ok := env.Gateway(1)
	require.True(t, ok)
	assert.True(t, g.IsExit())
}

func TestParse_Legacy(t *testing.T) {
	env, _, err := Parse([]byte(legacyDoc), FormatJSON, Options{Legacy: true})
	require.NoError(t, err)

	d, ok := env.Domain(1)
	require.True(t, ok)
	obstacles := d.Obstacles()
	require.Len(t, obstacles, 3)
	assert.Equal(t, shape.TypeCircle, obstacles[0].Shape.Type())
	assert.Equal(t, shape.TypeRectangle, obstacles[1].Shape.Type())
	assert.Equal(t, "table", obstacles[1].Name)
	assert.True(t, obstacles[1].Shape.Contains(1, 1), "top is the bottom-left anchor")
	assert.True(t, obstacles[1].Shape.Contains(3, 2))
	assert.True(t, obstacles[2].Shape.Contains(8, 8))

	a, ok := d.Access(1)
	require.True(t, ok)
	assert.Equal(t, "door", a.Name)
	assert.Equal(t, shape.TypePolygon, a.Shape.Type())
	assert.True(t, a.Shape.Contains(0, 5), "two-point access is a segment")

	text, err := env.JSONSerialized()
	require.NoError(t, err)
	assert.Contains(t, text, `"bottomLeft":{"x":1,"y":1}`)
	assert.NotContains(t, text, `"X"`)

	back, _, err := Parse([]byte(text), FormatJSON, Options{})
	require.NoError(t, err)
	assert.True(t, env.Equal(back))
}

func TestParse_LegacyKeepsDefaultDomainName(t *testing.T) {
	doc := `{"domains": [{"id": 4, "width": 3, "height": 3}], "gateways": [{"id": 1, "domain1": 0, "domain2": 4}]}`
	env, _, err := Parse([]byte(doc), FormatJSON, Options{Legacy: true})
	require.NoError(t, err)
	d, ok := env.Domain(4)
	require.True(t, ok)
	assert.Equal(t, "domain4", d.Name())

	env, _, err = Parse([]byte(doc), FormatJSON, Options{})
	require.NoError(t, err)
	d, _ = env.Domain(4)
	assert.Empty(t, d.Name(), "the nested schema reads an absent name as empty")
}

func TestParse_LegacyErrorsPointAtFlatKeys(t *testing.T) {
	doc := `{"domains": [{"id": 1, "width": 1, "height": 1,
		"obstacles": [{"type": "CIRCLE", "center": {"X": 0, "y": 0}, "radius": 1}]}], "gateways": []}`
	_, _, err := Parse([]byte(doc), FormatJSON, Options{Legacy: true})

	var me *jsondoc.MalformedError
	require.True(t, errors.As(err, &me))
	assert.Equal(t, "domains[0].obstacles[0].center.Y", me.Path)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "env.json")
	yamlPath := filepath.Join(dir, "env.yml")
	require.NoError(t, os.WriteFile(jsonPath, []byte(withBadGateway), 0o644))
	require.NoError(t, os.WriteFile(yamlPath, []byte(yamlDoc), 0o644))

	env, _, err := LoadFile(jsonPath, Options{})
	require.NoError(t, err)
	assert.Equal(t, []int32{1, 2}, env.DomainIDs())

	env, _, err = LoadFile(yamlPath, Options{})
	require.NoError(t, err)
	assert.Equal(t, []int32{1}, env.DomainIDs())
}

func TestLoadFile_Errors(t *testing.T) {
	_, _, err := LoadFile(filepath.Join(t.TempDir(), "missing.json"), Options{})
	assert.ErrorIs(t, err, environment.ErrIO)
	assert.ErrorIs(t, err, fs.ErrNotExist)

	_, _, err = LoadFile("environment.txt", Options{})
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk on fire") }

func TestLoad_ReaderFailure(t *testing.T) {
	_, _, err := Load(failingReader{}, FormatJSON, Options{})
	assert.ErrorIs(t, err, environment.ErrIO)

	env, _, err := Load(strings.NewReader(yamlDoc), FormatYAML, Options{})
	require.NoError(t, err)
	assert.Len(t, env.Domains(), 1)
}

func TestWriteFile(t *testing.T) {
	env, _, err := Parse([]byte(yamlDoc), FormatYAML, Options{})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, WriteFile(path, env, "  "))

	back, _, err := LoadFile(path, Options{Strict: true})
	require.NoError(t, err)
	assert.True(t, env.Equal(back))

	err = WriteFile(filepath.Join(t.TempDir(), "no", "such", "dir.json"), env, "")
	assert.ErrorIs(t, err, environment.ErrIO)
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{".json": FormatJSON, "YAML": FormatYAML, "yml": FormatYAML} {
		got, err := ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat(".xml")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}
