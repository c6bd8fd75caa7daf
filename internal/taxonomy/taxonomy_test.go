package taxonomy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatValid(t *testing.T) {
	for _, f := range []Format{FormatJSON, FormatKeyValue, FormatSyslog, FormatCSV} {
		assert.True(t, f.Valid(), "format %s", f)
	}
	assert.False(t, Format("xml").Valid())
	assert.False(t, Format("").Valid())
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "src_endpoint.ip", Normalize("  Src_Endpoint.IP "))
	assert.True(t, Taxonomy{{Name: "UserName"}}.Contains("username"))
}

func TestProductValidate(t *testing.T) {
	valid := Product{
		Name:     "okta",
		Format:   FormatJSON,
		Parser:   "okta-parser",
		Taxonomy: Taxonomy{{Name: "time"}},
	}
	assert.NoError(t, valid.Validate())

	missingName := valid
	missingName.Name = ""
	assert.Error(t, missingName.Validate())

	badFormat := valid
	badFormat.Format = "xml"
	assert.Error(t, badFormat.Validate())

	noFields := valid
	noFields.Taxonomy = nil
	assert.Error(t, noFields.Validate())
}

func TestRegistry(t *testing.T) {
	products := []*Product{
		{Name: "b", Format: FormatJSON, Parser: "pb", Taxonomy: Taxonomy{{Name: "time"}}},
		{Name: "a", Format: FormatCSV, Parser: "pa", Taxonomy: Taxonomy{{Name: "time"}}},
	}
	r, err := NewRegistry(products)
	require.NoError(t, err)

	assert.Equal(t, 2, r.Len())

	list := r.List()
	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0].Name)
	assert.Equal(t, "b", list[1].Name)

	selected, err := r.Select([]string{"b"})
	require.NoError(t, err)
	require.Len(t, selected, 1)
	assert.Equal(t, "b", selected[0].Name)

	_, err = r.Select([]string{"c"})
	assert.ErrorContains(t, err, "unknown product")
}

func TestNewRegistry_RejectsDuplicates(t *testing.T) {
	p := &Product{Name: "a", Format: FormatJSON, Parser: "pa", Taxonomy: Taxonomy{{Name: "time"}}}
	_, err := NewRegistry([]*Product{p, p})
	assert.ErrorContains(t, err, "duplicate")
}

func TestBuiltin(t *testing.T) {
	r, err := Load("")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, r.Len(), 7)

	p, ok := r.Get("fortinet_fortigate")
	require.True(t, ok)
	assert.Equal(t, FormatKeyValue, p.Format)
	assert.Greater(t, p.Taxonomy.MandatoryCount(), 0)
	assert.Less(t, p.Taxonomy.MandatoryCount(), len(p.Taxonomy))
}

func TestLoad_FileOverridesBuiltin(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "products.yaml")
	content := `
version: "1"
products:
  - name: fortinet_fortigate
    format: keyvalue
    parser: custom-fortigate
    fields:
      - name: srcip
        mandatory: true
      - name: dstip
  - name: custom_app
    format: json
    parser: custom-app-parser
    fields:
      - name: time
        mandatory: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	r, err := Load(path)
	require.NoError(t, err)

	fg, ok := r.Get("fortinet_fortigate")
	require.True(t, ok)
	assert.Equal(t, "custom-fortigate", fg.Parser)
	assert.Len(t, fg.Taxonomy, 2)

	custom, ok := r.Get("custom_app")
	require.True(t, ok)
	assert.Equal(t, FormatJSON, custom.Format)
}

func TestLoad_BadFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "products.yaml")
	require.NoError(t, os.WriteFile(path, []byte("products: [not a mapping"), 0644))

	_, err := Load(path)
	assert.Error(t, err)

	_, err = Load(filepath.Join(tmpDir, "missing.yaml"))
	assert.Error(t, err)
}
