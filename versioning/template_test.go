package versioning

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateRender(t *testing.T) {
	cases := []struct {
		format string
		v      APIVersion
		want   string
	}{
		{DefaultVersionFormat, V(1, 0), "1.0"},
		{DefaultPrefixFormat, V(2, 10), "/v2_10"},
		{"/api/{major}", V(3, 7), "/api/3"},
		{"{major}{major}", V(4, 0), "44"},
		{"/v{{{major}}}", V(1, 2), "/v{1}"},
	}
	for _, tc := range cases {
		tmpl, err := parseTemplate(tc.format)
		require.NoError(t, err, tc.format)
		assert.Equal(t, tc.want, tmpl.render(tc.v), tc.format)
	}
}

func TestTemplateErrors(t *testing.T) {
	for _, format := range []string{"", "v1", "{minor}", "{major", "{major}}", "{ major }", "{major:02d}", "{}"} {
		_, err := parseTemplate(format)
		assert.ErrorIs(t, err, ErrInvalidTemplate, format)
	}
}

func TestPrefixTemplateMustBeAbsolute(t *testing.T) {
	_, err := parsePrefixTemplate("v{major}")
	assert.ErrorIs(t, err, ErrInvalidTemplate)

	_, err = parsePrefixTemplate("/{major}")
	assert.NoError(t, err)
}
