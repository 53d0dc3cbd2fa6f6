package models_test

import (
	"testing"

	"github.com/lsftools/lsbacct/pkg/models"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustFields(t *testing.T, notations ...string) []models.Field {
	fields, err := models.ParseFields(notations)
	require.NoError(t, err)
	return fields
}

func TestParseField(t *testing.T) {
	t.Run("Scalar field", func(tt *testing.T) {
		f, err := models.ParseField("jobId=i")
		require.NoError(tt, err)
		assert.Equal(tt, "jobId", f.Name)
		assert.Equal(tt, models.Integer, f.Type)
		assert.False(tt, f.IsArray)
		assert.Equal(tt, "jobId=i", f.String())
	})

	t.Run("Array field", func(tt *testing.T) {
		f, err := models.ParseField("execHosts=s{#}")
		require.NoError(tt, err)
		assert.Equal(tt, "execHosts", f.Name)
		assert.Equal(tt, models.String, f.Type)
		assert.True(tt, f.IsArray)
		assert.Equal(tt, "string[]", f.TypeName())
	})

	t.Run("Invalid notations", func(tt *testing.T) {
		for _, notation := range []string{"jobId", "=i", "jobId=x", "jobId=ii", "hosts=q{#}"} {
			_, err := models.ParseField(notation)
			assert.Equal(tt, models.ErrInvalidFormat, errors.Cause(err), notation)
		}
	})
}

func TestNewFormat(t *testing.T) {
	t.Run("Positions and index", func(tt *testing.T) {
		format, err := models.NewFormat("EV", "version", mustFields(tt, "eventType=s", "version=s", "num=i", "hosts=s{#}"),
			map[string]string{"1.0": "hosts"})
		require.NoError(tt, err)
		assert.Equal(tt, 4, format.Len())
		assert.Equal(tt, "EV", format.EventType())

		f, ok := format.Lookup("hosts")
		require.True(tt, ok)
		assert.Equal(tt, 3, f.Position)
		_, ok = format.Lookup("nothing")
		assert.False(tt, ok)

		last, ok := format.LastField("1.0")
		assert.True(tt, ok)
		assert.Equal(tt, "hosts", last)
		_, ok = format.LastField("2.0")
		assert.False(tt, ok)
	})

	testCases := []struct {
		title    string
		fields   []models.Field
		versions map[string]string
	}{
		{
			title:  "Array field at first position",
			fields: []models.Field{{Name: "hosts", Type: models.String, IsArray: true}, {Name: "version", Type: models.String}},
		},
		{
			title:  "Unknown type code",
			fields: []models.Field{{Name: "version", Type: models.String}, {Name: "x", Type: models.ScalarType('z')}},
		},
		{
			title:  "Duplicated field name",
			fields: []models.Field{{Name: "version", Type: models.String}, {Name: "version", Type: models.Integer}},
		},
		{
			title: "Array count is not integer",
			fields: []models.Field{
				{Name: "version", Type: models.String},
				{Name: "num", Type: models.Float},
				{Name: "hosts", Type: models.String, IsArray: true},
			},
		},
		{
			title:  "No version field",
			fields: []models.Field{{Name: "v", Type: models.String}},
		},
		{
			title:    "Version table refers unknown field",
			fields:   []models.Field{{Name: "version", Type: models.String}},
			versions: map[string]string{"1.0": "missing"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.title, func(tt *testing.T) {
			format, err := models.NewFormat("EV", "version", tc.fields, tc.versions)
			assert.Nil(tt, format)
			assert.Equal(tt, models.ErrInvalidFormat, errors.Cause(err))
		})
	}
}

func TestFormatWithVersions(t *testing.T) {
	base, err := models.NewFormat("EV", "version", mustFields(t, "version=s", "a=i", "b=i"),
		map[string]string{"1.0": "a"})
	require.NoError(t, err)

	extended, err := base.WithVersions(map[string]string{"2.0": "b"})
	require.NoError(t, err)
	assert.Equal(t, []string{"1.0", "2.0"}, extended.Versions())
	assert.Equal(t, []string{"1.0"}, base.Versions())

	_, err = base.WithVersions(map[string]string{"3.0": "c"})
	assert.Equal(t, models.ErrInvalidFormat, errors.Cause(err))
}
