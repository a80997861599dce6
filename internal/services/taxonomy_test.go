package services_test

import (
	"testing"

	"github.com/localnerve/jobboard/internal/services"
	"github.com/localnerve/jobboard/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedTaxonomy(t *testing.T) {
	tax, err := services.LoadTaxonomy()
	require.NoError(t, err)
	assert.Equal(t, []string{"Graduate", "Post Graduate"}, tax.EducationLevels)

	courses, err := tax.Courses("Graduate")
	require.NoError(t, err)
	assert.Contains(t, courses, "B.Tech / B.E")

	specializations, err := tax.Specializations("B.Tech / B.E")
	require.NoError(t, err)
	assert.Contains(t, specializations, "CSE")

	domains, err := tax.Domains("CSE")
	require.NoError(t, err)
	assert.Contains(t, domains, "AI / ML")

	again, err := services.LoadTaxonomy()
	require.NoError(t, err)
	assert.Same(t, tax, again)
}

func TestTaxonomyLookupErrors(t *testing.T) {
	tax, err := services.LoadTaxonomy()
	require.NoError(t, err)

	_, err = tax.Courses("")
	assert.True(t, types.HasType(err, types.CodeValidation))

	_, err = tax.Specializations("Underwater Basket Weaving")
	assert.True(t, types.HasType(err, types.CodeNotFound))

	_, err = tax.Domains("Nope")
	assert.True(t, types.HasType(err, types.CodeNotFound))
}

func TestParseTaxonomy(t *testing.T) {
	tax, err := services.ParseTaxonomy([]byte(`
educationLevels: [Diploma]
coursesByLevel:
  Diploma: [Polytechnic]
`))
	require.NoError(t, err)
	courses, err := tax.Courses("Diploma")
	require.NoError(t, err)
	assert.Equal(t, []string{"Polytechnic"}, courses)

	_, err = services.ParseTaxonomy([]byte("coursesByLevel: {}\n"))
	assert.Error(t, err)

	_, err = services.ParseTaxonomy([]byte("educationLevels: [unterminated"))
	assert.Error(t, err)
}
