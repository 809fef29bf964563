package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyDrill(t *testing.T) {
	res := Classify("Cordless Power Drill", "")
	assert.Equal(t, "power-and-hand-tools", res.Category)
	assert.Equal(t, "Power & Hand Tools", res.CategoryName)
	// "drill" hits the Drills subcategory before Drivers per declared order
	assert.Equal(t, "Drills", res.SubCategory)
}

func TestClassifyAngleGrinderDisc(t *testing.T) {
	res := Classify("Angle Grinder Disc 100mm", "")
	assert.Equal(t, "cutting-and-grinding", res.Category)
	assert.Equal(t, "Cutting & Grinding", res.CategoryName)
	// "angle" hits Grinders before "disc" hits Accessories
	assert.Equal(t, "Grinders", res.SubCategory)
}

func TestClassifyUsesDescription(t *testing.T) {
	res := Classify("Pro 5000", "heavy duty demolition hammer with case")
	assert.Equal(t, "Power & Hand Tools", res.CategoryName)
	assert.Equal(t, "Hammers", res.SubCategory)
}

func TestClassifyNoMatch(t *testing.T) {
	for _, in := range []string{"", "gift voucher", "misc item 42"} {
		res := Classify(in, "")
		assert.Equal(t, "uncategorized", res.Category, "input %q", in)
		assert.Equal(t, "Uncategorized", res.CategoryName, "input %q", in)
		assert.Equal(t, "General", res.SubCategory, "input %q", in)
	}
}

func TestClassifyCategoryHitNoSubcategory(t *testing.T) {
	// "brazing" is a Welding & Soldering keyword but hits no subcategory
	res := Classify("Brazing Kit Basic", "")
	assert.Equal(t, "Welding & Soldering", res.CategoryName)
	assert.Equal(t, "General", res.SubCategory)
}

func TestClassifyDeterministic(t *testing.T) {
	a := Classify("drill", "")
	b := Classify("drill", "")
	assert.Equal(t, a, b)
}

func TestSlug(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Power & Hand Tools", "power-and-hand-tools"},
		{"Cutting & Grinding", "cutting-and-grinding"},
		{"Uncategorized", "uncategorized"},
		{"Measuring  &  Layout", "measuring-and-layout"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slug(tt.in))
	}
}

func TestRulesLoad(t *testing.T) {
	rs := Rules()
	require.NotEmpty(t, rs)
	assert.Equal(t, "Power & Hand Tools", rs[0].Name)
	for _, r := range rs {
		assert.NotEmpty(t, r.Keywords, "category %q has no keywords", r.Name)
	}
}
