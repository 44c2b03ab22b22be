package inspect_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/pagepulse/internal/inspect"
)

// accessibleHTML triggers no accessibility findings.
const accessibleHTML = `<!DOCTYPE html>
<html>
<head><title>Accessible</title></head>
<body>
  <nav aria-label="Main navigation">links</nav>
  <img src="a.png" alt="Described image">
  <form>
    <label for="email">Email</label>
    <input id="email" type="email">
  </form>
</body>
</html>`

// inaccessibleHTML triggers every accessibility finding.
const inaccessibleHTML = `<!DOCTYPE html>
<html>
<head><title>Inaccessible</title></head>
<body>
  <img src="a.png">
  <div style="color: #777; background-color: #888">low contrast candidate</div>
  <span style="background: white; color: white">invisible</span>
  <form>
    <input type="text">
    <input type="text">
  </form>
</body>
</html>`

func TestCheckAccessibility_CleanPage(t *testing.T) {
	t.Parallel()

	result, err := inspect.CheckAccessibility(seoPage(accessibleHTML))
	require.NoError(t, err)

	require.Equal(t, 1, result.AriaElements)
	require.Equal(t, 1, result.ImageCount)
	require.Equal(t, 1, result.ImagesWithAlt)
	require.Zero(t, result.ContrastIssues)
	require.Equal(t, 1, result.FormInputs)
	require.Equal(t, 1, result.FormLabels)
	require.Empty(t, result.Recommendations)
}

func TestCheckAccessibility_ProblemPage(t *testing.T) {
	t.Parallel()

	result, err := inspect.CheckAccessibility(seoPage(inaccessibleHTML))
	require.NoError(t, err)

	require.Zero(t, result.AriaElements)
	require.Equal(t, 1, result.ImageCount)
	require.Zero(t, result.ImagesWithAlt)
	require.Equal(t, 2, result.ContrastIssues)
	require.Equal(t, 2, result.FormInputs)
	require.Zero(t, result.FormLabels)

	// One finding each for alt text, contrast, labels, and ARIA.
	require.Len(t, result.Recommendations, 4)
}

func TestCheckAccessibility_ContrastHeuristic(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		style string
		want  int
	}{
		{name: "color only", style: "color: red", want: 0},
		{name: "background only", style: "background-color: blue", want: 0},
		{name: "both declared", style: "color: red; background-color: blue", want: 1},
		{name: "background shorthand", style: "COLOR: red; BACKGROUND: blue", want: 1},
		{name: "unrelated declarations", style: "margin: 0; padding: 0", want: 0},
	}

	for i := range tests {
		test := &tests[i]
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			html := `<html><body><div style="` + test.style + `">x</div></body></html>`
			result, err := inspect.CheckAccessibility(seoPage(html))
			require.NoError(t, err)
			require.Equal(t, test.want, result.ContrastIssues)
		})
	}
}
