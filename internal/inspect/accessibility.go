package inspect

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// maxStyleScanElements caps the inline-style contrast scan. The scan is
// a heuristic signal over the first N styled elements, not a computed
// CSS cascade.
const maxStyleScanElements = 500

// AccessibilityResult is the outcome of the accessibility inspection.
type AccessibilityResult struct {
	// AriaElements counts elements carrying at least one aria-* attribute.
	AriaElements int
	// ImageCount and ImagesWithAlt measure alt-text coverage.
	ImageCount    int
	ImagesWithAlt int
	// ContrastIssues approximates contrast problems: elements whose
	// inline style sets both a foreground and a background color.
	ContrastIssues int
	// FormInputs and FormLabels compare form controls against labels.
	FormInputs int
	FormLabels int
	// Recommendations lists findings in natural language.
	Recommendations []string
}

// AltCoverage is the share of images carrying alt text, 1 when the page
// has no images.
func (r *AccessibilityResult) AltCoverage() float64 {
	if r.ImageCount == 0 {
		return 1
	}
	return float64(r.ImagesWithAlt) / float64(r.ImageCount)
}

// CheckAccessibility inspects the page HTML for accessibility signals.
func CheckAccessibility(page *Page) (*AccessibilityResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page.Body))
	if err != nil {
		return nil, fmt.Errorf("accessibility parse html: %w", err)
	}

	result := &AccessibilityResult{}

	result.AriaElements = countAriaElements(doc)
	result.ImageCount, result.ImagesWithAlt = countImageAlt(doc)
	result.ContrastIssues = countInlineContrastIssues(doc)
	result.FormInputs = doc.Find("input, select, textarea").Length()
	result.FormLabels = doc.Find("label").Length()

	result.Recommendations = accessibilityRecommendations(result)

	return result, nil
}

// countAriaElements counts elements with at least one aria-* attribute.
func countAriaElements(doc *goquery.Document) int {
	count := 0
	doc.Find("*").Each(func(_ int, s *goquery.Selection) {
		for _, node := range s.Nodes {
			for _, attr := range node.Attr {
				if strings.HasPrefix(attr.Key, "aria-") {
					count++
					return
				}
			}
		}
	})
	return count
}

// countInlineContrastIssues scans the first maxStyleScanElements styled
// elements and counts those whose inline style declares both a text
// color and a background color.
func countInlineContrastIssues(doc *goquery.Document) int {
	count := 0
	doc.Find("[style]").EachWithBreak(func(i int, s *goquery.Selection) bool {
		if i >= maxStyleScanElements {
			return false
		}
		style, _ := s.Attr("style")
		if declaresBothColors(style) {
			count++
		}
		return true
	})
	return count
}

// declaresBothColors reports whether an inline style sets both a
// foreground color and a background color.
func declaresBothColors(style string) bool {
	var hasColor, hasBackground bool

	for _, decl := range strings.Split(style, ";") {
		name, _, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}

		switch strings.TrimSpace(strings.ToLower(name)) {
		case "color":
			hasColor = true
		case "background", "background-color":
			hasBackground = true
		}
	}

	return hasColor && hasBackground
}

// accessibilityRecommendations emits one finding per detected signal.
func accessibilityRecommendations(r *AccessibilityResult) []string {
	var recs []string

	if missing := r.ImageCount - r.ImagesWithAlt; missing > 0 {
		recs = append(recs, fmt.Sprintf(
			"%d з %d зображень не мають атрибута alt: додайте альтернативний текст для читачів з екрана.",
			missing, r.ImageCount))
	}

	if r.ContrastIssues > 0 {
		recs = append(recs, fmt.Sprintf(
			"Знайдено %d елементів з одночасно заданими кольором тексту та фону: перевірте контрастність.",
			r.ContrastIssues))
	}

	if r.FormLabels < r.FormInputs {
		recs = append(recs, fmt.Sprintf(
			"На сторінці %d полів форм і лише %d підписів <label>: додайте підписи до всіх полів.",
			r.FormInputs, r.FormLabels))
	}

	if r.AriaElements == 0 {
		recs = append(recs, "Сторінка не використовує ARIA-атрибути: додайте їх для допоміжних технологій.")
	}

	return recs
}
