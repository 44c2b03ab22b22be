package inspect

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Healthy on-page windows for SEO text elements.
const (
	// TitleMinLength and TitleMaxLength bound a healthy <title>.
	TitleMinLength = 10
	TitleMaxLength = 60
	// DescriptionMinLength and DescriptionMaxLength bound a healthy
	// meta description.
	DescriptionMinLength = 50
	DescriptionMaxLength = 160
)

// headingLevels lists the heading tags counted per page.
var headingLevels = []string{"h1", "h2", "h3", "h4", "h5", "h6"}

// SEOResult is the outcome of the on-page SEO inspection.
type SEOResult struct {
	// Title is the page title text, empty when missing.
	Title string
	// TitleLength is the title length in runes.
	TitleLength int
	// MetaDescription is the meta description content, empty when missing.
	MetaDescription string
	// MetaDescriptionLength is the description length in runes.
	MetaDescriptionLength int
	// Headings counts headings per level, keyed "h1".."h6".
	Headings map[string]int
	// ImageCount and ImagesWithAlt measure alt-text coverage.
	ImageCount    int
	ImagesWithAlt int
	// WordCount is the visible body word count.
	WordCount int
	// Recommendations lists findings in natural language.
	Recommendations []string
}

// AltCoverage is the share of images carrying alt text, 1 when the page
// has no images.
func (r *SEOResult) AltCoverage() float64 {
	if r.ImageCount == 0 {
		return 1
	}
	return float64(r.ImagesWithAlt) / float64(r.ImageCount)
}

// CheckSEO inspects the page HTML for basic on-page SEO health.
func CheckSEO(page *Page) (*SEOResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page.Body))
	if err != nil {
		return nil, fmt.Errorf("seo parse html: %w", err)
	}

	result := &SEOResult{
		Headings: make(map[string]int, len(headingLevels)),
	}

	result.Title = strings.TrimSpace(doc.Find("title").First().Text())
	result.TitleLength = len([]rune(result.Title))

	if desc, ok := doc.Find(`meta[name="description"]`).First().Attr("content"); ok {
		result.MetaDescription = strings.TrimSpace(desc)
	}
	result.MetaDescriptionLength = len([]rune(result.MetaDescription))

	for _, level := range headingLevels {
		result.Headings[level] = doc.Find(level).Length()
	}

	result.ImageCount, result.ImagesWithAlt = countImageAlt(doc)
	result.WordCount = len(strings.Fields(doc.Find("body").Text()))

	result.Recommendations = seoRecommendations(result)

	return result, nil
}

// countImageAlt counts images and how many of them carry non-empty alt text.
func countImageAlt(doc *goquery.Document) (total, withAlt int) {
	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		total++
		if alt, ok := s.Attr("alt"); ok && strings.TrimSpace(alt) != "" {
			withAlt++
		}
	})
	return total, withAlt
}

// seoRecommendations emits one finding per out-of-window or missing
// condition.
func seoRecommendations(r *SEOResult) []string {
	var recs []string

	switch {
	case r.TitleLength == 0:
		recs = append(recs, "Додайте тег <title>: сторінка не має заголовка.")
	case r.TitleLength < TitleMinLength:
		recs = append(recs, fmt.Sprintf(
			"Заголовок сторінки закороткий (%d символів): рекомендована довжина %d–%d символів.",
			r.TitleLength, TitleMinLength, TitleMaxLength))
	case r.TitleLength > TitleMaxLength:
		recs = append(recs, fmt.Sprintf(
			"Заголовок сторінки задовгий (%d символів): рекомендована довжина %d–%d символів.",
			r.TitleLength, TitleMinLength, TitleMaxLength))
	}

	switch {
	case r.MetaDescriptionLength == 0:
		recs = append(recs, "Додайте мета-опис (meta description): сторінка не має опису.")
	case r.MetaDescriptionLength < DescriptionMinLength:
		recs = append(recs, fmt.Sprintf(
			"Мета-опис закороткий (%d символів): рекомендована довжина %d–%d символів.",
			r.MetaDescriptionLength, DescriptionMinLength, DescriptionMaxLength))
	case r.MetaDescriptionLength > DescriptionMaxLength:
		recs = append(recs, fmt.Sprintf(
			"Мета-опис задовгий (%d символів): рекомендована довжина %d–%d символів.",
			r.MetaDescriptionLength, DescriptionMinLength, DescriptionMaxLength))
	}

	switch h1 := r.Headings["h1"]; {
	case h1 == 0:
		recs = append(recs, "Додайте заголовок H1: сторінка не має головного заголовка.")
	case h1 > 1:
		recs = append(recs, fmt.Sprintf(
			"На сторінці %d заголовків H1: залиште лише один головний заголовок.", h1))
	}

	if missing := r.ImageCount - r.ImagesWithAlt; missing > 0 {
		recs = append(recs, fmt.Sprintf(
			"%d з %d зображень не мають атрибута alt: додайте альтернативний текст.",
			missing, r.ImageCount))
	}

	return recs
}
