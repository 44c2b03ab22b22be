package api

import (
	"github.com/jonesrussell/pagepulse/internal/analysis"
	"github.com/jonesrussell/pagepulse/internal/analyzer"
	"github.com/jonesrussell/pagepulse/internal/inspect"
	"github.com/jonesrussell/pagepulse/internal/recommend"
)

// AnalyzeRequest is the body of POST /api/v1/analyze.
type AnalyzeRequest struct {
	URL      string `json:"url" binding:"required"`
	Strategy string `json:"strategy"`
}

// FullAnalyzeRequest is the body of POST /api/v1/analyze/full and
// POST /api/v1/report.
type FullAnalyzeRequest struct {
	URL string `json:"url" binding:"required"`
}

// MetricResponse is one metric row of an analysis response.
type MetricResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Value  string `json:"value"`
	Rating string `json:"rating"`
}

// RecommendationResponse is one ranked recommendation.
type RecommendationResponse struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Impact     string  `json:"impact"`
	Difficulty string  `json:"difficulty"`
	Category   string  `json:"category"`
	SavingsMs  float64 `json:"savings_ms"`
	Priority   float64 `json:"priority"`
}

// CategoryGroupResponse is one category of recommendations.
type CategoryGroupResponse struct {
	Category        string                   `json:"category"`
	Label           string                   `json:"label"`
	Recommendations []RecommendationResponse `json:"recommendations"`
}

// SummaryResponse carries recommendation counts.
type SummaryResponse struct {
	Total        int            `json:"total"`
	ByImpact     map[string]int `json:"by_impact"`
	ByDifficulty map[string]int `json:"by_difficulty"`
}

// PrioritizedResponse is the grouped recommendation output.
type PrioritizedResponse struct {
	Groups  []CategoryGroupResponse `json:"groups"`
	Summary SummaryResponse         `json:"summary"`
}

// AnalysisResponse is one (url, strategy) analysis result.
type AnalysisResponse struct {
	URL             string               `json:"url"`
	Strategy        string               `json:"strategy"`
	Score           int                  `json:"score"`
	Metrics         []MetricResponse     `json:"metrics"`
	Recommendations *PrioritizedResponse `json:"recommendations,omitempty"`
}

// SEOResponse mirrors the SEO inspection result.
type SEOResponse struct {
	Title                 string         `json:"title"`
	TitleLength           int            `json:"title_length"`
	MetaDescription       string         `json:"meta_description"`
	MetaDescriptionLength int            `json:"meta_description_length"`
	Headings              map[string]int `json:"headings"`
	ImageCount            int            `json:"image_count"`
	ImagesWithAlt         int            `json:"images_with_alt"`
	WordCount             int            `json:"word_count"`
	Recommendations       []string       `json:"recommendations"`
}

// AccessibilityResponse mirrors the accessibility inspection result.
type AccessibilityResponse struct {
	AriaElements    int      `json:"aria_elements"`
	ImageCount      int      `json:"image_count"`
	ImagesWithAlt   int      `json:"images_with_alt"`
	ContrastIssues  int      `json:"contrast_issues"`
	FormInputs      int      `json:"form_inputs"`
	FormLabels      int      `json:"form_labels"`
	Recommendations []string `json:"recommendations"`
}

// SecurityResponse mirrors the security inspection result.
type SecurityResponse struct {
	UsesHTTPS       bool     `json:"uses_https"`
	MissingHeaders  []string `json:"missing_headers"`
	CookieCount     int      `json:"cookie_count"`
	Recommendations []string `json:"recommendations"`
}

// FullAnalysisResponse aggregates the sub-check results. A failed
// sub-check key is absent from the JSON, never present with null.
type FullAnalysisResponse struct {
	URL           string                 `json:"url"`
	Mobile        *AnalysisResponse      `json:"mobile,omitempty"`
	Desktop       *AnalysisResponse      `json:"desktop,omitempty"`
	SEO           *SEOResponse           `json:"seo,omitempty"`
	Accessibility *AccessibilityResponse `json:"accessibility,omitempty"`
	Security      *SecurityResponse      `json:"security,omitempty"`
}

// toAnalysisResponse maps a core result to its API shape.
func toAnalysisResponse(result *analysis.Result) *AnalysisResponse {
	if result == nil {
		return nil
	}

	resp := &AnalysisResponse{
		URL:      result.URL,
		Strategy: result.Strategy,
		Score:    result.Score,
		Metrics:  make([]MetricResponse, 0, len(result.Metrics)),
	}

	for _, metric := range result.Metrics {
		resp.Metrics = append(resp.Metrics, MetricResponse{
			ID:     metric.ID,
			Name:   metric.Name,
			Value:  metric.Value,
			Rating: string(metric.Rating),
		})
	}

	resp.Recommendations = toPrioritizedResponse(result.Recommendations)

	return resp
}

// toPrioritizedResponse maps the prioritizer output, nil when empty.
func toPrioritizedResponse(recs *recommend.Prioritized) *PrioritizedResponse {
	if recs.Empty() {
		return nil
	}

	resp := &PrioritizedResponse{
		Summary: SummaryResponse{
			Total:        recs.Summary.Total,
			ByImpact:     make(map[string]int, len(recs.Summary.ByImpact)),
			ByDifficulty: make(map[string]int, len(recs.Summary.ByDifficulty)),
		},
	}

	for impact, count := range recs.Summary.ByImpact {
		resp.Summary.ByImpact[string(impact)] = count
	}
	for difficulty, count := range recs.Summary.ByDifficulty {
		resp.Summary.ByDifficulty[string(difficulty)] = count
	}

	for _, group := range recs.Groups {
		groupResp := CategoryGroupResponse{
			Category: string(group.Category),
			Label:    group.Label,
		}
		for _, rec := range group.Recommendations {
			groupResp.Recommendations = append(groupResp.Recommendations, RecommendationResponse{
				ID:         rec.ID,
				Title:      rec.Title,
				Impact:     string(rec.Impact),
				Difficulty: string(rec.Difficulty),
				Category:   string(rec.Category),
				SavingsMs:  rec.SavingsMs,
				Priority:   rec.Priority,
			})
		}
		resp.Groups = append(resp.Groups, groupResp)
	}

	return resp
}

// toFullResponse maps the aggregate result to its API shape.
func toFullResponse(full *analyzer.FullResult) *FullAnalysisResponse {
	resp := &FullAnalysisResponse{
		URL:     full.URL,
		Mobile:  toAnalysisResponse(full.Mobile),
		Desktop: toAnalysisResponse(full.Desktop),
	}

	if full.SEO != nil {
		resp.SEO = toSEOResponse(full.SEO)
	}
	if full.Accessibility != nil {
		resp.Accessibility = toAccessibilityResponse(full.Accessibility)
	}
	if full.Security != nil {
		resp.Security = toSecurityResponse(full.Security)
	}

	return resp
}

func toSEOResponse(seo *inspect.SEOResult) *SEOResponse {
	return &SEOResponse{
		Title:                 seo.Title,
		TitleLength:           seo.TitleLength,
		MetaDescription:       seo.MetaDescription,
		MetaDescriptionLength: seo.MetaDescriptionLength,
		Headings:              seo.Headings,
		ImageCount:            seo.ImageCount,
		ImagesWithAlt:         seo.ImagesWithAlt,
		WordCount:             seo.WordCount,
		Recommendations:       seo.Recommendations,
	}
}

func toAccessibilityResponse(a *inspect.AccessibilityResult) *AccessibilityResponse {
	return &AccessibilityResponse{
		AriaElements:    a.AriaElements,
		ImageCount:      a.ImageCount,
		ImagesWithAlt:   a.ImagesWithAlt,
		ContrastIssues:  a.ContrastIssues,
		FormInputs:      a.FormInputs,
		FormLabels:      a.FormLabels,
		Recommendations: a.Recommendations,
	}
}

func toSecurityResponse(s *inspect.SecurityResult) *SecurityResponse {
	return &SecurityResponse{
		UsesHTTPS:       s.UsesHTTPS,
		MissingHeaders:  s.MissingHeaders,
		CookieCount:     s.CookieCount,
		Recommendations: s.Recommendations,
	}
}
