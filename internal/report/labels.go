// Package report composes the analysis results into a PDF document.
package report

import (
	"github.com/jonesrussell/pagepulse/internal/recommend"
)

// Document metadata.
const (
	// DocTitle is the PDF title.
	DocTitle = "Звіт аналізу швидкості сайту"
	// DocAuthor is the PDF author.
	DocAuthor = "PagePulse Bot"
	// DocSubject is the PDF subject.
	DocSubject = "Google PageSpeed Insights"
)

// Device labels used in the score table, in render order.
const (
	DeviceMobile  = "Мобільний"
	DeviceDesktop = "Десктоп"
)

// Section headings.
const (
	headingScores          = "Загальні оцінки продуктивності"
	headingMobileMetrics   = "Метрики для мобільних пристроїв"
	headingDesktopMetrics  = "Метрики для комп'ютерів"
	headingScoreComparison = "Порівняння оцінок"
	headingRecommendations = "Рекомендації щодо оптимізації"
	headingSummary         = "Підсумок рекомендацій"
)

// Table column headers.
var (
	scoreTableHeader          = []string{"Пристрій", "Оцінка", "Статус"}
	metricsTableHeader        = []string{"Метрика", "Значення", "Оцінка"}
	recommendationTableHeader = []string{"Рекомендація", "Вплив", "Складність", "Економія"}
	summaryTableHeader        = []string{"Показник", "Кількість"}
)

// impactLabels maps impact levels to their Ukrainian display names.
var impactLabels = map[recommend.Impact]string{
	recommend.ImpactHigh:   "Високий",
	recommend.ImpactMedium: "Середній",
	recommend.ImpactLow:    "Низький",
}

// difficultyLabels maps difficulty levels to their Ukrainian display names.
var difficultyLabels = map[recommend.Difficulty]string{
	recommend.DifficultyEasy:   "Легко",
	recommend.DifficultyMedium: "Середньо",
	recommend.DifficultyHard:   "Складно",
}

// impactOrder and difficultyOrder fix summary row order.
var impactOrder = []recommend.Impact{
	recommend.ImpactHigh,
	recommend.ImpactMedium,
	recommend.ImpactLow,
}

var difficultyOrder = []recommend.Difficulty{
	recommend.DifficultyEasy,
	recommend.DifficultyMedium,
	recommend.DifficultyHard,
}

// ImpactLabel returns the display name of an impact level.
func ImpactLabel(impact recommend.Impact) string {
	if label, ok := impactLabels[impact]; ok {
		return label
	}
	return string(impact)
}

// DifficultyLabel returns the display name of a difficulty level.
func DifficultyLabel(difficulty recommend.Difficulty) string {
	if label, ok := difficultyLabels[difficulty]; ok {
		return label
	}
	return string(difficulty)
}
