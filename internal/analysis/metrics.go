package analysis

// MetricLabel maps a Lighthouse audit identifier to its display label.
type MetricLabel struct {
	ID    string
	Label string
}

// KeyMetrics lists the measurements included in reports, in the order
// they are rendered. Labels are the user-facing Ukrainian names.
var KeyMetrics = []MetricLabel{
	{ID: "first-contentful-paint", Label: "Перший вміст"},
	{ID: "speed-index", Label: "Індекс швидкості"},
	{ID: "largest-contentful-paint", Label: "Найбільший вміст"},
	{ID: "interactive", Label: "Час до інтерактивності"},
	{ID: "total-blocking-time", Label: "Загальний час блокування"},
	{ID: "cumulative-layout-shift", Label: "Сукупне зміщення макета"},
}
