package reports

import (
	"strings"
	"text/template"

	"reviewlens-backend/services/analytics"
)

// sampleSize caps how many reviews are quoted verbatim in the prompt so
// large brands do not blow the model's context window.
const sampleSize = 40

const systemPrompt = "You are an analyst summarizing customer reviews. " +
	"Write a concise report covering overall sentiment, recurring themes " +
	"and concrete recommendations. Base every claim on the supplied data."

var promptTemplate = template.Must(template.New("report").Parse(`Brand: {{.Brand}}
Total reviews in scope: {{.Dashboard.TotalReviews}}
Average rating: {{printf "%.2f" .Dashboard.AverageRating}} / 5

Sentiment distribution:
{{- range $category, $count := .Dashboard.SentimentDistribution}}
  {{$category}}: {{$count}}
{{- end}}

Category mentions:
{{- if .Dashboard.CategoryCounts}}
{{- range $category, $count := .Dashboard.CategoryCounts}}
  {{$category}}: {{$count}}
{{- end}}
{{- else}}
  (none tagged)
{{- end}}

Sample reviews (newest first):
{{- range .Samples}}
- [{{.Date}}, {{.Rating}}/5, {{.SentimentCategory}}] {{.Text}}
{{- end}}
`))

type promptData struct {
	Brand     string
	Dashboard analytics.Dashboard
	Samples   []analytics.Review
}

var markReplacer = strings.NewReplacer("<mark>", "", "</mark>", "")

func buildPrompt(brand string, dash analytics.Dashboard, samples []analytics.Review) (string, error) {
	// listing output carries highlight markup the model has no use for
	for i := range samples {
		samples[i].Text = markReplacer.Replace(samples[i].Text)
	}

	var out strings.Builder
	err := promptTemplate.Execute(&out, promptData{
		Brand:     brand,
		Dashboard: dash,
		Samples:   samples,
	})
	if err != nil {
		return "", err
	}
	return out.String(), nil
}
