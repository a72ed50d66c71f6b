package report

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"
	"text/template"

	"github.com/banshee-data/survival.report/internal/fsutil"
	"github.com/banshee-data/survival.report/internal/monitoring"
	"github.com/banshee-data/survival.report/internal/timeutil"
)

// InsightsFile is the fixed name of the markdown report.
const InsightsFile = "titanic_eda_insights.md"

var funcs = template.FuncMap{
	"f2":   fixed2,
	"num":  func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) },
	"join": strings.Join,
	"stamp": func(s *Summary) string {
		if s.GeneratedAt.IsZero() {
			return ""
		}
		return s.GeneratedAt.UTC().Format(timeutil.ReportLayout)
	},
}

func fixed2(v float64) string {
	if math.IsNaN(v) {
		return "undefined"
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

var insightsTmpl = template.Must(template.New("insights").Funcs(funcs).Parse(`# Titanic Dataset EDA Insights
{{- if .RunID}}

_Run {{.RunID}}{{with stamp .}}, generated {{.}}{{end}}_
{{- end}}

1. **Dataset Overview**:
   - The dataset contains {{.Rows}} rows and {{.Cols}} columns after cleaning.
   - Key features include Survived (target), Pclass, Sex, Age, Fare, and Embarked.
{{- if .Duplicates}}
   - {{.Duplicates}} duplicate row(s) were removed.
{{- end}}

2. **Missing Values**:
   - Age: {{f2 .AgeMissingPct}}% missing, imputed with median ({{num .AgeMedian}}).
   - Embarked: {{f2 .EmbarkedMissingPct}}% missing, imputed with mode ('{{.EmbarkedMode}}').
   - Cabin: {{f2 .CabinMissingPct}}% missing{{if .Dropped}}; dropped columns: {{join .Dropped ", "}}{{end}}.

3. **Outliers**:
   - Fare had {{.FareOutliers}} outliers, capped using IQR method (lower: {{num .FareLower}}, upper: {{num .FareUpper}}).

4. **Visualizations**:
   - **Survival Count**: {{num .SurvivalRate}}% of passengers survived.
   - **Survival by Class**:{{range $i, $c := .ClassRates}}{{if $i}};{{end}} class {{$c.Class}} {{f2 $c.Rate}}% ({{$c.Survivors}}/{{$c.Passengers}}){{end}}.
   - **Age Distribution**: median age {{num .AgeMedian}}.
   - **Fare Distribution**: Right-skewed, median fare {{f2 .FareMedian}} after capping.
   - **Correlation Heatmap**: correlation between Pclass and Survived is {{f2 .PclassSurvived}}.

5. **Key Observations**:
{{- range .Correlations}}
{{- if .Defined}}
   - {{.Feature}} has a {{.Strength}} {{.Direction}} correlation with survival ({{f2 .R}}).
{{- else}}
   - {{.Feature}} has no defined correlation with survival (constant values).
{{- end}}
{{- end}}
`))

// Render formats s as the markdown insights report.
func Render(s *Summary) ([]byte, error) {
	var buf bytes.Buffer
	if err := insightsTmpl.Execute(&buf, s); err != nil {
		return nil, fmt.Errorf("render insights: %w", err)
	}
	return buf.Bytes(), nil
}

// Write renders s and writes it to path.
func Write(fs fsutil.FileSystem, path string, s *Summary) error {
	data, err := Render(s)
	if err != nil {
		return err
	}
	if err := fs.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	monitoring.Logf("report: wrote %s (%d bytes)", path, len(data))
	return nil
}
