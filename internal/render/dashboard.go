package render

import (
	"fmt"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/plot/plotter"

	"github.com/banshee-data/survival.report/internal/dataset"
	"github.com/banshee-data/survival.report/internal/stats"
)

// DashboardTitle is the HTML page title of the dashboard.
const DashboardTitle = "Titanic EDA Dashboard"

var coolwarmStops = []string{"#3b4cc0", "#dddddd", "#b40426"}

func chartInit(height string) opts.Initialization {
	return opts.Initialization{Width: "900px", Height: height}
}

// Dashboard builds an interactive page with the same charts as the static
// figures, plus per-class survival rates.
func Dashboard(t *dataset.Table, corr *stats.NamedMatrix, bins int) (*components.Page, error) {
	survival, err := countBar(t, dataset.ColSurvived, "Survival Count")
	if err != nil {
		return nil, err
	}
	byClass, err := groupedBar(t, dataset.ColPclass, dataset.ColSurvived, "Survival by Passenger Class")
	if err != nil {
		return nil, err
	}
	age, err := histogramBar(t, dataset.ColAge, "Age Distribution", bins)
	if err != nil {
		return nil, err
	}
	fare, err := histogramBar(t, dataset.ColFare, "Fare Distribution", bins)
	if err != nil {
		return nil, err
	}
	rates, err := classRateBar(t)
	if err != nil {
		return nil, err
	}

	page := components.NewPage()
	page.PageTitle = DashboardTitle
	page.AddCharts(survival, byClass, age, fare, rates, correlationHeatmap(corr))
	return page, nil
}

func countBar(t *dataset.Table, col, title string) (*charts.Bar, error) {
	values, err := t.NumericValues(col)
	if err != nil {
		return nil, err
	}
	keys, counts := stats.Counts(values)

	data := make([]opts.BarData, len(counts))
	for i, c := range counts {
		data[i] = opts.BarData{Value: c}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(chartInit("400px")),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: col}),
	)
	bar.SetXAxis(labels(keys)).
		AddSeries("count", data,
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}),
		)
	return bar, nil
}

func groupedBar(t *dataset.Table, x, hue, title string) (*charts.Bar, error) {
	xs, err := t.NumericColumn(x)
	if err != nil {
		return nil, err
	}
	hs, err := t.NumericColumn(hue)
	if err != nil {
		return nil, err
	}
	xKeys, _ := stats.Counts(validOf(xs))
	hKeys, _ := stats.Counts(validOf(hs))
	xIdx := indexOf(xKeys)
	hIdx := indexOf(hKeys)

	counts := make([][]int, len(hKeys))
	for h := range counts {
		counts[h] = make([]int, len(xKeys))
	}
	for i := range xs.Nums {
		if xs.Valid[i] && hs.Valid[i] {
			counts[hIdx[hs.Nums[i]]][xIdx[xs.Nums[i]]]++
		}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(chartInit("400px")),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Right: "10%"}),
		charts.WithXAxisOpts(opts.XAxis{Name: x}),
	)
	bar.SetXAxis(labels(xKeys))
	for h, hk := range hKeys {
		data := make([]opts.BarData, len(xKeys))
		for i, c := range counts[h] {
			data[i] = opts.BarData{Value: c}
		}
		bar.AddSeries(fmt.Sprintf("%s=%s", hue, categoryLabel(hk)), data)
	}
	return bar, nil
}

func histogramBar(t *dataset.Table, col, title string, bins int) (*charts.Bar, error) {
	values, err := t.NumericValues(col)
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("histogram of %s: %w", col, stats.ErrNoData)
	}
	h, err := plotter.NewHist(plotter.Values(values), bins)
	if err != nil {
		return nil, fmt.Errorf("%s histogram: %w", col, err)
	}

	x := make([]string, len(h.Bins))
	data := make([]opts.BarData, len(h.Bins))
	for i, b := range h.Bins {
		x[i] = fmt.Sprintf("%.1f-%.1f", b.Min, b.Max)
		data[i] = opts.BarData{Value: b.Weight}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(chartInit("400px")),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: col}),
	)
	bar.SetXAxis(x).AddSeries("count", data, charts.WithBarChartOpts(opts.BarChart{BarCategoryGap: "5%"}))
	return bar, nil
}

// classRateBar shows the survival percentage of each passenger class.
func classRateBar(t *dataset.Table) (*charts.Bar, error) {
	class, err := t.NumericColumn(dataset.ColPclass)
	if err != nil {
		return nil, err
	}
	survived, err := t.NumericColumn(dataset.ColSurvived)
	if err != nil {
		return nil, err
	}
	keys, _ := stats.Counts(validOf(class))
	idx := indexOf(keys)
	total := make([]int, len(keys))
	alive := make([]int, len(keys))
	for i := range class.Nums {
		if !class.Valid[i] || !survived.Valid[i] {
			continue
		}
		k := idx[class.Nums[i]]
		total[k]++
		if survived.Nums[i] == 1 {
			alive[k]++
		}
	}

	data := make([]opts.BarData, len(keys))
	for i := range keys {
		rate := 0.0
		if total[i] > 0 {
			rate = stats.Round(100*float64(alive[i])/float64(total[i]), 2)
		}
		data[i] = opts.BarData{Value: rate}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(chartInit("400px")),
		charts.WithTitleOpts(opts.Title{Title: "Survival Rate by Class (%)"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: dataset.ColPclass}),
		charts.WithYAxisOpts(opts.YAxis{Min: 0, Max: 100}),
	)
	bar.SetXAxis(labels(keys)).
		AddSeries("survival %", data,
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}),
		)
	return bar, nil
}

func correlationHeatmap(corr *stats.NamedMatrix) *charts.HeatMap {
	n := len(corr.Names)
	data := make([]opts.HeatMapData, 0, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v := corr.M.At(i, j)
			var cell interface{} = stats.Round(v, 2)
			if math.IsNaN(v) {
				cell = "-"
			}
			data = append(data, opts.HeatMapData{Value: [3]interface{}{j, i, cell}})
		}
	}

	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		charts.WithInitializationOpts(chartInit("600px")),
		charts.WithTitleOpts(opts.Title{Title: "Correlation Heatmap"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Type: "category", Data: corr.Names}),
		charts.WithYAxisOpts(opts.YAxis{Type: "category", Data: corr.Names}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Calculable: opts.Bool(true),
			Min:        -1,
			Max:        1,
			InRange:    &opts.VisualMapInRange{Color: coolwarmStops},
		}),
	)
	hm.AddSeries("correlation", data,
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true)}),
	)
	return hm
}
