package http

import (
	"fmt"
	"html/template"
	"sync"
)

// Dashboard HTML template
const dashboardTmpl = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Movies &amp; Animals Dashboard</title>
<style>
body{font-family:-apple-system,BlinkMacSystemFont,"Segoe UI",Helvetica,Arial,sans-serif;margin:0;background:#f6f8fa;color:#24292f}
.container{max-width:1080px;margin:0 auto;padding:24px}
h1{font-size:22px;margin:0 0 4px}
h2{font-size:17px;margin:28px 0 10px;border-bottom:1px solid #d0d7de;padding-bottom:6px}
.subtitle{color:#57606a;font-size:13px;margin-bottom:20px}
.card{background:#fff;border:1px solid #d0d7de;border-radius:6px;padding:16px;margin-bottom:16px}
.filters{display:flex;flex-wrap:wrap;gap:8px 16px;align-items:center}
.filters label{font-size:13px;white-space:nowrap}
.filters input[type=number]{width:80px;padding:3px 6px;border:1px solid #d0d7de;border-radius:4px}
.filters select{padding:3px 6px;border:1px solid #d0d7de;border-radius:4px}
button{background:#2da44e;color:#fff;border:0;border-radius:6px;padding:6px 14px;font-size:13px;cursor:pointer}
table{border-collapse:collapse;width:100%;font-size:13px}
th,td{border:1px solid #d0d7de;padding:5px 8px;text-align:left}
th{background:#f6f8fa}
td.num{text-align:right;font-variant-numeric:tabular-nums}
img.chart{max-width:100%;border:1px solid #d0d7de;border-radius:6px;background:#fff}
.error{background:#ffebe9;border:1px solid rgba(255,129,130,.4);border-radius:6px;padding:10px 14px;font-size:13px;margin-bottom:16px}
.note{color:#57606a;font-size:12px;margin-top:6px}
.fit{font-size:13px;color:#57606a;margin:6px 0}
</style>
</head>
<body>
<div class="container">
<h1>Movies &amp; Animals Dashboard</h1>
<p class="subtitle">Box-office gross by genre over the years, and survival strategies across species.</p>

<form method="get" action="/">
<input type="hidden" name="genre" value="">
<input type="hidden" name="metric" value="">
<div class="card">
<h2>Movie filters</h2>
<div class="filters">
{{range .Genres}}<label><input type="checkbox" name="genre" value="{{.Name}}"{{if .Checked}} checked{{end}}> {{.Name}}</label>
{{end}}
</div>
<div class="filters" style="margin-top:10px">
<label>Years <input type="number" name="year_from" value="{{.YearFrom}}" min="{{.MinYear}}" max="{{.MaxYear}}"></label>
<label>to <input type="number" name="year_to" value="{{.YearTo}}" min="{{.MinYear}}" max="{{.MaxYear}}"></label>
<button type="submit">Apply</button>
</div>
</div>

{{if .MovieError}}<div class="error">Movie data not loaded correctly: {{.MovieError}}</div>{{else}}
<div class="card">
<h2>Gross earnings by genre</h2>
<img class="chart" src="{{.GrossChartURL}}" alt="Gross earnings line chart">
</div>

<div class="card">
<h2>Filtered movies</h2>
<table>
<tr><th>Year</th><th>Title</th><th>Genre</th><th>Gross</th></tr>
{{range .MovieRows}}<tr><td>{{.Year}}</td><td>{{.Title}}</td><td>{{.Genre}}</td><td class="num">{{gross .Gross}}</td></tr>
{{end}}
</table>
{{if .MovieRowsTruncated}}<p class="note">Showing the first {{len .MovieRows}} rows. Export the full selection as <a href="{{.ExportURL}}">movies.xlsx</a>.</p>
{{else}}<p class="note">Export this selection as <a href="{{.ExportURL}}">movies.xlsx</a>.</p>{{end}}
</div>
{{end}}

<div class="card">
<h2>Species metrics</h2>
<div class="filters">
{{range .Metrics}}<label><input type="checkbox" name="metric" value="{{.Name}}"{{if .Checked}} checked{{end}}> {{.Name}}</label>
{{end}}
</div>
<div class="filters" style="margin-top:10px">
<label>X variable <select name="x">{{range .XOptions}}<option value="{{.Name}}"{{if .Selected}} selected{{end}}>{{.Name}}</option>{{end}}</select></label>
<label>Y variable <select name="y">{{range .YOptions}}<option value="{{.Name}}"{{if .Selected}} selected{{end}}>{{.Name}}</option>{{end}}</select></label>
<button type="submit">Apply</button>
</div>
</div>
</form>

{{if .SpeciesError}}<div class="error">Species data not loaded correctly: {{.SpeciesError}}</div>{{else}}
{{if .MetricsChartURL}}<div class="card">
<h2>Survival strategies</h2>
<img class="chart" src="{{.MetricsChartURL}}" alt="Species metrics bar chart">
</div>{{end}}

<div class="card">
<h2>Regression</h2>
{{if .RegressionError}}<div class="error">{{.RegressionError}}</div>{{else}}
<p class="fit">{{.Fit.YVariable}} = {{printf "%.4f" .Fit.Intercept}} + {{printf "%.4f" .Fit.Slope}} &times; {{.Fit.XVariable}}</p>
<img class="chart" src="{{.RegressionChartURL}}" alt="Regression scatter chart">
<table style="margin-top:12px">
<tr><th>{{.Fit.XVariable}}</th><th>{{.Fit.YVariable}}</th><th>Predicted</th></tr>
{{range .Fit.Points}}<tr><td class="num">{{printf "%.2f" .X}}</td><td class="num">{{printf "%.2f" .Y}}</td><td class="num">{{printf "%.2f" .Predicted}}</td></tr>
{{end}}
</table>
{{end}}
</div>
{{end}}

</div>
</body>
</html>`

var dashboardFuncMap = template.FuncMap{
	"gross": func(v float64) string {
		return fmt.Sprintf("%.0f", v)
	},
}

// Lazy template initialization
var (
	tmplDashboard     *template.Template
	tmplDashboardOnce sync.Once
)

func getDashboardTemplate() *template.Template {
	tmplDashboardOnce.Do(func() {
		tmplDashboard = template.Must(template.New("dashboard").
			Funcs(dashboardFuncMap).Parse(dashboardTmpl))
	})
	return tmplDashboard
}
