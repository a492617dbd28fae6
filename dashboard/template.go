package main

const dashboardTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Video Ad Analyzer</title>
<style>
  body { font-family: -apple-system, Helvetica, Arial, sans-serif; margin: 2rem; background: #111; color: #eee; }
  a { color: #6cf; text-decoration: none; }
  table { border-collapse: collapse; width: 100%; margin: 1rem 0; }
  th, td { text-align: left; padding: 0.5rem 0.75rem; border-bottom: 1px solid #333; }
  .score { font-weight: bold; }
  .status-completed { color: #6f6; }
  .status-failed { color: #f66; }
  .status-processing, .status-pending { color: #fc6; }
  .bar { background: #333; border-radius: 4px; height: 12px; width: 200px; display: inline-block; vertical-align: middle; }
  .bar > span { background: #6cf; border-radius: 4px; height: 12px; display: block; }
  .warning { color: #fc6; }
  h2 { margin-top: 2rem; border-bottom: 1px solid #333; padding-bottom: 0.25rem; }
</style>
</head>
<body>
<h1><a href="/">Video Ad Analyzer</a></h1>

{{if .Jobs}}
<table>
  <tr><th>Video</th><th>Status</th><th>Quality</th><th>Created</th></tr>
  {{range .Jobs}}
  <tr>
    <td><a href="/jobs/{{.ID}}">{{.OriginalName}}</a></td>
    <td class="status-{{.Status}}">{{.Status}}</td>
    <td class="score">{{if .Result}}{{printf "%.1f" .Result.QualityScore}}{{else}}-{{end}}</td>
    <td>{{.CreatedAt.Format "2006-01-02 15:04"}}</td>
  </tr>
  {{end}}
</table>
{{end}}

{{with .Job}}
<h2>{{.OriginalName}}</h2>
<p>Status: <span class="status-{{.Status}}">{{.Status}}</span>
{{if .PTDOptimized}} · PTD-optimized{{end}}
{{if gt .ProcessingTime 0.0}} · {{printf "%.1fs" .ProcessingTime}}{{end}}</p>

{{if .ErrorMessage}}<p class="warning">Error: {{.ErrorMessage}}</p>{{end}}
{{if .ParseWarning}}<p class="warning">Warning: {{.ParseWarning}}</p>{{end}}

{{with .Result}}
<p>{{.Summary}}</p>
<p class="score">Overall: {{printf "%.1f" .OverallScore}} / 10 · Quality: {{printf "%.1f" .QualityScore}} / 10</p>

{{if .Funnel}}
<h2>Funnel</h2>
<table>
  <tr><td>Hook</td><td><span class="bar"><span style="width:{{printf "%.0f" .Funnel.Hook}}0%"></span></span> {{printf "%.1f" .Funnel.Hook}}</td></tr>
  <tr><td>Problem agitation</td><td><span class="bar"><span style="width:{{printf "%.0f" .Funnel.ProblemAgitation}}0%"></span></span> {{printf "%.1f" .Funnel.ProblemAgitation}}</td></tr>
  <tr><td>Solution</td><td><span class="bar"><span style="width:{{printf "%.0f" .Funnel.Solution}}0%"></span></span> {{printf "%.1f" .Funnel.Solution}}</td></tr>
  <tr><td>Benefits</td><td><span class="bar"><span style="width:{{printf "%.0f" .Funnel.Benefits}}0%"></span></span> {{printf "%.1f" .Funnel.Benefits}}</td></tr>
  <tr><td>Call to action</td><td><span class="bar"><span style="width:{{printf "%.0f" .Funnel.CallToAction}}0%"></span></span> {{printf "%.1f" .Funnel.CallToAction}}</td></tr>
</table>
{{end}}

{{if .Scenes}}
<h2>Scenes</h2>
<table>
  <tr><th>Start</th><th>End</th><th>Description</th><th>Engagement</th></tr>
  {{range .Scenes}}
  <tr><td>{{.Start}}</td><td>{{.End}}</td><td>{{.Description}}</td><td class="score">{{printf "%.1f" .EngagementScore}}</td></tr>
  {{end}}
</table>
{{end}}

{{if .SelectedScenes}}
<h2>Selected for reconstruction</h2>
<table>
  <tr><th>Start</th><th>End</th><th>Description</th><th>Engagement</th></tr>
  {{range .SelectedScenes}}
  <tr><td>{{.Start}}</td><td>{{.End}}</td><td>{{.Description}}</td><td class="score">{{printf "%.1f" .EngagementScore}}</td></tr>
  {{end}}
</table>
{{end}}

{{if .Timestamps}}
<h2>Key moments</h2>
<table>
  <tr><th>At</th><th>Label</th><th>Note</th></tr>
  {{range .Timestamps}}
  <tr><td>{{.At}}</td><td>{{.Label}}</td><td>{{.Note}}</td></tr>
  {{end}}
</table>
{{end}}

{{if .Emotions}}
<h2>Emotions</h2>
<table>
  <tr><th>At</th><th>Emotion</th><th>Intensity</th></tr>
  {{range .Emotions}}
  <tr><td>{{.At}}</td><td>{{.Emotion}}</td><td>{{printf "%.1f" .Intensity}}</td></tr>
  {{end}}
</table>
{{end}}

{{if .Recommendations}}
<h2>Recommendations</h2>
<table>
  <tr><th>Category</th><th>Priority</th><th>Note</th></tr>
  {{range .Recommendations}}
  <tr><td>{{.Category}}</td><td>{{.Priority}}</td><td>{{.Note}}</td></tr>
  {{end}}
</table>
{{end}}
{{end}}
{{end}}

</body>
</html>`
