package docs

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
)

// HTMLGenerator generates the standalone HTML reference site
type HTMLGenerator struct {
	config    *Config
	templates *template.Template
}

// NewHTMLGenerator creates a new HTML generator
func NewHTMLGenerator(config *Config) *HTMLGenerator {
	return &HTMLGenerator{
		config: config,
	}
}

// Generate writes the index page, one page per rule, and the stylesheet
func (g *HTMLGenerator) Generate(ref *Reference) error {
	outputDir := filepath.Join(g.config.OutputDir, "html")
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := g.loadTemplates(); err != nil {
		return err
	}

	if err := g.generateIndex(ref, outputDir); err != nil {
		return err
	}

	for _, rule := range ref.Rules {
		if err := g.generateRulePage(ref, rule, outputDir); err != nil {
			return err
		}
	}

	cssPath := filepath.Join(outputDir, "styles.css")
	if err := os.WriteFile(cssPath, []byte(cssContent), 0644); err != nil {
		return fmt.Errorf("failed to write CSS: %w", err)
	}

	return nil
}

// loadTemplates parses the embedded templates
func (g *HTMLGenerator) loadTemplates() error {
	funcMap := template.FuncMap{
		"join": strings.Join,
	}

	tmpl := template.New("").Funcs(funcMap)

	var err error
	tmpl, err = tmpl.Parse(indexTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse index template: %w", err)
	}

	tmpl, err = tmpl.Parse(ruleTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse rule template: %w", err)
	}

	g.templates = tmpl
	return nil
}

// generateIndex generates the index.html page
func (g *HTMLGenerator) generateIndex(ref *Reference, outputDir string) error {
	data := map[string]interface{}{
		"ToolVersion": ref.ToolVersion,
		"Rules":       ref.Rules,
		"Kinds":       ref.Kinds,
	}

	var buf bytes.Buffer
	if err := g.templates.ExecuteTemplate(&buf, "index", data); err != nil {
		return fmt.Errorf("failed to execute index template: %w", err)
	}

	outputPath := filepath.Join(outputDir, "index.html")
	return os.WriteFile(outputPath, buf.Bytes(), 0644)
}

// generateRulePage generates a rule detail page
func (g *HTMLGenerator) generateRulePage(ref *Reference, rule *RuleDoc, outputDir string) error {
	data := map[string]interface{}{
		"ToolVersion": ref.ToolVersion,
		"Rules":       ref.Rules,
		"Rule":        rule,
	}

	var buf bytes.Buffer
	if err := g.templates.ExecuteTemplate(&buf, "rule", data); err != nil {
		return fmt.Errorf("failed to execute rule template: %w", err)
	}

	outputPath := filepath.Join(outputDir, rule.ID+".html")
	return os.WriteFile(outputPath, buf.Bytes(), 0644)
}

// Template definitions

const indexTemplate = `{{define "index"}}
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Aabhalint Rule Reference</title>
    <link rel="stylesheet" href="styles.css">
</head>
<body>
    <div class="container">
        <nav class="sidebar">
            <div class="sidebar-header">
                <h2>aabhalint</h2>
                {{if .ToolVersion}}<p class="version">{{.ToolVersion}}</p>{{end}}
            </div>
            <div class="nav-section">
                <h3>Rules</h3>
                <ul class="nav-list">
                    {{range .Rules}}
                    <li><a href="{{.ID}}.html">{{.ID}}</a></li>
                    {{end}}
                </ul>
            </div>
        </nav>
        <main class="content">
<div class="page-header">
    <h1>Rule Reference</h1>
    <p class="description">Checks applied to decorator metadata on Aabha class declarations.</p>
</div>

<div class="section">
    <h2>Rules</h2>
    <table class="rules-table">
        <thead>
            <tr>
                <th>Rule</th>
                <th>Severity</th>
                <th>Fixable</th>
                <th>Applies to</th>
                <th>Description</th>
            </tr>
        </thead>
        <tbody>
            {{range .Rules}}
            <tr>
                <td><a href="{{.ID}}.html"><code>{{.ID}}</code></a></td>
                <td><span class="severity severity-{{.Severity}}">{{.Severity}}</span></td>
                <td>{{if .Fixable}}Yes{{else}}No{{end}}</td>
                <td>{{if .AppliesToAll}}all kinds{{else}}@{{join .Kinds ", @"}}{{end}}</td>
                <td>{{.Description}}</td>
            </tr>
            {{end}}
        </tbody>
    </table>
</div>

<div class="section">
    <h2>Decorator Vocabulary</h2>
    <div class="kind-grid">
        {{range .Kinds}}
        <div class="kind-card">
            <h3>@{{.Name}}</h3>
            <p>{{range .Fields}}<code>{{.}}</code> {{end}}</p>
            <div class="kind-stats">
                <span>{{len .Rules}} rules</span>
            </div>
        </div>
        {{end}}
    </div>
</div>
        </main>
    </div>
</body>
</html>
{{end}}`

const ruleTemplate = `{{define "rule"}}
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Rule.ID}} - Aabhalint Rule Reference</title>
    <link rel="stylesheet" href="styles.css">
</head>
<body>
    <div class="container">
        <nav class="sidebar">
            <div class="sidebar-header">
                <h2><a href="index.html">aabhalint</a></h2>
                {{if .ToolVersion}}<p class="version">{{.ToolVersion}}</p>{{end}}
            </div>
            <div class="nav-section">
                <h3>Rules</h3>
                <ul class="nav-list">
                    {{range .Rules}}
                    <li><a href="{{.ID}}.html">{{.ID}}</a></li>
                    {{end}}
                </ul>
            </div>
        </nav>
        <main class="content">
<div class="page-header">
    <h1>{{.Rule.ID}}</h1>
    <p class="description">{{.Rule.Description}}</p>
    <div class="badges">
        <span class="severity severity-{{.Rule.Severity}}">{{.Rule.Severity}}</span>
        {{if .Rule.Fixable}}<span class="badge badge-fixable">fixable</span>{{end}}
        <span class="badge">{{if .Rule.AppliesToAll}}all kinds{{else}}@{{join .Rule.Kinds ", @"}}{{end}}</span>
    </div>
</div>

<div class="section">
    <h2>Messages</h2>
    <table class="rules-table">
        <thead>
            <tr>
                <th>ID</th>
                <th>Template</th>
            </tr>
        </thead>
        <tbody>
            {{range .Rule.Messages}}
            <tr>
                <td><code>{{.ID}}</code></td>
                <td>{{.Template}}</td>
            </tr>
            {{end}}
        </tbody>
    </table>
</div>

<div class="section">
    <h2>Configuration</h2>
    <pre><code>rules:
  {{.Rule.ID}}:
    enabled: true
    severity: {{.Rule.Severity}}</code></pre>
</div>
        </main>
    </div>
</body>
</html>
{{end}}`

const cssContent = `
* {
    margin: 0;
    padding: 0;
    box-sizing: border-box;
}

body {
    font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Oxygen, Ubuntu, Cantarell, sans-serif;
    line-height: 1.6;
    color: #333;
    background: #f5f5f5;
}

.container {
    display: flex;
    min-height: 100vh;
}

.sidebar {
    width: 250px;
    background: #2c3e50;
    color: #ecf0f1;
    padding: 20px;
    position: fixed;
    height: 100vh;
    overflow-y: auto;
}

.sidebar-header {
    margin-bottom: 30px;
    border-bottom: 1px solid #34495e;
    padding-bottom: 15px;
}

.sidebar-header h2 {
    font-size: 20px;
    margin-bottom: 5px;
}

.sidebar-header h2 a {
    color: #ecf0f1;
    text-decoration: none;
}

.version {
    font-size: 12px;
    color: #95a5a6;
}

.nav-section h3 {
    font-size: 14px;
    text-transform: uppercase;
    color: #95a5a6;
    margin-bottom: 10px;
}

.nav-list {
    list-style: none;
}

.nav-list li {
    margin-bottom: 5px;
}

.nav-list a {
    color: #ecf0f1;
    text-decoration: none;
    display: block;
    padding: 6px 12px;
    border-radius: 4px;
    font-size: 14px;
    transition: background 0.2s;
}

.nav-list a:hover {
    background: #34495e;
}

.content {
    margin-left: 250px;
    padding: 40px;
    flex: 1;
    background: white;
}

.page-header {
    margin-bottom: 40px;
    border-bottom: 2px solid #3498db;
    padding-bottom: 20px;
}

.page-header h1 {
    font-size: 32px;
    color: #2c3e50;
    margin-bottom: 10px;
}

.description {
    font-size: 16px;
    color: #7f8c8d;
}

.badges {
    margin-top: 15px;
}

.badge {
    display: inline-block;
    background: #ecf0f1;
    color: #34495e;
    padding: 4px 12px;
    border-radius: 4px;
    font-size: 13px;
    margin-right: 8px;
}

.badge-fixable {
    background: #27ae60;
    color: white;
}

.section {
    margin-bottom: 40px;
}

.section h2 {
    font-size: 24px;
    color: #2c3e50;
    margin-bottom: 20px;
    border-bottom: 1px solid #ecf0f1;
    padding-bottom: 10px;
}

.kind-grid {
    display: grid;
    grid-template-columns: repeat(auto-fill, minmax(300px, 1fr));
    gap: 20px;
    margin-top: 20px;
}

.kind-card {
    background: #f8f9fa;
    border: 1px solid #dee2e6;
    border-radius: 8px;
    padding: 20px;
}

.kind-card h3 {
    color: #3498db;
    margin-bottom: 10px;
}

.kind-stats {
    margin-top: 15px;
    font-size: 14px;
    color: #7f8c8d;
}

.rules-table {
    width: 100%;
    border-collapse: collapse;
    margin-top: 15px;
}

.rules-table th {
    background: #ecf0f1;
    padding: 12px;
    text-align: left;
    font-weight: 600;
    border-bottom: 2px solid #bdc3c7;
}

.rules-table td {
    padding: 12px;
    border-bottom: 1px solid #ecf0f1;
}

.severity {
    display: inline-block;
    padding: 4px 12px;
    border-radius: 4px;
    font-weight: 600;
    font-size: 13px;
}

.severity-problem { background: #e74c3c; color: white; }
.severity-suggestion { background: #3498db; color: white; }

pre {
    background: #2c3e50;
    color: #ecf0f1;
    padding: 15px;
    border-radius: 4px;
    overflow-x: auto;
    margin: 10px 0;
}

code {
    font-family: 'Courier New', monospace;
    font-size: 14px;
}
`
