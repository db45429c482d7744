package generator

import (
	"bytes"
	"fmt"
	"text/template"
)

// Script skeleton: header, the helpers the body uses, then the body.
// Globbing is off because arrays and maps are stored as unquoted word lists.
const scriptTemplate = `{{define "script"}}#!/bin/sh
# Generated by Shard
set -f
{{range .Helpers}}
{{template "helper" .}}
{{end}}
{{.Body}}{{end}}`

const helperTemplate = `{{define "helper"}}{{.Name}}() {
{{.Body}}}{{end}}`

// Helper is a shell function emitted once before the body
type Helper struct {
	Name string
	Body string
}

// helpers by name, with bodies at a fixed two-space indent
var helpers = map[string]Helper{
	truthyHelper: {
		Name: truthyHelper,
		Body: `  case "$1" in
    ''|false|0) return 1 ;;
  esac
  return 0
`,
	},
}

const truthyHelper = "__shard_truthy"

// scriptData is the template input for one generated script
type scriptData struct {
	Helpers []Helper
	Body    string
}

var scriptTmpl = template.Must(template.New("shard").Parse(scriptTemplate + helperTemplate))

func renderScript(data scriptData) (string, error) {
	var buf bytes.Buffer
	if err := scriptTmpl.ExecuteTemplate(&buf, "script", data); err != nil {
		return "", fmt.Errorf("failed to execute script template: %w", err)
	}
	return buf.String(), nil
}
