package api

import (
	"embed"
	"html/template"
)

//go:embed templates/*
var templateFS embed.FS

var tmpl = template.Must(template.New("").ParseFS(templateFS, "templates/*.html"))
