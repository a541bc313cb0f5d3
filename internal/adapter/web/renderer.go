// Package web renders the portal's HTML views.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"map2map-portal/internal/core/domain/auth"
	"map2map-portal/internal/core/domain/business"
)

//go:embed templates/*.html
var templatesFS embed.FS

const htmlContentType = "text/html; charset=utf-8"

// LoginPage is shown to signed-out visitors.
type LoginPage struct {
	LoginURL string
	Error    string
}

type DashboardPage struct {
	User         auth.User
	Business     *business.Business
	Query        string
	ChatResponse string
	ChatError    string
}

type CallbackPage struct {
	Redirect string
}

type Renderer struct {
	templates *template.Template
}

func NewRenderer() (*Renderer, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Renderer{templates: tmpl}, nil
}

func (r *Renderer) Login(w http.ResponseWriter, status int, page LoginPage) error {
	return r.render(w, status, "login", page)
}

func (r *Renderer) Dashboard(w http.ResponseWriter, status int, page DashboardPage) error {
	return r.render(w, status, "dashboard", page)
}

func (r *Renderer) Callback(w http.ResponseWriter, status int, page CallbackPage) error {
	return r.render(w, status, "callback", page)
}

// render executes into a buffer first so a template error never leaves a
// half-written page behind.
func (r *Renderer) render(w http.ResponseWriter, status int, name string, data any) error {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}
	w.Header().Set("Content-Type", htmlContentType)
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
