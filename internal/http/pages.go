package http

import (
	"embed"
	"html/template"
	"log"
	"net/http"

	"github.com/GabrielMorais2/system-management-usegm/internal/session"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Pages renders the panel's HTML shells. The pages carry no data beyond the
// session identity; everything they show is loaded through /panel/api.
type Pages struct {
	tmpl *template.Template
}

func NewPages() (*Pages, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Pages{tmpl: tmpl}, nil
}

type pageData struct {
	Title  string
	Active string
	Name   string
	Admin  bool
}

func (p *Pages) render(w http.ResponseWriter, r *http.Request, name string, data pageData) {
	if _, s, ok := session.FromContext(r.Context()); ok && s != nil {
		data.Name = s.Name
		data.Admin = s.IsAdmin()
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := p.tmpl.ExecuteTemplate(w, name, data); err != nil {
		log.Printf("render %s failed: %v", name, err)
	}
}

func (p *Pages) Login(w http.ResponseWriter, r *http.Request) {
	p.render(w, r, "login.html", pageData{Title: "Login"})
}

func (p *Pages) Register(w http.ResponseWriter, r *http.Request) {
	p.render(w, r, "register.html", pageData{Title: "Cadastro"})
}

func (p *Pages) Dashboard(w http.ResponseWriter, r *http.Request) {
	p.render(w, r, "dashboard.html", pageData{Title: "Dashboard", Active: "dashboard"})
}

func (p *Pages) Pedidos(w http.ResponseWriter, r *http.Request) {
	p.render(w, r, "pedidos.html", pageData{Title: "Pedidos", Active: "pedidos"})
}

func (p *Pages) Estoques(w http.ResponseWriter, r *http.Request) {
	p.render(w, r, "estoques.html", pageData{Title: "Estoque", Active: "estoques"})
}

func (p *Pages) NotFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	p.render(w, r, "notfound.html", pageData{Title: "Página não encontrada"})
}
