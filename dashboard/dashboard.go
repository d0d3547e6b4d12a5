// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package dashboard implements an interactive web page
// to explore migration events,
// filtered by their origins and destinations.
//
// Each request is answered from the tables loaded
// when the server was created;
// the tables are never modified.
package dashboard

import (
	"bytes"
	"errors"
	"html/template"
	"log"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/js-arias/phymig/geoloc"
	"github.com/js-arias/phymig/migmap"
	"github.com/js-arias/phymig/migration"
)

// Server is a dashboard server.
type Server struct {
	locs   *geoloc.Table
	events *migration.Events
	opts   migmap.Options

	engine *gin.Engine
}

// New creates a new dashboard
// for the given locations and events.
// Events with an Unknown origin or destination
// are ignored.
// The filters of the options are ignored.
func New(locs *geoloc.Table, events *migration.Events, opts migmap.Options) *Server {
	opts.Origins = nil
	opts.Destinations = nil
	s := &Server{
		locs:   locs,
		events: events.Known(),
		opts:   opts,
	}

	r := gin.Default()
	r.SetHTMLTemplate(page)
	r.GET("/", s.index)
	r.GET("/map.svg", s.mapSVG)
	r.GET("/events.csv", s.eventsCSV)
	s.engine = r
	return s
}

// Handler returns the HTTP handler of the dashboard.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run starts the dashboard at the given address.
func (s *Server) Run(addr string) error {
	log.Printf("listening on %s", addr)
	return s.engine.Run(addr)
}

type selection struct {
	origins      []string
	destinations []string
}

func readSelection(c *gin.Context) selection {
	return selection{
		origins:      nonEmpty(c.QueryArray("origin")),
		destinations: nonEmpty(c.QueryArray("destination")),
	}
}

func nonEmpty(ls []string) []string {
	var ne []string
	for _, v := range ls {
		if v == "" {
			continue
		}
		ne = append(ne, v)
	}
	return ne
}

func (sel selection) query() string {
	v := url.Values{}
	for _, o := range sel.origins {
		v.Add("origin", o)
	}
	for _, d := range sel.destinations {
		v.Add("destination", d)
	}
	return v.Encode()
}

type option struct {
	Name     string
	Selected bool
}

func options(names, selected []string) []option {
	sel := make(map[string]bool, len(selected))
	for _, s := range selected {
		sel[s] = true
	}
	opts := make([]option, 0, len(names))
	for _, n := range names {
		opts = append(opts, option{Name: n, Selected: sel[n]})
	}
	return opts
}

func (s *Server) index(c *gin.Context) {
	sel := readSelection(c)
	found := s.events.Filter(sel.origins, sel.destinations).Len()

	c.HTML(http.StatusOK, "index", gin.H{
		"Title":        migmap.Title(sel.origins, sel.destinations),
		"Origins":      options(s.events.Origins(), sel.origins),
		"Destinations": options(s.events.Destinations(), sel.destinations),
		"MapURL":       template.URL("/map.svg?" + sel.query()),
		"EventsURL":    template.URL("/events.csv?" + sel.query()),
		"Found":        found,
		"NotFound":     migmap.ErrNoEvents.Error(),
	})
}

func (s *Server) mapSVG(c *gin.Context) {
	sel := readSelection(c)
	opts := s.opts
	opts.Origins = sel.origins
	opts.Destinations = sel.destinations

	m, err := migmap.New(s.locs, s.events, opts)
	if errors.Is(err, migmap.ErrNoEvents) {
		c.String(http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		c.String(http.StatusInternalServerError, err.Error())
		return
	}

	var b bytes.Buffer
	if err := m.Encode(&b, "svg"); err != nil {
		c.String(http.StatusInternalServerError, err.Error())
		return
	}
	c.Data(http.StatusOK, "image/svg+xml", b.Bytes())
}

func (s *Server) eventsCSV(c *gin.Context) {
	sel := readSelection(c)
	ev := s.events.Filter(sel.origins, sel.destinations)

	var b bytes.Buffer
	if err := migration.WriteLocated(&b, ev.Locate(s.locs)); err != nil {
		c.String(http.StatusInternalServerError, err.Error())
		return
	}
	c.Data(http.StatusOK, "text/csv; charset=utf-8", b.Bytes())
}

var page = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: Verdana, sans-serif; margin: 1em; }
form { display: flex; gap: 2em; }
select { min-width: 14em; }
img { width: 100%; max-width: 1200px; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<form method="get" action="/">
<label>Origins<br>
<select name="origin" multiple size="8" onchange="this.form.submit()">
{{range .Origins}}<option value="{{.Name}}"{{if .Selected}} selected{{end}}>{{.Name}}</option>
{{end}}</select>
</label>
<label>Destinations<br>
<select name="destination" multiple size="8" onchange="this.form.submit()">
{{range .Destinations}}<option value="{{.Name}}"{{if .Selected}} selected{{end}}>{{.Name}}</option>
{{end}}</select>
</label>
<p><a href="/">clear</a> | <a href="{{.EventsURL}}">events</a></p>
</form>
{{if .Found}}<p>{{.Found}} migrations</p>
<img src="{{.MapURL}}" alt="{{.Title}}">
{{else}}<p>{{.NotFound}}</p>
{{end}}</body>
</html>
`))
