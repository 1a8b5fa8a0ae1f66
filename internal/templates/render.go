package templates

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"fincast/internal/models"
)

var (
	lineNumberRe   = regexp.MustCompile(`:(\d+):`)
	templateCallRe = regexp.MustCompile(`\{\{-?\s*template\s+"([^"]+)"`)
)

// Renderer handles template rendering
type Renderer struct {
	mu        sync.RWMutex
	templates *template.Template
	debug     bool
	baseDir   string
	log       zerolog.Logger
}

// New creates a new template renderer. In debug mode templates are
// re-parsed before every render.
func New(templateDir string, debug bool, logger zerolog.Logger) (*Renderer, error) {
	r := &Renderer{
		debug:   debug,
		baseDir: templateDir,
		log:     logger.With().Str("component", "templates").Logger(),
	}

	if err := r.loadTemplates(); err != nil {
		return nil, err
	}

	return r, nil
}

// FuncMap returns the template function map
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"figure": figureJSON,
		"dict":   dict,
	}
}

// source is one template file read from disk
type source struct {
	path string
	text string
}

// readSources reads every template under the known subdirectories
func readSources(dir string) ([]source, error) {
	var out []source
	for _, subdir := range []string{"layouts", "pages", "partials", "components"} {
		matches, err := filepath.Glob(filepath.Join(dir, subdir, "*.html"))
		if err != nil {
			return nil, fmt.Errorf("templates: %s: %w", subdir, err)
		}
		for _, path := range matches {
			b, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("templates: %w", err)
			}
			out = append(out, source{path: path, text: string(b)})
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("templates: no template files in %s", dir)
	}
	return out, nil
}

// loadTemplates parses the template directory and swaps it in only if
// every file parses and every {{template}} call resolves
func (r *Renderer) loadTemplates() error {
	sources, err := readSources(r.baseDir)
	if err != nil {
		return err
	}

	tmpl := template.New("").Funcs(FuncMap())
	failed := 0
	for _, src := range sources {
		if _, err := tmpl.New(filepath.Base(src.path)).Parse(src.text); err != nil {
			failed++
			r.log.Error().Str("file", src.path).Msg(excerpt(src.text, err))
		}
	}
	if failed > 0 {
		return fmt.Errorf("template parsing failed with %d error(s)", failed)
	}

	if missing := r.unresolved(tmpl, sources); missing > 0 {
		return fmt.Errorf("found %d undefined template reference(s)", missing)
	}

	r.mu.Lock()
	r.templates = tmpl
	r.mu.Unlock()
	r.log.Debug().Int("files", len(sources)).Msg("templates loaded")
	return nil
}

// excerpt renders err with the lines around the one it points at
func excerpt(text string, err error) string {
	msg := err.Error()
	m := lineNumberRe.FindStringSubmatch(msg)
	if m == nil {
		return msg
	}
	line, convErr := strconv.Atoi(m[1])
	if convErr != nil || line <= 0 {
		return msg
	}

	lines := strings.Split(text, "\n")
	var sb strings.Builder
	sb.WriteString(msg)
	for i := max(line-3, 0); i < min(line+2, len(lines)); i++ {
		marker := "   "
		if i+1 == line {
			marker = ">>>"
		}
		fmt.Fprintf(&sb, "\n  %s %4d | %s", marker, i+1, lines[i])
	}
	return sb.String()
}

// unresolved logs and counts {{template "name"}} calls that have no
// definition
func (r *Renderer) unresolved(tmpl *template.Template, sources []source) int {
	defined := make(map[string]bool)
	for _, t := range tmpl.Templates() {
		defined[t.Name()] = true
	}

	missing := 0
	for _, src := range sources {
		for _, loc := range templateCallRe.FindAllStringSubmatchIndex(src.text, -1) {
			name := src.text[loc[2]:loc[3]]
			if defined[name] {
				continue
			}
			missing++
			r.log.Error().
				Str("file", src.path).
				Int("line", strings.Count(src.text[:loc[0]], "\n")+1).
				Strs("defined", definedNames(defined)).
				Msgf("undefined template %q", name)
		}
	}
	return missing
}

func definedNames(defined map[string]bool) []string {
	names := make([]string, 0, len(defined))
	for name := range defined {
		if name != "" && !strings.HasSuffix(name, ".html") {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func (r *Renderer) current() *template.Template {
	if r.debug {
		if err := r.loadTemplates(); err != nil {
			r.log.Error().Err(err).Msg("reloading templates")
		}
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.templates
}

// Render executes the named template as an HTML response. The output is
// buffered so a failing template never sends a half-written page.
func (r *Renderer) Render(w http.ResponseWriter, name string, data interface{}) error {
	var buf bytes.Buffer
	if err := r.current().ExecuteTemplate(&buf, name, data); err != nil {
		r.log.Error().Err(err).Str("template", name).Msg("rendering template")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, err := buf.WriteTo(w)
	return err
}

// figureJSON encodes a Plotly figure for a data attribute
func figureJSON(fig *models.Figure) (string, error) {
	if fig == nil {
		return "", nil
	}
	b, err := json.Marshal(fig)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// dict creates a map from key-value pairs
func dict(values ...interface{}) (map[string]interface{}, error) {
	if len(values)%2 != 0 {
		return nil, fmt.Errorf("dict: odd number of arguments")
	}
	out := make(map[string]interface{}, len(values)/2)
	for i := 0; i < len(values); i += 2 {
		key, ok := values[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict: key %v is not a string", values[i])
		}
		out[key] = values[i+1]
	}
	return out, nil
}
