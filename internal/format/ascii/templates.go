package ascii

import (
	"bytes"
	_ "embed"
	"fmt"
	"strconv"
	"strings"
	"text/template"
	"time"

	"github.com/friendlymustache/KhanAcademyInterview/internal/core/domain"
)

const (
	noneString       = "None"
	boxWidth         = 60
	boxTitlePadding  = 5
	boxBottomPadding = 2
	maxListedIDs     = 12
)

var (
	//go:embed user.tmpl
	userTemplate string

	//go:embed users.tmpl
	usersTemplate string

	//go:embed components.tmpl
	componentsTemplate string

	//go:embed check.tmpl
	checkTemplate string
)

// Formatter renders engine state as boxed ASCII text.
type Formatter struct {
	ansi bool
}

// NewFormatter creates a formatter. ANSI styling is only emitted when ansi is set.
func NewFormatter(ansi bool) *Formatter {
	return &Formatter{ansi: ansi}
}

// UsersData holds data for the user listing template.
type UsersData struct {
	Users []*domain.User
}

// ComponentsData holds data for the component listing template.
type ComponentsData struct {
	Components []domain.Component
	Total      int
	Largest    int
}

// CheckData holds data for the self-check summary template.
type CheckData struct {
	Report  *domain.CheckReport
	Elapsed time.Duration
}

// FormatUser formats a single user with its relationships.
func (f *Formatter) FormatUser(user *domain.User) (string, error) {
	return f.execute("user", userTemplate, user)
}

// FormatUsers formats every user of the graph.
func (f *Formatter) FormatUsers(users []*domain.User) (string, error) {
	return f.execute("users", usersTemplate, UsersData{Users: users})
}

// FormatComponents formats the connected components and their sizes.
func (f *Formatter) FormatComponents(comps []domain.Component) (string, error) {
	data := ComponentsData{Components: comps}
	for _, c := range comps {
		data.Total += c.Size
		data.Largest = max(data.Largest, c.Size)
	}

	return f.execute("components", componentsTemplate, data)
}

// FormatCheckReport formats the outcome of a self-check run.
func (f *Formatter) FormatCheckReport(report *domain.CheckReport, elapsed time.Duration) (string, error) {
	return f.execute("check", checkTemplate, CheckData{Report: report, Elapsed: elapsed})
}

func (f *Formatter) execute(name, templateStr string, data any) (string, error) {
	tmpl, err := template.New(name).Funcs(f.templateFuncs()).Parse(templateStr)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

func (f *Formatter) templateFuncs() template.FuncMap {
	return template.FuncMap{
		"formatBoxTitle":  formatBoxTitle,
		"formatBoxBottom": formatBoxBottom,
		"joinIDs":         joinIDs,
		"pluralize":       pluralize,
		"bold": func(text string) string {
			if !f.ansi {
				return text
			}

			return "\033[1m" + text + "\033[0m"
		},
		"bar": func(size, largest int) string {
			if largest == 0 {
				return ""
			}

			return strings.Repeat("█", max(1, size*barWidth/largest))
		},
	}
}

const barWidth = 30

func formatBoxTitle(title string) string {
	titleMax := boxWidth - boxTitlePadding // space for ┌─, ─┐, and spaces

	// Strip ANSI escape codes for length calculation
	cleanTitle := strings.ReplaceAll(title, "\033[1m", "")
	cleanTitle = strings.ReplaceAll(cleanTitle, "\033[0m", "")

	t := cleanTitle
	if len(t) > titleMax {
		t = t[:titleMax]
	}
	dashCount := boxWidth - len(t) - boxTitlePadding
	if dashCount < 0 {
		dashCount = 0
	}

	return "┌─ " + title + " " + strings.Repeat("─", dashCount) + "┐"
}

func formatBoxBottom() string {
	return "└" + strings.Repeat("─", boxWidth-boxBottomPadding) + "┘"
}

// joinIDs lists the ids of a set in ascending order, eliding long lists.
func joinIDs(ids domain.IDSet) string {
	if ids.Len() == 0 {
		return noneString
	}

	sorted := ids.Sorted()
	shown := sorted[:min(len(sorted), maxListedIDs)]
	parts := make([]string, len(shown))
	for i, id := range shown {
		parts[i] = strconv.Itoa(id)
	}

	out := strings.Join(parts, ", ")
	if rest := len(sorted) - len(shown); rest > 0 {
		out += fmt.Sprintf(" (+%d more)", rest)
	}

	return out
}

func pluralize(count int) string {
	if count == 1 {
		return ""
	}

	return "s"
}
