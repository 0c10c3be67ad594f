package diagnostic

import (
	"errors"
	"fmt"
	"strings"

	"graph-copier/internal/common"
)

// Diagnostics collects the findings about attribute tables, by severity.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic is a single finding about a type or one of its attributes.
type Diagnostic struct {
	Severity SeverityEnum
	// Code identifies the kind of finding, e.g. "no-reader".
	Code    string
	Message string
	// Type is the host type, e.g. "graph-copier/store.Person".
	Type string
	// Path is the attribute name or dotted attribute path.
	Path        string
	Suggestions []string
}

type SeverityEnum int

const (
	SeverityInfo SeverityEnum = iota
	SeverityWarning
	SeverityError
)

func (s SeverityEnum) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return common.UnknownStr
	}
}

func (d *Diagnostics) Add(diag Diagnostic) {
	switch diag.Severity {
	case SeverityError:
		d.Errors = append(d.Errors, diag)
	case SeverityWarning:
		d.Warnings = append(d.Warnings, diag)
	default:
		d.Infos = append(d.Infos, diag)
	}
}

func (d *Diagnostics) AddError(code, message, typ, path string, suggestions ...string) {
	d.Add(Diagnostic{SeverityError, code, message, typ, path, suggestions})
}

func (d *Diagnostics) AddWarning(code, message, typ, path string, suggestions ...string) {
	d.Add(Diagnostic{SeverityWarning, code, message, typ, path, suggestions})
}

func (d *Diagnostics) AddInfo(code, message, typ, path string) {
	d.Add(Diagnostic{SeverityInfo, code, message, typ, path, nil})
}

func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Len counts diagnostics of every severity.
func (d *Diagnostics) Len() int {
	return len(d.Errors) + len(d.Warnings) + len(d.Infos)
}

// All lists errors first, then warnings, then infos.
func (d *Diagnostics) All() []Diagnostic {
	all := make([]Diagnostic, 0, d.Len())
	all = append(all, d.Errors...)
	all = append(all, d.Warnings...)

	return append(all, d.Infos...)
}

// Error joins the error diagnostics, or returns nil when there are none.
func (d *Diagnostics) Error() error {
	if !d.HasErrors() {
		return nil
	}

	errs := make([]error, 0, len(d.Errors))
	for _, e := range d.Errors {
		errs = append(errs, errors.New(e.String()))
	}

	return errors.Join(errs...)
}

// String renders the diagnostic, e.g.
// "[graph-copier/store.Person] createdAt: [no-writer] attribute has no writer and is only read (did you mean SetCreatedAt, WithCreatedAt?)".
func (d Diagnostic) String() string {
	var b strings.Builder

	if d.Type != "" {
		fmt.Fprintf(&b, "[%s] ", d.Type)
	}

	if d.Path != "" {
		b.WriteString(d.Path)
		b.WriteString(": ")
	}

	if d.Code != "" {
		fmt.Fprintf(&b, "[%s] ", d.Code)
	}

	b.WriteString(d.Message)

	if len(d.Suggestions) > 0 {
		fmt.Fprintf(&b, " (did you mean %s?)", strings.Join(d.Suggestions, ", "))
	}

	return b.String()
}
