package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"graph-copier/internal/analyze"
	"graph-copier/internal/diagnostic"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const (
	outputText = "text"
	outputYAML = "yaml"
)

// tableView is the serialized form of a static attribute table.
type tableView struct {
	Type       string          `yaml:"type"`
	Attributes []attributeView `yaml:"attributes"`
}

type attributeView struct {
	Name     string `yaml:"name"`
	Field    string `yaml:"field,omitempty"`
	Type     string `yaml:"type"`
	Kind     string `yaml:"kind"`
	Category string `yaml:"category,omitempty"`
	Key      bool   `yaml:"key,omitempty"`
	Reader   string `yaml:"reader,omitempty"`
	Writer   string `yaml:"writer,omitempty"`
	Adder    string `yaml:"adder,omitempty"`
	Remover  string `yaml:"remover,omitempty"`
}

func newInspectCmd(a *app) *cobra.Command {
	var (
		output string
		dir    string
		strict bool
	)

	cmd := &cobra.Command{
		Use:   "inspect <package>...",
		Short: "Report the mergeable attributes of the struct types in Go packages",
		Long: `inspect type-checks the packages matching the patterns and prints, for every
exported struct type, the attributes a merge reaches and how: a field, an
accessor method, a mutator method, an adder or a remover. Attributes the merge
engine would skip are reported as diagnostics.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output != outputText && output != outputYAML {
				return fmt.Errorf("unknown output %q: want %s or %s", output, outputText, outputYAML)
			}

			loader := analyze.NewLoader(a.log)
			loader.Dir = dir

			report, err := loader.Load(args...)
			if err != nil {
				return err
			}

			a.log.Info("packages inspected",
				zap.Strings("patterns", args),
				zap.Int("types", len(report.Tables)),
				zap.Int("diagnostics", report.Diagnostics.Len()))

			views := make([]tableView, 0, len(report.Tables))
			for _, table := range report.Tables {
				views = append(views, viewOf(table))
			}

			out := cmd.OutOrStdout()

			if output == outputYAML {
				err = writeYAML(out, views)
			} else {
				err = writeText(out, views)
			}

			if err != nil {
				return err
			}

			writeDiagnostics(cmd.ErrOrStderr(), &report.Diagnostics)

			if strict {
				return report.Diagnostics.Error()
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", outputText, "output format: text or yaml")
	cmd.Flags().StringVar(&dir, "dir", "", "directory the package patterns are resolved in")
	cmd.Flags().BoolVar(&strict, "strict", false, "fail when error diagnostics are reported")

	return cmd
}

func viewOf(table *analyze.StaticTable) tableView {
	view := tableView{Type: table.ID.String()}

	for _, attr := range table.Attributes {
		v := attributeView{
			Name:    attr.Name,
			Type:    attr.Type,
			Kind:    attr.Kind.String(),
			Key:     attr.Key,
			Reader:  attr.Reader,
			Writer:  attr.Writer,
			Adder:   attr.Adder,
			Remover: attr.Remover,
		}

		if attr.FieldName != attr.Name {
			v.Field = attr.FieldName
		}

		if attr.Category != 0 {
			v.Category = attr.Category.String()
		}

		view.Attributes = append(view.Attributes, v)
	}

	return view
}

func writeYAML(w io.Writer, views []tableView) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	if err := enc.Encode(views); err != nil {
		return err
	}

	return enc.Close()
}

func writeText(w io.Writer, views []tableView) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	for i, view := range views {
		if i > 0 {
			fmt.Fprintln(tw)
		}

		fmt.Fprintln(tw, view.Type)

		for _, attr := range view.Attributes {
			var flags []string
			if attr.Key {
				flags = append(flags, "key")
			}

			if attr.Category != "" {
				flags = append(flags, attr.Category)
			}

			fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\t%s\n",
				attr.Name, attr.Type, attr.Kind, strings.Join(flags, ","), routes(attr))
		}
	}

	return tw.Flush()
}

func routes(attr attributeView) string {
	var parts []string

	for _, r := range []struct{ label, route string }{
		{"get", attr.Reader},
		{"set", attr.Writer},
		{"add", attr.Adder},
		{"remove", attr.Remover},
	} {
		if r.route != "" {
			parts = append(parts, r.label+"="+r.route)
		}
	}

	return strings.Join(parts, " ")
}

func writeDiagnostics(w io.Writer, diags *diagnostic.Diagnostics) {
	for _, d := range diags.All() {
		fmt.Fprintf(w, "%s: %s\n", d.Severity, d)
	}
}
