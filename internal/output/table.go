package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/13rac1/cpam/internal/types"
	"github.com/olekukonko/tablewriter"
)

// PrintDependencies prints the [dependencies] table of cpam.toml.
func PrintDependencies(w io.Writer, deps map[string]string) {
	rows := Dependencies(deps)
	if len(rows) == 0 {
		fmt.Fprintln(w, "No dependencies.")
		return
	}

	fmt.Fprintln(w, "Dependencies")
	table := tablewriter.NewWriter(w)
	table.Header("Name", "Spec", "Kind")

	for _, d := range rows {
		table.Append(d.Name, d.Spec, d.Kind)
	}

	table.Render()
}

// PrintInfo prints the resolved project view as a two-column table.
func PrintInfo(w io.Writer, info Info) {
	name := info.Name
	if name == "" {
		name = "(none)"
	}

	fmt.Fprintln(w, "Project")
	table := tablewriter.NewWriter(w)
	table.Header("Field", "Value")

	table.Append("Name", name)
	if info.Language != "" {
		table.Append("Language", info.Language)
	}
	if info.ProjectType != "" {
		table.Append("Type", info.ProjectType)
	}
	table.Append("Generator", fmt.Sprintf("%s (%s)", info.Generator, info.GeneratorSource))
	table.Append("Layout", info.Layout)
	table.Append("Source dir", info.SourceDir)
	table.Append("Build dir", info.BuildDir)
	table.Append("Options", formatList(info.Options))
	table.Append("Executable", formatList(info.Executables))
	table.Append("Dependencies", formatCount(info.Dependencies))

	table.Render()
}

// PrintRemoteProjects prints the projects published under the S3 prefix.
func PrintRemoteProjects(w io.Writer, projects []types.RemoteProject) {
	if len(projects) == 0 {
		fmt.Fprintln(w, "No published projects found.")
		return
	}

	fmt.Fprintln(w, "Published Projects")
	table := tablewriter.NewWriter(w)
	table.Header("Project", "Artifacts", "Modes")

	for _, p := range projects {
		table.Append(p.Name, formatCount(p.Artifacts), formatList(p.Modes))
	}

	table.Render()
}

// formatCount formats a count for display, using "-" for zero values.
func formatCount(count int) string {
	if count == 0 {
		return "-"
	}
	return strconv.Itoa(count)
}

// formatList joins values for a single table cell, using "-" when empty.
func formatList(values []string) string {
	if len(values) == 0 {
		return "-"
	}
	return strings.Join(values, "\n")
}
