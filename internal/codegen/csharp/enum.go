package csharp

import (
	"bytes"
	"fmt"
	"log/slog"
	"text/template"

	"github.com/hidio/usagegen/internal/usages"
)

const enumTemplate = `{{.Header}}
namespace {{.Namespace}};

/// <summary>
/// Usage identifiers defined on the {{.PageName}} page ({{.PageID}}).
/// </summary>
public enum {{.EnumName}} : uint
{
{{- range $i, $m := .Members}}
{{- if $i}},
{{end}}
    /// <summary>{{$m.Doc}}</summary>
    {{$m.Name}} = {{$m.Value}}
{{- end}}
}
`

type enumMember struct {
	Doc   string
	Name  string
	Value string
}

// GenerateEnum emits the per-page enumeration artifact and returns the
// number of usage entries it contains. Member order follows the table's
// input order; generator entries are appended after the fixed usages.
func GenerateEnum(logger *slog.Logger, sink Sink, page *usages.UsagePage, rc Context) (int, error) {
	safe := pageSafeName(page)
	enumName := safe + "Page"

	members := make([]enumMember, 0, len(page.UsageIDs))
	for _, u := range page.UsageIDs {
		members = append(members, enumMember{
			Doc:   u.Name,
			Name:  safe + usageSafeName(u),
			Value: fullIDHex(page.ID, u.ID),
		})
	}
	for _, g := range materialize(page.Generator, rc.MaxGenerated) {
		members = append(members, enumMember{
			Doc:   g.Name,
			Name:  safe + generatedSafeName(page.Generator, g.Index),
			Value: fullIDHex(page.ID, g.ID),
		})
	}

	data := struct {
		Header    string
		Namespace string
		PageName  string
		PageID    string
		EnumName  string
		Members   []enumMember
	}{
		Header:    rc.Header,
		Namespace: rc.Namespace,
		PageName:  page.Name,
		PageID:    idHex(page.ID),
		EnumName:  enumName,
		Members:   members,
	}

	tmpl := template.Must(template.New("enum").Parse(enumTemplate))
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return 0, fmt.Errorf("render enum for page %s: %w", page.Name, err)
	}

	name := enumName + ".cs"
	if err := sink.Emit(name, buf.Bytes()); err != nil {
		return 0, err
	}
	logger.Debug("generated page enum", "page", page.Name, "artifact", name, "entries", len(members))
	return len(members), nil
}
