package csharp

import (
	"bytes"
	"fmt"
	"log/slog"
	"text/template"

	"github.com/hidio/usagegen/internal/usages"
)

const lookupTemplate = `{{.Header}}
namespace {{.Namespace}};

/// <summary>
/// Resolves raw usage identifiers on the {{.PageName}} page ({{.PageID}})
/// to named usages. Identifiers not defined on the page fall through to the
/// base implementation.
/// </summary>
public sealed class {{.ClassName}} : UsagePage
{
    public {{.ClassName}}() : base({{.PageID}}, "{{.PageName}}")
    {
    }

    /// <inheritdoc />
    protected override Usage CreateUsage(ushort id) => id switch
    {
{{- range .Branches}}
        {{.ID}} => new Usage(this, {{.ID}}, "{{.Name}}", {{.Kinds}}),
{{- end}}
{{- with .Range}}
        >= {{.Lo}} and <= {{.Hi}} => new Usage(this, id, $"{{.Prefix}} {id - {{.Start}}}", {{.Kinds}}),
{{- end}}
        _ => base.CreateUsage(id),
    };
}
`

type lookupBranch struct {
	ID    string
	Name  string
	Kinds string
}

type rangeBranch struct {
	Lo     string
	Hi     string
	Start  string
	Prefix string
	Kinds  string
}

// GenerateLookup emits the per-page lookup class: one branch per fixed
// usage, one branch per materialized generator entry, and a single
// catch-all branch for the unmaterialized remainder of the generator range,
// which synthesizes the name from the zero-based offset at lookup time.
func GenerateLookup(logger *slog.Logger, sink Sink, page *usages.UsagePage, rc Context) error {
	safe := pageSafeName(page)
	className := safe + "UsagePage"

	branches := make([]lookupBranch, 0, len(page.UsageIDs))
	for _, u := range page.UsageIDs {
		branches = append(branches, lookupBranch{
			ID:    idHex(u.ID),
			Name:  escapeString(u.Name),
			Kinds: kindsExpr(u.Kinds),
		})
	}

	var rng *rangeBranch
	if gen := page.Generator; gen != nil && rc.MaxGenerated > 0 {
		mat := materialize(gen, rc.MaxGenerated)
		for _, g := range mat {
			branches = append(branches, lookupBranch{
				ID:    idHex(g.ID),
				Name:  escapeString(g.Name),
				Kinds: kindsExpr(gen.Kinds),
			})
		}
		if len(mat) > 0 {
			if last := mat[len(mat)-1].ID; last < gen.EndUsageID {
				rng = &rangeBranch{
					Lo:     idHex(last + 1),
					Hi:     idHex(gen.EndUsageID),
					Start:  idHex(gen.StartUsageID),
					Prefix: escapeString(gen.NamePrefix),
					Kinds:  kindsExpr(gen.Kinds),
				}
			}
		}
	}

	data := struct {
		Header    string
		Namespace string
		PageName  string
		PageID    string
		ClassName string
		Branches  []lookupBranch
		Range     *rangeBranch
	}{
		Header:    rc.Header,
		Namespace: rc.Namespace,
		PageName:  escapeString(page.Name),
		PageID:    idHex(page.ID),
		ClassName: className,
		Branches:  branches,
		Range:     rng,
	}

	tmpl := template.Must(template.New("lookup").Parse(lookupTemplate))
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("render lookup for page %s: %w", page.Name, err)
	}

	name := className + ".cs"
	if err := sink.Emit(name, buf.Bytes()); err != nil {
		return err
	}
	logger.Debug("generated page lookup", "page", page.Name, "artifact", name, "branches", len(branches))
	return nil
}
