package csharp

import (
	"bytes"
	"fmt"
	"log/slog"
	"text/template"

	"github.com/hidio/usagegen/internal/usages"
)

const registryTemplate = `{{.Header}}
using System.Collections.Generic;

namespace {{.Namespace}};

/// <summary>
/// Registry of every known usage page, keyed by 16-bit page id.
/// </summary>
public static class UsagePages
{
{{- range .Pages}}
    /// <summary>{{.Name}} usage page.</summary>
    public static {{.ClassName}} {{.Accessor}} { get; } = new();
{{- end}}

    private static readonly Dictionary<ushort, UsagePage> _pages = new()
    {
{{- range .Pages}}
        { {{.ID}}, {{.Accessor}} },
{{- end}}
    };

    /// <summary>
    /// Try to resolve a page by its 16-bit id.
    /// </summary>
    public static bool TryGet(ushort id, out UsagePage page)
    {
        return _pages.TryGetValue(id, out page);
    }
}
`

type registryPage struct {
	ID        string
	Name      string
	ClassName string
	Accessor  string
}

// RegistryArtifactName is the fixed name of the global registry artifact.
const RegistryArtifactName = "UsagePages.cs"

// GenerateRegistry emits the single global registry artifact mapping each
// page's numeric id to its lookup-class singleton, with one named static
// accessor per page. It is emitted exactly once per run.
func GenerateRegistry(logger *slog.Logger, sink Sink, pages []*usages.UsagePage, rc Context) error {
	rps := make([]registryPage, 0, len(pages))
	for _, p := range pages {
		safe := pageSafeName(p)
		rps = append(rps, registryPage{
			ID:        idHex(p.ID),
			Name:      escapeString(p.Name),
			ClassName: safe + "UsagePage",
			Accessor:  safe,
		})
	}

	data := struct {
		Header    string
		Namespace string
		Pages     []registryPage
	}{
		Header:    rc.Header,
		Namespace: rc.Namespace,
		Pages:     rps,
	}

	tmpl := template.Must(template.New("registry").Parse(registryTemplate))
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("render page registry: %w", err)
	}

	if err := sink.Emit(RegistryArtifactName, buf.Bytes()); err != nil {
		return err
	}
	logger.Debug("generated page registry", "artifact", RegistryArtifactName, "pages", len(rps))
	return nil
}
