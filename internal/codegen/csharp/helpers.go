// Package csharp renders usage pages into C# declarations: one enum and
// one lookup class per page, plus the global page registry. Rendering is
// driven entirely by the table data; no page- or usage-specific logic is
// hard-coded.
package csharp

import (
	"fmt"
	"strings"

	"github.com/hidio/usagegen/internal/codegen/common"
	"github.com/hidio/usagegen/internal/usages"
)

// Sink receives rendered artifacts keyed by name.
type Sink interface {
	Emit(name string, content []byte) error
}

// Context carries the run-wide rendering inputs.
type Context struct {
	Namespace string
	// MaxGenerated caps how many range-generator entries are materialized
	// per page. Zero disables generator output entirely.
	MaxGenerated int
	// Header is the file banner prepended to every artifact.
	Header string
}

func pageSafeName(p *usages.UsagePage) string {
	if p.SafeName != "" {
		return common.SanitizeIdentifier(p.SafeName)
	}
	return common.SanitizeIdentifier(p.Name)
}

func usageSafeName(u usages.UsageID) string {
	if u.SafeName != "" {
		return common.SanitizeIdentifier(u.SafeName)
	}
	return common.SanitizeIdentifier(u.Name)
}

// kindsExpr renders a kind set as a bitwise union, or the explicit None
// sentinel for unclassified usages.
func kindsExpr(kinds []usages.UsageKind) string {
	if len(kinds) == 0 {
		return "UsageKinds.None"
	}
	parts := make([]string, len(kinds))
	for i, k := range kinds {
		parts[i] = "UsageKinds." + string(k)
	}
	return strings.Join(parts, " | ")
}

func fullIDHex(page, usage uint16) string {
	return fmt.Sprintf("0x%08X", usages.FullID(page, usage))
}

func idHex(id uint16) string {
	return fmt.Sprintf("0x%04X", id)
}

// generated is one materialized entry of a page's range generator.
type generated struct {
	Index int
	ID    uint16
	Name  string
}

// materialize expands a generator into at most max concrete entries,
// stopping early when the next identifier would pass the generator's end.
func materialize(g *usages.UsageIDGenerator, max int) []generated {
	if g == nil || max <= 0 {
		return nil
	}
	var out []generated
	for i := 0; i < max; i++ {
		id := int(g.StartUsageID) + i
		if id > int(g.EndUsageID) {
			break
		}
		out = append(out, generated{
			Index: i,
			ID:    uint16(id),
			Name:  fmt.Sprintf("%s %d", g.NamePrefix, i),
		})
	}
	return out
}

// generatedSafeName names a materialized entry in identifier form.
func generatedSafeName(g *usages.UsageIDGenerator, index int) string {
	prefix := g.SafeNamePrefix
	if prefix == "" {
		prefix = g.NamePrefix
	}
	return common.IndexedIdentifier(prefix, index)
}

func escapeString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}
