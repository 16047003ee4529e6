// Package pdfattach locates and extracts a named embedded-file attachment
// from a PDF document's name tree. Object-graph access and stream-filter
// decoding are delegated to pdfcpu; the candidate collection, ranking and
// case-insensitive name matching live here.
package pdfattach

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// ErrAttachmentNotFound reports that the document carries no usable
// embedded-file entry: no embedded-files name tree, no entries with a file
// name, or a filespec that does not resolve to a stream.
var ErrAttachmentNotFound = errors.New("attachment not found in document")

// candidate is one embedded-file entry with every file name it declares.
type candidate struct {
	names  []string
	stream types.Object
}

// Extract pulls the named attachment's decoded bytes out of docBytes. Name
// matching is case-insensitive; when no entry matches, the first entry that
// declares a usable file name is taken instead.
func Extract(ctx context.Context, docBytes []byte, attachmentName string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	pdfCtx, err := api.ReadContext(bytes.NewReader(docBytes), model.NewDefaultConfiguration())
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	entries, err := embeddedFileEntries(pdfCtx)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cands := collectCandidates(pdfCtx, entries)
	if len(cands) == 0 {
		return nil, ErrAttachmentNotFound
	}
	rankCandidates(cands, attachmentName)

	// The bool return mirrors the xref entry's validation flag, which is
	// unset on a freshly read context; only err and sd are meaningful here.
	sd, _, err := pdfCtx.DereferenceStreamDict(cands[0].stream)
	if err != nil || sd == nil {
		// Filespec without a stream behind it: malformed document.
		return nil, ErrAttachmentNotFound
	}
	if err := sd.Decode(); err != nil {
		return nil, fmt.Errorf("decode attachment stream: %w", err)
	}
	return sd.Content, nil
}

// embeddedFileEntries walks catalog -> Names -> EmbeddedFiles -> Names and
// returns the flat array of (key, filespec) pairs.
func embeddedFileEntries(pdfCtx *model.Context) (types.Array, error) {
	catalog, err := pdfCtx.Catalog()
	if err != nil {
		return nil, fmt.Errorf("read document catalog: %w", err)
	}
	namesObj, found := catalog.Find("Names")
	if !found {
		return nil, ErrAttachmentNotFound
	}
	namesDict, err := pdfCtx.DereferenceDict(namesObj)
	if err != nil || namesDict == nil {
		return nil, ErrAttachmentNotFound
	}
	efObj, found := namesDict.Find("EmbeddedFiles")
	if !found {
		return nil, ErrAttachmentNotFound
	}
	efDict, err := pdfCtx.DereferenceDict(efObj)
	if err != nil || efDict == nil {
		return nil, ErrAttachmentNotFound
	}
	arrObj, found := efDict.Find("Names")
	if !found {
		return nil, ErrAttachmentNotFound
	}
	arr, err := pdfCtx.DereferenceArray(arrObj)
	if err != nil || len(arr) == 0 {
		return nil, ErrAttachmentNotFound
	}
	return arr, nil
}

// collectCandidates turns the (key, filespec) pairs into candidates,
// dropping entries without a usable file name or embedded stream.
func collectCandidates(pdfCtx *model.Context, entries types.Array) []candidate {
	var out []candidate
	for i := 0; i+1 < len(entries); i += 2 {
		var names []string
		if key := decodeText(pdfCtx, entries[i]); key != "" {
			names = append(names, key)
		}
		fs, err := pdfCtx.DereferenceDict(entries[i+1])
		if err != nil || fs == nil {
			continue
		}
		for _, key := range []string{"UF", "F"} {
			if obj, found := fs.Find(key); found {
				if name := decodeText(pdfCtx, obj); name != "" {
					names = append(names, name)
				}
			}
		}
		if len(names) == 0 {
			continue
		}
		efObj, found := fs.Find("EF")
		if !found {
			continue
		}
		ef, err := pdfCtx.DereferenceDict(efObj)
		if err != nil || ef == nil {
			continue
		}
		var stream types.Object
		for _, key := range []string{"UF", "F"} {
			if obj, found := ef.Find(key); found {
				stream = obj
				break
			}
		}
		if stream == nil {
			continue
		}
		out = append(out, candidate{names: names, stream: stream})
	}
	return out
}

// rankCandidates sorts entries whose declared file name equals the desired
// attachment name (case-insensitively) ahead of everything else, keeping
// the document order otherwise.
func rankCandidates(cands []candidate, attachmentName string) {
	sort.SliceStable(cands, func(i, j int) bool {
		return matchesName(cands[i], attachmentName) && !matchesName(cands[j], attachmentName)
	})
}

func matchesName(c candidate, attachmentName string) bool {
	if attachmentName == "" {
		return false
	}
	for _, n := range c.names {
		if strings.EqualFold(n, attachmentName) {
			return true
		}
	}
	return false
}

// decodeText renders a PDF string or hex literal as UTF-8 text. Filespec
// names are commonly stored as UTF-16BE literals with a BOM.
func decodeText(pdfCtx *model.Context, obj types.Object) string {
	o, err := pdfCtx.Dereference(obj)
	if err != nil {
		return ""
	}
	switch v := o.(type) {
	case types.StringLiteral:
		s, err := types.StringLiteralToString(v)
		if err != nil {
			return ""
		}
		return s
	case types.HexLiteral:
		s, err := types.HexLiteralToString(v)
		if err != nil {
			return ""
		}
		return s
	case types.Name:
		return v.Value()
	default:
		return ""
	}
}
