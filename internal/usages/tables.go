// Package usages holds the in-memory model of the HID usage tables: the
// pages, fixed usage entries and open-ended range generators extracted from
// the specification document's embedded attachment. Values are constructed
// once per run and read-only afterwards.
package usages

import "time"

// emptyVersion marks a UsageTables value that carries no data at all, as
// opposed to a legitimately empty table parsed from real input.
const emptyVersion = "\x00empty"

// UsageKind classifies how a usage behaves (selector, dynamic value,
// on/off control, ...). A usage may carry zero or more kinds; none means
// "unclassified".
type UsageKind string

const (
	KindSelector         UsageKind = "Sel"
	KindOnOffControl     UsageKind = "OOC"
	KindMomentaryControl UsageKind = "MC"
	KindOneShotControl   UsageKind = "OSC"
	KindReTriggerControl UsageKind = "RTC"
	KindStaticValue      UsageKind = "SV"
	KindStaticFlag       UsageKind = "SF"
	KindDynamicValue     UsageKind = "DV"
	KindDynamicFlag      UsageKind = "DF"
	KindBufferedBytes    UsageKind = "BufferedBytes"
	KindApplication      UsageKind = "CA"
	KindLogical          UsageKind = "CL"
	KindPhysical         UsageKind = "CP"
	KindUsageSwitch      UsageKind = "US"
	KindUsageModifier    UsageKind = "UM"
	KindNamedArray       UsageKind = "NAry"
)

// UsageID is one fixed usage entry within a page. ID is page-local.
type UsageID struct {
	ID       uint16      `json:"id"`
	Name     string      `json:"name"`
	SafeName string      `json:"safeName"`
	Kinds    []UsageKind `json:"kinds,omitempty"`
}

// UsageIDGenerator describes a contiguous numeric sub-range within a page
// that the source data does not enumerate individually. Names are formed by
// appending a zero-based index to the prefix. Bounds are inclusive and
// StartUsageID <= EndUsageID; the source data guarantees the range does not
// overlap the page's fixed entries.
type UsageIDGenerator struct {
	StartUsageID   uint16      `json:"startUsageId"`
	EndUsageID     uint16      `json:"endUsageId"`
	NamePrefix     string      `json:"namePrefix"`
	SafeNamePrefix string      `json:"safeNamePrefix"`
	Kinds          []UsageKind `json:"kinds,omitempty"`
}

// Count returns the number of identifiers the generator spans.
func (g *UsageIDGenerator) Count() int {
	return int(g.EndUsageID) - int(g.StartUsageID) + 1
}

// UsagePage is one 16-bit usage page: a namespace of related usages.
type UsagePage struct {
	ID        uint16            `json:"id"`
	Name      string            `json:"name"`
	SafeName  string            `json:"safeName"`
	UsageIDs  []UsageID         `json:"usageIds,omitempty"`
	Generator *UsageIDGenerator `json:"usageIdGenerator,omitempty"`
}

// UsageTables is the root value parsed from the attachment.
type UsageTables struct {
	Version       string      `json:"version"`
	LastGenerated time.Time   `json:"lastGenerated"`
	Pages         []UsagePage `json:"usagePages"`
}

// Empty returns the sentinel table representing "no data available".
func Empty() UsageTables {
	return UsageTables{Version: emptyVersion}
}

// IsEmpty reports whether t is the Empty sentinel. A table parsed from real
// input with zero pages is not empty in this sense.
func (t UsageTables) IsEmpty() bool {
	return t.Version == emptyVersion
}

// FullID combines a page id (high 16 bits) with a page-local usage id into
// the full 32-bit usage identifier.
func FullID(page, usage uint16) uint32 {
	return uint32(page)<<16 | uint32(usage)
}
