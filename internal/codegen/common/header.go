package common

import (
	"fmt"
	"time"
)

// FileHeader renders the banner every generated artifact starts with. It
// records the specification version and generation timestamp so output can
// be traced back to the input that produced it.
func FileHeader(version string, generatedAt time.Time) string {
	return fmt.Sprintf(`// <auto-generated>
//     HID usage table declarations generated by usagegen.
//     Specification version: %s
//     Generated: %s
//     Manual changes will be lost when this file is regenerated.
// </auto-generated>
`, version, generatedAt.UTC().Format(time.RFC3339))
}
