package cmd

import (
	"fmt"

	"github.com/hidio/usagegen/internal/version"
)

// Version prints the build version.
type Version struct{}

func (v *Version) Run() error {
	fmt.Println(version.Get())
	return nil
}
