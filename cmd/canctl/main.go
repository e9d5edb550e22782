// Command canctl is a host-side commissioning tool: it prints the register
// values this driver would program for a given bit-timing or filter-bank
// configuration, without touching any hardware. It is useful for checking a
// bit-rate/sample-point combination, or a filter bank's raw bits, before
// flashing a device.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "canctl",
	Short: "Offline commissioning tool for the bxCAN driver",
	Long:  "canctl computes the register values this driver would program for a given bit-timing or filter-bank configuration. It never touches hardware.",
}

func init() {
	rootCmd.AddCommand(timingCmd)
	rootCmd.AddCommand(filterCmd)
}
