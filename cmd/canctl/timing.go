package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"omibyte.io/canbus/bxcan"
)

var timingCmd = &cobra.Command{
	Use:   "timing <bitrate> <samplepoint>",
	Short: "Print the BTR value this driver would program for a bit-rate/sample-point pair",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		br, ok := bxcan.ParseBitRate(args[0])
		if !ok {
			return fmt.Errorf("unknown bit rate %q (want one of 1000k,800k,500k,250k,125k,100k,50k,20k,10k)", args[0])
		}
		sp, ok := bxcan.ParseSamplePoint(strings.ToLower(args[1]))
		if !ok {
			return fmt.Errorf("unknown sample point %q (want canopen or arinc825)", args[1])
		}

		value := bxcan.BTRValue(sp, br)
		fmt.Printf("BTR = 0x%08X\n", value)
		return nil
	},
}
