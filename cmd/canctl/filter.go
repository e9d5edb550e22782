package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"omibyte.io/canbus/bxcan"
)

var filterCmd = &cobra.Command{
	Use:   "filter <index> <mode> <scale> <fifo>",
	Short: "Print the FM1R/FS1R/FFA1R bits this driver would set for a filter bank",
	Long:  "filter reports the mode/scale/FIFO-assignment bits SetReceiveFilter would program for the given bank, given mode in {mask,list}, scale in {16,32}, fifo in {0,1}.",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := strconv.Atoi(args[0])
		if err != nil || index < 0 || index >= bxcan.NumFilterBanks {
			return fmt.Errorf("filter index must be an integer in [0,%d)", bxcan.NumFilterBanks)
		}

		var mode bxcan.FilterMode
		switch strings.ToLower(args[1]) {
		case "mask":
			mode = bxcan.FilterModeIDMask
		case "list":
			mode = bxcan.FilterModeIDList
		default:
			return fmt.Errorf("mode must be \"mask\" or \"list\", got %q", args[1])
		}

		var scale bxcan.FilterScale
		switch args[2] {
		case "16":
			scale = bxcan.FilterScale16Bit
		case "32":
			scale = bxcan.FilterScale32Bit
		default:
			return fmt.Errorf("scale must be \"16\" or \"32\", got %q", args[2])
		}

		var fifo bxcan.RxFifo
		switch args[3] {
		case "0":
			fifo = bxcan.RxFifo0
		case "1":
			fifo = bxcan.RxFifo1
		default:
			return fmt.Errorf("fifo must be \"0\" or \"1\", got %q", args[3])
		}

		fm1r, fs1r, ffa1r := 0, 0, 0
		if mode == bxcan.FilterModeIDList {
			fm1r = 1
		}
		if scale == bxcan.FilterScale32Bit {
			fs1r = 1
		}
		if fifo == bxcan.RxFifo1 {
			ffa1r = 1
		}

		fmt.Printf("bank %d: FM1R[%d]=%d FS1R[%d]=%d FFA1R[%d]=%d\n",
			index, index, fm1r, index, fs1r, index, ffa1r)
		return nil
	},
}
