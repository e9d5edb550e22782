package bxcan

// BitRate enumerates the supported bus bit rates. Values are indices into
// the bit-timing table in timing.go, in the order the distilled
// specification lists them: 1000, 800, 500, 250, 125, 100, 50, 20, 10 kbit/s.
type BitRate uint8

const (
	BitRate1000k BitRate = iota
	BitRate800k
	BitRate500k
	BitRate250k
	BitRate125k
	BitRate100k
	BitRate50k
	BitRate20k
	BitRate10k

	numBitRates = int(BitRate10k) + 1
)

// SamplePoint enumerates the two supported sample points.
type SamplePoint uint8

const (
	SamplePointCANopen  SamplePoint = iota // 87.5%
	SamplePointARINC825                    // 75%

	numSamplePoints = int(SamplePointARINC825) + 1
)

// RxFifo identifies one of the two hardware receive FIFOs.
type RxFifo uint8

const (
	RxFifo0 RxFifo = iota
	RxFifo1

	numRxFifos = int(RxFifo1) + 1
)

// FilterMode selects whether a filter bank matches an identifier list or an
// identifier/mask pair.
type FilterMode uint8

const (
	FilterModeIDMask FilterMode = iota
	FilterModeIDList
)

// FilterScale selects a filter bank's width.
type FilterScale uint8

const (
	FilterScale16Bit FilterScale = iota
	FilterScale32Bit
)

// Config is supplied once to Create and copied into the Controller; it is
// immutable thereafter.
type Config struct {
	// Number must be 1; this peripheral revision supports a single
	// controller instance.
	Number int

	BitRate     BitRate
	SamplePoint SamplePoint

	// TXFP selects TX FIFO priority (true) over identifier priority
	// (false) when multiple mailboxes are pending.
	TXFP bool
	// RFLM selects the locked (drop-newest) RX FIFO overflow policy when
	// true, or unlocked (drop-oldest) when false.
	RFLM bool
	// DBF freezes the peripheral while the CPU is halted by a debugger.
	DBF bool
	// LBKM enables loopback mode.
	LBKM bool
	// SILM enables silent (listen-only) mode.
	SILM bool
}

// RxFilter describes one filter-bank programming request to
// RxCore.SetReceiveFilter.
type RxFilter struct {
	Index int // [0,14)
	Fifo  RxFifo
	Mode  FilterMode
	Scale FilterScale
	// Bits holds the bank's 64 bits of pattern, laid out as the two 32-bit
	// filter registers FxR1 (low word) and FxR2 (high word).
	Bits [2]uint32
}

// NumFilterBanks is the number of independently configurable acceptance
// filter banks this peripheral revision exposes.
const NumFilterBanks = 14
