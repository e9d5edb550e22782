package bxcan

// ExpectedCPUClockHz is the only CPU core clock this bit-timing table is
// valid for; Create refuses construction when the reported clock differs.
const ExpectedCPUClockHz = 72_000_000

// bitTimingTable holds the exact BTR-encoded words the distilled
// specification lists, indexed [samplePoint][bitRate]. The prescaler and
// time-segment split is preserved verbatim even where a bit-timing
// calculator would suggest a different split for a handful of cells — see
// DESIGN.md's record of that open question.
var bitTimingTable = [numSamplePoints][numBitRates]uint32{
	SamplePointCANopen: {
		BitRate1000k: 0x001E0001,
		BitRate800k:  0x001B0002,
		BitRate500k:  0x001E0003,
		BitRate250k:  0x001C0008,
		BitRate125k:  0x001C0011,
		BitRate100k:  0x001E0013,
		BitRate50k:   0x001C002C,
		BitRate20k:   0x001E0063,
		BitRate10k:   0x001C00E0,
	},
	SamplePointARINC825: {
		BitRate1000k: 0x003C0001,
		BitRate800k:  0x00390002,
		BitRate500k:  0x003C0003,
		BitRate250k:  0x003A0008,
		BitRate125k:  0x003A0011,
		BitRate100k:  0x004D0011,
		BitRate50k:   0x004D0023,
		BitRate20k:   0x004D0059,
		BitRate10k:   0x003A00E0,
	},
}

// btrValue looks up the BTR prescaler/segment/SJW bits (everything but
// LBKM/SILM) for (sp, br).
func btrValue(sp SamplePoint, br BitRate) uint32 {
	return bitTimingTable[sp][br]
}

// BTRValue is the exported form of btrValue, used by offline commissioning
// tooling that needs to inspect the table without constructing a Controller.
func BTRValue(sp SamplePoint, br BitRate) uint32 {
	return btrValue(sp, br)
}

// bitRateNames maps the commissioning CLI's bit-rate argument spelling to
// the corresponding BitRate value.
var bitRateNames = map[string]BitRate{
	"1000k": BitRate1000k,
	"800k":  BitRate800k,
	"500k":  BitRate500k,
	"250k":  BitRate250k,
	"125k":  BitRate125k,
	"100k":  BitRate100k,
	"50k":   BitRate50k,
	"20k":   BitRate20k,
	"10k":   BitRate10k,
}

// samplePointNames maps the commissioning CLI's sample-point argument
// spelling to the corresponding SamplePoint value.
var samplePointNames = map[string]SamplePoint{
	"canopen":  SamplePointCANopen,
	"arinc825": SamplePointARINC825,
}

// ParseBitRate resolves a bit-rate argument spelling such as "250k".
func ParseBitRate(s string) (BitRate, bool) {
	br, ok := bitRateNames[s]
	return br, ok
}

// ParseSamplePoint resolves a sample-point argument spelling such as
// "canopen" or "arinc825".
func ParseSamplePoint(s string) (SamplePoint, bool) {
	sp, ok := samplePointNames[s]
	return sp, ok
}
