package bxcan

import (
	"testing"

	"omibyte.io/canbus/kernel/hosted"
	"omibyte.io/canbus/regio"
)

func newCreateOptions(file regio.RegisterFile) CreateOptions {
	ic := hosted.NewInterruptController()
	return CreateOptions{
		RegisterFile: file,
		Platform:     &fakePlatform{},
		Services:     newTestServices(ic),
	}
}

func TestCreateRejectsUnsupportedNumber(t *testing.T) {
	sim := newHandshakingSimRegs()
	_, err := Create(Config{Number: 2}, newCreateOptions(sim))
	if err != ErrBadControllerNumber {
		t.Fatalf("err = %v, want ErrBadControllerNumber", err)
	}
}

func TestCreateEnforcesSingleLiveInstance(t *testing.T) {
	sim := newHandshakingSimRegs()
	for i := 0; i < numTxMailboxes; i++ {
		sim.setBit(regTSR, tsrTMEBit(i))
	}

	c1, err := Create(Config{Number: 1}, newCreateOptions(sim))
	if err != nil {
		t.Fatalf("first Create: %v", err)
	}

	if _, err := Create(Config{Number: 1}, newCreateOptions(sim)); err != ErrControllerInUse {
		t.Fatalf("second Create err = %v, want ErrControllerInUse", err)
	}

	if err := c1.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	c2, err := Create(Config{Number: 1}, newCreateOptions(sim))
	if err != nil {
		t.Fatalf("Create after Close: %v", err)
	}
	_ = c2.Close()
}
