package bxcan

// ClockGPIO is the external platform capability Controller invokes during
// init/deinit for everything outside the CAN register file itself: APB1
// peripheral clock gating, GPIO port clock gating, pin alternate-function
// setup and the debug-stop bit. Like kernel.Clock, this is named only by
// the operations the core invokes on it (§1, §6 of SPEC_FULL.md) — its own
// register layout (RCC, GPIO, DBG) is out of scope for this driver.
type ClockGPIO interface {
	// EnableCANPeripheralClock enables the APB1 clock gating this CAN
	// controller.
	EnableCANPeripheralClock()
	// EnableGPIOPortClock enables the clock for the GPIO port the CAN pins
	// live on.
	EnableGPIOPortClock()
	// ConfigureTXRXPins configures the RX pin as input-with-pull and the TX
	// pin as alternate-function push-pull at 50MHz.
	ConfigureTXRXPins()
	// SetDebugStop sets or clears the debug-control-register bit that
	// freezes this peripheral while the CPU is halted by a debugger,
	// mirroring MCR.DBF.
	SetDebugStop(enable bool)
}
