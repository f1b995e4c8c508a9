package bridge

// CounterSignal carries a polled value to the UI.
type CounterSignal struct {
	Number int32 `json:"number"`
}

// SetCounterSignal is raised by the UI to overwrite the shared counter.
type SetCounterSignal struct {
	Counter int32 `json:"counter"`
}
