package counter

// Counter is the shared integer exposed by the service. Increment wraps on
// overflow.
type Counter struct {
	Number int32 `json:"number"`
}

func New() Counter {
	return Counter{Number: 0}
}

func (c Counter) Get() int32 {
	return c.Number
}

func (c *Counter) Set(number int32) {
	c.Number = number
}

func (c *Counter) Increment() {
	c.Number++
}
