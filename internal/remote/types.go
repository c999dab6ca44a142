package remote

// StatusResponse mirrors the payload returned by /status.
type StatusResponse struct {
	Online bool `json:"online"`
}

// Intervals describes the desired device schedule sent with a command. The
// empty schedule switches the device off. Treat values as immutable once
// handed to the client.
type Intervals map[string]any

// CommandRequest is the /command request body.
type CommandRequest struct {
	Intervals Intervals `json:"intervals"`
}

// Cooling returns the schedule for cooling mode at setpoint degrees Celsius.
func Cooling(setpoint int) Intervals {
	return Intervals{"mode": "cooling", "setpoint": setpoint}
}

// Off returns the empty schedule.
func Off() Intervals {
	return Intervals{}
}

// Clone returns a shallow copy.
func (iv Intervals) Clone() Intervals {
	dup := make(Intervals, len(iv))
	for k, v := range iv {
		dup[k] = v
	}
	return dup
}
