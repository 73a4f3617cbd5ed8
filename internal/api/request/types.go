package request

// SetModeRequest is the request body for changing the game mode
type SetModeRequest struct {
	Mode string `json:"mode"`
}

// SetDelaysRequest is the request body for changing pacing delays.
// Delays are Go durations such as "200ms"; omitted fields are unchanged.
type SetDelaysRequest struct {
	TurnDelay *string `json:"turn_delay,omitempty"`
	WinDelay  *string `json:"win_delay,omitempty"`
}
