package genieplot

// Topology is an event selection on channel and pion multiplicity.
type Topology struct {
	Name  string // file-name fragment, e.g. "CC1PiP"
	Title string // plot title fragment
	Match func(e *Event) bool
}

var (
	CC0Pi = Topology{
		Name:  "CC0Pi",
		Title: "CC0π",
		Match: func(e *Event) bool { return e.ChargedCurrent && e.NPions() == 0 },
	}
	CC1PiPlus = Topology{
		Name:  "CC1PiP",
		Title: "CC1π+",
		Match: func(e *Event) bool { return e.ChargedCurrent && e.NPiPlus == 1 && e.NPiMinus+e.NPi0 == 0 },
	}
	CC1Pi0 = Topology{
		Name:  "CC1Pi0",
		Title: "CC1π0",
		Match: func(e *Event) bool { return e.ChargedCurrent && e.NPi0 == 1 && e.NPiPlus+e.NPiMinus == 0 },
	}
	NC0Pi = Topology{
		Name:  "NC0Pi",
		Title: "NC0π",
		Match: func(e *Event) bool { return e.NeutralCurrent && e.NPions() == 0 },
	}
	NC1Pi0 = Topology{
		Name:  "NC1Pi0",
		Title: "NC1π0",
		Match: func(e *Event) bool { return e.NeutralCurrent && e.NPi0 == 1 && e.NPiPlus+e.NPiMinus == 0 },
	}
)

// Select returns the events matching the topology, in input order.
func (t Topology) Select(events []Event) []Event {
	var out []Event
	for i := range events {
		if t.Match(&events[i]) {
			out = append(out, events[i])
		}
	}
	return out
}
