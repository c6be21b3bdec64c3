package chart

import "encoding/json"

// SampleOptions returns the demo chart every new board starts with.
func SampleOptions() Options {
	return Options{
		Kind:   "line",
		Data:   json.RawMessage(`[[12, 19, 7, 14, 22, 16], [8, 11, 15, 9, 13, 18]]`),
		Labels: []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat"},
	}
}

// SampleOptionsJSON is SampleOptions serialized for snapshot seeding.
func SampleOptionsJSON() []byte {
	data, _ := json.Marshal(SampleOptions())
	return data
}
