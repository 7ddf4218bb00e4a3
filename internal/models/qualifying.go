package models

import "sort"

// QualifyingEntry pairs a driver code with a qualifying lap time in seconds.
type QualifyingEntry struct {
	Code        string  `json:"code"`
	TimeSeconds float64 `json:"time_seconds"`
}

// QualifyingFromMap converts the wire-format qualifying map into a slice of
// entries ordered by driver code. The code ordering gives map input a
// deterministic base order, so exact lap-time ties resolve the same way on
// every request.
func QualifyingFromMap(times map[string]float64) []QualifyingEntry {
	codes := make([]string, 0, len(times))
	for code := range times {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	entries := make([]QualifyingEntry, 0, len(times))
	for _, code := range codes {
		entries = append(entries, QualifyingEntry{Code: code, TimeSeconds: times[code]})
	}
	return entries
}

// SortQualifying returns a copy of entries sorted ascending by lap time.
// The sort is stable: entries with identical times keep their input order,
// which is what assigns them their 1-based qualifying positions.
func SortQualifying(entries []QualifyingEntry) []QualifyingEntry {
	sorted := make([]QualifyingEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TimeSeconds < sorted[j].TimeSeconds
	})
	return sorted
}
