// Package records finds the fastest contiguous segment of a fixed target
// distance inside GPS traces and keeps the persisted best-known record per
// target distance up to date as new activities arrive.
package records

// TargetDistance is one of the fixed race distances tracked for records.
type TargetDistance struct {
	Key    string
	Km     float64
	Meters float64
}

// Targets is the closed catalog of tracked distances, shortest first.
var Targets = []TargetDistance{
	{Key: "5k", Km: 5.0, Meters: 5000},
	{Key: "10k", Km: 10.0, Meters: 10000},
	{Key: "semi", Km: 21.0975, Meters: 21097.5},
	{Key: "30k", Km: 30.0, Meters: 30000},
	{Key: "marathon", Km: 42.195, Meters: 42195},
}

// MinTargetKm is the shortest tracked distance; activities below it can never
// hold a record and are filtered out before any trace is fetched.
const MinTargetKm = 5.0

// TargetByKey returns the catalog entry for a key, or false when the key is
// not part of the catalog.
func TargetByKey(key string) (TargetDistance, bool) {
	for _, t := range Targets {
		if t.Key == key {
			return t, true
		}
	}
	return TargetDistance{}, false
}
