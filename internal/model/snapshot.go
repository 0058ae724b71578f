package model

// SnapshotVersion tags exported snapshots so the format can evolve; the
// original localStorage collections carried no version at all.
const SnapshotVersion = 1

// Snapshot is the versioned whole-database export: one JSON document per
// top-level collection, nested files and annotations inlined.
type Snapshot struct {
	Version      int               `json:"version"`
	Clients      []*Client         `json:"clients"`
	MergedPDFs   []*MergedDocument `json:"mergedPdfs"`
	ControlMarks []*ControlMark    `json:"controlMarks"`
}
