package model

// ControlMark is a global, reusable categorization tag. The catalog is
// authoritative; clients only hold references into it.
type ControlMark struct {
	ID       string    `bson:"_id" json:"id"`
	Name     string    `bson:"nombre" json:"nombre"`
	Color    string    `bson:"color" json:"color"`
	SubMarks []SubMark `bson:"submarcas" json:"submarcas"`
}

// SubMark is a named sub-tag inside a ControlMark.
type SubMark struct {
	ID   string `bson:"id" json:"id"`
	Name string `bson:"nombre" json:"nombre"`
}

// MarkSelection is a client's weak reference to a mark and, optionally,
// one of its sub-marks. The referenced mark may no longer exist; lookups
// must skip such selections rather than fail.
type MarkSelection struct {
	MarkID    string `bson:"marcaId" json:"marcaId"`
	SubMarkID string `bson:"submarcaId,omitempty" json:"submarcaId,omitempty"`
}

// ResolvedMark is a selection joined against the catalog.
type ResolvedMark struct {
	Mark    ControlMark `json:"marca"`
	SubMark *SubMark    `json:"submarca,omitempty"`
}
