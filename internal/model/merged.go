package model

import "time"

// MergedDocument is the persisted result of a PDF merge. It is a top-level
// record, not owned by any client. Size is the sum of the input sizes, not
// re-measured after the merge.
type MergedDocument struct {
	ID          string    `bson:"_id" json:"id"`
	Name        string    `bson:"nombre" json:"nombre"`
	Content     string    `bson:"contenido" json:"contenido"`
	Size        int64     `bson:"tamaño" json:"tamaño"`
	ClientNames []string  `bson:"clientesIncluidos" json:"clientesIncluidos"`
	FileCount   int       `bson:"cantidadArchivos" json:"cantidadArchivos"`
	CreatedAt   time.Time `bson:"fechaCreacion" json:"fechaCreacion"`
}

// FileRef addresses one stored file inside one client.
type FileRef struct {
	ClientID string `json:"clientId"`
	FileID   string `json:"fileId"`
}
