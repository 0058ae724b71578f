package model

import "time"

// Client is a managed client record. Field keys (json and bson) keep the
// names of the original persisted collections so exported snapshots stay
// compatible with existing data.
type Client struct {
	ID              string          `bson:"_id" json:"id"`
	NIT             string          `bson:"nit" json:"nit"`
	Email           string          `bson:"correo" json:"correo"`
	Secret          string          `bson:"contraseña" json:"contraseña"`
	LegalName       string          `bson:"razonSocial" json:"razonSocial"`
	TaxpayerType    string          `bson:"tipoContribuyente,omitempty" json:"tipoContribuyente,omitempty"`
	EntityType      string          `bson:"tipoEntidad,omitempty" json:"tipoEntidad,omitempty"`
	Contact         string          `bson:"contacto,omitempty" json:"contacto,omitempty"`
	Administration  string          `bson:"administracion,omitempty" json:"administracion,omitempty"`
	Billing         string          `bson:"facturacion,omitempty" json:"facturacion,omitempty"`
	Regime          string          `bson:"regimen,omitempty" json:"regimen,omitempty"`
	Activity        string          `bson:"actividad,omitempty" json:"actividad,omitempty"`
	Address         string          `bson:"direccion,omitempty" json:"direccion,omitempty"`
	Files           []File          `bson:"archivos" json:"archivos"`
	Annotations     []Annotation    `bson:"anotaciones" json:"anotaciones"`
	Marks           []MarkSelection `bson:"marcas,omitempty" json:"marcas,omitempty"`
	CreatedAt       time.Time       `bson:"fechaCreacion" json:"fechaCreacion"`
}

// ClientFields carries the mutable client attributes for create/update.
// Files, annotations and mark selections are managed through their own
// operations and never travel here.
type ClientFields struct {
	NIT            string `json:"nit"`
	Email          string `json:"correo"`
	Secret         string `json:"contraseña"`
	LegalName      string `json:"razonSocial"`
	TaxpayerType   string `json:"tipoContribuyente"`
	EntityType     string `json:"tipoEntidad"`
	Contact        string `json:"contacto"`
	Administration string `json:"administracion"`
	Billing        string `json:"facturacion"`
	Regime         string `json:"regimen"`
	Activity       string `json:"actividad"`
	Address        string `json:"direccion"`
}

// File is a document owned by exactly one client. Content is a
// data:<mime>;base64 URI, never raw bytes.
type File struct {
	ID         string    `bson:"id" json:"id"`
	Name       string    `bson:"nombre" json:"nombre"`
	Size       int64     `bson:"tamaño" json:"tamaño"`
	MIMEType   string    `bson:"tipo" json:"tipo"`
	Content    string    `bson:"contenido" json:"contenido"`
	UploadedAt time.Time `bson:"fechaSubida" json:"fechaSubida"`
	Year       string    `bson:"año" json:"año"`
	Period     string    `bson:"periodo" json:"periodo"`
}

// Annotation is a free-text note on a client.
type Annotation struct {
	ID         string     `bson:"id" json:"id"`
	Text       string     `bson:"texto" json:"texto"`
	CreatedAt  time.Time  `bson:"fecha" json:"fecha"`
	ModifiedAt *time.Time `bson:"fechaModificacion,omitempty" json:"fechaModificacion,omitempty"`
}

// ClientFiles pairs a client with a filtered subset of its files, for the
// cross-client ("all clients") views.
type ClientFiles struct {
	Client *Client `json:"client"`
	Files  []File  `json:"files"`
}
