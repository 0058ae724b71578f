package model

import "time"

// CredentialsDocID is the fixed id of the single credential document; the
// tool has exactly one administrator.
const CredentialsDocID = "admin"

// Credentials is the administrator's login pair. The password is stored
// as a bcrypt hash, never in clear.
type Credentials struct {
	ID           string    `bson:"_id" json:"id"`
	Username     string    `bson:"usuario" json:"usuario"`
	PasswordHash string    `bson:"hash" json:"-"`
	UpdatedAt    time.Time `bson:"fechaActualizacion" json:"fechaActualizacion"`
}
