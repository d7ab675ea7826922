package filekey

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Field selects a positional segment of a composite file key.
type Field int

const (
	FieldFile Field = iota
	FieldTeam
	FieldUser
	FieldNonce
)

const (
	delimiter = "_"
	keyParts  = 4
)

// Build returns "{fileId}_{teamId}_{userId}_{nonce}". The nonce keeps
// keys unique across concurrent sessions for the same file and user; it
// is not a secret, authenticity comes from the signed token. Platform
// ids never contain the delimiter, so positional splitting is safe here.
func Build(fileID, teamID, userID string) string {
	return fmt.Sprintf("%s%s%s%s%s%s%s", fileID, delimiter, teamID, delimiter, userID, delimiter, uuid.NewString())
}

// Extract returns the requested segment, or "" when the key does not
// split into exactly four parts. Callers must treat "" as a rejection.
func Extract(key string, field Field) string {
	parts := strings.Split(key, delimiter)
	if len(parts) != keyParts {
		logrus.WithField("length", len(parts)).Error("Malformed document key. Invalid number of parts")
		return ""
	}

	switch field {
	case FieldFile:
		return parts[0]
	case FieldTeam:
		return parts[1]
	case FieldUser:
		return parts[2]
	default:
		return parts[3]
	}
}
