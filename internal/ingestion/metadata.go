package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
	"unicode/utf8"
)

// Metadata describes an ingested resume document.
type Metadata struct {
	Filename   string `json:"filename"`
	Format     Format `json:"format"`
	Timestamp  string `json:"timestamp"` // RFC3339
	Hash       string `json:"hash"`      // SHA256 hex digest of the extracted text
	Characters int    `json:"characters"`
	Screenable bool   `json:"screenable"`
}

// NewMetadata describes the text extracted from filename.
func NewMetadata(filename, text string) *Metadata {
	return &Metadata{
		Filename:   filename,
		Format:     DetectFormat(filename),
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Hash:       ContentHash(text),
		Characters: utf8.RuneCountInString(text),
		Screenable: Screenable(text),
	}
}

// ContentHash returns the SHA256 hex digest of the given parts joined by NUL.
func ContentHash(parts ...string) string {
	hash := sha256.Sum256([]byte(strings.Join(parts, "\x00")))
	return hex.EncodeToString(hash[:])
}
