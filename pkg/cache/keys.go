package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Key types reported to cache hooks.
const (
	KeyTypeRender = "render"
	KeyTypeReplay = "replay"
)

// RenderKeyOpts are the render options that affect output.
type RenderKeyOpts struct {
	Format   string  `json:"format"`
	Width    int     `json:"width,omitempty"`
	Detailed bool    `json:"detailed,omitempty"`
	Scale    float64 `json:"scale,omitempty"`
}

// Keyer derives cache keys.
type Keyer interface {
	// RenderKey keys a rendered artifact of the document with hash docHash.
	RenderKey(docHash string, opts RenderKeyOpts) string
	// ReplayKey keys the document produced by replaying a script.
	ReplayKey(docHash, scriptHash string) string
}

// DefaultKeyer produces keys of the form "<kind>:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// RenderKey hashes the document hash together with the options.
func (DefaultKeyer) RenderKey(docHash string, opts RenderKeyOpts) string {
	return hashKey(KeyTypeRender, docHash, opts)
}

// ReplayKey hashes the document and script hashes.
func (DefaultKeyer) ReplayKey(docHash, scriptHash string) string {
	return hashKey(KeyTypeReplay, docHash, scriptHash)
}

var _ Keyer = DefaultKeyer{}

// Hash returns the hex SHA-256 of data. Documents and scripts are hashed
// before they go into keys.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// hashKey prefixes the hash of the JSON encoding of parts with kind.
func hashKey(kind string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return kind + ":" + Hash(data)
}
