package library

import (
	"encoding/json"
	"io"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/invopop/jsonschema"
)

// Output is the document printed by the library command in JSON mode.
type Output struct {
	Dir       string    `json:"dir" jsonschema:"description=Directory that was scanned"`
	Query     string    `json:"query,omitempty" jsonschema:"description=Search query applied to the listing"`
	ScannedAt time.Time `json:"scanned_at"`
	Videos    []*Video  `json:"videos"`
}

// NewOutput wraps a listing of dir.
func NewOutput(dir, query string, videos []*Video) *Output {
	if videos == nil {
		videos = []*Video{}
	}

	return &Output{
		Dir:       dir,
		Query:     query,
		ScannedAt: time.Now(),
		Videos:    videos,
	}
}

// Encode writes o as indented JSON.
func (o *Output) Encode(w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(o)
}

// Schema returns the JSON schema of Output.
func Schema() *jsonschema.Schema {
	reflector := new(jsonschema.Reflector)
	reflector.Anonymous = true
	reflector.Namer = func(t reflect.Type) string {
		name := t.Name()
		switch strings.ToLower(name) {
		case "video", "output":
			return filepath.Base(t.PkgPath()) + "." + name
		}

		return name
	}

	return reflector.Reflect(&Output{})
}
