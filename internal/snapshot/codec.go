// Package snapshot persists a whole task list as one versioned JSON file.
//
// Each file carries an envelope naming its format and version and an xxhash
// checksum of the items. The two formats (full task records and basic notes)
// are independent: a file written in one is rejected when read as the other.
package snapshot

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/go-playground/validator/v10"
	"go.trai.ch/zerr"
)

const (
	// FormatTasks tags a snapshot of {id, text, completed} records.
	FormatTasks = "ltask.tasks"

	// FormatNotes tags a snapshot of plain strings.
	FormatNotes = "ltask.notes"

	// Version is the envelope version written by this package.
	Version = 1
)

var (
	// ErrCorrupt is returned when a snapshot cannot be decoded or fails
	// its checksum or record validation.
	ErrCorrupt = zerr.New("snapshot corrupt")

	// ErrFormatMismatch is returned when a snapshot holds the other variant's format.
	ErrFormatMismatch = zerr.New("snapshot format mismatch")

	// ErrUnsupportedVersion is returned for envelopes newer than Version.
	ErrUnsupportedVersion = zerr.New("unsupported snapshot version")
)

var validate = validator.New()

type envelope struct {
	Format   string          `json:"format" validate:"required"`
	Version  int             `json:"version" validate:"gte=1"`
	Checksum string          `json:"checksum" validate:"required,hexadecimal"`
	Items    json.RawMessage `json:"items"`
}

type taskRecord struct {
	ID        string `json:"id" validate:"required,uuid4"`
	Text      string `json:"text" validate:"required"`
	Completed bool   `json:"completed"`
}

// encode wraps items in an envelope of the given format.
func encode(format string, items any) ([]byte, error) {
	raw, err := json.Marshal(items)
	if err != nil {
		return nil, zerr.Wrap(err, "marshal items")
	}
	env := envelope{
		Format:   format,
		Version:  Version,
		Checksum: checksum(raw),
		Items:    raw,
	}
	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return nil, zerr.Wrap(err, "marshal envelope")
	}
	return append(data, '\n'), nil
}

// decode unwraps an envelope of the expected format into out.
func decode(data []byte, format string, out any) error {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return zerr.Wrap(ErrCorrupt, err.Error())
	}
	if err := validate.Struct(env); err != nil {
		return zerr.Wrap(ErrCorrupt, err.Error())
	}
	if env.Format != format {
		err := zerr.With(zerr.Wrap(ErrFormatMismatch, "decode snapshot"), "want", format)
		return zerr.With(err, "got", env.Format)
	}
	if env.Version > Version {
		return zerr.With(zerr.Wrap(ErrUnsupportedVersion, "decode snapshot"), "version", env.Version)
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, env.Items); err != nil {
		return zerr.Wrap(ErrCorrupt, err.Error())
	}
	if sum := checksum(compact.Bytes()); sum != env.Checksum {
		err := zerr.With(zerr.Wrap(ErrCorrupt, "checksum mismatch"), "want", env.Checksum)
		return zerr.With(err, "got", sum)
	}
	if err := json.Unmarshal(compact.Bytes(), out); err != nil {
		return zerr.Wrap(ErrCorrupt, err.Error())
	}
	return nil
}

func checksum(b []byte) string {
	return strconv.FormatUint(xxhash.Sum64(b), 16)
}
