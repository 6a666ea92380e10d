package history

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/Masterminds/semver/v3"
	"github.com/goccy/go-json"
)

// FormatVersion is written into every persisted envelope.
const FormatVersion = "1.0.0"

// supportedVersions is the range of envelope versions Load accepts.
const supportedVersions = "^1.0.0"

const exportIndent = "  "

// envelope is the persisted form of the history.
type envelope struct {
	Version string  `json:"version"`
	Entries []Entry `json:"entries"`
}

func encodeEnvelope(entries []Entry) (string, error) {
	if entries == nil {
		entries = []Entry{}
	}
	data, err := json.Marshal(envelope{Version: FormatVersion, Entries: entries})
	if err != nil {
		return "", fmt.Errorf("encoding history: %w", err)
	}
	return string(data), nil
}

// decodeEnvelope parses a persisted value. A bare JSON array is accepted as
// the version-less layout written by earlier releases.
func decodeEnvelope(raw string) ([]Entry, error) {
	data := bytes.TrimSpace([]byte(raw))
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty value", ErrStoreCorrupted)
	}

	if data[0] == '[' {
		var entries []Entry
		if err := json.Unmarshal(data, &entries); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrStoreCorrupted, err)
		}
		return entries, nil
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreCorrupted, err)
	}
	if err := checkVersion(env.Version); err != nil {
		return nil, err
	}
	return env.Entries, nil
}

func checkVersion(version string) error {
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("%w: invalid version %q: %w", ErrStoreCorrupted, version, err)
	}
	constraint, err := semver.NewConstraint(supportedVersions)
	if err != nil {
		return fmt.Errorf("parsing version constraint: %w", err)
	}
	if !constraint.Check(v) {
		return fmt.Errorf("%w: unsupported version %s (want %s)", ErrStoreCorrupted, v, supportedVersions)
	}
	return nil
}

// EncodeExport renders entries as an indented JSON array of flat records.
func EncodeExport(entries []Entry) ([]byte, error) {
	if entries == nil {
		entries = []Entry{}
	}
	data, err := json.MarshalIndent(entries, "", exportIndent)
	if err != nil {
		return nil, fmt.Errorf("encoding export: %w", err)
	}
	return data, nil
}

// DecodeExport parses a JSON array of records produced by EncodeExport or
// written by hand. Records are not validated here; ImportBatch does that.
func DecodeExport(data []byte) ([]Entry, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '[' {
		return nil, &InvalidImportDataError{Index: -1, Err: errors.New("expected a JSON array of records")}
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, &InvalidImportDataError{Index: -1, Err: err}
	}
	return entries, nil
}
