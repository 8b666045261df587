package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/yigit/mototransporte/internal/pkg/apperrors"
)

// BackupFilePrefix starts every export file name.
const BackupFilePrefix = "mototransporte_backup_"

// legacyKeys maps field names written by the browser version to current ones.
var legacyKeys = map[string]string{
	"ci":               "nationalId",
	"license":          "licenseNumber",
	"registrationDate": "registeredAt",
	"hiredDate":        "hiredAt",
}

// numericKeys hold integers that older exports stored as strings.
var numericKeys = []string{"year", "capacity"}

// Document is a full export of the stored collections.
type Document struct {
	ExportDate time.Time
	// Collections holds only the collections present in the document.
	Collections map[string][]Record
}

// BackupFileName names the export taken at t.
func BackupFileName(t time.Time) string {
	return BackupFilePrefix + t.UTC().Format("2006-01-02") + ".json"
}

// MarshalJSON writes exportDate next to each collection.
func (d Document) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(d.Collections)+1)
	out["exportDate"] = d.ExportDate.UTC().Format(time.RFC3339Nano)
	for name, records := range d.Collections {
		if records == nil {
			records = []Record{}
		}
		out[name] = records
	}
	return json.Marshal(out)
}

// DecodeDocument parses an export. Only the named collections are read; a
// collection that is absent or null is left out of the result. Records are
// normalized to the current field names. Nothing is returned unless the whole
// document is well formed.
func DecodeDocument(raw []byte, collections []string) (Document, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil {
		return Document{}, apperrors.NewImportError("document is not a JSON object", err)
	}

	doc := Document{Collections: make(map[string][]Record)}
	if v, ok := top["exportDate"]; ok && !isNull(v) {
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			return Document{}, apperrors.NewImportError("exportDate is not a string", err)
		}
		if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
			doc.ExportDate = t
		}
	}

	for _, name := range collections {
		v, ok := top[name]
		if !ok || isNull(v) {
			continue
		}
		var items []map[string]json.RawMessage
		if err := json.Unmarshal(v, &items); err != nil {
			return Document{}, apperrors.NewImportError(fmt.Sprintf("%s is not a list of records", name), err)
		}
		records := make([]Record, 0, len(items))
		for i, item := range items {
			if item == nil {
				return Document{}, apperrors.NewImportError(fmt.Sprintf("%s[%d] is not a record", name, i), nil)
			}
			normalizeLegacy(item)
			rec, err := json.Marshal(item)
			if err != nil {
				return Document{}, apperrors.NewImportError(fmt.Sprintf("%s[%d] cannot be encoded", name, i), err)
			}
			if _, _, err := decodeRecord(rec); err != nil {
				return Document{}, apperrors.NewImportError(fmt.Sprintf("%s[%d]: %v", name, i, err), err)
			}
			records = append(records, rec)
		}
		doc.Collections[name] = records
	}
	return doc, nil
}

func normalizeLegacy(item map[string]json.RawMessage) {
	for old, current := range legacyKeys {
		v, ok := item[old]
		if !ok {
			continue
		}
		if _, exists := item[current]; !exists {
			item[current] = v
		}
		delete(item, old)
	}
	for _, key := range numericKeys {
		v, ok := item[key]
		if !ok {
			continue
		}
		var s string
		if json.Unmarshal(v, &s) != nil {
			continue
		}
		s = strings.TrimSpace(s)
		if s == "" {
			item[key] = json.RawMessage("null")
			continue
		}
		if n, err := strconv.Atoi(s); err == nil {
			item[key] = json.RawMessage(strconv.Itoa(n))
		}
	}
}

func isNull(v json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(v), []byte("null"))
}
