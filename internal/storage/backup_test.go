package storage

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/mototransporte/internal/pkg/apperrors"
)

var allCollections = []string{"students", "routes", "drivers", "vehicles"}

func TestBackupFileName(t *testing.T) {
	at := time.Date(2026, 10, 17, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, "mototransporte_backup_2026-10-17.json", BackupFileName(at))
}

func TestDocumentRoundTrip(t *testing.T) {
	doc := Document{
		ExportDate: time.Date(2026, 10, 17, 8, 0, 0, 0, time.UTC),
		Collections: map[string][]Record{
			"students": {Record(`{"id":"s1","nationalId":"1234567","fullName":"Ana Rojas"}`)},
			"routes":   nil,
			"drivers":  {},
			"vehicles": {Record(`{"id":"v1","plate":"1234ABC","year":2020}`)},
		},
	}

	raw, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"exportDate":"2026-10-17T08:00:00Z"`)

	decoded, err := DecodeDocument(raw, allCollections)
	require.NoError(t, err)
	assert.True(t, doc.ExportDate.Equal(decoded.ExportDate))
	require.Len(t, decoded.Collections, 4)
	assert.Empty(t, decoded.Collections["routes"])
	require.Len(t, decoded.Collections["students"], 1)
	assert.JSONEq(t, string(doc.Collections["students"][0]), string(decoded.Collections["students"][0]))
	assert.JSONEq(t, string(doc.Collections["vehicles"][0]), string(decoded.Collections["vehicles"][0]))
}

func TestDecodeDocumentOnlyPresentCollections(t *testing.T) {
	doc, err := DecodeDocument([]byte(`{"drivers":[{"id":"d1"}],"routes":null,"unknown":[1]}`), allCollections)
	require.NoError(t, err)
	assert.Len(t, doc.Collections, 1)
	assert.Contains(t, doc.Collections, "drivers")
	assert.True(t, doc.ExportDate.IsZero())
}

func TestDecodeDocumentLegacyFields(t *testing.T) {
	raw := []byte(`{
		"students": [{"id":"s1","ci":"1234567 LP","registrationDate":"2024-03-01T10:00:00.000Z"}],
		"drivers": [{"id":"d1","ci":"7654321","license":"B-123456","hiredDate":"2024-01-01T00:00:00.000Z"}],
		"vehicles": [{"id":"v1","plate":"1234ABC","year":"2020","capacity":" 15 "}]
	}`)

	doc, err := DecodeDocument(raw, allCollections)
	require.NoError(t, err)

	assert.JSONEq(t, `{"id":"s1","nationalId":"1234567 LP","registeredAt":"2024-03-01T10:00:00.000Z"}`,
		string(doc.Collections["students"][0]))
	assert.JSONEq(t, `{"id":"d1","nationalId":"7654321","licenseNumber":"B-123456","hiredAt":"2024-01-01T00:00:00.000Z"}`,
		string(doc.Collections["drivers"][0]))
	assert.JSONEq(t, `{"id":"v1","plate":"1234ABC","year":2020,"capacity":15}`,
		string(doc.Collections["vehicles"][0]))
}

func TestDecodeDocumentRejects(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"malformed json", `{"students": [`},
		{"not an object", `[1,2,3]`},
		{"collection not a list", `{"students": {"id":"s1"}}`},
		{"record not an object", `{"routes": [42]}`},
		{"null record", `{"routes": [null]}`},
		{"record without id", `{"drivers": [{"fullName":"Juan Perez"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeDocument([]byte(tt.raw), allCollections)
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrImportFailed)
		})
	}
}
