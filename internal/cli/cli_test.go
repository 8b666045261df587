package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/mototransporte/internal/app/models"
	"github.com/yigit/mototransporte/internal/pkg/apperrors"
	"github.com/yigit/mototransporte/internal/pkg/validation"
)

func TestParseAssignments(t *testing.T) {
	tests := []struct {
		name    string
		pairs   []string
		want    validation.Fields
		wantErr bool
	}{
		{"empty", nil, validation.Fields{}, false},
		{"simple", []string{"plate=1234ABC", "year=2020"}, validation.Fields{"plate": "1234ABC", "year": "2020"}, false},
		{"value with equals", []string{"address=Calle 1=B"}, validation.Fields{"address": "Calle 1=B"}, false},
		{"empty value clears", []string{"routeId="}, validation.Fields{"routeId": nil}, false},
		{"missing separator", []string{"plate"}, nil, true},
		{"missing key", []string{"=x"}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseAssignments(tt.pairs)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, apperrors.ErrBadRequest)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadPayloadSetWinsOverJSON(t *testing.T) {
	f, err := readPayload(`{"brand":"Nissan","capacity":12}`, []string{"brand=Toyota"})
	require.NoError(t, err)
	assert.Equal(t, "Toyota", f.String(validation.FieldBrand))
	n, ok := f.Number(validation.FieldCapacity)
	require.True(t, ok)
	assert.Equal(t, float64(12), n)

	_, err = readPayload(`{"brand":`, nil)
	assert.Error(t, err)
}

func TestNotifierPrefixes(t *testing.T) {
	var out bytes.Buffer
	n := &Notifier{Out: &out}
	n.Notify(models.NotificationSuccess, "saved")
	n.Notify(models.NotificationWarning, "check fields")
	n.Notify(models.NotificationKind("custom"), "other")

	assert.Equal(t, "[ok] saved\n[warn] check fields\n[custom] other\n", out.String())
}

func TestPromptConfirmerWithoutTerminalDeclines(t *testing.T) {
	var out bytes.Buffer
	c := PromptConfirmer{In: io.NopCloser(strings.NewReader("y\n")), Out: &out}

	ok, err := c.Confirm(context.Background(), "Delete vehicle?", "This action cannot be undone")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Contains(t, out.String(), "Delete vehicle?")
	assert.Contains(t, out.String(), "--yes")
}

type cliFixture struct {
	t   *testing.T
	dir string
}

func newCLIFixture(t *testing.T) *cliFixture {
	dir := t.TempDir()
	t.Setenv("STORAGE_DRIVER", "bolt")
	t.Setenv("STORAGE_PATH", filepath.Join(dir, "data.db"))
	t.Setenv("STORAGE_LATENCY", "0s")
	t.Setenv("EXPORT_DIRECTORY", filepath.Join(dir, "exports"))
	t.Setenv("LOG_LEVEL", "disabled")
	t.Setenv("SEED_ON_START", "false")
	return &cliFixture{t: t, dir: dir}
}

// run executes one command line against a fresh process state.
func (f *cliFixture) run(args ...string) (stdout, stderr string, err error) {
	var out, errOut bytes.Buffer
	streams := Streams{In: io.NopCloser(strings.NewReader("")), Out: &out, Err: &errOut}
	args = append([]string{"--config", filepath.Join(f.dir, "missing.yaml"), "--locale", "en"}, args...)
	err = Run(context.Background(), streams, args)
	return out.String(), errOut.String(), err
}

func TestVehicleLifecycle(t *testing.T) {
	f := newCLIFixture(t)

	stdout, stderr, err := f.run("vehicles", "add",
		"--set", "plate=1234abc", "--set", "brand=Toyota", "--set", "model=Hiace",
		"--set", "year=2020", "--set", "capacity=15")
	require.NoError(t, err, stderr)
	id := strings.TrimSpace(stdout)
	require.NotEmpty(t, id)
	assert.Contains(t, stderr, "[ok] Vehicle registered successfully")

	stdout, _, err = f.run("vehicles", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "PLATE")
	assert.Contains(t, stdout, "1234ABC")

	stdout, _, err = f.run("vehicles", "list", "--search", "toyo")
	require.NoError(t, err)
	assert.Contains(t, stdout, id)

	stdout, _, err = f.run("vehicles", "update", id, "--set", "capacity=20")
	require.NoError(t, err)
	assert.Contains(t, stdout, `"capacity": 20`)

	_, stderr, err = f.run("vehicles", "delete", id)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrConfirmationDeclined)
	assert.Contains(t, stderr, "Delete")

	stdout, _, err = f.run("vehicles", "show", id)
	require.NoError(t, err)
	assert.Contains(t, stdout, `"plate": "1234ABC"`)

	_, _, err = f.run("--yes", "vehicles", "delete", id)
	require.NoError(t, err)

	_, _, err = f.run("vehicles", "show", id)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestAddReportsFieldErrors(t *testing.T) {
	f := newCLIFixture(t)

	_, stderr, err := f.run("vehicles", "add", "--set", "plate=12", "--set", "brand=Toyota")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.Contains(t, stderr, "[warn]")
	assert.Contains(t, stderr, "Invalid plate")

	stdout, _, err := f.run("vehicles", "list")
	require.NoError(t, err)
	assert.NotContains(t, stdout, "Toyota")
}

func TestDashboardAndSearch(t *testing.T) {
	f := newCLIFixture(t)

	stdout, _, err := f.run("dashboard")
	require.NoError(t, err)
	assert.Contains(t, stdout, "All clear")

	_, _, err = f.run("seed")
	require.NoError(t, err)

	stdout, _, err = f.run("dashboard")
	require.NoError(t, err)
	assert.Contains(t, stdout, "under maintenance")

	stdout, stderr, err := f.run("search", "toyota")
	require.NoError(t, err)
	assert.Contains(t, stdout, models.CollectionVehicles)
	assert.Contains(t, stderr, "1 match(es)")

	stdout, _, err = f.run("routes", "summary")
	require.NoError(t, err)
	assert.Contains(t, stdout, "STUDENTS")
}

func TestExportImportClear(t *testing.T) {
	f := newCLIFixture(t)

	_, _, err := f.run("seed")
	require.NoError(t, err)
	before, _, err := f.run("students", "list")
	require.NoError(t, err)

	exportDir := filepath.Join(f.dir, "elsewhere")
	stdout, _, err := f.run("export", "--dir", exportDir)
	require.NoError(t, err)
	path := strings.TrimSpace(stdout)
	assert.True(t, strings.HasPrefix(filepath.Base(path), "mototransporte_backup_"))
	_, err = os.Stat(path)
	require.NoError(t, err)

	_, stderr, err := f.run("clear")
	assert.ErrorIs(t, err, apperrors.ErrConfirmationDeclined)
	assert.Contains(t, stderr, "Delete ALL data?")

	_, _, err = f.run("--yes", "clear")
	require.NoError(t, err)
	stdout, _, err = f.run("dashboard")
	require.NoError(t, err)
	assert.Contains(t, stdout, "All clear")

	stdout, _, err = f.run("import", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, models.CollectionStudents)

	after, _, err := f.run("students", "list")
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestImportRejectsInvalidFile(t *testing.T) {
	f := newCLIFixture(t)
	bad := filepath.Join(f.dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"students": {}}`), 0o600))

	_, stderr, err := f.run("import", bad)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrImportFailed)
	assert.Contains(t, stderr, "not a valid backup")
}
