package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSelection_Extension(t *testing.T) {
	var verr *ValidationError

	for _, name := range []string{"report.xlsx", "report.txt", "report", "report.csv.bak"} {
		err := ValidateSelection(name, 100)
		require.Error(t, err, "expected rejection for %s", name)
		assert.ErrorAs(t, err, &verr)
	}

	// Extension match is case-insensitive.
	assert.NoError(t, ValidateSelection("report.csv", 100))
	assert.NoError(t, ValidateSelection("REPORT.CSV", 100))
	assert.NoError(t, ValidateSelection("report.Csv", 100))
}

func TestValidateSelection_SizeLimit(t *testing.T) {
	assert.NoError(t, ValidateSelection("report.csv", MaxUploadBytes))

	err := ValidateSelection("report.csv", MaxUploadBytes+1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "50 MB limit")
}

func TestSelect_KeepsPriorSelectionSemantics(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "terms.csv")
	require.NoError(t, os.WriteFile(good, []byte("a,b,c\n"), 0o644))
	bad := filepath.Join(dir, "terms.xlsx")
	require.NoError(t, os.WriteFile(bad, []byte("nope"), 0o644))

	sel, err := Select(good)
	require.NoError(t, err)
	assert.Equal(t, "terms.csv", sel.Name)
	assert.Equal(t, int64(6), sel.Size)

	// A failed selection returns the zero value so callers keep what they had.
	rejected, err := Select(bad)
	require.Error(t, err)
	assert.Equal(t, SelectedFile{}, rejected)

	_, err = Select(filepath.Join(dir, "missing.csv"))
	require.Error(t, err)

	_, err = Select(dir)
	require.Error(t, err)
}
