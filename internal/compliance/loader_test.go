package compliance

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abubakr3800/sc-standards/constants"
)

func TestLoadDefault(t *testing.T) {
	db, err := LoadDefault()
	require.NoError(t, err)

	ids := db.StandardIDs()
	assert.Contains(t, ids, "EN_12464_1_Office")
	assert.Contains(t, ids, "BREEAM_Office")
	assert.Contains(t, ids, "ISO_8995_1_Office")
	assert.IsIncreasing(t, ids)

	reqs := db.RequirementsFor("EN_12464_1_Office", constants.RoomOffice)
	assert.NotEmpty(t, reqs)
	for _, r := range reqs {
		assert.True(t, r.Bounded())
	}
}

func TestLoadFileValid(t *testing.T) {
	path := writeStandards(t, `{
		"requirements": [
			{"standard_id": "TEST_STD", "application_type": "office", "parameter_kind": "illuminance_avg", "minimum": 400}
		]
	}`)

	db, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"TEST_STD"}, db.StandardIDs())
	assert.True(t, db.Covers("TEST_STD", constants.RoomOffice))
	assert.False(t, db.Covers("TEST_STD", constants.RoomCorridor))
}

func TestLoadRejectsUnknownParameterKind(t *testing.T) {
	path := writeStandards(t, `{
		"requirements": [
			{"standard_id": "TEST_STD", "application_type": "office", "parameter_kind": "sparkle_factor", "minimum": 1}
		]
	}`)

	_, err := LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validate standards json")
}

func TestLoadRejectsUnknownRoomType(t *testing.T) {
	path := writeStandards(t, `{
		"requirements": [
			{"standard_id": "TEST_STD", "application_type": "spaceship", "parameter_kind": "ugr", "maximum": 19}
		]
	}`)

	_, err := LoadFile(path)
	require.Error(t, err)
}

func TestLoadRejectsUnboundedRequirement(t *testing.T) {
	path := writeStandards(t, `{
		"requirements": [
			{"standard_id": "TEST_STD", "application_type": "office", "parameter_kind": "ugr"}
		]
	}`)

	_, err := LoadFile(path)
	require.Error(t, err)
}

func TestLoadRejectsMalformedJSON(t *testing.T) {
	path := writeStandards(t, `{"requirements": [`)
	_, err := LoadFile(path)
	require.Error(t, err)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}

func writeStandards(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "standards.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}
