package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportCSVRejectsMissingTitleColumn(t *testing.T) {
	im := NewImporter(nil)
	_, err := im.ImportCSV(strings.NewReader("Foo,Bar\n1,2\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Project Title")
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"Energy", "Robotics"}, splitList("Energy, Robotics"))
	assert.Equal(t, []string{"Energy"}, splitList(" Energy ,, "))
	assert.Nil(t, splitList(""))
}

func TestPlaceholderEmail(t *testing.T) {
	assert.Equal(t, "janedoe@example.com", placeholderEmail("Jane Doe"))
}
