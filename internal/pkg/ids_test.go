package pkg

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateIDs(t *testing.T) {
	first, second := GenerateGameID(), GenerateGameID()

	assert.NotEqual(t, first, second)

	for _, id := range []string{first, GenerateAccountID()} {
		_, err := uuid.Parse(id)
		require.NoError(t, err)
	}
}
