package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEditorTokenRoundTrip(t *testing.T) {
	token, err := CreateEditorToken("tok", "sec", time.Minute)
	require.NoError(t, err)

	claims, err := ValidateEditorToken(token)
	require.NoError(t, err)
	assert.Equal(t, "tok", claims.OsmToken)
	assert.Equal(t, "sec", claims.OsmSecret)
}

func TestValidateEditorToken_Expired(t *testing.T) {
	token, err := CreateEditorToken("tok", "sec", -time.Minute)
	require.NoError(t, err)

	_, err = ValidateEditorToken(token)
	assert.Error(t, err)
}

func TestValidateEditorToken_Garbage(t *testing.T) {
	_, err := ValidateEditorToken("not.a.token")
	assert.Error(t, err)
}
