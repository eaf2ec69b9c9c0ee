package importer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rvannote/billdash/internal/importer"
)

func TestService_Parse(t *testing.T) {
	input := strings.Join([]string{
		"Name,Email,Avatar",
		"Ada Lovelace,ada@example.com,/avatars/ada.png",
		"Grace Hopper,grace@example.com,",
		",missing-name@example.com,",
	}, "\n")

	result, err := importer.NewService().Parse(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, result.Params, 2)
	assert.Equal(t, "Ada Lovelace", result.Params[0].Name)
	assert.Equal(t, "ada@example.com", result.Params[0].Email)
	assert.Equal(t, "/avatars/ada.png", result.Params[0].ImageURL)
	assert.Empty(t, result.Params[1].ImageURL)

	require.Len(t, result.Invalid, 1)
	assert.Equal(t, 4, result.Invalid[0].Line)
	assert.Contains(t, result.Invalid[0].Fields, "customerName")
}

func TestService_Parse_HeaderAliases(t *testing.T) {
	input := "customer_name,e-mail\nAda,ada@example.com\n"

	result, err := importer.NewService().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, result.Params, 1)
	assert.Equal(t, "Ada", result.Params[0].Name)
	assert.Equal(t, "ada@example.com", result.Params[0].Email)
}

func TestService_Parse_MissingRequiredColumn(t *testing.T) {
	input := "name,avatar\nAda,/a.png\n"

	_, err := importer.NewService().Parse(strings.NewReader(input))
	require.Error(t, err)
	assert.ErrorContains(t, err, "email")
}

func TestService_Parse_Windows1252(t *testing.T) {
	// "José,jose@example.com" with é encoded as 0xE9.
	input := append([]byte("name,email\nJos"), 0xE9)
	input = append(input, []byte(",jose@example.com\n")...)

	result, err := importer.NewService().Parse(strings.NewReader(string(input)))
	require.NoError(t, err)
	require.Len(t, result.Params, 1)
	assert.Equal(t, "José", result.Params[0].Name)
}

func TestService_Parse_Empty(t *testing.T) {
	result, err := importer.NewService().Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, result.Params)
	assert.Empty(t, result.Invalid)
}
