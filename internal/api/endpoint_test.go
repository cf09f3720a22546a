package api

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEndpointURL_JoinsBaseAndPath(t *testing.T) {
	u, err := EndpointCharacters.URL("https://api.example.com/v1")
	require.NoError(t, err)
	require.Equal(t, "https://api.example.com/v1/characters", u)
}

func TestEndpointURL_NormalizesTrailingSlash(t *testing.T) {
	u, err := EndpointCharacters.URL("https://api.example.com/v1/")
	require.NoError(t, err)
	require.Equal(t, "https://api.example.com/v1/characters", u)
}

func TestEndpointURL_RejectsUnsupportedScheme(t *testing.T) {
	_, err := EndpointCharacters.URL("ftp://api.example.com")
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrInvalidURL))
}

func TestEndpointURL_RejectsMissingHost(t *testing.T) {
	_, err := EndpointCharacters.URL("https://")
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrInvalidURL))
}

func TestEndpointDescriptor_Characters(t *testing.T) {
	desc := EndpointCharacters.descriptor()
	require.Equal(t, "characters", desc.Path)
	require.Equal(t, "GET", desc.Method)
	require.Equal(t, "application/json", desc.Headers["Content-Type"])
	require.Empty(t, desc.Query)
	require.Nil(t, desc.Body)
}

func TestEncodeQuery_PreservesOrderAndEscapes(t *testing.T) {
	q := encodeQuery([]QueryParam{
		{Key: "state", Value: "active"},
		{Key: "name", Value: "a b&c"},
	})
	require.Equal(t, "state=active&name=a+b%26c", q)
}
