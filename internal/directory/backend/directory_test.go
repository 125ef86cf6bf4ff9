package backend

import (
	"testing"

	"github.com/aussiebroadwan/directory/pkg/slogx"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	opts := Options{Logger: slogx.Discard()}

	dir, err := New(Config{Kind: "LOCAL", Local: LocalConfig{UsersJSON: `[]`}}, opts)
	require.NoError(t, err)
	require.IsType(t, &Local{}, dir)

	dir, err = New(Config{Kind: KindRemote, Remote: RemoteConfig{URL: "http://directory.invalid"}}, opts)
	require.NoError(t, err)
	require.IsType(t, &Remote{}, dir)

	_, err = New(Config{Kind: KindRemote}, opts)
	require.Error(t, err)

	_, err = New(Config{Kind: KindRelational}, opts)
	require.Error(t, err, "relational needs a store")

	_, err = New(Config{Kind: "ldap"}, opts)
	require.ErrorContains(t, err, "unknown directory backend")
}
