package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoleScan(t *testing.T) {
	var r Role
	require.NoError(t, r.Scan(nil))
	require.Equal(t, RoleUnset, r)

	require.NoError(t, r.Scan("advertiser"))
	require.Equal(t, RoleAdvertiser, r)

	require.NoError(t, r.Scan([]byte("publisher")))
	require.Equal(t, RolePublisher, r)

	require.Error(t, r.Scan("moderator"))
}

func TestRoleValue(t *testing.T) {
	v, err := RoleUnset.Value()
	require.NoError(t, err)
	require.Nil(t, v)

	v, err = RoleAdvertiser.Value()
	require.NoError(t, err)
	require.Equal(t, "advertiser", v)

	_, err = Role("moderator").Value()
	require.Error(t, err)
}

func TestAdStatusValid(t *testing.T) {
	require.True(t, AdStatusPending.Valid())
	require.True(t, AdStatusApproved.Valid())
	require.True(t, AdStatusRejected.Valid())
	require.False(t, AdStatus("draft").Valid())
	require.False(t, AdStatus("").Valid())
}

func TestAdAccessors(t *testing.T) {
	var ad Ad
	require.Nil(t, ad.Media())
	require.Nil(t, ad.Button())

	ref, kind := "file-1", MediaPhoto
	label, url := "Go", "https://x.test"
	ad = Ad{MediaRef: &ref, MediaKind: &kind, ButtonLabel: &label, ButtonURL: &url}
	require.Equal(t, &MediaRef{Ref: "file-1", Kind: MediaPhoto}, ad.Media())
	require.Equal(t, &Button{Label: "Go", URL: "https://x.test"}, ad.Button())
}
