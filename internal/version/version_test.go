package version

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func labels(infos []Info) []string {
	out := make([]string, len(infos))
	for i, info := range infos {
		out[i] = info.Version
	}
	return out
}

func manifest(versions ...string) []Info {
	infos := make([]Info, len(versions))
	for i, v := range versions {
		infos[i] = Info{Version: v, Title: v, Aliases: []string{}}
	}
	return infos
}

func TestSort_NewestFirst(t *testing.T) {
	got := Sort(manifest("v0.5.0", "v0.6.2", "v0.4.1"))
	want := []string{"v0.6.2", "v0.5.0", "v0.4.1"}
	if diff := cmp.Diff(want, labels(got)); diff != "" {
		t.Errorf("sort order mismatch (-want +got):\n%s", diff)
	}
}

func TestSort_DevChannelAheadOfReleases(t *testing.T) {
	// The v0.7-dev channel tracks work after the last v0.6 release, so it
	// must lead the list.
	got := Sort(manifest("v0.6.2", "v0.7-dev", "v0.6.1", "v0.5.0"))
	want := []string{"v0.7-dev", "v0.6.2", "v0.6.1", "v0.5.0"}
	if diff := cmp.Diff(want, labels(got)); diff != "" {
		t.Errorf("sort order mismatch (-want +got):\n%s", diff)
	}
}

func TestSort_NamedChannelsLast(t *testing.T) {
	got := Sort(manifest("latest", "v0.6.2", "next", "v0.7-dev"))
	want := []string{"v0.7-dev", "v0.6.2", "next", "latest"}
	if diff := cmp.Diff(want, labels(got)); diff != "" {
		t.Errorf("sort order mismatch (-want +got):\n%s", diff)
	}
}

func TestSort_MissingVPrefix(t *testing.T) {
	got := Sort(manifest("0.5.0", "v0.6.0"))
	assert.Equal(t, []string{"v0.6.0", "0.5.0"}, labels(got))
}

func TestSort_ShortVersionsCanonicalized(t *testing.T) {
	// v0.7 and v0.7.0 compare equal; the raw label breaks the tie
	// deterministically.
	got := Sort(manifest("v0.7", "v0.7.0", "v0.8"))
	assert.Equal(t, []string{"v0.8", "v0.7.0", "v0.7"}, labels(got))
}

func TestSort_Deterministic(t *testing.T) {
	in := manifest("v0.3.0", "weird", "v0.3.0", "", "v1.0.0-rc.1", "v1.0.0")
	first := Sort(in)
	for i := 0; i < 10; i++ {
		require.Equal(t, labels(first), labels(Sort(in)))
	}
}

func TestSort_InputNotModified(t *testing.T) {
	in := manifest("v0.1.0", "v0.2.0")
	Sort(in)
	assert.Equal(t, "v0.1.0", in[0].Version)
}

func TestSort_NilAliasesBecomeEmpty(t *testing.T) {
	got := Sort([]Info{{Version: "v0.1.0", Title: "v0.1.0"}})
	require.Len(t, got, 1)
	assert.NotNil(t, got[0].Aliases)
	assert.Empty(t, got[0].Aliases)
}

func TestIsVersion(t *testing.T) {
	for label, want := range map[string]bool{
		"v0.6.2":   true,
		"0.6.2":    true,
		"v0.7-dev": true,
		"v1":       true,
		"latest":   false,
		"":         false,
		"v0.7-dev (deadbeef)": false,
	} {
		assert.Equal(t, want, IsVersion(label), "label %q", label)
	}
}

func TestCanonical(t *testing.T) {
	assert.Equal(t, "v0.6.2", Canonical("0.6.2"))
	assert.Equal(t, "v0.7.0", Canonical("v0.7"))
	assert.Equal(t, "v0.7.0-dev", Canonical("v0.7-dev"))
	assert.Equal(t, "", Canonical("latest"))
}
