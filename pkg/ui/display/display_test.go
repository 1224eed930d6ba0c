package display

import (
	"testing"

	"github.com/arthur-debert/deskset/pkg/descriptor"
	"github.com/arthur-debert/deskset/pkg/reconcile"
	"github.com/stretchr/testify/assert"
)

func TestManifestTable(t *testing.T) {
	m := descriptor.NewPackageManifest()
	m.Append(descriptor.BucketSystem, "htop")
	m.Append(descriptor.BucketSystem, "qt5-base")
	m.Append(descriptor.BucketOther, "neofetch")

	out := ManifestTable(m).Render()
	assert.Contains(t, out, "htop, qt5-base")
	assert.Contains(t, out, "neofetch")
	assert.Contains(t, out, "development")

	md := ManifestTable(m).RenderMarkdown()
	assert.Contains(t, md, "| system | 2 | htop, qt5-base |")
}

func TestThemeFields(t *testing.T) {
	d := descriptor.New()
	assert.Equal(t, "(not managed)", ThemeFields(d)[1].Value)

	k := ""
	d.Themes.Kvantum = &k
	assert.Equal(t, Unset, ThemeFields(d)[1].Value)
}

func TestSummary(t *testing.T) {
	r := &reconcile.Report{Sections: []reconcile.SectionReport{{
		Section: reconcile.SectionPackages,
		Actions: []reconcile.Action{
			{Status: reconcile.StatusDone},
			{Status: reconcile.StatusFailed},
			{Status: reconcile.StatusDone},
		},
	}}}
	assert.Equal(t, "2 done, 1 failed", Summary(r))
	assert.Equal(t, "nothing to do", Summary(&reconcile.Report{}))
}
