package probe

import (
	"strings"

	"github.com/arthur-debert/deskset/pkg/logging"
	"github.com/beevik/etree"
)

// TerminalFont reads the operator's fontconfig file for the family
// preferred for the "monospace" generic name.
func (p *Probe) TerminalFont() (string, bool) {
	if p.cfg.FontconfigFile == "" {
		return "", false
	}
	data, err := p.cfg.FS.ReadFile(p.cfg.FontconfigFile)
	if err != nil {
		return "", false
	}
	family, err := MonospaceFamily(data)
	if err != nil {
		logger := logging.GetLogger("probe")
		logger.Debug().Err(err).Str("path", p.cfg.FontconfigFile).Msg("Unreadable fontconfig file")
		return "", false
	}
	return family, family != ""
}

// MonospaceFamily extracts the preferred monospace family from a fontconfig
// document. Both forms are understood:
//
//	<alias><family>monospace</family><prefer><family>Hack</family></prefer></alias>
//	<match><test name="family"><string>monospace</string></test>
//	       <edit name="family"><string>Hack</string></edit></match>
//
// The first rule in document order wins. No rule yields "".
func MonospaceFamily(data []byte) (string, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return "", err
	}
	root := doc.SelectElement("fontconfig")
	if root == nil {
		return "", nil
	}

	for _, el := range root.ChildElements() {
		var family string
		switch el.Tag {
		case "alias":
			family = fromAlias(el)
		case "match":
			family = fromMatch(el)
		}
		if family != "" {
			return family, nil
		}
	}
	return "", nil
}

func fromAlias(alias *etree.Element) string {
	name := alias.SelectElement("family")
	if name == nil || strings.TrimSpace(name.Text()) != "monospace" {
		return ""
	}
	for _, list := range []string{"prefer", "default", "accept"} {
		if el := alias.SelectElement(list); el != nil {
			if fam := el.SelectElement("family"); fam != nil {
				return strings.TrimSpace(fam.Text())
			}
		}
	}
	return ""
}

func fromMatch(match *etree.Element) string {
	monospace := false
	for _, test := range match.SelectElements("test") {
		if test.SelectAttrValue("name", "") != "family" {
			continue
		}
		if s := test.SelectElement("string"); s != nil && strings.TrimSpace(s.Text()) == "monospace" {
			monospace = true
		}
	}
	if !monospace {
		return ""
	}
	for _, edit := range match.SelectElements("edit") {
		if edit.SelectAttrValue("name", "") != "family" {
			continue
		}
		if s := edit.SelectElement("string"); s != nil {
			return strings.TrimSpace(s.Text())
		}
	}
	return ""
}
