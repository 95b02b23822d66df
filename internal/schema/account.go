package schema

import (
	"regexp"
	"strings"

	"tradestats/pkg/contracts/domain"
)

// LabeledText is the view of a markup document the account harvester needs
type LabeledText interface {
	Text() string
	LabelValue(label string) string
}

// accountPattern matches "5012345 (USD, Broker-Server, real, Hedge)"
var accountPattern = regexp.MustCompile(`(\d{3,})\s*\(\s*([A-Z]{3})\s*(?:,\s*([^,)]+))?`)

// HarvestAccount collects account metadata from a statement header
func HarvestAccount(doc LabeledText) domain.AccountInfo {
	info := domain.AccountInfo{
		Name:    doc.LabelValue("Name:"),
		Company: doc.LabelValue("Company:"),
	}

	source := doc.LabelValue("Account:")
	m := accountPattern.FindStringSubmatch(source)
	if m == nil {
		m = accountPattern.FindStringSubmatch(doc.Text())
	}
	if m != nil {
		info.Number = m[1]
		info.Currency = m[2]
		info.Server = strings.TrimSpace(m[3])
	} else if source != "" {
		info.Number = strings.TrimSpace(strings.SplitN(source, " ", 2)[0])
	}

	return info
}
