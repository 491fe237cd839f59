package retrieval

import (
	"regexp"
	"strings"
)

// MaxExclusions caps the number of exclusion items kept per document.
const MaxExclusions = 10

var (
	policyNumberRe  = regexp.MustCompile(`(?i)Policy No[.:]?\s*([A-Z0-9]+)`)
	coverageRe      = regexp.MustCompile(`(?i)Coverage[^:]*:\s*Rs\.?\s*([\d,]+)`)
	premiumRe       = regexp.MustCompile(`(?i)Premium[^:]*:\s*Rs\.?\s*([\d,]+)`)
	waitingPeriodRe = regexp.MustCompile(`(?i)waiting period[^:]*:\s*(\d+\s*(?:days?|months?|years?))`)
	exclusionsRe    = regexp.MustCompile(`(?is)exclusions?:(.{0,500})`)
	exclusionItemRe = regexp.MustCompile(`(?:•|\d+\.|-)\s*([^•\n]+)`)
)

// PolicyInfo holds the policy facts pulled out of a document's text.
type PolicyInfo struct {
	PolicyNumbers   []string `json:"policy_number"`
	CoverageAmounts []string `json:"coverage_amount"`
	PremiumAmounts  []string `json:"premium_amount"`
	WaitingPeriods  []string `json:"waiting_periods"`
	Exclusions      []string `json:"exclusions"`
}

// ExtractPolicyInfo scans document text for policy numbers, coverage and
// premium amounts, waiting periods and the first exclusions section.
func ExtractPolicyInfo(text string) PolicyInfo {
	info := PolicyInfo{
		PolicyNumbers:   allSubmatches(policyNumberRe, text),
		CoverageAmounts: allSubmatches(coverageRe, text),
		PremiumAmounts:  allSubmatches(premiumRe, text),
		WaitingPeriods:  allSubmatches(waitingPeriodRe, text),
		Exclusions:      []string{},
	}

	if m := exclusionsRe.FindStringSubmatch(text); m != nil {
		for _, item := range exclusionItemRe.FindAllStringSubmatch(m[1], MaxExclusions) {
			info.Exclusions = append(info.Exclusions, strings.TrimSpace(item[1]))
		}
	}
	return info
}

func allSubmatches(re *regexp.Regexp, text string) []string {
	out := []string{}
	for _, m := range re.FindAllStringSubmatch(text, -1) {
		out = append(out, m[1])
	}
	return out
}
