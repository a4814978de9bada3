// Package cleaner strips boilerplate from a parsed HTML document and rewrites
// the remaining markup so that flowing text sits inside <p> elements while
// block elements are left in place.
package cleaner

import (
	"fmt"
	"strings"

	"github.com/andybalholm/cascadia"
)

// MatchMode is how a removal pattern is compared to an attribute value.
type MatchMode int

const (
	MatchPrefix MatchMode = iota
	MatchSubstring
	MatchSuffix
	MatchExact
)

// operator returns the CSS attribute operator for the mode.
func (m MatchMode) operator() string {
	switch m {
	case MatchPrefix:
		return "^="
	case MatchSubstring:
		return "*="
	case MatchSuffix:
		return "$="
	default:
		return "="
	}
}

func (m MatchMode) String() string {
	switch m {
	case MatchPrefix:
		return "prefix"
	case MatchSubstring:
		return "substring"
	case MatchSuffix:
		return "suffix"
	case MatchExact:
		return "exact"
	default:
		return "unknown"
	}
}

// RuleAttributes are the attributes every removal pattern is tested against.
var RuleAttributes = []string{"id", "class", "name"}

// ExceptionTags are never removed by the pattern tables.
var ExceptionTags = []string{"html", "head", "body"}

// RemovePrefixes lists attribute value prefixes that mark boilerplate.
var RemovePrefixes = []string{
	"ad-", "ad_", "advert-", "advert_", "affiliate-", "affiliate_",
	"author-info", "author_info", "bottom-", "bottom_", "breadcrumb",
	"cat-", "cat_", "cnn_", "comment-", "comment_", "contact-",
	"footer-", "footer_", "hp-", "inline-share", "jump-", "latest-",
	"nav-", "nav_", "popular-", "promo-", "promo_", "related-", "related_",
	"share-", "share_", "social-", "sponsor-", "subscribe-", "trending-",
	"widget-", "widget_",
}

// RemoveSubstrings lists attribute value fragments that mark boilerplate.
var RemoveSubstrings = []string{
	"combx", "retweet", "mediaarticlerelated", "menucontainer", "navbar",
	"storytopbar-bucket", "utility-bar", "inline-share-tools", "comment",
	"PopularQuestions", "foot", "cnn_strycaptiontxt", "cnn_html_slideshow",
	"cnn_strylftcntnt", "shoutbox", "socialnetworking", "socialNetworking",
	"cnnStryHghLght", "cnn_stryspcvbx", "pagetools", "post-attributes",
	"welcome_form", "contentTools2", "the_answers", "communitypromo",
	"runaroundLeft", "subscribe", "vcard", "articleheadings",
	"author-dropdown", "socialtools", "konafilter", "KonaFilter",
	"breadcrumbs", "wp-caption-text", "legende", "ajoutVideo", "timestamp",
	"js_replies", "disqus", "outbrain", "taboola", "newsletter", "popup",
}

// RemoveSuffixes lists attribute value suffixes that mark boilerplate.
var RemoveSuffixes = []string{
	"meta", "-nav", "_nav", "-ad", "_ad", "-ads", "-share", "-social",
	"-promo", "-related", "-widget", "-comments", "-footer", "-toolbar",
	"-tools", "_tools",
}

// RemoveExact lists whole attribute values that mark boilerplate.
var RemoveExact = []string{
	"ad", "ads", "advert", "advertisement", "banner", "byline", "comments",
	"contact", "fn", "inset", "links", "nav", "navigation", "print",
	"promo", "related", "share", "side", "sidebar", "social", "sponsor",
	"tags", "tools",
}

// RuleTable pairs a pattern list with its match mode.
type RuleTable struct {
	Mode     MatchMode
	Patterns []string
}

// RuleTables returns the pattern tables in evaluation order.
func RuleTables() []RuleTable {
	return []RuleTable{
		{Mode: MatchPrefix, Patterns: RemovePrefixes},
		{Mode: MatchSubstring, Patterns: RemoveSubstrings},
		{Mode: MatchSuffix, Patterns: RemoveSuffixes},
		{Mode: MatchExact, Patterns: RemoveExact},
	}
}

// Rule is one (mode, pattern, attribute) combination compiled to a selector.
type Rule struct {
	Mode      MatchMode
	Pattern   string
	Attribute string
	Selector  cascadia.Selector
}

// String returns the CSS selector the rule was compiled from.
func (r Rule) String() string {
	return ruleSelector(r.Mode, r.Pattern, r.Attribute)
}

func ruleSelector(mode MatchMode, pattern, attr string) string {
	sel := fmt.Sprintf("[%s%s'%s']", attr, mode.operator(), pattern)
	for _, tag := range ExceptionTags {
		sel += ":not(" + tag + ")"
	}
	return sel
}

// CompileRules expands the tables into one rule per pattern and attribute.
func CompileRules(tables []RuleTable) ([]Rule, error) {
	var rules []Rule
	for _, table := range tables {
		for _, pattern := range table.Patterns {
			for _, attr := range RuleAttributes {
				sel, err := cascadia.Compile(ruleSelector(table.Mode, pattern, attr))
				if err != nil {
					return nil, WrapQueryError(err, "CompileRules", fmt.Sprintf("%s pattern %q", table.Mode, pattern))
				}
				rules = append(rules, Rule{
					Mode:      table.Mode,
					Pattern:   pattern,
					Attribute: attr,
					Selector:  sel,
				})
			}
		}
	}
	return rules, nil
}

// attributeRule compiles a selector group whose members never match the
// exception tags.
func attributeRule(members ...string) cascadia.Selector {
	guarded := make([]string, len(members))
	for i, m := range members {
		guarded[i] = m
		for _, tag := range ExceptionTags {
			guarded[i] += ":not(" + tag + ")"
		}
	}
	return cascadia.MustCompile(strings.Join(guarded, ", "))
}

// Fixed selectors used by the filter steps.
var (
	selRemoveScripts     = cascadia.MustCompile("script, style")
	selRemoveChrome      = cascadia.MustCompile("header, footer, input, form, button, aside")
	selCaption           = attributeRule("[id='caption']", "[class='caption']")
	selGoogle            = attributeRule("[id*=' google ']", "[class*=' google ']")
	selMore              = attributeRule("[id*='more']:not([id^='entry-'])", "[class*='more']:not([class^='entry-'])")
	selFacebook          = attributeRule("[id*='facebook']:not([id*='-facebook'])", "[class*='facebook']:not([class*='-facebook'])")
	selFacebookBroadcast = attributeRule("[id*='facebook-broadcasting']", "[class*='facebook-broadcasting']")
	selTwitter           = attributeRule("[id*='twitter']:not([id*='-twitter'])", "[class*='twitter']:not([class*='-twitter'])")

	selEmphasis   = cascadia.MustCompile("em, strong, b, i, strike, del, ins")
	selDropCaps   = cascadia.MustCompile("[class~='dropcap'], [class~='drop_cap']")
	selParaSpans  = cascadia.MustCompile("p > span")
	selImage      = cascadia.MustCompile("img")
	selContainers = cascadia.MustCompile("div, span, article")
	selStructural = cascadia.MustCompile("a, blockquote, dl, div, img, ol, p, pre, table, ul")
)
