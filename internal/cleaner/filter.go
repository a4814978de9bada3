package cleaner

import (
	"github.com/andybalholm/cascadia"
	"github.com/rs/zerolog"
	"golang.org/x/net/html"

	"github.com/mrjoshuak/docclean/internal/dom"
	"github.com/mrjoshuak/docclean/types"
)

// Filter removes boilerplate elements and flattens inline formatting.
// It keeps no state between documents.
type Filter struct {
	rules  []Rule
	logger zerolog.Logger
}

// NewFilter compiles the removal tables.
func NewFilter(tables []RuleTable, logger zerolog.Logger) (*Filter, error) {
	rules, err := CompileRules(tables)
	if err != nil {
		return nil, err
	}
	return &Filter{rules: rules, logger: logger}, nil
}

// Rules returns the compiled table rules in evaluation order.
func (f *Filter) Rules() []Rule {
	return f.rules
}

// Apply runs every removal step over the tree rooted at root, in order.
// A step that matches nothing is not an error, and a failing step is logged
// and skipped so the remaining steps still run.
func (f *Filter) Apply(root *html.Node, report *types.Report) {
	steps := []struct {
		name string
		run  func(*html.Node, *types.Report) error
	}{
		{"comments", f.removeComments},
		{"emphasis", unwrapEmphasis},
		{"dropcaps", unwrapDropCaps},
		{"scripts", removing(selRemoveScripts)},
		{"chrome", removing(selRemoveChrome)},
		{"tables", f.removeByTables},
		{"caption", removing(selCaption)},
		{"google", removing(selGoogle)},
		{"more", removing(selMore)},
		{"facebook", removing(selFacebook)},
		{"facebook-broadcasting", removing(selFacebookBroadcast)},
		{"twitter", removing(selTwitter)},
		{"paragraph-spans", unwrapParagraphSpans},
	}

	for _, step := range steps {
		before := *report
		if err := step.run(root, report); err != nil {
			f.logger.Warn().Err(err).Str("step", step.name).Msg("filter step failed")
			continue
		}
		f.logger.Debug().
			Str("step", step.name).
			Int("removed", report.ElementsRemoved-before.ElementsRemoved+report.CommentsRemoved-before.CommentsRemoved).
			Int("replaced", report.ElementsReplaced-before.ElementsReplaced).
			Msg("filter step")
	}
}

// removeComments drops every comment node in the tree.
func (f *Filter) removeComments(root *html.Node, report *types.Report) error {
	comments, err := dom.Comments(root)
	if err != nil {
		return WrapQueryError(err, "removeComments", "comment query")
	}
	for _, c := range comments {
		if dom.IsAttached(c, root) {
			dom.Remove(c)
			report.CommentsRemoved++
		}
	}
	return nil
}

// removeByTables runs one fresh query per (table, pattern, attribute) rule.
// Nodes taken out by an earlier rule are simply no longer found.
func (f *Filter) removeByTables(root *html.Node, report *types.Report) error {
	for _, rule := range f.rules {
		n := removeMatches(root, rule.Selector)
		if n > 0 {
			f.logger.Trace().Str("rule", rule.String()).Int("removed", n).Msg("table rule")
		}
		report.ElementsRemoved += n
	}
	return nil
}

// removing adapts a selector into a filter step that removes its matches.
func removing(sel cascadia.Selector) func(*html.Node, *types.Report) error {
	return func(root *html.Node, report *types.Report) error {
		report.ElementsRemoved += removeMatches(root, sel)
		return nil
	}
}

// removeMatches detaches every node under root matching sel and returns how
// many were still attached when their turn came.
func removeMatches(root *html.Node, sel cascadia.Selector) int {
	removed := 0
	for _, n := range sel.MatchAll(root) {
		if n == root || !dom.IsAttached(n, root) {
			continue
		}
		dom.Remove(n)
		removed++
	}
	return removed
}
