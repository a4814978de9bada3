package cleaner

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"

	"github.com/mrjoshuak/docclean/internal/dom"
	"github.com/mrjoshuak/docclean/types"
)

// Cleaner runs the filter and the paragraph normalizer over a document.
// A Cleaner holds only compiled rules and may be shared between goroutines
// as long as each document is used by one goroutine at a time.
type Cleaner struct {
	filter     *Filter
	normalizer *Normalizer
	logger     zerolog.Logger
}

// New builds a Cleaner with the default rule tables.
func New(logger zerolog.Logger) (*Cleaner, error) {
	filter, err := NewFilter(RuleTables(), logger)
	if err != nil {
		return nil, err
	}
	return &Cleaner{
		filter:     filter,
		normalizer: NewNormalizer(logger),
		logger:     logger,
	}, nil
}

// Normalize cleans doc in place. The filter completes before normalization
// starts so that containers are judged against the cleaned tree. Only a
// missing document is reported as an error; everything else degrades to a
// best-effort tree with the problems counted in the report.
func (c *Cleaner) Normalize(doc *goquery.Document) (types.Report, error) {
	var report types.Report

	root := dom.Root(doc)
	if root == nil {
		return report, ErrNoDocument
	}

	c.filter.Apply(root, &report)
	c.normalizer.Apply(root, &report)

	c.logger.Debug().
		Int("comments_removed", report.CommentsRemoved).
		Int("elements_removed", report.ElementsRemoved).
		Int("elements_replaced", report.ElementsReplaced).
		Int("containers_replaced", report.ContainersReplaced).
		Int("containers_split", report.ContainersSplit).
		Int("containers_skipped", report.ContainersSkipped).
		Int("container_failures", report.ContainerFailures).
		Msg("document normalized")

	return report, nil
}
