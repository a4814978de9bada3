package extractor

import (
	"crypto/sha256"
	"fmt"

	"github.com/PuerkitoBio/goquery"

	"github.com/mrjoshuak/docclean/internal/simplifiers"
	"github.com/mrjoshuak/docclean/types"
)

const (
	nodeIndexAttr     = "data-node-index"
	contentDigestAttr = "data-content-digest"

	// blockSelector matches the elements that become plain text blocks.
	blockSelector = "p, li, pre, blockquote, h1, h2, h3, h4, h5, h6"

	// leafSelector matches the elements that carry content digests.
	leafSelector = "p, li"
)

// TextBlocks returns one block per innermost text block under s, in document
// order. A block that contains another block contributes nothing itself, so
// no text is reported twice.
func TextBlocks(s *goquery.Selection) []types.Block {
	var blocks []types.Block
	s.Find(blockSelector).Each(func(_ int, block *goquery.Selection) {
		if block.Find(blockSelector).Length() > 0 {
			return
		}
		text := simplifiers.NormalizeText(block.Text())
		if text == "" {
			return
		}
		b := types.Block{Text: text}
		if idx, ok := block.Attr(nodeIndexAttr); ok {
			b.NodeIndex = idx
		}
		blocks = append(blocks, b)
	})
	return blocks
}

// AddNodeIndexes labels every element under s with its hierarchical position:
// the children of an element labelled "0" become "0.1", "0.2" and so on.
func AddNodeIndexes(s *goquery.Selection, index string) {
	s.SetAttr(nodeIndexAttr, index)
	s.Children().Each(func(i int, child *goquery.Selection) {
		AddNodeIndexes(child, fmt.Sprintf("%s.%d", index, i+1))
	})
}

// AddContentDigests sets a SHA-256 digest of the normalized text on every
// p and li under s. Elements without text get no digest.
func AddContentDigests(s *goquery.Selection) {
	s.Find(leafSelector).Each(func(_ int, leaf *goquery.Selection) {
		if digest := ContentDigest(leaf.Text()); digest != "" {
			leaf.SetAttr(contentDigestAttr, digest)
		}
	})
}

// ContentDigest hashes the normalized form of text. It returns "" for text
// that normalizes to nothing.
func ContentDigest(text string) string {
	text = simplifiers.NormalizeText(text)
	if text == "" {
		return ""
	}
	return fmt.Sprintf("%x", sha256.Sum256([]byte(text)))
}
