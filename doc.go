/*
Package docclean strips boilerplate from HTML documents and normalizes what
is left so that running text always sits inside <p> elements.

Cleaning happens in two passes over the parsed tree. The filter removes
comments, scripts, page chrome and every element whose id, class or name
matches one of the built-in boilerplate patterns, and flattens inline
formatting into plain text. The paragraph normalizer then rewrites div, span
and article containers: a container without block content becomes a <p>, and
loose text inside a container with block content is gathered, together with
adjacent links, into new <p> elements.

Basic Usage:

    import "github.com/mrjoshuak/docclean"

    // Create a new cleaner
    c := docclean.New()

    // Clean an HTML string
    result, err := c.CleanHTML(htmlString, nil)
    if err != nil {
        // Handle error
    }

    fmt.Printf("Title: %s\n", result.Title)
    fmt.Printf("Content: %s\n", result.Content)

    // Access plain text paragraphs
    for i, block := range result.PlainText {
        fmt.Printf("Paragraph %d: %s\n", i+1, block.Text)
    }

Advanced Usage with Options:

    c := docclean.New(
        docclean.WithMarkdown(true),
        docclean.WithSanitize(true),
        docclean.WithNodeIndexes(true),
        docclean.WithTimeout(time.Second*10),
    )

Callers that already hold a goquery document can clean it in place with
Cleaner.Normalize, which runs both passes and returns a Report of what was
changed without rendering anything.
*/
package docclean
