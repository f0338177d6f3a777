package markdown

import (
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
)

const (
	frontMatterMalformedCode = "FRONTMATTER_MALFORMED"
)

// ErrMalformedFrontMatter marks documents whose front matter block is
// unterminated or not valid key/value syntax. The error stays local to the
// offending document; build pipelines report it and move on.
var ErrMalformedFrontMatter = errors.New("markdown: malformed front matter")

func wrapFrontMatterError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrMalformedFrontMatter) {
		return err
	}
	wrapped := fmt.Errorf("%w: %v", ErrMalformedFrontMatter, err)
	return goerrors.Wrap(wrapped, goerrors.CategoryValidation, "malformed front matter").
		WithTextCode(frontMatterMalformedCode)
}

func unterminatedFrontMatterError() error {
	err := fmt.Errorf("%w: opening delimiter has no closing delimiter", ErrMalformedFrontMatter)
	return goerrors.Wrap(err, goerrors.CategoryValidation, "malformed front matter").
		WithTextCode(frontMatterMalformedCode)
}

// IsMalformedFrontMatter reports whether err originated from an unterminated
// or syntactically invalid front matter block.
func IsMalformedFrontMatter(err error) bool {
	return errors.Is(err, ErrMalformedFrontMatter)
}
