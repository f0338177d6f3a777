package generator

import (
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
)

const (
	templateMetadataMissingCode = "TEMPLATE_METADATA_MISSING"
	templateRenderFailedCode    = "TEMPLATE_RENDER_FAILED"
)

// ErrTemplateMetadataMissing marks documents rejected by the assembler for
// lacking required metadata. The document is excluded from output; the build
// continues.
var ErrTemplateMetadataMissing = errors.New("generator: required metadata missing")

// ErrTemplateRenderFailed marks template execution failures for a single
// document.
var ErrTemplateRenderFailed = errors.New("generator: template render failed")

func missingTitleError(sourcePath string) error {
	err := fmt.Errorf("%w: document %s has no title", ErrTemplateMetadataMissing, sourcePath)
	return goerrors.Wrap(err, goerrors.CategoryValidation, "page assembly rejected document").
		WithTextCode(templateMetadataMissingCode)
}

func renderFailedError(sourcePath string, cause error) error {
	err := fmt.Errorf("%w: document %s: %v", ErrTemplateRenderFailed, sourcePath, cause)
	return goerrors.Wrap(err, goerrors.CategoryValidation, "template execution failed").
		WithTextCode(templateRenderFailedCode)
}

// IsTemplateError reports whether err belongs to the page assembly error kind:
// missing required metadata or a failed template execution.
func IsTemplateError(err error) bool {
	return errors.Is(err, ErrTemplateMetadataMissing) || errors.Is(err, ErrTemplateRenderFailed)
}
