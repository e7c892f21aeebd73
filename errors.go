package pubgen

import (
	"errors"
	"fmt"
)

// Category classifies build failures.
type Category string

const (
	// CategoryContent covers malformed posts and locale configs.
	CategoryContent Category = "content"
	// CategoryResource covers required assets that are missing or unreadable.
	CategoryResource Category = "resource"
	// CategoryExternal covers failures of external services (font download).
	CategoryExternal Category = "external"
	// CategoryConfig covers invalid build configuration.
	CategoryConfig Category = "config"
	// CategoryOutput covers failures writing the output tree.
	CategoryOutput Category = "output"
)

var (
	ErrDuplicateSlug = errors.New("duplicate slug")
	ErrMissingField  = errors.New("missing required field")
	ErrInvalidDate   = errors.New("invalid date")
	ErrInvalidSlug   = errors.New("invalid slug")
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrMissingAsset  = errors.New("required asset missing")
)

// BuildError is a classified build failure. Path names the offending file
// when there is one.
type BuildError struct {
	Category Category
	Path     string
	Err      error
}

func (e *BuildError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s error: %s: %v", e.Category, e.Path, e.Err)
	}
	return fmt.Sprintf("%s error: %v", e.Category, e.Err)
}

func (e *BuildError) Unwrap() error { return e.Err }

// CategoryOf returns the category of the first BuildError in err's chain.
func CategoryOf(err error) (Category, bool) {
	var be *BuildError
	if errors.As(err, &be) {
		return be.Category, true
	}
	return "", false
}

func contentError(path string, err error) error {
	return &BuildError{Category: CategoryContent, Path: path, Err: err}
}

func resourceError(path string, err error) error {
	return &BuildError{Category: CategoryResource, Path: path, Err: err}
}

func externalError(err error) error {
	return &BuildError{Category: CategoryExternal, Err: err}
}

func configError(err error) error {
	return &BuildError{Category: CategoryConfig, Err: err}
}

func outputError(path string, err error) error {
	return &BuildError{Category: CategoryOutput, Path: path, Err: err}
}

func missingView(name string) error {
	return configError(fmt.Errorf("%w: view %s is not set", ErrInvalidConfig, name))
}
