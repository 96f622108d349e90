package resolver

import (
	"github.com/arthur-debert/creatorly/pkg/errors"
	"github.com/arthur-debert/creatorly/pkg/logging"
	"github.com/arthur-debert/creatorly/pkg/types"
)

// Resolver partitions discovered files and loads each unit's specification
type Resolver struct {
	store types.SpecStore
	names []string
}

// New returns a resolver recognizing specification files by names
func New(store types.SpecStore, names []string) *Resolver {
	return &Resolver{store: store, names: names}
}

// Resolve builds the template configuration for list. The answer set starts
// empty.
func (r *Resolver) Resolve(list types.FileList) (*types.TemplateConfiguration, error) {
	logger := logging.GetLogger("resolver")

	if len(list.Files) == 0 {
		return nil, errors.Newf(errors.ErrNotFound, "no files found in %s", list.Root).
			WithDetail("path", list.Root).
			WithAdvice("run the command on a directory with files")
	}

	units, err := Partition(list.Files, r.names)
	if err != nil {
		return nil, err
	}

	for i := range units {
		u := &units[i]
		spec, err := r.store.Load(u.SpecPath)
		if err != nil {
			return nil, err
		}
		if spec.IsEmpty() {
			return nil, errors.Newf(errors.ErrValidation, "no placeholders declared in %s", u.SpecPath).
				WithDetail("path", u.SpecPath)
		}
		u.Specification = spec

		if len(u.Files) == 0 {
			logger.Warn().Str("path", u.RootPath).Msg("Template unit has no files")
		}
		logger.Debug().
			Str("spec", u.SpecPath).
			Int("files", len(u.Files)).
			Int("placeholders", len(spec.Placeholders)).
			Msg("Template unit resolved")
	}

	return &types.TemplateConfiguration{
		Root:    list.Root,
		Units:   units,
		Answers: types.AnswerSet{},
	}, nil
}
