package probe

import "github.com/vango-dev/vquery/internal/errors"

func reportError(detail string) error {
	return errors.New("E301").WithDetail(detail)
}
