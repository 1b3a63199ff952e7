package api

import (
	"errors"

	"github.com/dmitrijs2005/photovault/internal/common"
)

func isNotFound(err error) bool {
	return errors.Is(err, common.ErrNotFound)
}

func isUnauthorized(err error) bool {
	return errors.Is(err, common.ErrUnauthorized)
}
