package bookmap

import (
	"github.com/agentstation/bookmap/pkg/errors"
)

// Close cancels in-flight fetches, waits for them and closes the store if
// the Client opened it.
func (c *client) Close() error {
	var errs []error
	if err := c.controller.Close(); err != nil {
		errs = append(errs, errors.WrapResource("close", "controller", "", err))
	}
	if c.ownsStore {
		if err := c.store.Close(); err != nil {
			errs = append(errs, errors.WrapResource("close", "store", string(c.options.storeConfig.Backend), err))
		}
	}
	c.logger.Debug().Msg("Bookmap client closed")
	return errors.Join(errs...)
}
