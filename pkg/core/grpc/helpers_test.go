package grpc

import (
	"io"

	mdwlog "github.com/msto63/vmel/foundation/core/log"
	"github.com/msto63/vmel/pkg/core/logging"
)

func quietLogger() *logging.Logger {
	return logging.Wrap(mdwlog.NewWithConfig(mdwlog.Config{Level: mdwlog.LevelError, Output: io.Discard}), "test")
}
