package nihao

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
)

// newLogger opens the debug trace. The terminal belongs to the renderer, so
// without a log file every record is discarded.
func newLogger(path string) (*log.Logger, func(), error) {
	if len(path) == 0 {
		return log.New(io.Discard), func() {}, nil
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to open log file")
	}
	logger := log.NewWithOptions(file, log.Options{
		Prefix:          "nihao",
		Level:           log.DebugLevel,
		ReportTimestamp: true,
	})
	return logger, func() { file.Close() }, nil
}
