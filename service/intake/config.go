package intake

import (
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/juju/clock"
	"github.com/sirupsen/logrus"

	"github.com/mycok/docStream/docstore/store"
	"github.com/mycok/docStream/extractor"
)

// QueueAPI defines a minimum set of API methods for publishing document
// records to the queue channel.
type QueueAPI interface {
	// Publish appends a record to the specified topic.
	Publish(topic string, record *store.Document) error
}

// Config defines configurations for the document intake service.
type Config struct {
	// API for publishing assembled document records to the queue channel.
	QueueAPI QueueAPI

	// An API for recovering plain text from uploaded files. If not
	// specified, a format auto-detecting implementation will be used
	// instead.
	Extractor extractor.Extractor

	// A clock instance for generating time-related events. If not specified,
	// the default wall-clock will be used instead.
	Clock clock.Clock

	// The number of concurrent workers used for extracting and
	// publishing submissions.
	NumOfWorkers int

	// Directory for scoped temporary upload files. If not specified,
	// the operating system default will be used instead.
	TempDir string

	// The logger to use. If not defined an output-discarding logger will
	// be used instead.
	Logger *logrus.Entry
}

func (config *Config) validate() error {
	var err error

	if config.QueueAPI == nil {
		err = multierror.Append(err, fmt.Errorf("queue API not provided"))
	}

	if config.Extractor == nil {
		config.Extractor = extractor.NewAutoDetectExtractor()
	}

	if config.Clock == nil {
		config.Clock = clock.WallClock
	}

	if config.NumOfWorkers <= 0 {
		err = multierror.Append(err, fmt.Errorf("invalid value for intake workers, must be > 0"))
	}

	if config.TempDir == "" {
		config.TempDir = os.TempDir()
	}

	if config.Logger == nil {
		config.Logger = logrus.NewEntry(&logrus.Logger{Out: io.Discard})
	}

	return err
}
