package logging

import (
	"github.com/acarl005/stripansi"
	"github.com/rifflock/lfshook"
	"github.com/sirupsen/logrus"
	"github.com/srevinsaju/keyswap/v1/pkg/meta"
)

// plainFormatter drops the terminal escape sequences the ui helpers put
// into messages before handing the entry to the wrapped formatter.
type plainFormatter struct {
	logrus.Formatter
}

func (f plainFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	plain := *entry
	plain.Message = stripansi.Strip(entry.Message)
	return f.Formatter.Format(&plain)
}

// NewFileHook appends every entry at or above level to path as JSON.
func NewFileHook(path string, level logrus.Level) logrus.Hook {
	paths := lfshook.PathMap{}
	for _, l := range logrus.AllLevels {
		if l <= level {
			paths[l] = path
		}
	}
	return lfshook.NewHook(paths, plainFormatter{&logrus.JSONFormatter{
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyMsg: "message",
		},
		DataKey: meta.AppName,
	}})
}

// Fields are attached to every entry of a run.
func Fields(cfg Config) logrus.Fields {
	return logrus.Fields{
		"run": cfg.CorrelationID,
	}
}
