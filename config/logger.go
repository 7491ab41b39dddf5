package config

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"

	"pageflow/misc"
)

type LoggerConfig struct {
	Level       string `yaml:"level"`
	Destination string `yaml:"destination,omitempty"`
	Mode        string `yaml:"mode,omitempty"`
}

type LoggingConfig struct {
	FileLogger    LoggerConfig `yaml:"file"`
	ConsoleLogger LoggerConfig `yaml:"console"`
}

func (conf *LoggingConfig) validate() (err error) {
	for _, l := range []string{conf.FileLogger.Level, conf.ConsoleLogger.Level} {
		switch l {
		case "", "none", "normal", "debug":
		default:
			err = multierr.Append(err, fmt.Errorf("unknown logging level '%s'", l))
		}
	}
	switch conf.FileLogger.Mode {
	case "", "append", "overwrite":
	default:
		err = multierr.Append(err, fmt.Errorf("unknown file logging mode '%s'", conf.FileLogger.Mode))
	}
	return
}

// Prepare returns our standard logger - configured zap logger for use by the
// program. Non-error console output goes to stdout, errors to stderr, with
// an optional file core on top.
func (conf *LoggingConfig) Prepare() (*zap.Logger, error) {
	consoleLP := consoleCore(os.Stdout, conf.ConsoleLogger.Level, false)
	consoleHP := consoleCore(os.Stderr, conf.ConsoleLogger.Level, true)

	fileCore, err := conf.fileCore()
	if err != nil {
		return nil, err
	}

	core := zap.New(zapcore.NewTee(consoleHP, consoleLP, fileCore), zap.AddCaller())
	return core.Named(misc.GetAppName()), nil
}

func consoleCore(stream *os.File, level string, highPriority bool) zapcore.Core {
	var floor zapcore.Level
	switch level {
	case "normal":
		floor = zapcore.InfoLevel
	case "debug":
		floor = zapcore.DebugLevel
	default:
		return zapcore.NewNopCore()
	}

	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	if EnableColorOutput(stream) {
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
		ec.TimeKey = zapcore.OmitKey
	} else {
		ec.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	enabler := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		if highPriority {
			return lvl >= zapcore.ErrorLevel
		}
		return floor <= lvl && lvl < zapcore.ErrorLevel
	})
	if highPriority {
		// filter errorVerbose from console output
		return zapcore.NewCore(newEncoder(ec), zapcore.Lock(stream), enabler)
	}
	return zapcore.NewCore(zapcore.NewConsoleEncoder(ec), zapcore.Lock(stream), enabler)
}

func (conf *LoggingConfig) fileCore() (zapcore.Core, error) {
	var level zap.AtomicLevel
	switch conf.FileLogger.Level {
	case "debug":
		level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "normal":
		level = zap.NewAtomicLevelAt(zap.InfoLevel)
	default:
		return zapcore.NewNopCore(), nil
	}

	flags := os.O_CREATE | os.O_WRONLY
	if conf.FileLogger.Mode == "append" {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}
	f, err := os.OpenFile(conf.FileLogger.Destination, flags, 0644)
	if err != nil {
		return nil, fmt.Errorf("unable to access file log destination (%s): %w", conf.FileLogger.Destination, err)
	}
	enc := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	return zapcore.NewCore(enc, zapcore.Lock(f), level), nil
}

// When logging error to console - do not output verbose message.

type consoleEnc struct {
	zapcore.Encoder
}

func newEncoder(cfg zapcore.EncoderConfig) zapcore.Encoder {
	return consoleEnc{zapcore.NewConsoleEncoder(cfg)}
}

func (c consoleEnc) Clone() zapcore.Encoder {
	return consoleEnc{c.Encoder.Clone()}
}

func (c consoleEnc) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	var newFields []zapcore.Field
	for _, f := range fields {
		if f.Type == zapcore.ErrorType {
			e := f.Interface.(error)
			f.Interface = errors.New(e.Error())
		}
		newFields = append(newFields, f)
	}
	return c.Encoder.EncodeEntry(ent, newFields)
}
