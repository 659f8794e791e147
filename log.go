package main

import (
	"io"
	"log"
	"os"

	"github.com/MagicalTux/ringbuf"
	"github.com/rs/zerolog"
)

var (
	logbuf *ringbuf.Writer
	logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
)

func init() {
	var err error

	logbuf, err = ringbuf.New(1024 * 1024)
	if err == nil {
		log.SetOutput(logbuf)
		go func() {
			r := logbuf.BlockingReader()
			defer r.Close()
			io.Copy(os.Stdout, r)
		}()
	} else {
		log.Printf("[log] Failed to setup logbuf: %s", err)
	}
}

// setupLogging points the structured logger at the ring buffer.
func setupLogging(level string) error {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return err
	}
	out := zerolog.ConsoleWriter{
		Out:        LogTarget(),
		TimeFormat: "15:04:05",
		NoColor:    true,
	}
	logger = zerolog.New(out).Level(lvl).With().Timestamp().Int("pid", os.Getpid()).Logger()
	return nil
}

func LogTarget() io.Writer {
	if logbuf == nil {
		return os.Stdout
	}
	return logbuf
}

func LogDmesg(w io.Writer) (int64, error) {
	if logbuf == nil {
		return 0, nil
	}
	r := logbuf.Reader()
	defer r.Close()
	return io.Copy(w, r)
}

// dumpLog writes what is left in the ring buffer to path.
func dumpLog(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := LogDmesg(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
