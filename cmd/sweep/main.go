// Command sweep plays minesweeper in the terminal, one command per line:
//
//	o ROW COL   reveal a cell
//	f ROW COL   toggle a flag
//	n PRESET    start over with a preset
//	g           redraw
//	q           quit
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"

	"github.com/vancomm/minesweeper/internal/command"
	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/mines"
	"github.com/vancomm/minesweeper/internal/session"
)

var (
	log = logrus.New()

	presetName  string
	presetsPath string
	logPath     string
)

func init() {
	flag.StringVar(&presetName, "preset", "easy", "difficulty preset")
	flag.StringVar(&presetName, "p", "easy", "difficulty preset (shorthand)")
	flag.StringVar(&presetsPath, "presets", "", "YAML presets file")
	flag.StringVar(&logPath, "log", "sweep.log", "log file path")
}

// setupLogging sends everything to a rotating file since stdout is the board.
func setupLogging() (io.Closer, error) {
	level := logrus.InfoLevel
	if config.Development() {
		level = logrus.DebugLevel
	}
	log.SetLevel(level)
	log.SetOutput(io.Discard)

	hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
		Filename:   logPath,
		MaxSize:    5,
		MaxBackups: 3,
		MaxAge:     7,
		Level:      level,
		Formatter:  &logrus.TextFormatter{FullTimestamp: true},
	})
	if err != nil {
		return nil, fmt.Errorf("unable to open log file: %w", err)
	}
	log.AddHook(hook)

	w := log.WriterLevel(logrus.DebugLevel)
	mines.Log = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	return w, nil
}

func loadPresets() (mines.Presets, error) {
	if presetsPath == "" {
		return mines.DefaultPresets, nil
	}
	return config.LoadPresetsFile(presetsPath)
}

func main() {
	flag.Parse()

	closer, err := setupLogging()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer closer.Close()

	presets, err := loadPresets()
	if err != nil {
		log.WithError(err).Error("unable to load presets")
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	s, err := session.New(presets, presetName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer s.Close()

	log.WithField("preset", presetName).Info("starting")
	play(s, os.Stdin, os.Stdout)
	log.Info("bye")
}

func play(s *session.Session, in io.Reader, out io.Writer) {
	render(out, s.Snapshot())
	scanner := bufio.NewScanner(in)
	for fmt.Fprint(out, "> "); scanner.Scan(); fmt.Fprint(out, "> ") {
		line := strings.TrimSpace(scanner.Text())
		if line == "q" {
			return
		}
		log.WithField("line", line).Debug("command")
		if err := command.Run(s, line); err != nil {
			log.WithError(err).Warn("rejected command")
			fmt.Fprintf(out, "error: %s\n", err)
			continue
		}
		render(out, s.Snapshot())
	}
}
