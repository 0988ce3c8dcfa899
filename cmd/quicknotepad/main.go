package main

import (
	"fmt"
	"io"
	stlog "log" // fatal errors before the logger is ready
	"os"

	"github.com/bethropolis/quicknotepad/internal/app"
	"github.com/bethropolis/quicknotepad/internal/config"
	"github.com/bethropolis/quicknotepad/internal/input"
	"github.com/bethropolis/quicknotepad/internal/logger"
)

func main() {
	flags := config.NewFlags(nil)
	args, err := flags.Parse(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	switch {
	case *flags.Version:
		fmt.Printf("%s %s\n", config.AppName, config.Version)
		return
	case *flags.Shortcuts:
		fmt.Print(input.FormatShortcuts(input.NewInputProcessor().Shortcuts()))
		return
	case *flags.GUI:
		fmt.Fprintf(os.Stderr, "%s: the graphical front end is not available in this build\n", config.AppName)
		os.Exit(1)
	}

	cfg, cfgErr := config.LoadConfig(*flags.ConfigFilePath, flags)

	logOutput, closeLog := openLog(cfg.Logger.LogFilePath)
	defer closeLog()
	logger.SetFilterDebug(*flags.DebugLog)
	logger.Init(&cfg.Logger, logOutput)
	if cfgErr != nil {
		logger.Warnf("Using defaults after config error: %v", cfgErr)
	}

	filePath := ""
	if len(args) > 0 {
		filePath = args[0]
	}
	logger.Infof("Starting %s %s", config.AppName, config.Version)
	if filePath != "" {
		logger.Debugf("File path specified: %s", filePath)
	}

	editorApp, err := app.NewApp(cfg, filePath)
	if err != nil {
		logger.Errorf("Error initializing application: %v", err)
		fmt.Fprintf(os.Stderr, "%s: %v\n", config.AppName, err)
		closeLog()
		os.Exit(1)
	}
	if err := editorApp.Run(); err != nil {
		logger.Errorf("Application exited with error: %v", err)
		closeLog()
		os.Exit(1)
	}
	logger.Infof("%s finished.", config.AppName)
}

// openLog opens the log destination: "-" is stderr, empty discards.
func openLog(path string) (io.Writer, func()) {
	switch path {
	case "":
		return io.Discard, func() {}
	case "-":
		return os.Stderr, func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		stlog.Fatalf("Failed to open log file '%s': %v", path, err)
	}
	return f, func() { f.Close() }
}
