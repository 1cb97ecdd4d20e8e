package main

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"ax25modem/config"
	"ax25modem/device/kiss"
	"ax25modem/display"
	"ax25modem/modem"
	"ax25modem/queue"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
)

const tuiLogPath = "ax25modem.log"

func main() {
	configPath := pflag.StringP("config", "c", config.DefaultPath, "Configuration file (.toml, .yaml or .yml)")
	useTUI := pflag.BoolP("tui", "t", false, "Run the interactive terminal interface")
	count := pflag.IntP("count", "n", queue.Capacity+1, "Number of packets the batch run tries to queue")
	level := pflag.StringP("log-level", "l", "", "Log level: debug, info, warn, error (overrides the config file)")
	pflag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "ax25modem",
	})

	conf, err := config.LoadConfig(*configPath)
	if errors.Is(err, fs.ErrNotExist) && !pflag.CommandLine.Changed("config") {
		logger.Info("no config file, using defaults", "path", *configPath)
		conf, err = config.Default(), nil
	}
	if err != nil {
		logger.Fatal("Failed to load config", "err", err)
	}

	if *level != "" {
		conf.Log.Level = *level
	}
	lvl, err := log.ParseLevel(conf.Log.Level)
	if err != nil {
		logger.Fatal("Invalid log level", "level", conf.Log.Level, "err", err)
	}
	logger.SetLevel(lvl)

	if *useTUI {
		// Anything on stderr would tear the alternate screen
		f, err := tea.LogToFile(tuiLogPath, "")
		if err != nil {
			logger.Fatal("Failed to open log file", "path", tuiLogPath, "err", err)
		}
		defer f.Close()
		logger.SetOutput(f)
	}

	var (
		sink   modem.Sender
		client *kiss.Client
	)
	if strings.EqualFold(conf.Interface.Type, "kiss") {
		client, err = kiss.Connect(conf.Interface, logger)
		if err != nil {
			logger.Fatal("Failed to connect to interface", "err", err)
		}
		defer client.Close()
		sink = client
	}

	station, err := modem.NewStation(conf, logger, sink)
	if err != nil {
		logger.Fatal("Failed to set up station", "err", err)
	}

	if *useTUI {
		p := tea.NewProgram(initialModel(conf, station, client), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			logger.Fatal("Alas, there's been an error", "err", err)
		}
		return
	}

	printer, err := display.New(os.Stdout, conf.Display)
	if err != nil {
		logger.Fatal("Failed to set up display", "err", err)
	}
	if err := runBatch(station, printer, *count); err != nil {
		logger.Fatal("Batch run failed", "err", err)
	}
}
