package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Garik-/digitools/pkg/elektron"
	"github.com/Garik-/digitools/pkg/sysex"
	"github.com/Garik-/digitools/pkg/table"
	"go.uber.org/zap"
)

var errUsage = errors.New("invalid arguments")

// loadBank reads a SysEx file and reports the skipped messages to w.
func loadBank(name string, w io.Writer) (*elektron.Bank, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}

	bank, err := elektron.Load(data)
	if bank != nil {
		for _, f := range bank.Failures {
			fmt.Fprintf(w, "Loading the sound at position %03d failed: %v\n", f.Position, f.Err)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	commandLog.Debug("loaded", zap.String("name", name), zap.Int("sounds", len(bank.Sounds)),
		zap.Int("failures", len(bank.Failures)))
	return bank, nil
}

func printSounds(syx string, w io.Writer) error {
	bank, err := loadBank(syx, w)
	if err != nil {
		return err
	}

	for i, sound := range bank.Sounds {
		fmt.Fprintf(w, "%03d: %v\n", i+1, sound)
	}
	return nil
}

func exportSounds(cfg config, syx, csvName string, w io.Writer) error {
	if csvName == "" {
		csvName = syx + ".csv"
	}

	bank, err := loadBank(syx, w)
	if err != nil {
		return err
	}

	if len(bank.Sounds) == 0 {
		fmt.Fprintf(w, "%s: no sounds to export\n", syx)
		return nil
	}

	var buf bytes.Buffer
	if err := table.Export(&buf, bank.Sounds, table.Options{Mark: cfg.Mark}); err != nil {
		return err
	}

	return os.WriteFile(csvName, buf.Bytes(), 0644)
}

func updateSounds(syx, csvName string, w io.Writer) error {
	if csvName == "" {
		csvName = syx + ".csv"
	}

	bank, err := loadBank(syx, w)
	if err != nil {
		return err
	}

	if len(bank.Sounds) == 0 {
		fmt.Fprintf(w, "%s: no sounds to update\n", syx)
		return nil
	}

	f, err := os.Open(csvName)
	if err != nil {
		return err
	}
	defer f.Close()

	sounds, err := table.Update(f, bank.Sounds)
	if err != nil {
		return fmt.Errorf("%s: %w", csvName, err)
	}

	out, err := elektron.Save(sounds)
	if err != nil {
		return err
	}

	return replaceFile(syx, out)
}

// replaceFile writes data next to name and renames it over name, so a
// failed write never leaves a half-written bank behind.
func replaceFile(name string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(name), filepath.Base(name)+".*")
	if err != nil {
		return err
	}

	_, err = tmp.Write(data)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tmp.Name())
		return err
	}

	if err := os.Rename(tmp.Name(), name); err != nil {
		os.Remove(tmp.Name())
		return err
	}

	commandLog.Debug("replaced", zap.String("name", name), zap.Int("bytes", len(data)))
	return nil
}

func decodeSounds(syx, out string, w io.Writer) error {
	if out == "" {
		return fmt.Errorf("%w: decode needs an output file", errUsage)
	}

	bank, err := loadBank(syx, w)
	if err != nil {
		return err
	}

	return os.WriteFile(out, elektron.DumpData(bank.Sounds), 0644)
}

// splitMessages writes every framed message to its own NNN.syx file.
func splitMessages(cfg config, syx string, w io.Writer) error {
	data, err := os.ReadFile(syx)
	if err != nil {
		return err
	}

	msgs, err := sysex.Split(data)
	if err != nil {
		return fmt.Errorf("%s: %w", syx, err)
	}

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return err
	}

	for i, msg := range msgs {
		name := filepath.Join(cfg.OutputDir, fmt.Sprintf("%03d.syx", i+1))
		if err := os.WriteFile(name, msg, 0644); err != nil {
			return err
		}
		commandLog.Debug("split", zap.String("name", name), zap.Int("bytes", len(msg)))
	}

	fmt.Fprintf(w, "%s: %d messages written to %s\n", syx, len(msgs), cfg.OutputDir)
	return nil
}
