package grep

import (
	"bufio"
	"context"
	"io"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/askiada/pipegrep/internal/config"
	"github.com/askiada/pipegrep/internal/fsys"
)

// enumerate emits the regular files of the directory.
func (g *Grep) enumerate(ctx context.Context, emit func(string) error) error {
	names, err := g.fs.ListRegular(ctx)
	if err != nil {
		return err
	}

	g.log.Debug("directory listed", zap.Int("files", len(names)))

	for _, name := range names {
		err := emit(name)
		if err != nil {
			return err
		}
	}

	return nil
}

// filterMetadata keeps the files bigger than the size threshold and owned by the configured user and group.
func (g *Grep) filterMetadata(_ context.Context, name string) (bool, error) {
	md, err := g.fs.Lstat(name)
	if errors.Is(err, fsys.ErrNotFound) {
		// removed since the listing
		g.log.Debug("file vanished", zap.String("file", name))

		return false, nil
	}

	if err != nil {
		return false, err
	}

	if g.cfg.SizeThreshold != config.Disabled && md.Size <= g.cfg.SizeThreshold {
		return false, nil
	}

	if g.cfg.OwnerID != config.Disabled && md.UID != g.cfg.OwnerID {
		return false, nil
	}

	if g.cfg.GroupID != config.Disabled && md.GID != g.cfg.GroupID {
		return false, nil
	}

	return true, nil
}

// expandLines emits every line of a text file, without its terminator. Binary files are skipped.
func (g *Grep) expandLines(_ context.Context, name string, emit func(string) error) error {
	file, err := g.fs.Open(name)
	if err != nil {
		return err
	}
	defer file.Close()

	reader := bufio.NewReader(file)

	sample, err := reader.Peek(binarySampleSize)
	if err != nil && !errors.Is(err, io.EOF) {
		return errors.Wrapf(err, "unable to read %s", name)
	}

	if isBinary(sample) {
		g.log.Debug("binary file skipped", zap.String("file", name))

		return nil
	}

	for {
		line, err := reader.ReadString('\n')
		if len(line) > 0 {
			line = strings.TrimSuffix(line, "\n")
			line = strings.TrimSuffix(line, "\r")

			emitErr := emit(line)
			if emitErr != nil {
				return emitErr
			}
		}

		if errors.Is(err, io.EOF) {
			return nil
		}

		if err != nil {
			return errors.Wrapf(err, "unable to read %s", name)
		}
	}
}

// match keeps the lines containing the pattern.
func (g *Grep) match(_ context.Context, line string) (bool, error) {
	return strings.Contains(line, g.cfg.Pattern), nil
}

// output writes a matching line and counts it.
func (g *Grep) output(_ context.Context, line string) error {
	g.matches++

	_, err := g.out.WriteString(line + "\n")

	return errors.Wrap(err, "unable to write match")
}
