package textfile

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/guiguan/caster"
	"github.com/npillmayer/bindex/btree"
)

// DefaultProgressInterval is the number of records between two progress
// messages if LoaderConfig.ProgressInterval is unset.
const DefaultProgressInterval = 1000

// MaxLineLength is the maximum length of a line of a record file, in bytes.
const MaxLineLength = 4 << 20

// ErrMalformedRecord is matched by every error concerning the content of a
// single record line.
var ErrMalformedRecord = errors.New("textfile: malformed record")

// ErrLoaderClosed is returned when subscribing to a closed loader.
var ErrLoaderClosed = errors.New("textfile: loader closed")

// LoaderConfig configures a Loader.
type LoaderConfig struct {
	// Separator between key and value. 0 selects auto-detection from the first
	// record line: tab if present, comma otherwise.
	Separator rune
	// ProgressInterval is the number of records between progress messages.
	ProgressInterval int
}

// Progress is broadcast to subscribers while a file is loaded.
type Progress struct {
	File    string // name of the file being loaded
	Line    int    // last line read
	Records int    // records inserted so far
	Done    bool   // final message of a load
	Err     error  // set on the final message if the load failed
}

// RecordError reports a malformed record, together with its position.
// It matches ErrMalformedRecord with errors.Is and unwraps to its cause.
type RecordError struct {
	File string
	Line int
	Err  error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Err.Error())
}

func (e *RecordError) Unwrap() error { return e.Err }

// Is makes every RecordError match ErrMalformedRecord.
func (e *RecordError) Is(target error) bool {
	return target == ErrMalformedRecord
}

// Loader loads record files into trees and broadcasts progress.
// A Loader may be used for any number of loads, one at a time.
type Loader struct {
	cfg  LoaderConfig
	cast *caster.Caster // broadcaster for progress messages
}

// NewLoader creates a loader. Clients must call Close when done with it.
func NewLoader(cfg LoaderConfig) *Loader {
	if cfg.ProgressInterval <= 0 {
		cfg.ProgressInterval = DefaultProgressInterval
	}
	return &Loader{
		cfg:  cfg,
		cast: caster.New(nil),
	}
}

// Subscribe returns a channel of progress messages for all loads started
// after the call. The channel is closed when the loader is closed or ctx
// is done.
func (l *Loader) Subscribe(ctx context.Context) (<-chan Progress, error) {
	sub, ok := l.cast.Sub(ctx, 16)
	if !ok {
		return nil, ErrLoaderClosed
	}
	out := make(chan Progress, 16)
	go func() {
		defer close(out)
		for {
			select {
			case msg, ok := <-sub:
				if !ok {
					return
				}
				p, ok := msg.(Progress)
				if !ok {
					continue
				}
				select {
				case out <- p:
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

// Close stops the broadcaster, closing all subscriber channels.
func (l *Loader) Close() {
	l.cast.Close()
}

func (l *Loader) publish(p Progress) {
	if l == nil || l.cast == nil {
		return
	}
	l.cast.Pub(p)
}

// ParseFunc converts the raw key and value of a record.
type ParseFunc[K, V any] func(key, value string) (K, V, error)

// ParseIntRecord parses decimal int64 keys and keeps values as they are.
func ParseIntRecord(key, value string) (int64, string, error) {
	k, err := strconv.ParseInt(key, 10, 64)
	return k, value, err
}

// Load reads the record file name and inserts every record into tree,
// returning the number of records inserted. Keys already present in the
// tree have their values replaced.
//
// l may be nil, in which case defaults are used and no progress is
// published. On error, records read up to the offending line remain in
// the tree.
func Load[K, V any](l *Loader, name string, tree *btree.Tree[K, V], parse ParseFunc[K, V]) (int, error) {
	if tree == nil || parse == nil {
		return 0, fmt.Errorf("textfile: tree and parse function must not be nil")
	}
	cfg := LoaderConfig{ProgressInterval: DefaultProgressInterval}
	if l != nil {
		cfg = l.cfg
	}
	f, err := os.Open(name)
	if err != nil {
		l.publish(Progress{File: name, Done: true, Err: err})
		return 0, err
	}
	defer f.Close()
	tracer().Infof("loading records from %s", name)
	count, line, err := loadRecords(f, name, tree, parse, cfg, l)
	l.publish(Progress{File: name, Line: line, Records: count, Done: true, Err: err})
	if err != nil {
		tracer().Errorf("loading %s: %v", name, err)
		return count, err
	}
	tracer().Infof("loaded %d records from %s", count, name)
	return count, nil
}

func loadRecords[K, V any](f *os.File, name string, tree *btree.Tree[K, V], parse ParseFunc[K, V],
	cfg LoaderConfig, l *Loader) (count int, line int, err error) {
	//
	sep := cfg.Separator
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), MaxLineLength)
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		if sep == 0 {
			sep = detectSeparator(text)
		}
		k, v, found := strings.Cut(text, string(sep))
		if !found {
			return count, line, &RecordError{File: name, Line: line,
				Err: fmt.Errorf("missing separator %q", sep)}
		}
		key, value, perr := parse(strings.TrimSpace(k), strings.TrimSpace(v))
		if perr != nil {
			return count, line, &RecordError{File: name, Line: line, Err: perr}
		}
		tree.Insert(key, value)
		count++
		if count%cfg.ProgressInterval == 0 {
			l.publish(Progress{File: name, Line: line, Records: count})
		}
	}
	if err = scanner.Err(); err != nil {
		err = fmt.Errorf("textfile: reading %s: %w", name, err)
	}
	return count, line, err
}

func detectSeparator(line string) rune {
	if strings.ContainsRune(line, '\t') {
		return '\t'
	}
	return ','
}
